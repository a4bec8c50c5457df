package bitstream

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ropebwt/rb3go/internal"
)

func TestBitStreamAlignedRoundTrip(t *testing.T) {
	for width := uint(1); width <= 64; width++ {
		bs := internal.NewBufferStream()
		obs, err := NewDefaultOutputBitStream(bs, 16384)
		require.NoError(t, err)

		values := make([]uint64, 50)
		mask := uint64(0xFFFFFFFFFFFFFFFF)
		if width < 64 {
			mask = (uint64(1) << width) - 1
		}

		for i := range values {
			values[i] = rand.Uint64() & mask
			obs.WriteBits(values[i], width)
		}

		require.NoError(t, obs.Close())

		ibs, err := NewDefaultInputBitStream(bs, 16384)
		require.NoError(t, err)

		for i := range values {
			require.Equal(t, values[i], ibs.ReadBits(width), "width=%d index=%d", width, i)
		}

		require.NoError(t, ibs.Close())
	}
}

func TestBitStreamMixedWidths(t *testing.T) {
	bs := internal.NewBufferStream()
	obs, err := NewDefaultOutputBitStream(bs, 16384)
	require.NoError(t, err)

	type entry struct {
		val   uint64
		width uint
	}

	widths := []uint{1, 3, 7, 8, 13, 32, 64, 5}
	entries := make([]entry, len(widths))

	for i, w := range widths {
		mask := uint64(0xFFFFFFFFFFFFFFFF)
		if w < 64 {
			mask = (uint64(1) << w) - 1
		}
		e := entry{val: rand.Uint64() & mask, width: w}
		entries[i] = e
		obs.WriteBits(e.val, e.width)
	}

	require.NoError(t, obs.Close())

	ibs, err := NewDefaultInputBitStream(bs, 16384)
	require.NoError(t, err)

	for i, e := range entries {
		require.Equal(t, e.val, ibs.ReadBits(e.width), "entry %d", i)
	}
}

func TestBitStreamSingleBits(t *testing.T) {
	bs := internal.NewBufferStream()
	obs, err := NewDefaultOutputBitStream(bs, 16384)
	require.NoError(t, err)

	bits := make([]int, 200)
	for i := range bits {
		bits[i] = rand.Intn(2)
		obs.WriteBit(bits[i])
	}
	require.NoError(t, obs.Close())

	ibs, err := NewDefaultInputBitStream(bs, 16384)
	require.NoError(t, err)

	for i, want := range bits {
		require.Equal(t, want, ibs.ReadBit(), "bit %d", i)
	}
}

func TestBitStreamReadArray(t *testing.T) {
	bs := internal.NewBufferStream()
	obs, err := NewDefaultOutputBitStream(bs, 16384)
	require.NoError(t, err)

	data := make([]byte, 256)
	for i := range data {
		data[i] = byte(rand.Intn(256))
	}
	obs.WriteArray(data, uint(len(data))*8)
	require.NoError(t, obs.Close())

	ibs, err := NewDefaultInputBitStream(bs, 16384)
	require.NoError(t, err)

	out := make([]byte, len(data))
	ibs.ReadArray(out, uint(len(out))*8)
	require.Equal(t, data, out)
}

func TestBitStreamClosedPanics(t *testing.T) {
	bs := internal.NewBufferStream()
	obs, err := NewDefaultOutputBitStream(bs, 16384)
	require.NoError(t, err)
	obs.WriteBits(42, 8)
	require.NoError(t, obs.Close())

	require.Panics(t, func() { obs.WriteBit(1) })
}
