package bre

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ropebwt/rb3go/seq"
)

func TestWriteReadRoundTrip(t *testing.T) {
	runs := []struct {
		sym seq.Symbol
		len uint64
	}{
		{seq.A, 5},
		{seq.C, 1},
		{seq.G, 300},
		{seq.T, 0}, // zero-length run: writer must silently drop it
		{seq.N, 2},
	}

	var buf bytes.Buffer
	w, err := NewWriter(&buf, Header{})
	require.NoError(t, err)

	for _, r := range runs {
		require.NoError(t, w.WriteRun(r.sym, r.len))
	}
	require.NoError(t, w.Close())

	rd, err := NewReader(&buf)
	require.NoError(t, err)
	require.Equal(t, uint64(seq.AlphabetSize), rd.Header.AlphabetSize)

	var got []struct {
		sym seq.Symbol
		len uint64
	}
	for {
		sym, length, err := rd.ReadRun()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, struct {
			sym seq.Symbol
			len uint64
		}{sym, length})
	}

	require.Equal(t, []struct {
		sym seq.Symbol
		len uint64
	}{
		{seq.A, 5}, {seq.C, 1}, {seq.G, 300}, {seq.N, 2},
	}, got)
}

func TestWriteRunSplitsAcrossMaxChunk(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, Header{})
	require.NoError(t, err)

	long := maxRunChunk + 100
	require.NoError(t, w.WriteRun(seq.A, long))
	require.NoError(t, w.Close())
	require.Equal(t, uint64(2), w.nRec)
	require.Equal(t, uint64(1), w.nRun)

	rd, err := NewReader(&buf)
	require.NoError(t, err)

	sym, length, err := rd.ReadRun()
	require.NoError(t, err)
	require.Equal(t, seq.A, sym)
	require.Equal(t, long, length)

	_, _, err = rd.ReadRun()
	require.Equal(t, io.EOF, err)
}

func TestWriteRunExactMultipleOfMaxChunk(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, Header{})
	require.NoError(t, err)

	exact := maxRunChunk * 2
	require.NoError(t, w.WriteRun(seq.C, exact))
	require.NoError(t, w.WriteRun(seq.G, 7))
	require.NoError(t, w.Close())

	rd, err := NewReader(&buf)
	require.NoError(t, err)

	sym, length, err := rd.ReadRun()
	require.NoError(t, err)
	require.Equal(t, seq.C, sym)
	require.Equal(t, exact, length)

	sym, length, err = rd.ReadRun()
	require.NoError(t, err)
	require.Equal(t, seq.G, sym)
	require.Equal(t, uint64(7), length)

	_, _, err = rd.ReadRun()
	require.Equal(t, io.EOF, err)
}

func TestReaderRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBuffer(make([]byte, headerLen))
	_, err := NewReader(buf)
	require.Error(t, err)
}

func TestReaderDetectsTruncation(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, Header{})
	require.NoError(t, err)
	require.NoError(t, w.WriteRun(seq.A, 3))
	require.NoError(t, w.Close())

	truncated := bytes.NewReader(buf.Bytes()[:buf.Len()-4])
	rd, err := NewReader(truncated)
	require.NoError(t, err)

	_, _, err = rd.ReadRun()
	require.NoError(t, err)
	_, _, err = rd.ReadRun()
	require.Error(t, err)
}

func TestHeaderWithAuxRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, Header{Aux: []byte("hello")})
	require.NoError(t, err)
	require.NoError(t, w.WriteRun(seq.T, 1))
	require.NoError(t, w.Close())

	rd, err := NewReader(&buf)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), rd.Header.Aux)
}
