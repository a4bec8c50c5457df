package names

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLenGzRoundTrip(t *testing.T) {
	records := []Record{
		{SeqID: 0, Name: "read1", Length: 8},
		{SeqID: 1, Name: "read2 with spaces", Length: 150},
		{SeqID: 2, Name: "read3", Length: 0},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteLenGz(&buf, records))

	got, err := ReadLenGz(&buf)
	require.NoError(t, err)
	require.Equal(t, records, got)
}

func TestReadLenGzRejectsMalformedLine(t *testing.T) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte("read1 without a tab\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = ReadLenGz(bytes.NewReader(buf.Bytes()))
	require.Error(t, err)
}

func TestWriteLenGzEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLenGz(&buf, nil))

	got, err := ReadLenGz(&buf)
	require.NoError(t, err)
	require.Nil(t, got)
}
