package regfile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestX0AlwaysZero(t *testing.T) {
	var f File
	f.Write(0, 0xDEADBEEF)
	require.Equal(t, uint32(0), f.Read(0))
}

func TestReadWriteRoundTrip(t *testing.T) {
	var f File
	f.Write(10, 22)
	f.Write(11, 5)
	require.Equal(t, uint32(22), f.Read(10))
	require.Equal(t, uint32(5), f.Read(11))
}

func TestReset(t *testing.T) {
	var f File
	f.Write(5, 123)
	f.Reset()
	require.Equal(t, uint32(0), f.Read(5))
}
