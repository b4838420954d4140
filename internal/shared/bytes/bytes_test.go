package bytes

import (
	"github.com/stretchr/testify/require"
	"testing"
)

// TestFmtMem keeps the two most significant units.
func TestFmtMem(t *testing.T) {
	require.Equal(t, "0B", FmtMem(0))
	require.Equal(t, "1023B", FmtMem(1023))
	require.Equal(t, "1KB 512B", FmtMem(1536))
	require.Equal(t, "3MB 512KB", FmtMem(3*1024*1024+512*1024))
	require.Equal(t, "2GB 0MB", FmtMem(2*1024*1024*1024))
	require.Equal(t, "1TB 1GB", FmtMem(1024*1024*1024*1024+1024*1024*1024))
}
