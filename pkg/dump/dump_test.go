package dump

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTransfer(t *testing.T) {
	require.Equal(t, "R(7Byte) 48h 65h 6Ch 6Ch 6Fh 0Dh 0Ah", Transfer(Read, []byte("Hello\r\n")))
	require.Equal(t, "W(0Byte)", Transfer(Write, nil))
}

func TestInline(t *testing.T) {
	require.Equal(t, "R00 RFF", Inline(Read, []byte{0x00, 0xff}))
	require.Equal(t, "", Inline(Write, nil))
}
