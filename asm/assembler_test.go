package asm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func bytesAt(mem interface {
	Read(uint16) uint8
}, address uint16, n int) []uint8 {
	out := make([]uint8, n)
	for i := range out {
		out[i] = mem.Read(address + uint16(i))
	}
	return out
}

func TestAssembleLoadStoreRoundTrip(t *testing.T) {
	mem, err := Assemble("$4000 LDAI #$2A STAA $00FF BRK")
	require.NoError(t, err)
	require.Equal(t, []uint8{0xa9, 0x2a, 0x8d, 0xff, 0x00, 0x00}, bytesAt(mem, 0x4000, 6))
}

func TestAssembleJSRAndDirectAddress(t *testing.T) {
	mem, err := Assemble("$4000 JSR $4010 BRK\n$4010 RTS")
	require.NoError(t, err)
	require.Equal(t, []uint8{0x20, 0x10, 0x40, 0x00}, bytesAt(mem, 0x4000, 4))
	require.Equal(t, uint8(0x60), mem.Read(0x4010))
}

func TestAssembleBranchToDirectAddress(t *testing.T) {
	mem, err := Assemble("$4000 LDXI #$00 INX BNE $4002 BRK")
	require.NoError(t, err)
	// LDXI #$00 (2 bytes), INX (1 byte) at $4002, BNE $4002 (2 bytes) at
	// $4003-4004, BRK at $4005.
	require.Equal(t, uint8(0xe8), mem.Read(0x4002))
	require.Equal(t, uint8(0xd0), mem.Read(0x4003))
	require.Equal(t, uint8(0xfd), mem.Read(0x4004)) // offset -3: 0x4002-(0x4004+1)
	require.Equal(t, uint8(0x00), mem.Read(0x4005))
}

func TestAssembleLabelResolution(t *testing.T) {
	mem, err := Assemble("$4000\nLOOP: INX BNE LOOP BRK")
	require.NoError(t, err)
	require.Equal(t, []uint8{0xe8, 0xd0, 0xfd, 0x00}, bytesAt(mem, 0x4000, 4))
}

func TestAssembleForwardLabelReference(t *testing.T) {
	mem, err := Assemble("$4000 JMP SKIP\nNOP\nSKIP: BRK")
	require.NoError(t, err)
	require.Equal(t, uint8(0x4c), mem.Read(0x4000))
	require.Equal(t, uint8(0x04), mem.Read(0x4001))
	require.Equal(t, uint8(0x40), mem.Read(0x4002))
	require.Equal(t, uint8(0xea), mem.Read(0x4003))
	require.Equal(t, uint8(0x00), mem.Read(0x4004))
}

func TestAssembleDataDirective(t *testing.T) {
	mem, err := Assemble("$4000 .DATA 01 02 $FF $1234")
	require.NoError(t, err)
	require.Equal(t, []uint8{0x01, 0x02, 0xff, 0x34, 0x12}, bytesAt(mem, 0x4000, 5))
}

func TestAssembleImmediateDecimal(t *testing.T) {
	mem, err := Assemble("$4000 LDAI #42 BRK")
	require.NoError(t, err)
	require.Equal(t, uint8(42), mem.Read(0x4001))
}

func TestAssembleUnresolvedLabelIsFatal(t *testing.T) {
	_, err := Assemble("$4000 JMP NOWHERE BRK")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnresolvedLabel))
}

func TestAssembleOffsetOutOfRangeIsFatal(t *testing.T) {
	far := "$4000 BNE FAR\n$4200\nFAR: BRK"
	_, err := Assemble(far)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrOffsetOutOfRange))
}

func TestAssembleMalformedDecimalOutOfRange(t *testing.T) {
	_, err := Assemble("$4000 LDAI #300 BRK")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDecimalOutOfRange))
}

func TestAssembleMalformedHexLiteral(t *testing.T) {
	_, err := Assemble("$4000 LDAI #$2AB BRK")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMalformedHex))
}

func TestAssembleCaseInsensitive(t *testing.T) {
	mem, err := Assemble("$4000 ldai #$2a brk")
	require.NoError(t, err)
	require.Equal(t, []uint8{0xa9, 0x2a, 0x00}, bytesAt(mem, 0x4000, 3))
}

func TestAssembleCommentsIgnored(t *testing.T) {
	mem, err := Assemble("$4000 ; a comment\nNOP ; trailing comment\nBRK")
	require.NoError(t, err)
	require.Equal(t, []uint8{0xea, 0x00}, bytesAt(mem, 0x4000, 2))
}
