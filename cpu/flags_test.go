package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlagsHasAndSet(t *testing.T) {
	var p Flags

	require.False(t, p.Has(FlagCarry))
	p.Set(FlagCarry, true)
	require.True(t, p.Has(FlagCarry))
	require.False(t, p.Has(FlagZero))

	p.Set(FlagCarry, false)
	require.False(t, p.Has(FlagCarry))
}

func TestFlagsSetDoesNotDisturbOtherBits(t *testing.T) {
	var p Flags
	p.Set(FlagCarry, true)
	p.Set(FlagNegative, true)
	p.Set(FlagZero, true)

	p.Set(FlagZero, false)

	require.True(t, p.Has(FlagCarry))
	require.True(t, p.Has(FlagNegative))
	require.False(t, p.Has(FlagZero))
}

func TestTestAndSetNZ(t *testing.T) {
	cpu := newTestCPU(nil, nil)

	cpu.testAndSetNZ(0x00)
	require.True(t, cpu.P.Has(FlagZero))
	require.False(t, cpu.P.Has(FlagNegative))

	cpu.testAndSetNZ(0x80)
	require.False(t, cpu.P.Has(FlagZero))
	require.True(t, cpu.P.Has(FlagNegative))

	cpu.testAndSetNZ(0x01)
	require.False(t, cpu.P.Has(FlagZero))
	require.False(t, cpu.P.Has(FlagNegative))
}
