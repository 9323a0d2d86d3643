package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const programStart uint16 = 0xdd00

// Aliases used throughout the opcode test tables below.
const (
	ProgramStart = programStart
	StackTop     = StackBase | 0x00ff
	StackBottom  = StackBase | 0x0000
)

// newTestCPU builds a CPU with program loaded at programStart and the
// reset vector pointed at it, then resets into it.
func newTestCPU(program []uint8, bootstrap map[uint16]uint8) *CPU {
	memory := &Memory{}
	memory.Write(RESVectorLow, uint8(programStart&0xff))
	memory.Write(RESVectorHigh, uint8(programStart>>8))

	for i, b := range program {
		memory.Write(programStart+uint16(i), b)
	}
	for address, b := range bootstrap {
		memory.Write(address, b)
	}

	cpu := NewCPU(memory, nil)
	cpu.Reset(programStart)
	return cpu
}

func newUint8(v uint8) *uint8    { return &v }
func newUint16(v uint16) *uint16 { return &v }
func newBool(v bool) *bool       { return &v }

// testCase drives one or more Step calls over a small program and
// asserts the resulting register, flag, and memory state.
type testCase struct {
	name    string
	program []uint8
	memory  map[uint16]uint8
	steps   int

	// cycles, when non-zero, asserts the executed instruction's listed
	// cycle cost rather than driving how many times Step is called.
	cycles uint8

	setupA, expectA   *uint8
	setupX, expectX   *uint8
	setupY, expectY   *uint8
	setupSP, expectSP *uint16
	setupPC, expectPC *uint16

	setupCarry, expectCarry                       *bool
	setupZero, expectZero                         *bool
	setupDecimal, expectDecimal                   *bool
	setupInterruptDisable, expectInterruptDisable *bool
	setupOverflow, expectOverflow                 *bool
	setupNegative, expectNegative                 *bool
	expectBreak, expectReserved                   *bool

	expectMemory map[uint16]uint8
}

func (tc *testCase) run(t *testing.T) {
	t.Helper()

	cpu := newTestCPU(tc.program, tc.memory)

	if tc.setupA != nil {
		cpu.A = *tc.setupA
	}
	if tc.setupX != nil {
		cpu.X = *tc.setupX
	}
	if tc.setupY != nil {
		cpu.Y = *tc.setupY
	}
	if tc.setupSP != nil {
		cpu.SP = uint8(*tc.setupSP & 0xff)
	}
	if tc.setupPC != nil {
		cpu.PC = *tc.setupPC
	}
	if tc.setupCarry != nil {
		cpu.P.Set(FlagCarry, *tc.setupCarry)
	}
	if tc.setupZero != nil {
		cpu.P.Set(FlagZero, *tc.setupZero)
	}
	if tc.setupDecimal != nil {
		cpu.P.Set(FlagDecimal, *tc.setupDecimal)
	}
	if tc.setupInterruptDisable != nil {
		cpu.P.Set(FlagInterruptDisable, *tc.setupInterruptDisable)
	}
	if tc.setupOverflow != nil {
		cpu.P.Set(FlagOverflow, *tc.setupOverflow)
	}
	if tc.setupNegative != nil {
		cpu.P.Set(FlagNegative, *tc.setupNegative)
	}

	var firstInstruction *Instruction
	if tc.cycles != 0 {
		firstInstruction = cpu.table[cpu.Memory.Read(cpu.PC)]
	}

	steps := tc.steps
	if steps == 0 {
		steps = 1
	}
	for i := 0; i < steps; i++ {
		cpu.Step()
	}

	if tc.cycles != 0 {
		require.Equal(t, tc.cycles, firstInstruction.Cycles, "cycles")
	}

	if tc.expectA != nil {
		require.Equal(t, *tc.expectA, cpu.A, "A")
	}
	if tc.expectX != nil {
		require.Equal(t, *tc.expectX, cpu.X, "X")
	}
	if tc.expectY != nil {
		require.Equal(t, *tc.expectY, cpu.Y, "Y")
	}
	if tc.expectSP != nil {
		require.Equal(t, uint8(*tc.expectSP&0xff), cpu.SP, "SP")
	}
	if tc.expectPC != nil {
		require.Equal(t, *tc.expectPC, cpu.PC, "PC")
	}
	if tc.expectCarry != nil {
		require.Equal(t, *tc.expectCarry, cpu.P.Has(FlagCarry), "carry")
	}
	if tc.expectZero != nil {
		require.Equal(t, *tc.expectZero, cpu.P.Has(FlagZero), "zero")
	}
	if tc.expectDecimal != nil {
		require.Equal(t, *tc.expectDecimal, cpu.P.Has(FlagDecimal), "decimal")
	}
	if tc.expectInterruptDisable != nil {
		require.Equal(t, *tc.expectInterruptDisable, cpu.P.Has(FlagInterruptDisable), "interrupt disable")
	}
	if tc.expectOverflow != nil {
		require.Equal(t, *tc.expectOverflow, cpu.P.Has(FlagOverflow), "overflow")
	}
	if tc.expectNegative != nil {
		require.Equal(t, *tc.expectNegative, cpu.P.Has(FlagNegative), "negative")
	}
	if tc.expectBreak != nil {
		require.Equal(t, *tc.expectBreak, cpu.P.Has(FlagBreak), "break")
	}
	if tc.expectReserved != nil {
		require.Equal(t, *tc.expectReserved, cpu.P.Has(FlagReserved), "reserved")
	}
	for address, want := range tc.expectMemory {
		require.Equal(t, want, cpu.Memory.Read(address), "memory at $%04x", address)
	}
}

type testCases []testCase

func (tcs testCases) run(t *testing.T) {
	t.Helper()
	for _, tc := range tcs {
		t.Run(tc.name, tc.run)
	}
}

func TestReset(t *testing.T) {
	cpu := newTestCPU([]uint8{0xea}, nil)
	require.Equal(t, uint8(0), cpu.A)
	require.Equal(t, uint8(0), cpu.X)
	require.Equal(t, uint8(0), cpu.Y)
	require.Equal(t, uint8(0xff), cpu.SP)
	require.Equal(t, Flags(0), cpu.P)
	require.Equal(t, programStart, cpu.PC)
	require.False(t, cpu.Halted)
}

func TestStepAdvancesPCByInstructionLength(t *testing.T) {
	testCases{
		{name: "implied is one byte", program: []uint8{0xea}, expectPC: newUint16(programStart + 1)},
		{name: "immediate is two bytes", program: []uint8{0xa9, 0x05}, expectPC: newUint16(programStart + 2)},
		{name: "absolute is three bytes", program: []uint8{0xad, 0x00, 0x02}, expectPC: newUint16(programStart + 3)},
	}.run(t)
}

func TestStepPanicsOnUnmappedOpcode(t *testing.T) {
	cpu := newTestCPU([]uint8{0x02}, nil)
	require.Panics(t, func() { cpu.Step() })
}

func TestRunHaltsOnBRK(t *testing.T) {
	cpu := newTestCPU([]uint8{0xe8, 0xe8, 0x00}, nil)
	cpu.Run(programStart)
	require.True(t, cpu.Halted)
	require.Equal(t, uint8(2), cpu.X)
	require.True(t, cpu.P.Has(FlagBreak))
}

func TestPushPopRoundTrip(t *testing.T) {
	cpu := newTestCPU(nil, nil)
	cpu.push(0x42)
	require.Equal(t, uint8(0xfe), cpu.SP)
	require.Equal(t, uint8(0x42), cpu.pop())
	require.Equal(t, uint8(0xff), cpu.SP)
}

func TestStackWrapsAroundPageOne(t *testing.T) {
	cpu := newTestCPU(nil, nil)
	cpu.SP = 0x00
	cpu.push(0x99)
	require.Equal(t, uint8(0xff), cpu.SP)
	require.Equal(t, uint8(0x99), cpu.Memory.Read(StackBase+0x00))
}
