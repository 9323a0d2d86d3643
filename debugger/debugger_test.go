package debugger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sixtwofive/l6502/cpu"
)

const entry uint16 = 0x4000

func newTestCPU(program []uint8) *cpu.CPU {
	memory := &cpu.Memory{}
	memory.Write(cpu.RESVectorLow, uint8(entry&0xff))
	memory.Write(cpu.RESVectorHigh, uint8(entry>>8))
	for i, b := range program {
		memory.Write(entry+uint16(i), b)
	}
	return cpu.NewCPU(memory, nil)
}

func runDebugger(c *cpu.CPU, commands string) string {
	var out bytes.Buffer
	d := New(c, entry, strings.NewReader(commands), &out)
	d.Loop()
	return out.String()
}

func TestStepAdvancesPC(t *testing.T) {
	c := newTestCPU([]uint8{0xe8, 0xe8, 0x00}) // INX INX BRK
	out := runDebugger(c, "step\nstep\nregisters\nexit\n")
	require.Contains(t, out, "PC=4002")
	require.Contains(t, out, "X=02")
}

func TestGoRunsUntilBRK(t *testing.T) {
	c := newTestCPU([]uint8{0xe8, 0xe8, 0x00})
	out := runDebugger(c, "go\nregisters\nexit\n")
	require.Contains(t, out, "X=02")
}

func TestBreakpointStopsGo(t *testing.T) {
	c := newTestCPU([]uint8{0xe8, 0xe8, 0xe8, 0x00})
	out := runDebugger(c, "break 4002\ngo\nregisters\nexit\n")
	require.Contains(t, out, "breakpoint hit at $4002")
	require.Contains(t, out, "X=02")
}

func TestAssertReportsMemory(t *testing.T) {
	c := newTestCPU([]uint8{0xa9, 0x2a, 0x8d, 0x00, 0x02, 0x00}) // LDA #$2A; STA $0200; BRK
	out := runDebugger(c, "run\ngo\nassert 0200 2a\nexit\n")
	require.Contains(t, out, "true")
}

func TestUnknownCommandReportsDiagnostic(t *testing.T) {
	c := newTestCPU([]uint8{0x00})
	out := runDebugger(c, "bogus\nexit\n")
	require.Contains(t, out, "unknown command: bogus")
}

func TestBreakListsAndClears(t *testing.T) {
	c := newTestCPU([]uint8{0x00})
	out := runDebugger(c, "break 4010\nbreak\nclear 4010\nbreak\nexit\n")
	require.Contains(t, out, "4010")
	require.Equal(t, 1, strings.Count(out, "4010"))
}

func TestFlagsCommand(t *testing.T) {
	c := newTestCPU([]uint8{0x00})
	out := runDebugger(c, "flags\nexit\n")
	require.Contains(t, out, "N=0")
	require.Contains(t, out, "C=0")
}

func TestHelpListsCommands(t *testing.T) {
	c := newTestCPU([]uint8{0x00})
	out := runDebugger(c, "help\nexit\n")
	require.Contains(t, out, "step (or s)")
}
