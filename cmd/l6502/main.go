// Command l6502 assembles, loads, runs, and debugs 6502 programs
// against the cpu package, wiring the asm and debugger packages
// together behind a single flag surface.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	cli "gopkg.in/urfave/cli.v2"

	"github.com/sixtwofive/l6502/asm"
	"github.com/sixtwofive/l6502/cpu"
	"github.com/sixtwofive/l6502/debugger"
	"github.com/sixtwofive/l6502/internal/watch"
)

const version = "l6502 1.0.0"

// Exit codes. 0 is success; the rest distinguish assembly failures
// from I/O failures from a failed post-run assertion, so a calling
// script can tell them apart without scraping stderr.
const (
	exitOK = iota
	exitAssertFailed
	_
	_
)

const (
	exitUsage = 64 + iota
	exitAssemblyMalformedHex
	exitAssemblyMalformedDecimal
	exitAssemblyDecimalOutOfRange
	exitAssemblyUnresolvedLabel
	exitAssemblyOffsetOutOfRange
	exitIOError
)

func main() {
	app := &cli.App{
		Name:    "l6502",
		Usage:   "assemble, load, run, and debug 6502 programs",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "l", Usage: "load a raw 64KiB memory image"},
			&cli.StringFlag{Name: "c", Usage: "assemble a source file"},
			&cli.StringFlag{Name: "s", Usage: "after assembling with -c, save the image"},
			&cli.BoolFlag{Name: "r", Usage: "run from $4000 (override with --at)"},
			&cli.StringFlag{Name: "at", Usage: "entry address for -r", Value: "4000"},
			&cli.StringFlag{Name: "d", Usage: "enter the debugger at <hex-addr>"},
			&cli.StringFlag{Name: "a", Usage: "assert <hex-addr>:<hex-val> after running"},
			&cli.BoolFlag{Name: "t", Usage: "trace executed instructions to stderr"},
			&cli.BoolFlag{Name: "p", Usage: "dump state on exit (default set: r,f,m)"},
			&cli.StringFlag{Name: "dump", Usage: "customize -p's dump set, e.g. \"rfsm\""},
			&cli.BoolFlag{Name: "i", Usage: "print the instruction table to stderr and exit"},
			&cli.BoolFlag{Name: "watch", Usage: "open a live single-step terminal view"},
			&cli.Uint64Flag{Name: "rate", Usage: "clock rate in Hz", Value: cpu.DefaultClockHz},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		var coder cli.ExitCoder
		if errors.As(err, &coder) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(coder.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
}

func run(c *cli.Context) error {
	if c.Bool("i") {
		printInstructionTable(os.Stderr)
		return nil
	}

	memory, err := loadMemory(c)
	if err != nil {
		return err
	}

	machine := cpu.NewCPU(memory, cpu.NewTicker(c.Uint64("rate")))

	if err := execute(c, machine); err != nil {
		return err
	}

	if c.Bool("p") || c.IsSet("dump") {
		dumpSet := c.String("dump")
		if dumpSet == "" {
			dumpSet = "rfm"
		}
		dumpState(machine, dumpSet, os.Stderr)
	}

	return checkAssertion(c, machine)
}

// loadMemory assembles -c or loads -l into a fresh Memory, honoring
// -c's precedence when both are given, and writes -s's output image
// if assembly succeeded.
func loadMemory(c *cli.Context) (*cpu.Memory, error) {
	assembleFile := c.String("c")
	loadFile := c.String("l")

	if assembleFile == "" {
		if loadFile == "" {
			return &cpu.Memory{}, nil
		}
		data, err := os.ReadFile(loadFile)
		if err != nil {
			return nil, cli.Exit(err, exitIOError)
		}
		memory := &cpu.Memory{}
		if err := memory.Load(data); err != nil {
			return nil, cli.Exit(err, exitIOError)
		}
		return memory, nil
	}

	if loadFile != "" {
		fmt.Fprintln(os.Stderr, "warning: -l ignored, -c takes precedence")
	}

	source, err := os.ReadFile(assembleFile)
	if err != nil {
		return nil, cli.Exit(err, exitIOError)
	}

	memory, err := asm.Assemble(string(source))
	if err != nil {
		return nil, cli.Exit(err, exitCodeForAssemblyError(err))
	}

	if saveFile := c.String("s"); saveFile != "" {
		if err := os.WriteFile(saveFile, memory.Bytes(), 0o644); err != nil {
			return nil, cli.Exit(err, exitIOError)
		}
	}

	return memory, nil
}

// execute dispatches to the debugger, the watch view, a traced run,
// or a plain run, honoring -d/-r precedence (whichever was given; -r
// wins if both were).
func execute(c *cli.Context, machine *cpu.CPU) error {
	debugAddr := c.String("d")
	runRequested := c.Bool("r")

	if runRequested && debugAddr != "" {
		fmt.Fprintln(os.Stderr, "warning: -d ignored, -r takes precedence")
		debugAddr = ""
	}

	switch {
	case debugAddr != "":
		addr, err := parseHexAddr(debugAddr)
		if err != nil {
			return cli.Exit(err, exitUsage)
		}
		debugger.New(machine, addr, os.Stdin, os.Stdout).Loop()
		return nil

	case runRequested:
		addr, err := parseHexAddr(c.String("at"))
		if err != nil {
			return cli.Exit(err, exitUsage)
		}

		switch {
		case c.Bool("watch"):
			machine.Reset(addr)
			if err := watch.Run(machine); err != nil {
				return cli.Exit(err, exitIOError)
			}
		case c.Bool("t"):
			runTraced(machine, addr, os.Stderr)
		default:
			machine.Run(addr)
		}
	}

	return nil
}

// runTraced steps machine from addr to halt, printing a disassembly
// line and the register file after every instruction.
func runTraced(machine *cpu.CPU, addr uint16, out io.Writer) {
	machine.Reset(addr)
	for !machine.Halted {
		dis := machine.Disassemble(machine.PC)
		machine.Step()
		if dis != nil {
			fmt.Fprintf(out, "%04x %-20s A=%02x X=%02x Y=%02x P=%02x\n",
				dis.Address, dis.Text, machine.A, machine.X, machine.Y, uint8(machine.P))
		}
	}
}

func checkAssertion(c *cli.Context, machine *cpu.CPU) error {
	raw := c.String("a")
	if raw == "" {
		return nil
	}

	addr, want, err := parseAssert(raw)
	if err != nil {
		return cli.Exit(err, exitUsage)
	}

	if got := machine.Memory.Read(addr); got != want {
		return cli.Exit(fmt.Sprintf("assertion failed: mem[$%04x] = $%02x, want $%02x", addr, got, want), exitAssertFailed)
	}
	return nil
}

func dumpState(machine *cpu.CPU, set string, out io.Writer) {
	for _, r := range strings.ToLower(set) {
		switch r {
		case 'r':
			fmt.Fprintf(out, "PC=%04x SP=%02x A=%02x X=%02x Y=%02x P=%02x\n",
				machine.PC, machine.SP, machine.A, machine.X, machine.Y, uint8(machine.P))
		case 'f':
			dumpFlags(machine, out)
		case 's':
			dumpStack(machine, out)
		case 'm':
			dumpMemoryPage(machine, 0, out)
		}
	}
}

func dumpFlags(machine *cpu.CPU, out io.Writer) {
	p := machine.P
	bit := func(f cpu.Flag) int {
		if p.Has(f) {
			return 1
		}
		return 0
	}
	fmt.Fprintf(out, "N=%d V=%d B=%d D=%d I=%d Z=%d C=%d\n",
		bit(cpu.FlagNegative), bit(cpu.FlagOverflow), bit(cpu.FlagBreak),
		bit(cpu.FlagDecimal), bit(cpu.FlagInterruptDisable), bit(cpu.FlagZero),
		bit(cpu.FlagCarry))
}

func dumpStack(machine *cpu.CPU, out io.Writer) {
	fmt.Fprint(out, "stack:")
	for addr := uint16(cpu.StackBase | 0x00ff); addr > cpu.StackBase|uint16(machine.SP); addr-- {
		fmt.Fprintf(out, " %02x", machine.Memory.Read(addr))
	}
	fmt.Fprintln(out)
}

// dumpMemoryPage dumps the 256-byte page starting at page*0x100 —
// zero page by default, the only page with no ambient addressing
// argument to pick a different one from on the command line.
func dumpMemoryPage(machine *cpu.CPU, page uint16, out io.Writer) {
	base := page * 0x100
	for row := uint16(0); row < 0x100; row += 16 {
		fmt.Fprintf(out, "%04x ", base+row)
		for col := uint16(0); col < 16; col++ {
			fmt.Fprintf(out, "%02x ", machine.Memory.Read(base+row+col))
		}
		fmt.Fprintln(out)
	}
}

func printInstructionTable(out io.Writer) {
	machine := cpu.NewCPU(&cpu.Memory{}, nil)
	spew.Fdump(out, machine.Table())
}

func exitCodeForAssemblyError(err error) int {
	switch {
	case errors.Is(err, asm.ErrMalformedHex):
		return exitAssemblyMalformedHex
	case errors.Is(err, asm.ErrMalformedDecimal):
		return exitAssemblyMalformedDecimal
	case errors.Is(err, asm.ErrDecimalOutOfRange):
		return exitAssemblyDecimalOutOfRange
	case errors.Is(err, asm.ErrUnresolvedLabel):
		return exitAssemblyUnresolvedLabel
	case errors.Is(err, asm.ErrOffsetOutOfRange):
		return exitAssemblyOffsetOutOfRange
	default:
		return exitUsage
	}
}

// parseHexAddr accepts a hex address with or without a leading "$" or
// "0x" prefix.
func parseHexAddr(tok string) (uint16, error) {
	tok = strings.TrimPrefix(tok, "$")
	tok = strings.TrimPrefix(strings.ToLower(tok), "0x")
	v, err := strconv.ParseUint(tok, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("malformed address %q: %w", tok, err)
	}
	return uint16(v), nil
}

// parseAssert splits "<hex-addr>:<hex-val>" into its address and
// expected byte.
func parseAssert(raw string) (uint16, uint8, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed assertion %q: want <hex-addr>:<hex-val>", raw)
	}

	addr, err := parseHexAddr(parts[0])
	if err != nil {
		return 0, 0, err
	}

	valTok := strings.TrimPrefix(strings.ToLower(parts[1]), "0x")
	val, err := strconv.ParseUint(valTok, 16, 8)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed assertion value %q: %w", parts[1], err)
	}

	return addr, uint8(val), nil
}
