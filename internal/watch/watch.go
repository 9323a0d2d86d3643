// Package watch implements an optional live terminal view of a
// running CPU, stepping once per keypress and redrawing register and
// flag state — the interactive counterpart to -t's scrolling trace.
package watch

import (
	"fmt"

	term "github.com/nsf/termbox-go"

	"github.com/sixtwofive/l6502/cpu"
)

// Run takes over the terminal and single-steps c one instruction per
// keypress (any key other than q or Ctrl-C), redrawing its state after
// each step, until the
// operator presses Ctrl-C or q, or the CPU halts.
func Run(c *cpu.CPU) error {
	if err := term.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer term.Close()

	draw(c)

	for {
		ev := term.PollEvent()
		if ev.Type != term.EventKey {
			continue
		}

		switch ev.Key {
		case term.KeyCtrlC:
			return nil
		default:
			if ev.Ch == 'q' {
				return nil
			}
		}

		c.Step()
		draw(c)

		if c.Halted {
			return nil
		}
	}
}

func draw(c *cpu.CPU) {
	term.Clear(term.ColorDefault, term.ColorDefault)

	line := fmt.Sprintf("PC=%04x SP=%02x A=%02x X=%02x Y=%02x P=%02x  [ENTER step, q/Ctrl-C quit]",
		c.PC, c.SP, c.A, c.X, c.Y, uint8(c.P))
	drawString(0, 0, line)

	dis := c.Disassemble(c.PC)
	if dis != nil {
		drawString(0, 2, dis.Text)
	}

	term.Flush()
}

func drawString(x, y int, s string) {
	for i, r := range s {
		term.SetCell(x+i, y, r, term.ColorDefault, term.ColorDefault)
	}
}
