package cpu

import "fmt"

// Disassembled is one decoded instruction at a fixed address, suitable
// for the debugger's list/inspect commands.
type Disassembled struct {
	Address  uint16
	Mnemonic string
	Operand  uint16
	Mode     AddressMode
	Text     string
	Len      uint8
}

// Disassemble decodes the instruction at address without executing it
// or mutating CPU state. It returns nil for an unmapped opcode.
func (cpu *CPU) Disassemble(address uint16) *Disassembled {
	opcode := cpu.Memory.Read(address)
	ins := cpu.table[opcode]
	if ins == nil {
		return nil
	}

	var operand uint16
	if ins.Len > 1 {
		operand = cpu.Memory.ReadWord(address + 1)
	}

	text := ins.Mnemonic + " "
	switch ins.Mode {
	case AddrImplied:
		text = ins.Mnemonic
	case AddrImmediate:
		text += fmt.Sprintf("#$%02x", operand&0xff)
	case AddrAbsolute:
		text += fmt.Sprintf("$%04x", operand)
	case AddrZeroPage:
		text += fmt.Sprintf("$%02x", operand&0xff)
	case AddrAbsoluteX:
		text += fmt.Sprintf("$%04x,X", operand)
	case AddrAbsoluteY:
		text += fmt.Sprintf("$%04x,Y", operand)
	case AddrZeroPageX:
		text += fmt.Sprintf("$%02x,X", operand&0xff)
	case AddrZeroPageY:
		text += fmt.Sprintf("$%02x,Y", operand&0xff)
	case AddrIndirect:
		text += fmt.Sprintf("($%04x)", operand)
	case AddrIndexedIndirect:
		text += fmt.Sprintf("($%02x,X)", operand&0xff)
	case AddrIndirectIndexed:
		text += fmt.Sprintf("($%02x),Y", operand&0xff)
	case AddrRelative:
		target := address + 2 + uint16(int8(operand&0xff))
		text += fmt.Sprintf("$%04x", target)
	}

	return &Disassembled{
		Address:  address,
		Mnemonic: ins.Mnemonic,
		Operand:  operand,
		Mode:     ins.Mode,
		Text:     text,
		Len:      ins.Len,
	}
}
