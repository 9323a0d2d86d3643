package cpu

import "fmt"

// AddressMode names how an instruction's operand is resolved into an
// effective address or value.
//
// notes borrowed from https://www.masswerk.at/6502/6502_instruction_set.htm
type AddressMode uint8

const (
	// AddrImplied covers implied and accumulator operands: no operand bytes.
	AddrImplied AddressMode = iota
	// AddrImmediate: operand is the literal byte following the opcode.
	AddrImmediate
	// AddrZeroPage: operand is a one-byte address in page 0.
	AddrZeroPage
	// AddrZeroPageX: zero-page operand indexed by X, wrapping within page 0.
	AddrZeroPageX
	// AddrZeroPageY: zero-page operand indexed by Y, wrapping within page 0.
	AddrZeroPageY
	// AddrAbsolute: operand is a two-byte little-endian address.
	AddrAbsolute
	// AddrAbsoluteX: absolute operand indexed by X, tracked for page crossing.
	AddrAbsoluteX
	// AddrAbsoluteY: absolute operand indexed by Y, tracked for page crossing.
	AddrAbsoluteY
	// AddrIndirect: JMP-only — operand is an address holding the target address.
	AddrIndirect
	// AddrIndexedIndirect: (zp,X) — pointer looked up in zero page after adding X.
	AddrIndexedIndirect
	// AddrIndirectIndexed: (zp),Y — pointer looked up in zero page, then indexed by Y.
	AddrIndirectIndexed
	// AddrRelative: signed 8-bit branch offset.
	AddrRelative
)

// Instruction describes one opcode's byte length, timing, and behavior.
// Exec is a method value already bound to the owning CPU — each CPU
// builds its own Table so its executors can close over it directly.
type Instruction struct {
	Mnemonic string
	Len      uint8
	Cycles   uint8
	Desc     string
	Mode     AddressMode
	Exec     func(operand uint16)
}

// Table is the 256-entry opcode dispatch table. Unmapped opcodes hold a
// nil entry; dispatching one is an invariant violation.
type Table [256]*Instruction

func newInstruction(mnemonic string, length, cycles uint8, desc string, mode AddressMode, exec func(uint16)) *Instruction {
	if length == 0 {
		panic(fmt.Sprintf("instruction %s has 0 length", mnemonic))
	}
	if cycles == 0 {
		panic(fmt.Sprintf("instruction %s has 0 cycles", mnemonic))
	}

	return &Instruction{
		Mnemonic: mnemonic,
		Len:      length,
		Cycles:   cycles,
		Desc:     desc,
		Mode:     mode,
		Exec:     exec,
	}
}

// operand resolves the effective address or value for ins's addressing
// mode, assuming cpu.PC still points at the opcode byte. It does not
// advance PC; Step does that after resolving the operand and before
// executing the instruction.
func (cpu *CPU) operand(ins *Instruction) uint16 {
	switch ins.Mode {
	case AddrImplied:
		return 0

	case AddrImmediate:
		return cpu.PC + 1

	case AddrAbsolute:
		lo := cpu.Memory.Read(cpu.PC + 1)
		hi := cpu.Memory.Read(cpu.PC + 2)
		return (uint16(hi) << 8) + uint16(lo)

	case AddrZeroPage:
		return uint16(cpu.Memory.Read(cpu.PC + 1))

	case AddrZeroPageX:
		address := cpu.Memory.Read(cpu.PC + 1)
		address += cpu.X
		return uint16(address)

	case AddrZeroPageY:
		address := cpu.Memory.Read(cpu.PC + 1)
		address += cpu.Y
		return uint16(address)

	case AddrAbsoluteX:
		lo := cpu.Memory.Read(cpu.PC + 1)
		hi := cpu.Memory.Read(cpu.PC + 2)
		base := (uint16(hi) << 8) + uint16(lo)
		effective := base + uint16(cpu.X)
		if crossedPageBoundary(base, effective) {
			cpu.ExtraCycles++
		}
		return effective

	case AddrAbsoluteY:
		lo := cpu.Memory.Read(cpu.PC + 1)
		hi := cpu.Memory.Read(cpu.PC + 2)
		base := (uint16(hi) << 8) + uint16(lo)
		effective := base + uint16(cpu.Y)
		if crossedPageBoundary(base, effective) {
			cpu.ExtraCycles++
		}
		return effective

	case AddrIndexedIndirect:
		address := cpu.Memory.Read(cpu.PC + 1)
		address += cpu.X
		return cpu.Memory.ReadWord(uint16(address))

	case AddrIndirectIndexed:
		address := cpu.Memory.Read(cpu.PC + 1)
		base := cpu.Memory.ReadWord(uint16(address))
		effective := base + uint16(cpu.Y)
		if crossedPageBoundary(base, effective) {
			cpu.ExtraCycles++
		}
		return effective

	case AddrIndirect:
		lo := cpu.Memory.Read(cpu.PC + 1)
		hi := cpu.Memory.Read(cpu.PC + 2)
		address := (uint16(hi) << 8) + uint16(lo)
		return cpu.Memory.ReadWord(address)

	case AddrRelative:
		return uint16(cpu.Memory.Read(cpu.PC + 1))

	default:
		panic("invalid address mode")
	}
}

func crossedPageBoundary(oldAddress, newAddress uint16) bool {
	return oldAddress&0xff00 != newAddress&0xff00
}

// buildTable populates the 256-entry dispatch table with executors bound
// to cpu. Each CPU owns its own table since the executors close over it.
func buildTable(cpu *CPU) *Table {
	var t Table

	add := func(opcode uint8, mnemonic string, length, cycles uint8, desc string, mode AddressMode, exec func(uint16)) {
		t[opcode] = newInstruction(mnemonic, length, cycles, desc, mode, exec)
	}

	// ADC
	add(0x69, "ADC", 2, 2, "add with carry, immediate", AddrImmediate, cpu.adc)
	add(0x65, "ADC", 2, 3, "add with carry, zero page", AddrZeroPage, cpu.adc)
	add(0x75, "ADC", 2, 4, "add with carry, zero page,X", AddrZeroPageX, cpu.adc)
	add(0x6d, "ADC", 3, 4, "add with carry, absolute", AddrAbsolute, cpu.adc)
	add(0x7d, "ADC", 3, 4, "add with carry, absolute,X", AddrAbsoluteX, cpu.adc)
	add(0x79, "ADC", 3, 4, "add with carry, absolute,Y", AddrAbsoluteY, cpu.adc)
	add(0x61, "ADC", 2, 6, "add with carry, (indirect,X)", AddrIndexedIndirect, cpu.adc)
	add(0x71, "ADC", 2, 5, "add with carry, (indirect),Y", AddrIndirectIndexed, cpu.adc)

	// AND
	add(0x29, "AND", 2, 2, "and accumulator, immediate", AddrImmediate, cpu.and)
	add(0x25, "AND", 2, 3, "and accumulator, zero page", AddrZeroPage, cpu.and)
	add(0x35, "AND", 2, 4, "and accumulator, zero page,X", AddrZeroPageX, cpu.and)
	add(0x2d, "AND", 3, 4, "and accumulator, absolute", AddrAbsolute, cpu.and)
	add(0x3d, "AND", 3, 4, "and accumulator, absolute,X", AddrAbsoluteX, cpu.and)
	add(0x39, "AND", 3, 4, "and accumulator, absolute,Y", AddrAbsoluteY, cpu.and)
	add(0x21, "AND", 2, 6, "and accumulator, (indirect,X)", AddrIndexedIndirect, cpu.and)
	add(0x31, "AND", 2, 5, "and accumulator, (indirect),Y", AddrIndirectIndexed, cpu.and)

	// ASL
	add(0x0a, "ASL", 1, 2, "shift left, accumulator", AddrImplied, cpu.aslAcc)
	add(0x06, "ASL", 2, 5, "shift left, zero page", AddrZeroPage, cpu.aslMem)
	add(0x16, "ASL", 2, 6, "shift left, zero page,X", AddrZeroPageX, cpu.aslMem)
	add(0x0e, "ASL", 3, 6, "shift left, absolute", AddrAbsolute, cpu.aslMem)
	add(0x1e, "ASL", 3, 7, "shift left, absolute,X", AddrAbsoluteX, cpu.aslMem)

	// branches
	add(0x90, "BCC", 2, 2, "branch if carry clear", AddrRelative, cpu.bcc)
	add(0xb0, "BCS", 2, 2, "branch if carry set", AddrRelative, cpu.bcs)
	add(0xf0, "BEQ", 2, 2, "branch if zero set", AddrRelative, cpu.beq)
	add(0x30, "BMI", 2, 2, "branch if negative set", AddrRelative, cpu.bmi)
	add(0xd0, "BNE", 2, 2, "branch if zero clear", AddrRelative, cpu.bne)
	add(0x10, "BPL", 2, 2, "branch if negative clear", AddrRelative, cpu.bpl)
	add(0x50, "BVC", 2, 2, "branch if overflow clear", AddrRelative, cpu.bvc)
	add(0x70, "BVS", 2, 2, "branch if overflow set", AddrRelative, cpu.bvs)

	// BIT
	add(0x24, "BIT", 2, 3, "test bits, zero page", AddrZeroPage, cpu.bit)
	add(0x2c, "BIT", 3, 4, "test bits, absolute", AddrAbsolute, cpu.bit)

	// BRK
	add(0x00, "BRK", 1, 7, "force break", AddrImplied, cpu.brk)

	// clear flags
	add(0x18, "CLC", 1, 2, "clear carry", AddrImplied, cpu.clc)
	add(0xd8, "CLD", 1, 2, "clear decimal", AddrImplied, cpu.cld)
	add(0x58, "CLI", 1, 2, "clear interrupt disable", AddrImplied, cpu.cli)
	add(0xb8, "CLV", 1, 2, "clear overflow", AddrImplied, cpu.clv)

	// CMP
	add(0xc9, "CMP", 2, 2, "compare accumulator, immediate", AddrImmediate, cpu.cmp)
	add(0xc5, "CMP", 2, 3, "compare accumulator, zero page", AddrZeroPage, cpu.cmp)
	add(0xd5, "CMP", 2, 4, "compare accumulator, zero page,X", AddrZeroPageX, cpu.cmp)
	add(0xcd, "CMP", 3, 4, "compare accumulator, absolute", AddrAbsolute, cpu.cmp)
	add(0xdd, "CMP", 3, 4, "compare accumulator, absolute,X", AddrAbsoluteX, cpu.cmp)
	add(0xd9, "CMP", 3, 4, "compare accumulator, absolute,Y", AddrAbsoluteY, cpu.cmp)
	add(0xc1, "CMP", 2, 6, "compare accumulator, (indirect,X)", AddrIndexedIndirect, cpu.cmp)
	add(0xd1, "CMP", 2, 5, "compare accumulator, (indirect),Y", AddrIndirectIndexed, cpu.cmp)

	// CPX / CPY
	add(0xe0, "CPX", 2, 2, "compare X, immediate", AddrImmediate, cpu.cpx)
	add(0xe4, "CPX", 2, 3, "compare X, zero page", AddrZeroPage, cpu.cpx)
	add(0xec, "CPX", 3, 4, "compare X, absolute", AddrAbsolute, cpu.cpx)
	add(0xc0, "CPY", 2, 2, "compare Y, immediate", AddrImmediate, cpu.cpy)
	add(0xc4, "CPY", 2, 3, "compare Y, zero page", AddrZeroPage, cpu.cpy)
	add(0xcc, "CPY", 3, 4, "compare Y, absolute", AddrAbsolute, cpu.cpy)

	// DEC / DEX / DEY
	add(0xc6, "DEC", 2, 5, "decrement memory, zero page", AddrZeroPage, cpu.dec)
	add(0xd6, "DEC", 2, 6, "decrement memory, zero page,X", AddrZeroPageX, cpu.dec)
	add(0xce, "DEC", 3, 6, "decrement memory, absolute", AddrAbsolute, cpu.dec)
	add(0xde, "DEC", 3, 7, "decrement memory, absolute,X", AddrAbsoluteX, cpu.dec)
	add(0xca, "DEX", 1, 2, "decrement X", AddrImplied, cpu.dex)
	add(0x88, "DEY", 1, 2, "decrement Y", AddrImplied, cpu.dey)

	// EOR
	add(0x49, "EOR", 2, 2, "exclusive-or accumulator, immediate", AddrImmediate, cpu.eor)
	add(0x45, "EOR", 2, 3, "exclusive-or accumulator, zero page", AddrZeroPage, cpu.eor)
	add(0x55, "EOR", 2, 4, "exclusive-or accumulator, zero page,X", AddrZeroPageX, cpu.eor)
	add(0x4d, "EOR", 3, 4, "exclusive-or accumulator, absolute", AddrAbsolute, cpu.eor)
	add(0x5d, "EOR", 3, 4, "exclusive-or accumulator, absolute,X", AddrAbsoluteX, cpu.eor)
	add(0x59, "EOR", 3, 4, "exclusive-or accumulator, absolute,Y", AddrAbsoluteY, cpu.eor)
	add(0x41, "EOR", 2, 6, "exclusive-or accumulator, (indirect,X)", AddrIndexedIndirect, cpu.eor)
	add(0x51, "EOR", 2, 5, "exclusive-or accumulator, (indirect),Y", AddrIndirectIndexed, cpu.eor)

	// INC / INX / INY
	add(0xe6, "INC", 2, 5, "increment memory, zero page", AddrZeroPage, cpu.inc)
	add(0xf6, "INC", 2, 6, "increment memory, zero page,X", AddrZeroPageX, cpu.inc)
	add(0xee, "INC", 3, 6, "increment memory, absolute", AddrAbsolute, cpu.inc)
	add(0xfe, "INC", 3, 7, "increment memory, absolute,X", AddrAbsoluteX, cpu.inc)
	add(0xe8, "INX", 1, 2, "increment X", AddrImplied, cpu.inx)
	add(0xc8, "INY", 1, 2, "increment Y", AddrImplied, cpu.iny)

	// JMP / JSR
	add(0x4c, "JMP", 3, 3, "jump, absolute", AddrAbsolute, cpu.jmp)
	add(0x6c, "JMP", 3, 5, "jump, indirect", AddrIndirect, cpu.jmp)
	add(0x20, "JSR", 3, 6, "jump to subroutine", AddrAbsolute, cpu.jsr)

	// LDA / LDX / LDY
	add(0xa9, "LDA", 2, 2, "load accumulator, immediate", AddrImmediate, cpu.lda)
	add(0xa5, "LDA", 2, 3, "load accumulator, zero page", AddrZeroPage, cpu.lda)
	add(0xb5, "LDA", 2, 4, "load accumulator, zero page,X", AddrZeroPageX, cpu.lda)
	add(0xad, "LDA", 3, 4, "load accumulator, absolute", AddrAbsolute, cpu.lda)
	add(0xbd, "LDA", 3, 4, "load accumulator, absolute,X", AddrAbsoluteX, cpu.lda)
	add(0xb9, "LDA", 3, 4, "load accumulator, absolute,Y", AddrAbsoluteY, cpu.lda)
	add(0xa1, "LDA", 2, 6, "load accumulator, (indirect,X)", AddrIndexedIndirect, cpu.lda)
	add(0xb1, "LDA", 2, 5, "load accumulator, (indirect),Y", AddrIndirectIndexed, cpu.lda)

	add(0xa2, "LDX", 2, 2, "load X, immediate", AddrImmediate, cpu.ldx)
	add(0xa6, "LDX", 2, 3, "load X, zero page", AddrZeroPage, cpu.ldx)
	add(0xb6, "LDX", 2, 4, "load X, zero page,Y", AddrZeroPageY, cpu.ldx)
	add(0xae, "LDX", 3, 4, "load X, absolute", AddrAbsolute, cpu.ldx)
	add(0xbe, "LDX", 3, 4, "load X, absolute,Y", AddrAbsoluteY, cpu.ldx)

	add(0xa0, "LDY", 2, 2, "load Y, immediate", AddrImmediate, cpu.ldy)
	add(0xa4, "LDY", 2, 3, "load Y, zero page", AddrZeroPage, cpu.ldy)
	add(0xb4, "LDY", 2, 4, "load Y, zero page,X", AddrZeroPageX, cpu.ldy)
	add(0xac, "LDY", 3, 4, "load Y, absolute", AddrAbsolute, cpu.ldy)
	add(0xbc, "LDY", 3, 4, "load Y, absolute,X", AddrAbsoluteX, cpu.ldy)

	// LSR
	add(0x4a, "LSR", 1, 2, "shift right, accumulator", AddrImplied, cpu.lsrAcc)
	add(0x46, "LSR", 2, 5, "shift right, zero page", AddrZeroPage, cpu.lsrMem)
	add(0x56, "LSR", 2, 6, "shift right, zero page,X", AddrZeroPageX, cpu.lsrMem)
	add(0x4e, "LSR", 3, 6, "shift right, absolute", AddrAbsolute, cpu.lsrMem)
	add(0x5e, "LSR", 3, 7, "shift right, absolute,X", AddrAbsoluteX, cpu.lsrMem)

	// NOP
	add(0xea, "NOP", 1, 2, "no operation", AddrImplied, cpu.nop)

	// ORA
	add(0x09, "ORA", 2, 2, "or accumulator, immediate", AddrImmediate, cpu.ora)
	add(0x05, "ORA", 2, 3, "or accumulator, zero page", AddrZeroPage, cpu.ora)
	add(0x15, "ORA", 2, 4, "or accumulator, zero page,X", AddrZeroPageX, cpu.ora)
	add(0x0d, "ORA", 3, 4, "or accumulator, absolute", AddrAbsolute, cpu.ora)
	add(0x1d, "ORA", 3, 4, "or accumulator, absolute,X", AddrAbsoluteX, cpu.ora)
	add(0x19, "ORA", 3, 4, "or accumulator, absolute,Y", AddrAbsoluteY, cpu.ora)
	add(0x01, "ORA", 2, 6, "or accumulator, (indirect,X)", AddrIndexedIndirect, cpu.ora)
	add(0x11, "ORA", 2, 5, "or accumulator, (indirect),Y", AddrIndirectIndexed, cpu.ora)

	// stack ops
	add(0x48, "PHA", 1, 3, "push accumulator", AddrImplied, cpu.pha)
	add(0x08, "PHP", 1, 3, "push processor status", AddrImplied, cpu.php)
	add(0x68, "PLA", 1, 4, "pull accumulator", AddrImplied, cpu.pla)
	add(0x28, "PLP", 1, 4, "pull processor status", AddrImplied, cpu.plp)

	// ROL / ROR
	add(0x2a, "ROL", 1, 2, "rotate left, accumulator", AddrImplied, cpu.rolAcc)
	add(0x26, "ROL", 2, 5, "rotate left, zero page", AddrZeroPage, cpu.rolMem)
	add(0x36, "ROL", 2, 6, "rotate left, zero page,X", AddrZeroPageX, cpu.rolMem)
	add(0x2e, "ROL", 3, 6, "rotate left, absolute", AddrAbsolute, cpu.rolMem)
	add(0x3e, "ROL", 3, 7, "rotate left, absolute,X", AddrAbsoluteX, cpu.rolMem)

	add(0x6a, "ROR", 1, 2, "rotate right, accumulator", AddrImplied, cpu.rorAcc)
	add(0x66, "ROR", 2, 5, "rotate right, zero page", AddrZeroPage, cpu.rorMem)
	add(0x76, "ROR", 2, 6, "rotate right, zero page,X", AddrZeroPageX, cpu.rorMem)
	add(0x6e, "ROR", 3, 6, "rotate right, absolute", AddrAbsolute, cpu.rorMem)
	add(0x7e, "ROR", 3, 7, "rotate right, absolute,X", AddrAbsoluteX, cpu.rorMem)

	// RTI / RTS
	add(0x40, "RTI", 1, 6, "return from interrupt", AddrImplied, cpu.rti)
	add(0x60, "RTS", 1, 6, "return from subroutine", AddrImplied, cpu.rts)

	// SBC
	add(0xe9, "SBC", 2, 2, "subtract with carry, immediate", AddrImmediate, cpu.sbc)
	add(0xe5, "SBC", 2, 3, "subtract with carry, zero page", AddrZeroPage, cpu.sbc)
	add(0xf5, "SBC", 2, 4, "subtract with carry, zero page,X", AddrZeroPageX, cpu.sbc)
	add(0xed, "SBC", 3, 4, "subtract with carry, absolute", AddrAbsolute, cpu.sbc)
	add(0xfd, "SBC", 3, 4, "subtract with carry, absolute,X", AddrAbsoluteX, cpu.sbc)
	add(0xf9, "SBC", 3, 4, "subtract with carry, absolute,Y", AddrAbsoluteY, cpu.sbc)
	add(0xe1, "SBC", 2, 6, "subtract with carry, (indirect,X)", AddrIndexedIndirect, cpu.sbc)
	add(0xf1, "SBC", 2, 5, "subtract with carry, (indirect),Y", AddrIndirectIndexed, cpu.sbc)

	// set flags
	add(0x38, "SEC", 1, 2, "set carry", AddrImplied, cpu.sec)
	add(0xf8, "SED", 1, 2, "set decimal", AddrImplied, cpu.sed)
	add(0x78, "SEI", 1, 2, "set interrupt disable", AddrImplied, cpu.sei)

	// STA / STX / STY
	add(0x85, "STA", 2, 3, "store accumulator, zero page", AddrZeroPage, cpu.sta)
	add(0x95, "STA", 2, 4, "store accumulator, zero page,X", AddrZeroPageX, cpu.sta)
	add(0x8d, "STA", 3, 4, "store accumulator, absolute", AddrAbsolute, cpu.sta)
	add(0x9d, "STA", 3, 5, "store accumulator, absolute,X", AddrAbsoluteX, cpu.sta)
	add(0x99, "STA", 3, 5, "store accumulator, absolute,Y", AddrAbsoluteY, cpu.sta)
	add(0x81, "STA", 2, 6, "store accumulator, (indirect,X)", AddrIndexedIndirect, cpu.sta)
	add(0x91, "STA", 2, 6, "store accumulator, (indirect),Y", AddrIndirectIndexed, cpu.sta)

	add(0x86, "STX", 2, 3, "store X, zero page", AddrZeroPage, cpu.stx)
	add(0x96, "STX", 2, 4, "store X, zero page,Y", AddrZeroPageY, cpu.stx)
	add(0x8e, "STX", 3, 4, "store X, absolute", AddrAbsolute, cpu.stx)

	add(0x84, "STY", 2, 3, "store Y, zero page", AddrZeroPage, cpu.sty)
	add(0x94, "STY", 2, 4, "store Y, zero page,X", AddrZeroPageX, cpu.sty)
	add(0x8c, "STY", 3, 4, "store Y, absolute", AddrAbsolute, cpu.sty)

	// transfers
	add(0xaa, "TAX", 1, 2, "transfer accumulator to X", AddrImplied, cpu.tax)
	add(0xa8, "TAY", 1, 2, "transfer accumulator to Y", AddrImplied, cpu.tay)
	add(0xba, "TSX", 1, 2, "transfer stack pointer to X", AddrImplied, cpu.tsx)
	add(0x8a, "TXA", 1, 2, "transfer X to accumulator", AddrImplied, cpu.txa)
	add(0x9a, "TXS", 1, 2, "transfer X to stack pointer", AddrImplied, cpu.txs)
	add(0x98, "TYA", 1, 2, "transfer Y to accumulator", AddrImplied, cpu.tya)

	return &t
}
