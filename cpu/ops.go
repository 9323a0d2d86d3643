package cpu

// adc adds memory plus carry into the accumulator: A + M + C -> A, C.
func (cpu *CPU) adc(operand uint16) {
	var c uint8
	if cpu.P.Has(FlagCarry) {
		c = 1
	}

	a := cpu.A
	m := cpu.Memory.Read(operand)

	sum := uint16(a) + uint16(m) + uint16(c)
	cpu.A = uint8(sum)

	cpu.P.Set(FlagCarry, sum > 0xff)
	cpu.testAndSetNZ(cpu.A)
	// signed overflow: both operands share a sign the result doesn't.
	cpu.P.Set(FlagOverflow, (a^cpu.A)&(m^cpu.A)&0x80 != 0)
}

// and ANDs memory into the accumulator.
func (cpu *CPU) and(operand uint16) {
	cpu.A &= cpu.Memory.Read(operand)
	cpu.testAndSetNZ(cpu.A)
}

// aslAcc shifts the accumulator left one bit.
func (cpu *CPU) aslAcc(operand uint16) {
	shifted := uint16(cpu.A) << 1
	cpu.A = uint8(shifted)
	cpu.testAndSetNZ(cpu.A)
	cpu.P.Set(FlagCarry, shifted > 0xff)
}

// aslMem shifts the byte at operand left one bit.
func (cpu *CPU) aslMem(operand uint16) {
	value := cpu.Memory.Read(operand)
	shifted := uint16(value) << 1
	cpu.Memory.Write(operand, uint8(shifted))
	cpu.testAndSetNZ(uint8(shifted))
	cpu.P.Set(FlagCarry, shifted > 0xff)
}

// bcc branches if the carry flag is clear.
func (cpu *CPU) bcc(operand uint16) {
	if cpu.P.Has(FlagCarry) {
		return
	}
	cpu.branch(operand)
}

// bcs branches if the carry flag is set.
func (cpu *CPU) bcs(operand uint16) {
	if !cpu.P.Has(FlagCarry) {
		return
	}
	cpu.branch(operand)
}

// beq branches if the zero flag is set.
func (cpu *CPU) beq(operand uint16) {
	if !cpu.P.Has(FlagZero) {
		return
	}
	cpu.branch(operand)
}

// bit tests accumulator bits against memory: Z from A&M, N/V from bits 7/6 of M.
func (cpu *CPU) bit(operand uint16) {
	value := cpu.Memory.Read(operand)
	cpu.testAndSetZero(cpu.A & value)
	cpu.P.Set(FlagNegative, value&0x80 != 0)
	cpu.P.Set(FlagOverflow, value&0x40 != 0)
}

// branch applies a signed 8-bit displacement to PC, tracking the extra
// cycle always taken and the additional cycle for crossing a page.
func (cpu *CPU) branch(offset uint16) {
	begin := cpu.PC

	displacement := int8(uint8(offset))
	cpu.PC = uint16(int32(cpu.PC) + int32(displacement))

	cpu.ExtraCycles++
	if begin&0xff00 != cpu.PC&0xff00 {
		cpu.ExtraCycles++
	}
}

// bmi branches if the negative flag is set.
func (cpu *CPU) bmi(operand uint16) {
	if !cpu.P.Has(FlagNegative) {
		return
	}
	cpu.branch(operand)
}

// bne branches if the zero flag is clear.
func (cpu *CPU) bne(operand uint16) {
	if cpu.P.Has(FlagZero) {
		return
	}
	cpu.branch(operand)
}

// bpl branches if the negative flag is clear.
func (cpu *CPU) bpl(operand uint16) {
	if cpu.P.Has(FlagNegative) {
		return
	}
	cpu.branch(operand)
}

// brk sets the break flag and halts Run. It does not push PC/P or vector
// through IRQ — this emulator never delivers interrupts, so BRK is a
// program-controlled stop rather than a real interrupt entry.
func (cpu *CPU) brk(operand uint16) {
	cpu.P.Set(FlagBreak, true)
	cpu.Halted = true
}

// bvc branches if the overflow flag is clear.
func (cpu *CPU) bvc(operand uint16) {
	if cpu.P.Has(FlagOverflow) {
		return
	}
	cpu.branch(operand)
}

// bvs branches if the overflow flag is set.
func (cpu *CPU) bvs(operand uint16) {
	if !cpu.P.Has(FlagOverflow) {
		return
	}
	cpu.branch(operand)
}

func (cpu *CPU) clc(operand uint16) { cpu.P.Set(FlagCarry, false) }
func (cpu *CPU) cld(operand uint16) { cpu.P.Set(FlagDecimal, false) }
func (cpu *CPU) cli(operand uint16) { cpu.P.Set(FlagInterruptDisable, false) }
func (cpu *CPU) clv(operand uint16) { cpu.P.Set(FlagOverflow, false) }

// compare is the shared unsigned compare behind CMP/CPX/CPY: carry is
// set when register >= memory, and N/Z come from the unsigned difference.
func (cpu *CPU) compare(register, value uint8) {
	diff := register - value
	cpu.P.Set(FlagCarry, register >= value)
	cpu.testAndSetNZ(diff)
}

func (cpu *CPU) cmp(operand uint16) { cpu.compare(cpu.A, cpu.Memory.Read(operand)) }
func (cpu *CPU) cpx(operand uint16) { cpu.compare(cpu.X, cpu.Memory.Read(operand)) }
func (cpu *CPU) cpy(operand uint16) { cpu.compare(cpu.Y, cpu.Memory.Read(operand)) }

// dec decrements the byte at operand.
func (cpu *CPU) dec(operand uint16) {
	value := cpu.Memory.Read(operand) - 1
	cpu.Memory.Write(operand, value)
	cpu.testAndSetNZ(value)
}

func (cpu *CPU) dex(operand uint16) {
	cpu.X--
	cpu.testAndSetNZ(cpu.X)
}

func (cpu *CPU) dey(operand uint16) {
	cpu.Y--
	cpu.testAndSetNZ(cpu.Y)
}

// eor exclusive-ORs memory into the accumulator.
func (cpu *CPU) eor(operand uint16) {
	cpu.A ^= cpu.Memory.Read(operand)
	cpu.testAndSetNZ(cpu.A)
}

// inc increments the byte at operand.
func (cpu *CPU) inc(operand uint16) {
	value := cpu.Memory.Read(operand) + 1
	cpu.Memory.Write(operand, value)
	cpu.testAndSetNZ(value)
}

func (cpu *CPU) inx(operand uint16) {
	cpu.X++
	cpu.testAndSetNZ(cpu.X)
}

func (cpu *CPU) iny(operand uint16) {
	cpu.Y++
	cpu.testAndSetNZ(cpu.Y)
}

// jmp sets PC to operand unconditionally.
func (cpu *CPU) jmp(operand uint16) {
	cpu.PC = operand
}

// jsr pushes the address of the last byte of the JSR instruction, then
// jumps. RTS adds one back when it pops.
func (cpu *CPU) jsr(operand uint16) {
	cpu.pushWord(cpu.PC - 1)
	cpu.PC = operand
}

func (cpu *CPU) lda(operand uint16) {
	cpu.A = cpu.Memory.Read(operand)
	cpu.testAndSetNZ(cpu.A)
}

func (cpu *CPU) ldx(operand uint16) {
	cpu.X = cpu.Memory.Read(operand)
	cpu.testAndSetNZ(cpu.X)
}

func (cpu *CPU) ldy(operand uint16) {
	cpu.Y = cpu.Memory.Read(operand)
	cpu.testAndSetNZ(cpu.Y)
}

// lsrAcc shifts the accumulator right one bit, clearing N.
func (cpu *CPU) lsrAcc(operand uint16) {
	carry := cpu.A&0x01 != 0
	cpu.A >>= 1
	cpu.P.Set(FlagNegative, false)
	cpu.testAndSetZero(cpu.A)
	cpu.P.Set(FlagCarry, carry)
}

// lsrMem shifts the byte at operand right one bit, clearing N.
func (cpu *CPU) lsrMem(operand uint16) {
	value := cpu.Memory.Read(operand)
	carry := value&0x01 != 0
	shifted := value >> 1
	cpu.Memory.Write(operand, shifted)
	cpu.P.Set(FlagNegative, false)
	cpu.testAndSetZero(shifted)
	cpu.P.Set(FlagCarry, carry)
}

func (cpu *CPU) nop(operand uint16) {}

// ora ORs memory into the accumulator.
func (cpu *CPU) ora(operand uint16) {
	cpu.A |= cpu.Memory.Read(operand)
	cpu.testAndSetNZ(cpu.A)
}

func (cpu *CPU) pha(operand uint16) { cpu.push(cpu.A) }

// php pushes P with the break and reserved bits forced set, per the
// documented PHP push behavior.
func (cpu *CPU) php(operand uint16) {
	cpu.push(uint8(cpu.P) | uint8(FlagBreak) | uint8(FlagReserved))
}

func (cpu *CPU) pla(operand uint16) {
	cpu.A = cpu.pop()
	cpu.testAndSetNZ(cpu.A)
}

// plp restores P from the stack. The reserved bit always reads 1.
func (cpu *CPU) plp(operand uint16) {
	cpu.P = Flags(cpu.pop())
	cpu.P.Set(FlagReserved, true)
}

// rolAcc rotates the accumulator left through carry.
func (cpu *CPU) rolAcc(operand uint16) {
	var c uint8
	if cpu.P.Has(FlagCarry) {
		c = 1
	}
	carryOut := cpu.A&0x80 != 0
	cpu.A = (cpu.A << 1) | c
	cpu.P.Set(FlagCarry, carryOut)
	cpu.testAndSetNZ(cpu.A)
}

// rolMem rotates the byte at operand left through carry.
func (cpu *CPU) rolMem(operand uint16) {
	value := cpu.Memory.Read(operand)
	var c uint8
	if cpu.P.Has(FlagCarry) {
		c = 1
	}
	rotated := (value << 1) | c
	cpu.Memory.Write(operand, rotated)
	cpu.P.Set(FlagCarry, value&0x80 != 0)
	cpu.testAndSetNZ(rotated)
}

// rorAcc rotates the accumulator right through carry.
func (cpu *CPU) rorAcc(operand uint16) {
	var c uint8
	if cpu.P.Has(FlagCarry) {
		c = 0x80
	}
	carryOut := cpu.A&0x01 != 0
	cpu.A = (cpu.A >> 1) | c
	cpu.P.Set(FlagCarry, carryOut)
	cpu.testAndSetNZ(cpu.A)
}

// rorMem rotates the byte at operand right through carry.
func (cpu *CPU) rorMem(operand uint16) {
	value := cpu.Memory.Read(operand)
	var c uint8
	if cpu.P.Has(FlagCarry) {
		c = 0x80
	}
	rotated := (value >> 1) | c
	cpu.Memory.Write(operand, rotated)
	cpu.P.Set(FlagCarry, value&0x01 != 0)
	cpu.testAndSetNZ(rotated)
}

// rti restores P and PC from the stack, clearing the break flag since
// this is a return, not another interrupt entry.
func (cpu *CPU) rti(operand uint16) {
	cpu.P = Flags(cpu.pop())
	cpu.P.Set(FlagReserved, true)
	cpu.P.Set(FlagBreak, false)
	cpu.PC = cpu.popWord()
}

// rts pops the return address and advances past the JSR operand.
func (cpu *CPU) rts(operand uint16) {
	cpu.PC = cpu.popWord() + 1
}

// sbc subtracts memory and the borrow from the accumulator, expressed
// as A + ^M + C so it shares ADC's carry/overflow math.
func (cpu *CPU) sbc(operand uint16) {
	var c uint8
	if cpu.P.Has(FlagCarry) {
		c = 1
	}

	a := cpu.A
	m := cpu.Memory.Read(operand)
	inverted := ^m

	sum := uint16(a) + uint16(inverted) + uint16(c)
	cpu.A = uint8(sum)

	cpu.P.Set(FlagCarry, sum > 0xff)
	cpu.testAndSetNZ(cpu.A)
	cpu.P.Set(FlagOverflow, (a^cpu.A)&(inverted^cpu.A)&0x80 != 0)
}

func (cpu *CPU) sec(operand uint16) { cpu.P.Set(FlagCarry, true) }
func (cpu *CPU) sed(operand uint16) { cpu.P.Set(FlagDecimal, true) }
func (cpu *CPU) sei(operand uint16) { cpu.P.Set(FlagInterruptDisable, true) }

func (cpu *CPU) sta(operand uint16) { cpu.Memory.Write(operand, cpu.A) }
func (cpu *CPU) stx(operand uint16) { cpu.Memory.Write(operand, cpu.X) }
func (cpu *CPU) sty(operand uint16) { cpu.Memory.Write(operand, cpu.Y) }

func (cpu *CPU) tax(operand uint16) {
	cpu.X = cpu.A
	cpu.testAndSetNZ(cpu.X)
}

func (cpu *CPU) tay(operand uint16) {
	cpu.Y = cpu.A
	cpu.testAndSetNZ(cpu.Y)
}

func (cpu *CPU) tsx(operand uint16) {
	cpu.X = cpu.SP
	cpu.testAndSetNZ(cpu.X)
}

func (cpu *CPU) txa(operand uint16) {
	cpu.A = cpu.X
	cpu.testAndSetNZ(cpu.A)
}

func (cpu *CPU) txs(operand uint16) {
	cpu.SP = cpu.X
}

func (cpu *CPU) tya(operand uint16) {
	cpu.A = cpu.Y
	cpu.testAndSetNZ(cpu.A)
}
