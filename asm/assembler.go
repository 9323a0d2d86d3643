// Package asm implements the two-pass assembler: a forward pass over
// source lines that emits bytes directly into a memory image while
// queuing every label reference it meets, followed by a resolution
// pass that patches each queued reference once every label has a
// known address.
package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sixtwofive/l6502/cpu"
)

// reference records everything the resolution pass needs about one
// queued label use: which source line it came from (for diagnostics)
// and whether it patches a two-byte absolute address (jumps/calls) or
// a one-byte signed displacement (branches).
type reference struct {
	line   int
	isJump bool
}

// Assemble turns source into a 64 KiB memory image. Labels may be
// referenced before they are defined; every reference is resolved
// against the complete label table built during the forward pass.
func Assemble(source string) (*cpu.Memory, error) {
	mem := &cpu.Memory{}
	symbols := NewSymbolTable()
	pending := make(map[uint16]reference)

	var ip uint16
	var lastMnemonic string

	for lineNo, raw := range strings.Split(source, "\n") {
		line := lineNo + 1
		tokens := tokenize(raw)

		for i := 0; i < len(tokens); i++ {
			tok := tokens[i]
			first := i == 0

			switch {
			case strings.HasPrefix(tok, "$"):
				digits := tok[1:]
				if len(digits) == 0 || len(digits) > 4 {
					return nil, lineError(line, ErrMalformedHex, tok)
				}
				value, err := strconv.ParseUint(digits, 16, 32)
				if err != nil {
					return nil, lineError(line, ErrMalformedHex, tok)
				}

				switch {
				case first:
					ip = uint16(value)

				case branchMnemonics[lastMnemonic]:
					if perr := patchRelative(mem, ip, uint16(value)); perr != nil {
						return nil, lineError(line, ErrOffsetOutOfRange, tok)
					}
					ip++

				case len(digits) <= 2:
					mem.Write(ip, uint8(value))
					ip++

				default:
					mem.Write(ip, uint8(value&0xff))
					mem.Write(ip+1, uint8(value>>8))
					ip += 2
				}

			case strings.HasPrefix(tok, "#$"):
				digits := tok[2:]
				if len(digits) == 0 || len(digits) > 2 {
					return nil, lineError(line, ErrMalformedHex, tok)
				}
				value, err := strconv.ParseUint(digits, 16, 16)
				if err != nil {
					return nil, lineError(line, ErrMalformedHex, tok)
				}
				mem.Write(ip, uint8(value))
				ip++

			case strings.HasPrefix(tok, "#"):
				digits := tok[1:]
				value, err := strconv.ParseUint(digits, 10, 32)
				if err != nil {
					return nil, lineError(line, ErrMalformedDecimal, tok)
				}
				if value > 255 {
					return nil, lineError(line, ErrDecimalOutOfRange, tok)
				}
				mem.Write(ip, uint8(value))
				ip++

			case tok == ".DATA":
				for _, dtok := range tokens[i+1:] {
					digits := strings.TrimPrefix(dtok, "$")
					if len(digits) == 0 || len(digits) > 4 {
						return nil, lineError(line, ErrMalformedHex, dtok)
					}
					value, err := strconv.ParseUint(digits, 16, 32)
					if err != nil {
						return nil, lineError(line, ErrMalformedHex, dtok)
					}
					if len(digits) <= 2 {
						mem.Write(ip, uint8(value))
						ip++
					} else {
						mem.Write(ip, uint8(value&0xff))
						mem.Write(ip+1, uint8(value>>8))
						ip += 2
					}
				}
				i = len(tokens)

			default:
				if opcode, ok := mnemonics[tok]; ok {
					mem.Write(ip, opcode)
					ip++
					lastMnemonic = tok
					continue
				}

				name := strings.TrimSuffix(tok, ":")
				if first {
					symbols.Define(name, ip)
					continue
				}

				jump := isJumpMnemonic(lastMnemonic)
				symbols.Reference(ip, name)
				pending[ip] = reference{line: line, isJump: jump}
				if jump {
					ip += 2
				} else {
					ip++
				}
			}
		}
	}

	if err := resolve(mem, symbols, pending); err != nil {
		return nil, err
	}
	return mem, nil
}

// patchRelative writes the signed one-byte displacement from patchAddr
// (the address of the operand byte itself) to target.
func patchRelative(mem *cpu.Memory, patchAddr, target uint16) error {
	offset := int(target) - int(patchAddr+1)
	if offset < -128 || offset > 127 {
		return ErrOffsetOutOfRange
	}
	mem.Write(patchAddr, uint8(int8(offset)))
	return nil
}

func patchAbsolute(mem *cpu.Memory, patchAddr, target uint16) {
	mem.Write(patchAddr, uint8(target&0xff))
	mem.Write(patchAddr+1, uint8(target>>8))
}

// resolve patches every queued label reference once the forward pass
// has seen every definition. No pending reference survives success.
func resolve(mem *cpu.Memory, symbols *SymbolTable, pending map[uint16]reference) error {
	for patchAddr, name := range symbols.PendingBranches {
		ref := pending[patchAddr]

		target, ok := symbols.Labels[name]
		if !ok {
			return lineError(ref.line, ErrUnresolvedLabel, name)
		}

		if ref.isJump {
			patchAbsolute(mem, patchAddr, target)
			continue
		}

		if err := patchRelative(mem, patchAddr, target); err != nil {
			return lineError(ref.line, ErrOffsetOutOfRange, fmt.Sprintf("%s ($%04x)", name, target))
		}
	}
	return nil
}

// tokenize upper-cases a line and splits it on whitespace, truncating
// at the first token that begins a comment.
func tokenize(line string) []string {
	fields := strings.Fields(strings.ToUpper(line))
	for i, f := range fields {
		if strings.HasPrefix(f, ";") {
			return fields[:i]
		}
	}
	return fields
}
