package asm

// mnemonics maps a source-level opcode symbol to its encoded byte. Unlike
// the disassembler's display mnemonics (cpu.Instruction.Mnemonic, one name
// shared across every addressing mode of an operation), each entry here
// names exactly one opcode: the addressing mode is baked into the symbol
// itself, following the convention of suffixing the base operation with
// I (immediate), Z/ZX/ZY (zero page, indexed), A/X/Y (absolute, indexed),
// IX/IY (indexed indirect / indirect indexed). Bare names with no suffix
// are implied/accumulator forms, the sole addressing mode an operation
// has (branches, JSR), or the absolute form of BIT and JMP.
var mnemonics = map[string]uint8{
	// implied / accumulator
	"ASL": 0x0a, "LSR": 0x4a, "ROL": 0x2a, "ROR": 0x6a,
	"BRK": 0x00,
	"CLC": 0x18, "CLD": 0xd8, "CLI": 0x58, "CLV": 0xb8,
	"DEX": 0xca, "DEY": 0x88, "INX": 0xe8, "INY": 0xc8,
	"NOP": 0xea,
	"PHA": 0x48, "PHP": 0x08, "PLA": 0x68, "PLP": 0x28,
	"RTI": 0x40, "RTS": 0x60,
	"SEC": 0x38, "SED": 0xf8, "SEI": 0x78,
	"TAX": 0xaa, "TAY": 0xa8, "TSX": 0xba, "TXA": 0x8a, "TXS": 0x9a, "TYA": 0x98,

	// branches (relative) and jumps/calls (absolute, or indirect for JMPI)
	"BCC": 0x90, "BCS": 0xb0, "BEQ": 0xf0, "BMI": 0x30,
	"BNE": 0xd0, "BPL": 0x10, "BVC": 0x50, "BVS": 0x70,
	"JMP": 0x4c, "JMPI": 0x6c, "JSR": 0x20,

	// immediate
	"ADCI": 0x69, "ANDI": 0x29, "CMPI": 0xc9, "CPXI": 0xe0, "CPYI": 0xc0,
	"EORI": 0x49, "LDAI": 0xa9, "LDXI": 0xa2, "LDYI": 0xa0, "ORAI": 0x09,
	"SBCI": 0xe9,

	// zero page
	"ADCZ": 0x65, "ANDZ": 0x25, "ASLZ": 0x06, "BITZ": 0x24, "CMPZ": 0xc5,
	"CPXZ": 0xe4, "CPYZ": 0xc4, "DECZ": 0xc6, "EORZ": 0x45, "INCZ": 0xe6,
	"LDAZ": 0xa5, "LDXZ": 0xa6, "LDYZ": 0xa4, "LSRZ": 0x46, "ORAZ": 0x05,
	"ROLZ": 0x26, "RORZ": 0x66, "SBCZ": 0xe5, "STAZ": 0x85, "STXZ": 0x86,
	"STYZ": 0x84,

	// zero page,X / zero page,Y
	"ADCZX": 0x75, "ANDZX": 0x35, "ASLZX": 0x16, "CMPZX": 0xd5, "DECZX": 0xd6,
	"EORZX": 0x55, "INCZX": 0xf6, "LDAZX": 0xb5, "LDYZX": 0xb4, "LSRZX": 0x56,
	"ORAZX": 0x15, "ROLZX": 0x36, "RORZX": 0x76, "SBCZX": 0xf5, "STAZX": 0x95,
	"STYZX": 0x94,
	"LDXZY": 0xb6, "STXZY": 0x96,

	// absolute
	"ADCA": 0x6d, "ANDA": 0x2d, "ASLA": 0x0e, "BIT": 0x2c, "CMPA": 0xcd,
	"CPXA": 0xec, "CPYA": 0xcc, "DECA": 0xce, "EORA": 0x4d, "INCA": 0xee,
	"LDAA": 0xad, "LDXA": 0xae, "LDYA": 0xac, "LSRA": 0x4e, "ORAA": 0x0d,
	"ROLA": 0x2e, "RORA": 0x6e, "SBCA": 0xed, "STAA": 0x8d, "STXA": 0x8e,
	"STYA": 0x8c,

	// absolute,X / absolute,Y
	"ADCX": 0x7d, "ANDX": 0x3d, "ASLX": 0x1e, "CMPX": 0xdd, "DECX": 0xde,
	"EORX": 0x5d, "INCX": 0xfe, "LDAX": 0xbd, "LDYX": 0xbc, "LSRX": 0x5e,
	"ORAX": 0x1d, "ROLX": 0x3e, "RORX": 0x7e, "SBCX": 0xfd, "STAX": 0x9d,
	"ADCY": 0x79, "ANDY": 0x39, "CMPY": 0xd9, "EORY": 0x59, "LDAY": 0xb9,
	"LDXY": 0xbe, "ORAY": 0x19, "SBCY": 0xf9, "STAY": 0x99,

	// (zero page,X) / (zero page),Y
	"ADCIX": 0x61, "ANDIX": 0x21, "CMPIX": 0xc1, "EORIX": 0x41, "LDAIX": 0xa1,
	"ORAIX": 0x01, "SBCIX": 0xe1, "STAIX": 0x81,
	"ADCIY": 0x71, "ANDIY": 0x31, "CMPIY": 0xd1, "EORIY": 0x51, "LDAIY": 0xb1,
	"ORAIY": 0x11, "SBCIY": 0xf1, "STAIY": 0x91,
}

// branchMnemonics are the relative-branch opcodes: their operand, however
// it is written in source, always resolves to a signed one-byte
// displacement rather than a raw literal.
var branchMnemonics = map[string]bool{
	"BCC": true, "BCS": true, "BEQ": true, "BMI": true,
	"BNE": true, "BPL": true, "BVC": true, "BVS": true,
}

// isJumpMnemonic reports whether name is an absolute jump/call — the
// mnemonics whose pending label references patch a two-byte absolute
// address rather than a one-byte relative offset.
func isJumpMnemonic(name string) bool {
	return len(name) > 0 && name[0] == 'J'
}
