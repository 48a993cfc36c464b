package cpu6510

import "fmt"

// disasmEntry names one opcode's mnemonic and operand shape for the
// monitor's disassembler (see internal/monitor).
type disasmEntry struct {
	mnemonic string
	mode     AddrMode
}

var disasmTable map[byte]disasmEntry

func init() {
	d := make(map[byte]disasmEntry, 256)
	add := func(op byte, mnem string, mode AddrMode) { d[op] = disasmEntry{mnem, mode} }

	add(0xA9, "LDA", AddrImmediate)
	add(0xA5, "LDA", AddrZeroPage)
	add(0xB5, "LDA", AddrZeroPageX)
	add(0xAD, "LDA", AddrAbsolute)
	add(0xBD, "LDA", AddrAbsoluteX)
	add(0xB9, "LDA", AddrAbsoluteY)
	add(0xA1, "LDA", AddrIndirectX)
	add(0xB1, "LDA", AddrIndirectY)
	add(0xA2, "LDX", AddrImmediate)
	add(0xA6, "LDX", AddrZeroPage)
	add(0xB6, "LDX", AddrZeroPageY)
	add(0xAE, "LDX", AddrAbsolute)
	add(0xBE, "LDX", AddrAbsoluteY)
	add(0xA0, "LDY", AddrImmediate)
	add(0xA4, "LDY", AddrZeroPage)
	add(0xB4, "LDY", AddrZeroPageX)
	add(0xAC, "LDY", AddrAbsolute)
	add(0xBC, "LDY", AddrAbsoluteX)
	add(0x85, "STA", AddrZeroPage)
	add(0x95, "STA", AddrZeroPageX)
	add(0x8D, "STA", AddrAbsolute)
	add(0x9D, "STA", AddrAbsoluteX)
	add(0x99, "STA", AddrAbsoluteY)
	add(0x81, "STA", AddrIndirectX)
	add(0x91, "STA", AddrIndirectY)
	add(0x86, "STX", AddrZeroPage)
	add(0x96, "STX", AddrZeroPageY)
	add(0x8E, "STX", AddrAbsolute)
	add(0x84, "STY", AddrZeroPage)
	add(0x94, "STY", AddrZeroPageX)
	add(0x8C, "STY", AddrAbsolute)
	add(0x69, "ADC", AddrImmediate)
	add(0x65, "ADC", AddrZeroPage)
	add(0x75, "ADC", AddrZeroPageX)
	add(0x6D, "ADC", AddrAbsolute)
	add(0x7D, "ADC", AddrAbsoluteX)
	add(0x79, "ADC", AddrAbsoluteY)
	add(0x61, "ADC", AddrIndirectX)
	add(0x71, "ADC", AddrIndirectY)
	add(0xE9, "SBC", AddrImmediate)
	add(0xE5, "SBC", AddrZeroPage)
	add(0xF5, "SBC", AddrZeroPageX)
	add(0xED, "SBC", AddrAbsolute)
	add(0xFD, "SBC", AddrAbsoluteX)
	add(0xF9, "SBC", AddrAbsoluteY)
	add(0xE1, "SBC", AddrIndirectX)
	add(0xF1, "SBC", AddrIndirectY)
	add(0x29, "AND", AddrImmediate)
	add(0x25, "AND", AddrZeroPage)
	add(0x35, "AND", AddrZeroPageX)
	add(0x2D, "AND", AddrAbsolute)
	add(0x3D, "AND", AddrAbsoluteX)
	add(0x39, "AND", AddrAbsoluteY)
	add(0x21, "AND", AddrIndirectX)
	add(0x31, "AND", AddrIndirectY)
	add(0x09, "ORA", AddrImmediate)
	add(0x05, "ORA", AddrZeroPage)
	add(0x15, "ORA", AddrZeroPageX)
	add(0x0D, "ORA", AddrAbsolute)
	add(0x1D, "ORA", AddrAbsoluteX)
	add(0x19, "ORA", AddrAbsoluteY)
	add(0x01, "ORA", AddrIndirectX)
	add(0x11, "ORA", AddrIndirectY)
	add(0x49, "EOR", AddrImmediate)
	add(0x45, "EOR", AddrZeroPage)
	add(0x55, "EOR", AddrZeroPageX)
	add(0x4D, "EOR", AddrAbsolute)
	add(0x5D, "EOR", AddrAbsoluteX)
	add(0x59, "EOR", AddrAbsoluteY)
	add(0x41, "EOR", AddrIndirectX)
	add(0x51, "EOR", AddrIndirectY)
	add(0xC9, "CMP", AddrImmediate)
	add(0xC5, "CMP", AddrZeroPage)
	add(0xD5, "CMP", AddrZeroPageX)
	add(0xCD, "CMP", AddrAbsolute)
	add(0xDD, "CMP", AddrAbsoluteX)
	add(0xD9, "CMP", AddrAbsoluteY)
	add(0xC1, "CMP", AddrIndirectX)
	add(0xD1, "CMP", AddrIndirectY)
	add(0xE0, "CPX", AddrImmediate)
	add(0xE4, "CPX", AddrZeroPage)
	add(0xEC, "CPX", AddrAbsolute)
	add(0xC0, "CPY", AddrImmediate)
	add(0xC4, "CPY", AddrZeroPage)
	add(0xCC, "CPY", AddrAbsolute)
	add(0x24, "BIT", AddrZeroPage)
	add(0x2C, "BIT", AddrAbsolute)
	add(0x0A, "ASL", AddrAccumulator)
	add(0x06, "ASL", AddrZeroPage)
	add(0x16, "ASL", AddrZeroPageX)
	add(0x0E, "ASL", AddrAbsolute)
	add(0x1E, "ASL", AddrAbsoluteX)
	add(0x4A, "LSR", AddrAccumulator)
	add(0x46, "LSR", AddrZeroPage)
	add(0x56, "LSR", AddrZeroPageX)
	add(0x4E, "LSR", AddrAbsolute)
	add(0x5E, "LSR", AddrAbsoluteX)
	add(0x2A, "ROL", AddrAccumulator)
	add(0x26, "ROL", AddrZeroPage)
	add(0x36, "ROL", AddrZeroPageX)
	add(0x2E, "ROL", AddrAbsolute)
	add(0x3E, "ROL", AddrAbsoluteX)
	add(0x6A, "ROR", AddrAccumulator)
	add(0x66, "ROR", AddrZeroPage)
	add(0x76, "ROR", AddrZeroPageX)
	add(0x6E, "ROR", AddrAbsolute)
	add(0x7E, "ROR", AddrAbsoluteX)
	add(0xE6, "INC", AddrZeroPage)
	add(0xF6, "INC", AddrZeroPageX)
	add(0xEE, "INC", AddrAbsolute)
	add(0xFE, "INC", AddrAbsoluteX)
	add(0xC6, "DEC", AddrZeroPage)
	add(0xD6, "DEC", AddrZeroPageX)
	add(0xCE, "DEC", AddrAbsolute)
	add(0xDE, "DEC", AddrAbsoluteX)
	add(0xE8, "INX", AddrImplied)
	add(0xC8, "INY", AddrImplied)
	add(0xCA, "DEX", AddrImplied)
	add(0x88, "DEY", AddrImplied)
	add(0xAA, "TAX", AddrImplied)
	add(0x8A, "TXA", AddrImplied)
	add(0xA8, "TAY", AddrImplied)
	add(0x98, "TYA", AddrImplied)
	add(0xBA, "TSX", AddrImplied)
	add(0x9A, "TXS", AddrImplied)
	add(0x18, "CLC", AddrImplied)
	add(0x38, "SEC", AddrImplied)
	add(0x58, "CLI", AddrImplied)
	add(0x78, "SEI", AddrImplied)
	add(0xB8, "CLV", AddrImplied)
	add(0xD8, "CLD", AddrImplied)
	add(0xF8, "SED", AddrImplied)
	add(0xEA, "NOP", AddrImplied)
	add(0x48, "PHA", AddrImplied)
	add(0x08, "PHP", AddrImplied)
	add(0x68, "PLA", AddrImplied)
	add(0x28, "PLP", AddrImplied)
	add(0x4C, "JMP", AddrAbsolute)
	add(0x6C, "JMP", AddrIndirect)
	add(0x20, "JSR", AddrAbsolute)
	add(0x60, "RTS", AddrImplied)
	add(0x40, "RTI", AddrImplied)
	add(0x00, "BRK", AddrImplied)
	add(0x10, "BPL", AddrRelative)
	add(0x30, "BMI", AddrRelative)
	add(0x50, "BVC", AddrRelative)
	add(0x70, "BVS", AddrRelative)
	add(0x90, "BCC", AddrRelative)
	add(0xB0, "BCS", AddrRelative)
	add(0xD0, "BNE", AddrRelative)
	add(0xF0, "BEQ", AddrRelative)

	disasmTable = d
}

// Disassemble decodes the instruction at addr, returning its text form
// and length in bytes (for opcodes not in the legal/illegal table it
// reports "JAM" with length 1, matching the CPU's own treatment of
// unmapped opcodes).
func Disassemble(peek func(uint16) byte, addr uint16) (text string, length int) {
	op := peek(addr)
	entry, ok := disasmTable[op]
	if !ok {
		if _, opOK := opcodeTable[op]; !opOK {
			return "JAM", 1
		}
		entry = disasmEntry{"???", AddrImplied}
	}
	switch entry.mode {
	case AddrImplied, AddrAccumulator:
		return entry.mnemonic, 1
	case AddrImmediate:
		return fmt.Sprintf("%s #$%02X", entry.mnemonic, peek(addr+1)), 2
	case AddrZeroPage:
		return fmt.Sprintf("%s $%02X", entry.mnemonic, peek(addr+1)), 2
	case AddrZeroPageX:
		return fmt.Sprintf("%s $%02X,X", entry.mnemonic, peek(addr+1)), 2
	case AddrZeroPageY:
		return fmt.Sprintf("%s $%02X,Y", entry.mnemonic, peek(addr+1)), 2
	case AddrIndirectX:
		return fmt.Sprintf("%s ($%02X,X)", entry.mnemonic, peek(addr+1)), 2
	case AddrIndirectY:
		return fmt.Sprintf("%s ($%02X),Y", entry.mnemonic, peek(addr+1)), 2
	case AddrAbsolute:
		lo, hi := peek(addr+1), peek(addr+2)
		return fmt.Sprintf("%s $%04X", entry.mnemonic, uint16(lo)|uint16(hi)<<8), 3
	case AddrAbsoluteX:
		lo, hi := peek(addr+1), peek(addr+2)
		return fmt.Sprintf("%s $%04X,X", entry.mnemonic, uint16(lo)|uint16(hi)<<8), 3
	case AddrAbsoluteY:
		lo, hi := peek(addr+1), peek(addr+2)
		return fmt.Sprintf("%s $%04X,Y", entry.mnemonic, uint16(lo)|uint16(hi)<<8), 3
	case AddrIndirect:
		lo, hi := peek(addr+1), peek(addr+2)
		return fmt.Sprintf("%s ($%04X)", entry.mnemonic, uint16(lo)|uint16(hi)<<8), 3
	case AddrRelative:
		offset := int8(peek(addr + 1))
		target := uint16(int32(addr) + 2 + int32(offset))
		return fmt.Sprintf("%s $%04X", entry.mnemonic, target), 2
	}
	return "???", 1
}
