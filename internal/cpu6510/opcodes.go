package cpu6510

// opcodeEntry lazily builds the micro-op queue for one opcode byte. The
// table is built once at package init from the small set of addressing
// helpers in addressing.go and the ALU ops in alu.go — "data, not code"
// for every opcode, including the documented-illegal combinations.
type opcodeEntry struct {
	build func() []step
}

var opcodeTable map[byte]opcodeEntry

func readOp(mode AddrMode, op func(c *CPU, v byte)) opcodeEntry {
	return opcodeEntry{build: func() []step { return buildRead(mode, op) }}
}

func writeOp(mode AddrMode, op func(c *CPU) byte) opcodeEntry {
	return opcodeEntry{build: func() []step { return buildWrite(mode, op) }}
}

func rmwOp(mode AddrMode, op func(c *CPU, v byte) byte) opcodeEntry {
	return opcodeEntry{build: func() []step { return buildRMW(mode, op) }}
}

func accOp(op func(c *CPU, v byte) byte) opcodeEntry {
	return opcodeEntry{build: func() []step { return buildAccumulator(op) }}
}

func impliedOp(fn func(c *CPU)) opcodeEntry {
	return opcodeEntry{build: func() []step { return buildImplied(fn) }}
}

func branchOp(cond func(c *CPU) bool) opcodeEntry {
	return opcodeEntry{build: func() []step { return buildBranch(cond) }}
}

func specialOp(fn func() []step) opcodeEntry {
	return opcodeEntry{build: fn}
}

// --- read-class ALU ops -----------------------------------------------

func opLDA(c *CPU, v byte) { c.A = v; c.updateNZ(v) }
func opLDX(c *CPU, v byte) { c.X = v; c.updateNZ(v) }
func opLDY(c *CPU, v byte) { c.Y = v; c.updateNZ(v) }
func opAND(c *CPU, v byte) { c.A &= v; c.updateNZ(c.A) }
func opORA(c *CPU, v byte) { c.A |= v; c.updateNZ(c.A) }
func opEOR(c *CPU, v byte) { c.A ^= v; c.updateNZ(c.A) }
func opADC(c *CPU, v byte) { c.adc(v) }
func opSBC(c *CPU, v byte) { c.sbc(v) }
func opCMP(c *CPU, v byte) { c.compare(c.A, v) }
func opCPX(c *CPU, v byte) { c.compare(c.X, v) }
func opCPY(c *CPU, v byte) { c.compare(c.Y, v) }
func opBIT(c *CPU, v byte) { c.bit(v) }
func opNOPRead(c *CPU, v byte) {}

// opLAX loads both A and X from the same read — a combination opcode
// stable enough that software has relied on it (§4.2 illegal opcodes).
func opLAX(c *CPU, v byte) { c.A = v; c.X = v; c.updateNZ(v) }

func opANC(c *CPU, v byte) { c.A &= v; c.updateNZ(c.A); c.C = c.N }

func opALR(c *CPU, v byte) { c.A &= v; c.A = c.lsr(c.A) }

// opARR is the commonly documented non-decimal behavior; the real chip's
// decimal-mode ARR has extra quirks in C/V that are not reproduced here.
func opARR(c *CPU, v byte) {
	c.A &= v
	carryIn := byte(0)
	if c.C {
		carryIn = 0x80
	}
	c.A = (c.A >> 1) | carryIn
	c.updateNZ(c.A)
	c.C = c.A&0x40 != 0
	c.V = (c.A&0x40 != 0) != (c.A&0x20 != 0)
}

// opSBX (AXS): X := (A&X) - value, no borrow-in, like a CMP/DEX fusion.
func opSBX(c *CPU, v byte) {
	t := c.A & c.X
	c.C = t >= v
	c.X = t - v
	c.updateNZ(c.X)
}

// opLXA and opANE involve an unstable "magic constant" ANDed with the
// bus value on real silicon that varies by chip batch and temperature;
// this models the commonly observed stable case (constant = $FF).
func opLXA(c *CPU, v byte) { c.A = v; c.X = v; c.updateNZ(v) }
func opANE(c *CPU, v byte) { c.A = c.X & v; c.updateNZ(c.A) }

// --- write-class store ops ---------------------------------------------

func opStoreA(c *CPU) byte { return c.A }
func opStoreX(c *CPU) byte { return c.X }
func opStoreY(c *CPU) byte { return c.Y }
func opSAX(c *CPU) byte    { return c.A & c.X }

// opSHA/opSHX/opSHY/opSHS AND the stored register(s) with one more than
// the address's high byte, an unstable hardware quirk (§4.2 illegal
// opcodes) that only matters on the rare page-crossing case.
func opSHA(c *CPU) byte { return c.A & c.X & (c.addrHi + 1) }
func opSHX(c *CPU) byte { return c.X & (c.addrHi + 1) }
func opSHY(c *CPU) byte { return c.Y & (c.addrHi + 1) }
func opSHS(c *CPU) byte {
	c.SP = c.A & c.X
	return c.SP & (c.addrHi + 1)
}

// --- RMW-class ops -------------------------------------------------------

func opASL(c *CPU, v byte) byte { return c.asl(v) }
func opLSR(c *CPU, v byte) byte { return c.lsr(v) }
func opROL(c *CPU, v byte) byte { return c.rol(v) }
func opROR(c *CPU, v byte) byte { return c.ror(v) }
func opINC(c *CPU, v byte) byte { return c.inc(v) }
func opDEC(c *CPU, v byte) byte { return c.dec(v) }

func opSLO(c *CPU, v byte) byte { r := c.asl(v); c.A |= r; c.updateNZ(c.A); return r }
func opRLA(c *CPU, v byte) byte { r := c.rol(v); c.A &= r; c.updateNZ(c.A); return r }
func opSRE(c *CPU, v byte) byte { r := c.lsr(v); c.A ^= r; c.updateNZ(c.A); return r }
func opRRA(c *CPU, v byte) byte { r := c.ror(v); c.adc(r); return r }
func opDCP(c *CPU, v byte) byte { r := c.dec(v); c.compare(c.A, r); return r }
func opISC(c *CPU, v byte) byte { r := c.inc(v); c.sbc(r); return r }

// --- register/flag implied ops ------------------------------------------

func opINX(c *CPU) { c.X++; c.updateNZ(c.X) }
func opINY(c *CPU) { c.Y++; c.updateNZ(c.Y) }
func opDEX(c *CPU) { c.X--; c.updateNZ(c.X) }
func opDEY(c *CPU) { c.Y--; c.updateNZ(c.Y) }
func opTAX(c *CPU) { c.X = c.A; c.updateNZ(c.X) }
func opTXA(c *CPU) { c.A = c.X; c.updateNZ(c.A) }
func opTAY(c *CPU) { c.Y = c.A; c.updateNZ(c.Y) }
func opTYA(c *CPU) { c.A = c.Y; c.updateNZ(c.A) }
func opTSX(c *CPU) { c.X = c.SP; c.updateNZ(c.X) }
func opTXS(c *CPU) { c.SP = c.X }
func opCLC(c *CPU) { c.C = false }
func opSEC(c *CPU) { c.C = true }
func opCLI(c *CPU) { c.I = false }
func opSEI(c *CPU) { c.I = true }
func opCLV(c *CPU) { c.V = false }
func opCLD(c *CPU) { c.D = false }
func opSED(c *CPU) { c.D = true }
func opNOP(c *CPU) {}

func init() {
	t := make(map[byte]opcodeEntry, 256)

	// LDA/LDX/LDY
	t[0xA9] = readOp(AddrImmediate, opLDA)
	t[0xA5] = readOp(AddrZeroPage, opLDA)
	t[0xB5] = readOp(AddrZeroPageX, opLDA)
	t[0xAD] = readOp(AddrAbsolute, opLDA)
	t[0xBD] = readOp(AddrAbsoluteX, opLDA)
	t[0xB9] = readOp(AddrAbsoluteY, opLDA)
	t[0xA1] = readOp(AddrIndirectX, opLDA)
	t[0xB1] = readOp(AddrIndirectY, opLDA)

	t[0xA2] = readOp(AddrImmediate, opLDX)
	t[0xA6] = readOp(AddrZeroPage, opLDX)
	t[0xB6] = readOp(AddrZeroPageY, opLDX)
	t[0xAE] = readOp(AddrAbsolute, opLDX)
	t[0xBE] = readOp(AddrAbsoluteY, opLDX)

	t[0xA0] = readOp(AddrImmediate, opLDY)
	t[0xA4] = readOp(AddrZeroPage, opLDY)
	t[0xB4] = readOp(AddrZeroPageX, opLDY)
	t[0xAC] = readOp(AddrAbsolute, opLDY)
	t[0xBC] = readOp(AddrAbsoluteX, opLDY)

	// STA/STX/STY
	t[0x85] = writeOp(AddrZeroPage, opStoreA)
	t[0x95] = writeOp(AddrZeroPageX, opStoreA)
	t[0x8D] = writeOp(AddrAbsolute, opStoreA)
	t[0x9D] = writeOp(AddrAbsoluteX, opStoreA)
	t[0x99] = writeOp(AddrAbsoluteY, opStoreA)
	t[0x81] = writeOp(AddrIndirectX, opStoreA)
	t[0x91] = writeOp(AddrIndirectY, opStoreA)

	t[0x86] = writeOp(AddrZeroPage, opStoreX)
	t[0x96] = writeOp(AddrZeroPageY, opStoreX)
	t[0x8E] = writeOp(AddrAbsolute, opStoreX)

	t[0x84] = writeOp(AddrZeroPage, opStoreY)
	t[0x94] = writeOp(AddrZeroPageX, opStoreY)
	t[0x8C] = writeOp(AddrAbsolute, opStoreY)

	// ADC/SBC
	t[0x69] = readOp(AddrImmediate, opADC)
	t[0x65] = readOp(AddrZeroPage, opADC)
	t[0x75] = readOp(AddrZeroPageX, opADC)
	t[0x6D] = readOp(AddrAbsolute, opADC)
	t[0x7D] = readOp(AddrAbsoluteX, opADC)
	t[0x79] = readOp(AddrAbsoluteY, opADC)
	t[0x61] = readOp(AddrIndirectX, opADC)
	t[0x71] = readOp(AddrIndirectY, opADC)

	t[0xE9] = readOp(AddrImmediate, opSBC)
	t[0xEB] = readOp(AddrImmediate, opSBC) // documented duplicate
	t[0xE5] = readOp(AddrZeroPage, opSBC)
	t[0xF5] = readOp(AddrZeroPageX, opSBC)
	t[0xED] = readOp(AddrAbsolute, opSBC)
	t[0xFD] = readOp(AddrAbsoluteX, opSBC)
	t[0xF9] = readOp(AddrAbsoluteY, opSBC)
	t[0xE1] = readOp(AddrIndirectX, opSBC)
	t[0xF1] = readOp(AddrIndirectY, opSBC)

	// AND/ORA/EOR
	t[0x29] = readOp(AddrImmediate, opAND)
	t[0x25] = readOp(AddrZeroPage, opAND)
	t[0x35] = readOp(AddrZeroPageX, opAND)
	t[0x2D] = readOp(AddrAbsolute, opAND)
	t[0x3D] = readOp(AddrAbsoluteX, opAND)
	t[0x39] = readOp(AddrAbsoluteY, opAND)
	t[0x21] = readOp(AddrIndirectX, opAND)
	t[0x31] = readOp(AddrIndirectY, opAND)

	t[0x09] = readOp(AddrImmediate, opORA)
	t[0x05] = readOp(AddrZeroPage, opORA)
	t[0x15] = readOp(AddrZeroPageX, opORA)
	t[0x0D] = readOp(AddrAbsolute, opORA)
	t[0x1D] = readOp(AddrAbsoluteX, opORA)
	t[0x19] = readOp(AddrAbsoluteY, opORA)
	t[0x01] = readOp(AddrIndirectX, opORA)
	t[0x11] = readOp(AddrIndirectY, opORA)

	t[0x49] = readOp(AddrImmediate, opEOR)
	t[0x45] = readOp(AddrZeroPage, opEOR)
	t[0x55] = readOp(AddrZeroPageX, opEOR)
	t[0x4D] = readOp(AddrAbsolute, opEOR)
	t[0x5D] = readOp(AddrAbsoluteX, opEOR)
	t[0x59] = readOp(AddrAbsoluteY, opEOR)
	t[0x41] = readOp(AddrIndirectX, opEOR)
	t[0x51] = readOp(AddrIndirectY, opEOR)

	// CMP/CPX/CPY/BIT
	t[0xC9] = readOp(AddrImmediate, opCMP)
	t[0xC5] = readOp(AddrZeroPage, opCMP)
	t[0xD5] = readOp(AddrZeroPageX, opCMP)
	t[0xCD] = readOp(AddrAbsolute, opCMP)
	t[0xDD] = readOp(AddrAbsoluteX, opCMP)
	t[0xD9] = readOp(AddrAbsoluteY, opCMP)
	t[0xC1] = readOp(AddrIndirectX, opCMP)
	t[0xD1] = readOp(AddrIndirectY, opCMP)

	t[0xE0] = readOp(AddrImmediate, opCPX)
	t[0xE4] = readOp(AddrZeroPage, opCPX)
	t[0xEC] = readOp(AddrAbsolute, opCPX)

	t[0xC0] = readOp(AddrImmediate, opCPY)
	t[0xC4] = readOp(AddrZeroPage, opCPY)
	t[0xCC] = readOp(AddrAbsolute, opCPY)

	t[0x24] = readOp(AddrZeroPage, opBIT)
	t[0x2C] = readOp(AddrAbsolute, opBIT)

	// Shifts/rotates/INC/DEC
	t[0x0A] = accOp(opASL)
	t[0x06] = rmwOp(AddrZeroPage, opASL)
	t[0x16] = rmwOp(AddrZeroPageX, opASL)
	t[0x0E] = rmwOp(AddrAbsolute, opASL)
	t[0x1E] = rmwOp(AddrAbsoluteX, opASL)

	t[0x4A] = accOp(opLSR)
	t[0x46] = rmwOp(AddrZeroPage, opLSR)
	t[0x56] = rmwOp(AddrZeroPageX, opLSR)
	t[0x4E] = rmwOp(AddrAbsolute, opLSR)
	t[0x5E] = rmwOp(AddrAbsoluteX, opLSR)

	t[0x2A] = accOp(opROL)
	t[0x26] = rmwOp(AddrZeroPage, opROL)
	t[0x36] = rmwOp(AddrZeroPageX, opROL)
	t[0x2E] = rmwOp(AddrAbsolute, opROL)
	t[0x3E] = rmwOp(AddrAbsoluteX, opROL)

	t[0x6A] = accOp(opROR)
	t[0x66] = rmwOp(AddrZeroPage, opROR)
	t[0x76] = rmwOp(AddrZeroPageX, opROR)
	t[0x6E] = rmwOp(AddrAbsolute, opROR)
	t[0x7E] = rmwOp(AddrAbsoluteX, opROR)

	t[0xE6] = rmwOp(AddrZeroPage, opINC)
	t[0xF6] = rmwOp(AddrZeroPageX, opINC)
	t[0xEE] = rmwOp(AddrAbsolute, opINC)
	t[0xFE] = rmwOp(AddrAbsoluteX, opINC)

	t[0xC6] = rmwOp(AddrZeroPage, opDEC)
	t[0xD6] = rmwOp(AddrZeroPageX, opDEC)
	t[0xCE] = rmwOp(AddrAbsolute, opDEC)
	t[0xDE] = rmwOp(AddrAbsoluteX, opDEC)

	// Implied register/flag ops
	t[0xE8] = impliedOp(opINX)
	t[0xC8] = impliedOp(opINY)
	t[0xCA] = impliedOp(opDEX)
	t[0x88] = impliedOp(opDEY)
	t[0xAA] = impliedOp(opTAX)
	t[0x8A] = impliedOp(opTXA)
	t[0xA8] = impliedOp(opTAY)
	t[0x98] = impliedOp(opTYA)
	t[0xBA] = impliedOp(opTSX)
	t[0x9A] = impliedOp(opTXS)
	t[0x18] = impliedOp(opCLC)
	t[0x38] = impliedOp(opSEC)
	t[0x58] = impliedOp(opCLI)
	t[0x78] = impliedOp(opSEI)
	t[0xB8] = impliedOp(opCLV)
	t[0xD8] = impliedOp(opCLD)
	t[0xF8] = impliedOp(opSED)
	t[0xEA] = impliedOp(opNOP)

	// Stack ops
	t[0x48] = specialOp(buildPHA)
	t[0x08] = specialOp(buildPHP)
	t[0x68] = specialOp(buildPLA)
	t[0x28] = specialOp(buildPLP)

	// Jumps/subroutine linkage/BRK
	t[0x4C] = specialOp(buildJMPAbsolute)
	t[0x6C] = specialOp(buildJMPIndirect)
	t[0x20] = specialOp(buildJSR)
	t[0x60] = specialOp(buildRTS)
	t[0x40] = specialOp(buildRTI)
	t[0x00] = specialOp(buildBRK)

	// Branches
	t[0x10] = branchOp(func(c *CPU) bool { return !c.N })
	t[0x30] = branchOp(func(c *CPU) bool { return c.N })
	t[0x50] = branchOp(func(c *CPU) bool { return !c.V })
	t[0x70] = branchOp(func(c *CPU) bool { return c.V })
	t[0x90] = branchOp(func(c *CPU) bool { return !c.C })
	t[0xB0] = branchOp(func(c *CPU) bool { return c.C })
	t[0xD0] = branchOp(func(c *CPU) bool { return !c.Z })
	t[0xF0] = branchOp(func(c *CPU) bool { return c.Z })

	// Documented-illegal opcodes.
	t[0xA7] = readOp(AddrZeroPage, opLAX)
	t[0xB7] = readOp(AddrZeroPageY, opLAX)
	t[0xAF] = readOp(AddrAbsolute, opLAX)
	t[0xBF] = readOp(AddrAbsoluteY, opLAX)
	t[0xA3] = readOp(AddrIndirectX, opLAX)
	t[0xB3] = readOp(AddrIndirectY, opLAX)

	t[0x87] = writeOp(AddrZeroPage, opSAX)
	t[0x97] = writeOp(AddrZeroPageY, opSAX)
	t[0x8F] = writeOp(AddrAbsolute, opSAX)
	t[0x83] = writeOp(AddrIndirectX, opSAX)

	t[0xC7] = rmwOp(AddrZeroPage, opDCP)
	t[0xD7] = rmwOp(AddrZeroPageX, opDCP)
	t[0xCF] = rmwOp(AddrAbsolute, opDCP)
	t[0xDF] = rmwOp(AddrAbsoluteX, opDCP)
	t[0xDB] = rmwOp(AddrAbsoluteY, opDCP)
	t[0xC3] = rmwOp(AddrIndirectX, opDCP)
	t[0xD3] = rmwOp(AddrIndirectY, opDCP)

	t[0xE7] = rmwOp(AddrZeroPage, opISC)
	t[0xF7] = rmwOp(AddrZeroPageX, opISC)
	t[0xEF] = rmwOp(AddrAbsolute, opISC)
	t[0xFF] = rmwOp(AddrAbsoluteX, opISC)
	t[0xFB] = rmwOp(AddrAbsoluteY, opISC)
	t[0xE3] = rmwOp(AddrIndirectX, opISC)
	t[0xF3] = rmwOp(AddrIndirectY, opISC)

	t[0x07] = rmwOp(AddrZeroPage, opSLO)
	t[0x17] = rmwOp(AddrZeroPageX, opSLO)
	t[0x0F] = rmwOp(AddrAbsolute, opSLO)
	t[0x1F] = rmwOp(AddrAbsoluteX, opSLO)
	t[0x1B] = rmwOp(AddrAbsoluteY, opSLO)
	t[0x03] = rmwOp(AddrIndirectX, opSLO)
	t[0x13] = rmwOp(AddrIndirectY, opSLO)

	t[0x27] = rmwOp(AddrZeroPage, opRLA)
	t[0x37] = rmwOp(AddrZeroPageX, opRLA)
	t[0x2F] = rmwOp(AddrAbsolute, opRLA)
	t[0x3F] = rmwOp(AddrAbsoluteX, opRLA)
	t[0x3B] = rmwOp(AddrAbsoluteY, opRLA)
	t[0x23] = rmwOp(AddrIndirectX, opRLA)
	t[0x33] = rmwOp(AddrIndirectY, opRLA)

	t[0x47] = rmwOp(AddrZeroPage, opSRE)
	t[0x57] = rmwOp(AddrZeroPageX, opSRE)
	t[0x4F] = rmwOp(AddrAbsolute, opSRE)
	t[0x5F] = rmwOp(AddrAbsoluteX, opSRE)
	t[0x5B] = rmwOp(AddrAbsoluteY, opSRE)
	t[0x43] = rmwOp(AddrIndirectX, opSRE)
	t[0x53] = rmwOp(AddrIndirectY, opSRE)

	t[0x67] = rmwOp(AddrZeroPage, opRRA)
	t[0x77] = rmwOp(AddrZeroPageX, opRRA)
	t[0x6F] = rmwOp(AddrAbsolute, opRRA)
	t[0x7F] = rmwOp(AddrAbsoluteX, opRRA)
	t[0x7B] = rmwOp(AddrAbsoluteY, opRRA)
	t[0x63] = rmwOp(AddrIndirectX, opRRA)
	t[0x73] = rmwOp(AddrIndirectY, opRRA)

	t[0x0B] = readOp(AddrImmediate, opANC)
	t[0x2B] = readOp(AddrImmediate, opANC)
	t[0x4B] = readOp(AddrImmediate, opALR)
	t[0x6B] = readOp(AddrImmediate, opARR)
	t[0xCB] = readOp(AddrImmediate, opSBX)
	t[0xAB] = readOp(AddrImmediate, opLXA)
	t[0x8B] = readOp(AddrImmediate, opANE)

	t[0x9F] = writeOp(AddrAbsoluteY, opSHA)
	t[0x93] = writeOp(AddrIndirectY, opSHA)
	t[0x9B] = writeOp(AddrAbsoluteY, opSHS)
	t[0x9E] = writeOp(AddrAbsoluteY, opSHX)
	t[0x9C] = writeOp(AddrAbsoluteX, opSHY)

	// NOPs with various addressing modes (illegal but widely exercised).
	t[0x1A], t[0x3A], t[0x5A], t[0x7A], t[0xDA], t[0xFA] = impliedOp(opNOP), impliedOp(opNOP), impliedOp(opNOP), impliedOp(opNOP), impliedOp(opNOP), impliedOp(opNOP)
	t[0x80] = readOp(AddrImmediate, opNOPRead)
	t[0x82] = readOp(AddrImmediate, opNOPRead)
	t[0x89] = readOp(AddrImmediate, opNOPRead)
	t[0xC2] = readOp(AddrImmediate, opNOPRead)
	t[0xE2] = readOp(AddrImmediate, opNOPRead)
	t[0x04] = readOp(AddrZeroPage, opNOPRead)
	t[0x44] = readOp(AddrZeroPage, opNOPRead)
	t[0x64] = readOp(AddrZeroPage, opNOPRead)
	t[0x14] = readOp(AddrZeroPageX, opNOPRead)
	t[0x34] = readOp(AddrZeroPageX, opNOPRead)
	t[0x54] = readOp(AddrZeroPageX, opNOPRead)
	t[0x74] = readOp(AddrZeroPageX, opNOPRead)
	t[0xD4] = readOp(AddrZeroPageX, opNOPRead)
	t[0xF4] = readOp(AddrZeroPageX, opNOPRead)
	t[0x0C] = readOp(AddrAbsolute, opNOPRead)
	t[0x1C] = readOp(AddrAbsoluteX, opNOPRead)
	t[0x3C] = readOp(AddrAbsoluteX, opNOPRead)
	t[0x5C] = readOp(AddrAbsoluteX, opNOPRead)
	t[0x7C] = readOp(AddrAbsoluteX, opNOPRead)
	t[0xDC] = readOp(AddrAbsoluteX, opNOPRead)
	t[0xFC] = readOp(AddrAbsoluteX, opNOPRead)

	opcodeTable = t
}
