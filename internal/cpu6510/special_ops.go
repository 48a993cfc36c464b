package cpu6510

// This file holds the instructions whose cycle shape doesn't fit the
// generic read/write/RMW molds in addressing.go: stack ops, jumps, and
// subroutine linkage.

func buildPHA() []step {
	return []step{
		rd(func(c *CPU) { c.Bus.Peek(c.PC) }), // dummy read of the next byte
		wr(func(c *CPU) { c.push(c.A) }),
	}
}

func buildPHP() []step {
	return []step{
		rd(func(c *CPU) { c.Bus.Peek(c.PC) }),
		wr(func(c *CPU) { c.push(c.P(true)) }),
	}
}

func buildPLA() []step {
	return []step{
		rd(func(c *CPU) { c.Bus.Peek(c.PC) }),                  // dummy read of the next byte
		rd(func(c *CPU) { c.Bus.Peek(0x0100 + uint16(c.SP)) }), // dummy read before SP++
		rd(func(c *CPU) {
			c.A = c.pull()
			c.updateNZ(c.A)
		}),
	}
}

func buildPLP() []step {
	return []step{
		rd(func(c *CPU) { c.Bus.Peek(c.PC) }),
		rd(func(c *CPU) { c.Bus.Peek(0x0100 + uint16(c.SP)) }),
		rd(func(c *CPU) { c.SetP(c.pull()) }),
	}
}

// buildJMPAbsolute is the plain 3-cycle absolute jump.
func buildJMPAbsolute() []step {
	return []step{
		rd(fetchAddrLo),
		rd(func(c *CPU) {
			fetchAddrHi(c)
			c.PC = c.effAddr()
		}),
	}
}

// buildJMPIndirect reproduces the famous page-wrap bug: if the pointer's
// low byte is $FF, the high byte of the target is fetched from the start
// of the same page rather than the next one (§4.2, §8 "indirect JMP at a
// page boundary").
func buildJMPIndirect() []step {
	return []step{
		rd(fetchAddrLo),
		rd(fetchAddrHi),
		rd(func(c *CPU) { c.data = c.Bus.Peek(c.effAddr()) }),
		rd(func(c *CPU) {
			hiAddr := uint16(c.addrHi)<<8 | uint16(byte(c.addrLo+1))
			hi := c.Bus.Peek(hiAddr)
			c.PC = uint16(c.data) | uint16(hi)<<8
		}),
	}
}

// buildJSR: fetch target low, internal delay cycle, push PCH, push PCL,
// fetch target high. The canonical 6-cycle shape, including the dummy
// stack-peek on the "internal operation" cycle.
func buildJSR() []step {
	return []step{
		rd(fetchAddrLo),
		rd(func(c *CPU) { c.Bus.Peek(0x0100 + uint16(c.SP)) }),
		wr(func(c *CPU) { c.push(byte(c.PC >> 8)) }),
		wr(func(c *CPU) { c.push(byte(c.PC)) }),
		rd(func(c *CPU) {
			fetchAddrHi(c)
			c.PC = c.effAddr()
		}),
	}
}

func buildRTS() []step {
	return []step{
		rd(func(c *CPU) { c.Bus.Peek(c.PC) }), // dummy operand read
		rd(func(c *CPU) { c.Bus.Peek(0x0100 + uint16(c.SP)) }),
		rd(func(c *CPU) { c.addrLo = c.pull() }),
		rd(func(c *CPU) { c.addrHi = c.pull() }),
		rd(func(c *CPU) {
			c.PC = c.effAddr() + 1
		}),
	}
}

func buildRTI() []step {
	return []step{
		rd(func(c *CPU) { c.Bus.Peek(c.PC) }),
		rd(func(c *CPU) { c.Bus.Peek(0x0100 + uint16(c.SP)) }),
		rd(func(c *CPU) { c.SetP(c.pull()) }),
		rd(func(c *CPU) { c.addrLo = c.pull() }),
		rd(func(c *CPU) {
			c.addrHi = c.pull()
			c.PC = c.effAddr()
		}),
	}
}

// buildBRK is dispatched like any other opcode (the opcode-fetch cycle
// is consumed by the generic path), then hands off to the shared
// interrupt-sequence tail with the B flag pushed set.
func buildBRK() []step {
	return buildInterruptSteps(true)
}

// buildImplied is the 2-cycle shape shared by register transfers, flag
// set/clear, and INX/INY/DEX/DEY: the opcode fetch (already consumed by
// dispatch) plus one dummy read of the following byte, which is where
// the RDY line can still stall these instructions.
func buildImplied(fn func(c *CPU)) []step {
	return []step{rd(func(c *CPU) {
		c.Bus.Peek(c.PC)
		fn(c)
	})}
}
