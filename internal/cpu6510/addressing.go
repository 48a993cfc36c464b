package cpu6510

// AddrMode names one of the 6502's addressing modes (§4.2).
type AddrMode int

const (
	AddrImplied AddrMode = iota
	AddrAccumulator
	AddrImmediate
	AddrZeroPage
	AddrZeroPageX
	AddrZeroPageY
	AddrAbsolute
	AddrAbsoluteX
	AddrAbsoluteY
	AddrIndirectX
	AddrIndirectY
	AddrIndirect
	AddrRelative
)

// buildRead composes the micro-op sequence for a read-class instruction
// (LDA, ADC, AND, CMP, ...) under the given addressing mode. op receives
// the fetched operand byte. The returned steps are everything after the
// opcode fetch cycle.
func buildRead(mode AddrMode, op func(c *CPU, v byte)) []step {
	switch mode {
	case AddrImmediate:
		return []step{rd(func(c *CPU) {
			fetchImmediate(c)
			op(c, c.data)
		})}
	case AddrZeroPage:
		return []step{
			rd(fetchAddrLo),
			rd(func(c *CPU) {
				readFromZeroPage(c)
				op(c, c.data)
			}),
		}
	case AddrZeroPageX, AddrZeroPageY:
		sel := regX
		if mode == AddrZeroPageY {
			sel = regY
		}
		return []step{
			rd(fetchAddrLo),
			rd(addIndexZP(sel)),
			rd(func(c *CPU) {
				readFromZeroPage(c)
				op(c, c.data)
			}),
		}
	case AddrAbsolute:
		return []step{
			rd(fetchAddrLo),
			rd(fetchAddrHi),
			rd(func(c *CPU) {
				c.data = c.Bus.Peek(c.effAddr())
				op(c, c.data)
			}),
		}
	case AddrAbsoluteX, AddrAbsoluteY:
		sel := regX
		if mode == AddrAbsoluteY {
			sel = regY
		}
		return []step{
			rd(fetchAddrLo),
			rd(fetchAddrHi),
			rd(func(c *CPU) {
				addIndexAbs(sel)(c)
				readTentative(c)
				if c.carryExtra {
					c.extend(rd(func(c *CPU) {
						fixAddrHi(c)
						c.data = c.Bus.Peek(c.effAddr())
						op(c, c.data)
					}))
				} else {
					op(c, c.data)
				}
			}),
		}
	case AddrIndirectX:
		return []step{
			rd(fetchPointer),
			rd(func(c *CPU) {
				c.Bus.Peek(uint16(c.pointer))
				c.pointer += c.X
			}),
			rd(func(c *CPU) { c.addrLo = c.Bus.Peek(uint16(c.pointer)) }),
			rd(func(c *CPU) { c.addrHi = c.Bus.Peek(uint16(byte(c.pointer + 1))) }),
			rd(func(c *CPU) {
				c.data = c.Bus.Peek(c.effAddr())
				op(c, c.data)
			}),
		}
	case AddrIndirectY:
		return []step{
			rd(fetchPointer),
			rd(func(c *CPU) { c.addrLo = c.Bus.Peek(uint16(c.pointer)) }),
			rd(func(c *CPU) {
				baseHi := c.Bus.Peek(uint16(byte(c.pointer + 1)))
				sum := uint16(c.addrLo) + uint16(c.Y)
				c.addrLo = byte(sum)
				c.addrHi = baseHi
				c.carryExtra = sum > 0xFF
			}),
			rd(func(c *CPU) {
				c.data = c.Bus.Peek(c.effAddr())
				if c.carryExtra {
					c.extend(rd(func(c *CPU) {
						fixAddrHi(c)
						c.data = c.Bus.Peek(c.effAddr())
						op(c, c.data)
					}))
				} else {
					op(c, c.data)
				}
			}),
		}
	}
	return nil
}

// buildWrite composes the micro-op sequence for a store-class
// instruction (STA/STX/STY and the illegal store combos). Indexed
// writes always take the extra cycle, whether or not the index
// actually crosses a page (§4.2).
func buildWrite(mode AddrMode, storeOp func(c *CPU) byte) []step {
	finalWrite := func(c *CPU) {
		c.data = storeOp(c)
		writeToAddress(c)
	}
	switch mode {
	case AddrZeroPage:
		return []step{rd(fetchAddrLo), wr(finalWrite)}
	case AddrZeroPageX, AddrZeroPageY:
		sel := regX
		if mode == AddrZeroPageY {
			sel = regY
		}
		return []step{rd(fetchAddrLo), rd(addIndexZP(sel)), wr(finalWrite)}
	case AddrAbsolute:
		return []step{rd(fetchAddrLo), rd(fetchAddrHi), wr(finalWrite)}
	case AddrAbsoluteX, AddrAbsoluteY:
		sel := regX
		if mode == AddrAbsoluteY {
			sel = regY
		}
		return []step{
			rd(fetchAddrLo),
			rd(fetchAddrHi),
			rd(func(c *CPU) {
				addIndexAbs(sel)(c)
				c.Bus.Peek(c.effAddr()) // dummy read at the unfixed address
				if c.carryExtra {
					fixAddrHi(c)
				}
			}),
			wr(finalWrite),
		}
	case AddrIndirectX:
		return []step{
			rd(fetchPointer),
			rd(func(c *CPU) {
				c.Bus.Peek(uint16(c.pointer))
				c.pointer += c.X
			}),
			rd(func(c *CPU) { c.addrLo = c.Bus.Peek(uint16(c.pointer)) }),
			rd(func(c *CPU) { c.addrHi = c.Bus.Peek(uint16(byte(c.pointer + 1))) }),
			wr(finalWrite),
		}
	case AddrIndirectY:
		return []step{
			rd(fetchPointer),
			rd(func(c *CPU) { c.addrLo = c.Bus.Peek(uint16(c.pointer)) }),
			rd(func(c *CPU) {
				baseHi := c.Bus.Peek(uint16(byte(c.pointer + 1)))
				sum := uint16(c.addrLo) + uint16(c.Y)
				c.addrLo = byte(sum)
				c.addrHi = baseHi
				c.carryExtra = sum > 0xFF
			}),
			rd(func(c *CPU) {
				c.Bus.Peek(c.effAddr()) // dummy read at the unfixed address
				if c.carryExtra {
					fixAddrHi(c)
				}
			}),
			wr(finalWrite),
		}
	}
	return nil
}

// buildRMW composes the micro-op sequence for a read-modify-write
// instruction (INC/DEC/ASL/LSR/ROL/ROR and the illegal combination
// opcodes). The dummy write-back of the unmodified value on the cycle
// before the real write is a documented 6502 quirk, observable on
// memory-mapped I/O.
func buildRMW(mode AddrMode, op func(c *CPU, v byte) byte) []step {
	rmwTail := func() []step {
		return []step{
			wr(func(c *CPU) { writeToAddress(c) }), // dummy write-back, same value
			wr(func(c *CPU) {
				c.data = op(c, c.data)
				writeToAddress(c)
			}),
		}
	}
	switch mode {
	case AddrZeroPage:
		return append([]step{
			rd(fetchAddrLo),
			rd(readFromZeroPage),
		}, rmwTail()...)
	case AddrZeroPageX:
		return append([]step{
			rd(fetchAddrLo),
			rd(addIndexZP(regX)),
			rd(readFromZeroPage),
		}, rmwTail()...)
	case AddrAbsolute:
		return append([]step{
			rd(fetchAddrLo),
			rd(fetchAddrHi),
			rd(func(c *CPU) { c.data = c.Bus.Peek(c.effAddr()) }),
		}, rmwTail()...)
	case AddrAbsoluteX, AddrAbsoluteY:
		sel := regX
		if mode == AddrAbsoluteY {
			sel = regY
		}
		return append([]step{
			rd(fetchAddrLo),
			rd(fetchAddrHi),
			rd(func(c *CPU) {
				addIndexAbs(sel)(c)
				c.Bus.Peek(c.effAddr())
				if c.carryExtra {
					fixAddrHi(c)
				}
			}),
			rd(func(c *CPU) { c.data = c.Bus.Peek(c.effAddr()) }),
		}, rmwTail()...)
	case AddrIndirectX:
		return append([]step{
			rd(fetchPointer),
			rd(func(c *CPU) {
				c.Bus.Peek(uint16(c.pointer))
				c.pointer += c.X
			}),
			rd(func(c *CPU) { c.addrLo = c.Bus.Peek(uint16(c.pointer)) }),
			rd(func(c *CPU) { c.addrHi = c.Bus.Peek(uint16(byte(c.pointer + 1))) }),
			rd(func(c *CPU) { c.data = c.Bus.Peek(c.effAddr()) }),
		}, rmwTail()...)
	case AddrIndirectY:
		return append([]step{
			rd(fetchPointer),
			rd(func(c *CPU) { c.addrLo = c.Bus.Peek(uint16(c.pointer)) }),
			rd(func(c *CPU) {
				baseHi := c.Bus.Peek(uint16(byte(c.pointer + 1)))
				sum := uint16(c.addrLo) + uint16(c.Y)
				c.addrLo = byte(sum)
				c.addrHi = baseHi
				c.carryExtra = sum > 0xFF
			}),
			rd(func(c *CPU) {
				c.Bus.Peek(c.effAddr())
				if c.carryExtra {
					fixAddrHi(c)
				}
			}),
			rd(func(c *CPU) { c.data = c.Bus.Peek(c.effAddr()) }),
		}, rmwTail()...)
	}
	return nil
}

// buildAccumulator composes the single-cycle sequence for ASL/LSR/ROL/ROR
// operating directly on the accumulator.
func buildAccumulator(op func(c *CPU, v byte) byte) []step {
	return []step{wr(func(c *CPU) { c.A = op(c, c.A) })}
}
