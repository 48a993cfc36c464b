package cpu6510

// Stack helpers. The 6502 stack lives at $0100-$01FF and grows downward;
// SP wraps within the page (no underflow/overflow check, matching real
// hardware — a program that pushes past $00 silently wraps to $FF).
func (c *CPU) push(v byte) {
	c.Bus.Poke(0x0100+uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pull() byte {
	c.SP++
	return c.Bus.Peek(0x0100 + uint16(c.SP))
}

// sampleNMIEdge latches doNMI on the rising edge of the OR of all NMI
// sources. Called once per Tick, independent of instruction boundaries,
// since the edge can occur mid-instruction (§4.2: "NMI is edge-triggered;
// a single pulse latches even if it clears before being serviced").
func (c *CPU) sampleNMIEdge() {
	level := c.nmiLine != 0
	if level && !c.nmiPrevLevel {
		c.nmiEdgeLatch = true
	}
	c.nmiPrevLevel = level
}

// pollInterrupts decides whether a pending IRQ/NMI should be serviced at
// the next instruction boundary. It uses oldI, the I flag as it stood at
// the start of the current instruction, so CLI/SEI/PLP are seen to poll
// one cycle earlier than their own effect on I (§4.2, §8 "CLI/SEI/PLP
// poll one cycle earlier").
//
// Tick calls this after every instruction's last cycle has executed,
// rather than on the traditional "penultimate cycle" — the two are
// observationally identical here, since the decision only ever changes
// what cycle N+1 does (fetch vs. interrupt sequence), never cycle N's
// own effect. Branches additionally call it right after their offset
// read (see buildBranch).
func (c *CPU) pollInterrupts() {
	if c.nmiEdgeLatch && c.cycleCount >= c.nextPossibleNMICycle {
		c.doNMI = true
	} else if !c.oldI && c.irqLine != 0 && c.cycleCount >= c.nextPossibleIRQCycle {
		c.doIRQ = true
	}
}

// buildInterruptSteps returns the micro-ops for the tail of a BRK/IRQ/NMI
// sequence. For a hardware-triggered IRQ or NMI (isBRKOpcode false) this
// is the entire 7-cycle sequence; for BRK (isBRKOpcode true) the opcode
// fetch has already consumed one cycle through the normal dispatch path,
// so this returns the remaining 6.
//
// The BRK-to-NMI hijack (§4.2, §8: "an NMI arriving during BRK's push
// cycles takes over the vector, but BRK's own push sequence and B-flag
// still complete as BRK") falls out naturally: the vector fetch checks
// nmiEdgeLatch at the moment it actually runs, not at dispatch time, so
// an edge latched during the push cycles is observed there regardless of
// how the sequence was originally entered.
func buildInterruptSteps(isBRKOpcode bool) []step {
	body := []step{
		wr(func(c *CPU) { c.push(byte(c.PC >> 8)) }),
		wr(func(c *CPU) { c.push(byte(c.PC)) }),
		wr(func(c *CPU) {
			c.push(c.P(isBRKOpcode))
			c.I = true
		}),
		rd(func(c *CPU) {
			useNMI := c.nmiEdgeLatch
			vec := uint16(0xFFFE)
			if useNMI {
				vec = 0xFFFA
			}
			c.addrLo = c.Bus.Peek(vec)
			c.pendingVectorIsNMI = useNMI
		}),
		rd(func(c *CPU) {
			vec := uint16(0xFFFF)
			if c.pendingVectorIsNMI {
				vec = 0xFFFB
			}
			c.addrHi = c.Bus.Peek(vec)
			c.PC = c.effAddr()
			c.nextPossibleIRQCycle = c.cycleCount + 2
			c.nextPossibleNMICycle = c.cycleCount + 2
			if c.pendingVectorIsNMI {
				c.nmiEdgeLatch = false
			}
			c.doIRQ = false
			c.doNMI = false
		}),
	}
	if isBRKOpcode {
		lead := []step{rd(func(c *CPU) {
			c.Bus.Peek(c.PC) // signature byte, read and skipped
			c.PC++
		})}
		return append(lead, body...)
	}
	lead := []step{
		rd(func(c *CPU) { c.Bus.Peek(c.PC) }),
		rd(func(c *CPU) { c.Bus.Peek(c.PC) }),
	}
	return append(lead, body...)
}

// buildBranch composes the micro-ops for a relative-branch instruction.
// Unlike every other addressing mode, a branch polls interrupts right
// after the offset byte is read — in the same cycle that decides whether
// the branch is taken (§4.2 item 2). Tick's end-of-instruction poll still
// runs after the branch's last cycle: for a taken branch that stays on
// its page the next-possible-interrupt cycles are pushed back so that
// second poll cannot fire, while a page-crossing branch's second poll can
// still pick up an interrupt asserted during its extra cycles.
func buildBranch(cond func(c *CPU) bool) []step {
	return []step{
		rd(func(c *CPU) {
			offset := int8(c.Bus.Peek(c.PC))
			c.PC++
			c.pollInterrupts()
			if !cond(c) {
				return
			}
			oldPC := c.PC
			oldHi := byte(oldPC >> 8)
			newPC := uint16(int32(oldPC) + int32(offset))
			c.addrLo = byte(newPC)
			c.addrHi = oldHi
			c.extend(rd(func(c *CPU) {
				c.Bus.Peek(c.effAddr()) // idle read, possibly wrong page
				if byte(newPC>>8) != oldHi {
					c.extend(rd(func(c *CPU) {
						c.Bus.Peek(newPC) // idle read, corrected page
						c.PC = newPC
					}))
				} else {
					c.PC = newPC
					// A taken branch that does not cross a page delays a
					// pending interrupt by one further cycle (§8).
					c.nextPossibleIRQCycle = c.cycleCount + 2
					c.nextPossibleNMICycle = c.cycleCount + 2
				}
			}))
		}),
	}
}
