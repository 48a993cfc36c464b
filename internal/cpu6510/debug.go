package cpu6510

// SetHardBreakpoint/ClearHardBreakpoint manage addresses where Tick
// halts execution (state becomes StateHardBreak) before fetching the
// opcode there, leaving it unexecuted until Resume is called.
func (c *CPU) SetHardBreakpoint(pc uint16) { c.hardBreakpoints[pc] = true }

func (c *CPU) ClearHardBreakpoint(pc uint16) { delete(c.hardBreakpoints, pc) }

// SetSoftBreakpoint arms a one-shot breakpoint: it fires exactly once
// (self-clearing) then execution resumes transparently, used by the
// monitor's "step over" / "run to" commands.
func (c *CPU) SetSoftBreakpoint(pc uint16) { c.softBreakpoints[pc] = true }

// SetTraceFunc installs a callback invoked once per instruction boundary
// with the pre-execution register snapshot. Passing nil disables
// tracing.
func (c *CPU) SetTraceFunc(fn func(TraceEntry)) {
	c.traceFn = fn
	c.tracing = fn != nil
}

// Registers exposes the live register/flag file for the monitor's "regs"
// command, without granting it write access to execution substate.
type Registers struct {
	A, X, Y, SP byte
	PC          uint16
	N, V, D, I, Z, C bool
}

func (c *CPU) Registers() Registers {
	return Registers{
		A: c.A, X: c.X, Y: c.Y, SP: c.SP, PC: c.PC,
		N: c.N, V: c.V, D: c.D, I: c.I, Z: c.Z, C: c.C,
	}
}

// SetRegisters lets the monitor poke register values directly (its "set"
// command), bypassing the normal instruction-driven flag updates.
func (c *CPU) SetRegisters(r Registers) {
	c.A, c.X, c.Y, c.SP, c.PC = r.A, r.X, r.Y, r.SP, r.PC
	c.N, c.V, c.D, c.I, c.Z, c.C = r.N, r.V, r.D, r.I, r.Z, r.C
}
