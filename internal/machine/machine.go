// Package machine is the scheduler: the single mutable "world" value
// that owns the bus, CPU, VIC, SID and both CIAs and advances them one
// master cycle at a time in VIC-then-CPU-then-SID order. No component
// holds a pointer to another; each sees only the adapter interfaces
// this package implements, per the teacher's MachineBus/MachineMonitor
// split (debug_monitor.go) generalized from "one bus shared by many
// debuggable CPUs" to "one bus shared by the chip ensemble."
package machine

import (
	"c64emu/internal/bus"
	"c64emu/internal/cia"
	"c64emu/internal/cpu6510"
	"c64emu/internal/keyboard"
	"c64emu/internal/media"
	"c64emu/internal/sid"
	"c64emu/internal/vic"
)

const (
	CyclesPerLine = vic.CyclesPerLine
	LinesPerFrame = vic.LinesPerFrame
)

// Machine is the world value: bus + chip ensemble + the ring buffer
// bridging the SID to the host audio consumer.
type Machine struct {
	Bus      *bus.Bus
	CPU      *cpu6510.CPU
	VIC      *vic.VIC
	SID      *sid.SID
	CIA1     *cia.CIA
	CIA2     *cia.CIA
	Keyboard *keyboard.Matrix

	audioRing *ring

	line  int
	cycle int // 1..63

	onFrame func(frame []uint32, width, height int)
}

// New wires the full ensemble: VIC and CIA-2 reach memory/bank state
// through small adapters so no component holds a live pointer to
// another (§5 "exactly one mutable world value").
func New(sampleRate int, sidModel sid.Model) *Machine {
	m := &Machine{
		Bus:      bus.New(),
		CIA1:     nil,
		CIA2:     nil,
		Keyboard: keyboard.NewMatrix(),
		audioRing: newRing(8192),
	}

	m.CIA1 = cia.New(cia1IRQAdapter{m})
	m.CIA2 = cia.New(cia2NMIAdapter{m})
	m.CIA1.Peripheral = m.Keyboard

	m.CPU = cpu6510.New(m.Bus)
	m.VIC = vic.New(vicBusAdapter{m}, vicIRQAdapter{m})
	m.SID = sid.New(sampleRate, sidModel)

	m.wireIO()
	return m
}

// wireIO registers the $D000-$DFFF windows for VIC, SID, color RAM and
// both CIAs, mirrored at their real hardware stride (VIC every 64
// bytes, SID every 32, each CIA every 16, color RAM's 1K span direct).
func (m *Machine) wireIO() {
	m.Bus.MapIO(0xD000, 0xD3FF,
		func(addr uint16) byte { return m.VIC.ReadRegister(byte(addr & 0x3F)) },
		func(addr uint16, v byte) { m.VIC.WriteRegister(byte(addr&0x3F), v) })

	m.Bus.MapIO(0xD400, 0xD7FF,
		func(addr uint16) byte { return m.SID.ReadRegister(byte(addr & 0x1F)) },
		func(addr uint16, v byte) { m.SID.WriteRegister(byte(addr&0x1F), v) })

	m.Bus.MapIO(0xD800, 0xDBFF, m.Bus.ColorRAMPeek, m.Bus.ColorRAMPoke)

	m.Bus.MapIO(0xDC00, 0xDCFF,
		func(addr uint16) byte { return m.CIA1.ReadRegister(byte(addr & 0x0F)) },
		func(addr uint16, v byte) { m.CIA1.WriteRegister(byte(addr&0x0F), v) })

	m.Bus.MapIO(0xDD00, 0xDDFF,
		func(addr uint16) byte { return m.CIA2.ReadRegister(byte(addr & 0x0F)) },
		func(addr uint16, v byte) { m.CIA2.WriteRegister(byte(addr&0x0F), v) })
}

// OnFrame registers a callback invoked once per completed frame (line
// wraps from 311 to 0) with the VIC's pixel buffer.
func (m *Machine) OnFrame(fn func(frame []uint32, width, height int)) {
	m.onFrame = fn
}

// AttachCartridge parses and wires a .CRT image into the bus.
func (m *Machine) AttachCartridge(raw []byte) (warning string, err error) {
	img, err := media.ParseCRT(raw)
	if err != nil {
		return "", err
	}
	mapper, warn := media.NewMapper(img)
	m.Bus.AttachCartridge(mapper)
	return warn, nil
}

// LoadPRG copies a parsed PRG image directly into RAM at its load
// address, the same shortcut KERNAL LOAD takes for ",8,1" loads.
func (m *Machine) LoadPRG(p *media.PRG) {
	addr := p.LoadAddr
	for _, b := range p.Data {
		m.Bus.Poke(addr, b)
		addr++
	}
}

// Reset performs the documented power-on/reset sequence: bus banking
// reset, then the CPU's own 7-cycle reset vector fetch.
func (m *Machine) Reset() {
	m.Bus.Reset()
	m.CPU.Reset()
	m.line, m.cycle = 0, 1
}

// BeamTick advances the world by exactly one master cycle: VIC, then
// CPU (stalled on RDY per the VIC's bad-line DMA), then SID — the order
// fixed by the scheduler's law.
func (m *Machine) BeamTick() {
	m.VIC.Tick()
	m.CPU.SetRDY(!m.VIC.RDYActive())
	m.CPU.Tick()
	if m.SID.Tick() {
		m.audioRing.push(m.SID.Sample())
	}
	m.CIA1.Tick()
	m.CIA2.Tick()

	m.cycle++
	if m.cycle > CyclesPerLine {
		m.cycle = 1
		m.line++
		if m.line >= LinesPerFrame {
			m.line = 0
			m.Keyboard.Tick()
			if m.onFrame != nil {
				m.onFrame(m.VIC.Frame[:], vic.VisibleWidth, vic.VisibleHeight)
			}
		}
	}
}

// NextSample implements audio.Source, pulled by the host audio backend
// at its own sample rate from the lock-free ring buffer.
func (m *Machine) NextSample() int16 { return m.audioRing.pop() }

type vicBusAdapter struct{ m *Machine }

func (a vicBusAdapter) VICPeek(addr uint16) byte {
	bank := int((^a.m.CIA2.OutputA())) & 0x03
	return a.m.Bus.VICView(bank, addr)
}

type vicIRQAdapter struct{ m *Machine }

func (a vicIRQAdapter) SetIRQLine(asserted bool) {
	a.m.CPU.SetIRQLine(cpu6510.SourceVIC, asserted)
}

type cia1IRQAdapter struct{ m *Machine }

func (a cia1IRQAdapter) SetLine(asserted bool) {
	a.m.CPU.SetIRQLine(cpu6510.SourceCIA1, asserted)
}

type cia2NMIAdapter struct{ m *Machine }

func (a cia2NMIAdapter) SetLine(asserted bool) {
	a.m.CPU.SetNMILine(cpu6510.SourceCIA2, asserted)
}
