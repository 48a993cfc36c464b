//go:build headless

// Headless run loop: no window, no real audio device; useful for
// scripted testing and CI, grounded on the teacher's build-tag split
// for every swappable backend (gui_frontend_headless.go and siblings).
package main

import (
	"os"

	"c64emu/internal/audio"
	"c64emu/internal/machine"
	"c64emu/internal/monitor"
	"c64emu/internal/video"
)

func run(m *machine.Machine) {
	sink := video.NewHeadlessSink(false)
	defer sink.Close()

	audioSink := audio.NewHeadlessSink(44100)
	defer audioSink.Close()
	audioSink.Start(m)

	cyclesPerFrame := machine.CyclesPerLine * machine.LinesPerFrame
	m.OnFrame(func(frame []uint32, width, height int) {
		sink.Present(frame, width, height)
	})

	sink.Run(func() bool {
		for i := 0; i < cyclesPerFrame; i++ {
			m.BeamTick()
		}
		return true
	})
}

func runMonitor(m *machine.Machine) {
	mon := monitor.New(m.CPU, m.Bus)
	defer mon.Close()
	mon.RunREPL(os.Stdin, os.Stdout)
}
