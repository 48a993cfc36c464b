//go:build !headless

// Windowed run loop: ebiten drives presentation timing, the scheduler
// runs one frame's worth of master cycles per Update call, and oto pulls
// samples from the machine's ring buffer on its own callback thread.
package main

import (
	"fmt"
	"os"

	"c64emu/internal/audio"
	"c64emu/internal/machine"
	"c64emu/internal/monitor"
	"c64emu/internal/vic"
	"c64emu/internal/video"
)

func run(m *machine.Machine) {
	sink, err := video.NewEbitenSink(vic.VisibleWidth, vic.VisibleHeight, 2, "c64emu")
	if err != nil {
		fmt.Printf("failed to open video output: %v\n", err)
		os.Exit(1)
	}
	defer sink.Close()

	audioSink, err := audio.NewOtoSink(44100)
	if err != nil {
		fmt.Printf("failed to open audio output: %v\n", err)
		os.Exit(1)
	}
	defer audioSink.Close()
	audioSink.Start(m)

	m.OnFrame(func(frame []uint32, width, height int) {
		sink.Present(frame, width, height)
	})

	if err := sink.Run(func() {
		cyclesPerFrame := machine.CyclesPerLine * machine.LinesPerFrame
		for i := 0; i < cyclesPerFrame; i++ {
			m.BeamTick()
		}
		if sink.PollPaste() {
			m.Keyboard.QueuePaste()
		}
	}); err != nil {
		fmt.Printf("video run loop exited: %v\n", err)
		os.Exit(1)
	}
}

func runMonitor(m *machine.Machine) {
	mon := monitor.New(m.CPU, m.Bus)
	defer mon.Close()
	if err := mon.RunInteractive(); err != nil {
		fmt.Printf("monitor failed: %v\n", err)
		os.Exit(1)
	}
}
