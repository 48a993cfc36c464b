// Command c64 is the emulator driver: it wires ROMs, an optional
// cartridge and program image into a machine.Machine and runs the
// scheduler until the process is interrupted. Flag parsing and the
// startup banner follow the teacher's main.go shape (a short banner
// function, sequential fmt.Printf+os.Exit(1) error handling) adapted to
// flag.FlagSet rather than raw os.Args, since this driver has more than
// one positional mode to support (PRG/D64/T64 program, optional CRT).
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"c64emu/internal/corelog"
	"c64emu/internal/machine"
	"c64emu/internal/media"
	"c64emu/internal/sid"
)

var driverLog = corelog.New("driver")

func banner() {
	fmt.Println("c64emu - cycle-accurate Commodore 64 core")
}

// enableDebugLogs turns on corelog output for the named subsystems
// (comma-separated, e.g. "driver,audio-ring,cartridge").
func enableDebugLogs(spec string) {
	if spec == "" {
		return
	}
	wanted := make(map[string]bool)
	for _, name := range strings.Split(spec, ",") {
		wanted[strings.TrimSpace(name)] = true
	}
	for _, l := range corelog.All() {
		if wanted[l.Tag()] {
			l.Enable()
		}
	}
}

func main() {
	fs := flag.NewFlagSet("c64emu", flag.ExitOnError)
	basicROM := fs.String("basic", "", "path to BASIC ROM image (8KB)")
	kernalROM := fs.String("kernal", "", "path to KERNAL ROM image (8KB)")
	charROM := fs.String("chargen", "", "path to CHARGEN ROM image (4KB, or a bitmap reference sheet)")
	cartPath := fs.String("cart", "", "path to a .crt cartridge image")
	sampleRate := fs.Int("samplerate", 44100, "audio sample rate in Hz")
	sidModelFlag := fs.String("sidmodel", "6581", "SID chip model to approximate: 6581 or 8580")
	monitorFlag := fs.Bool("monitor", false, "drop into the interactive monitor before running")
	debugFlag := fs.String("debug", "", "comma-separated subsystem names to log (e.g. driver,audio-ring,cartridge)")
	fs.Parse(os.Args[1:])

	enableDebugLogs(*debugFlag)
	banner()

	if *basicROM == "" || *kernalROM == "" {
		fmt.Println("usage: c64emu -basic <rom> -kernal <rom> [-chargen <rom>] [-cart <crt>] [program]")
		os.Exit(1)
	}

	sidModel := sid.MOS6581
	if strings.TrimSpace(*sidModelFlag) == "8580" {
		sidModel = sid.MOS8580
	}

	driverLog.Printf("starting with basic=%s kernal=%s samplerate=%d sidmodel=%s", *basicROM, *kernalROM, *sampleRate, *sidModelFlag)
	m := machine.New(*sampleRate, sidModel)

	loadROM(m.Bus.LoadBASIC, *basicROM, "BASIC")
	loadROM(m.Bus.LoadKernal, *kernalROM, "KERNAL")
	if *charROM != "" {
		raw, err := os.ReadFile(*charROM)
		if err != nil {
			fmt.Printf("failed to read CHARGEN rom: %v\n", err)
			os.Exit(1)
		}
		decoded, err := decodeCharset(raw)
		if err != nil {
			fmt.Printf("failed to decode CHARGEN rom: %v\n", err)
			os.Exit(1)
		}
		m.Bus.LoadCharROM(decoded)
	}

	if *cartPath != "" {
		raw, err := os.ReadFile(*cartPath)
		if err != nil {
			fmt.Printf("failed to read cartridge: %v\n", err)
			os.Exit(1)
		}
		warning, err := m.AttachCartridge(raw)
		if err != nil {
			fmt.Printf("failed to parse cartridge: %v\n", err)
			os.Exit(1)
		}
		if warning != "" {
			fmt.Println(warning)
		}
	}

	m.Reset()

	if fs.NArg() > 0 {
		loadProgram(m, fs.Arg(0))
	}

	if *monitorFlag {
		runMonitor(m)
	}

	run(m)
}

func loadROM(load func([]byte), path, label string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("failed to read %s rom: %v\n", label, err)
		os.Exit(1)
	}
	load(raw)
}

func loadProgram(m *machine.Machine, path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("failed to read program %s: %v\n", path, err)
		os.Exit(1)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".d64":
		img, err := media.ParseD64(raw)
		if err != nil {
			fmt.Printf("failed to parse d64: %v\n", err)
			os.Exit(1)
		}
		prg := img.FirstPRG()
		if prg == nil {
			fmt.Println("no PRG file found on disk image")
			os.Exit(1)
		}
		m.LoadPRG(prg)
	case ".t64":
		t64, err := media.ParseT64(raw)
		if err != nil {
			fmt.Printf("failed to parse t64: %v\n", err)
			os.Exit(1)
		}
		if len(t64.Entries) == 0 {
			fmt.Println("t64 archive has no entries")
			os.Exit(1)
		}
		m.LoadPRG(t64.ExtractPRG(t64.Entries[0]))
	default:
		prg, err := media.ParsePRG(raw)
		if err != nil {
			fmt.Printf("failed to parse prg: %v\n", err)
			os.Exit(1)
		}
		m.LoadPRG(prg)
	}
}
