package media

import (
	"encoding/binary"
	"testing"
)

// buildCRT assembles a minimal .CRT image: a 64-byte header followed by
// one CHIP packet per (bank, loadAt, data) triple, mirroring the format
// ParseCRT decodes.
func buildCRT(typ CartridgeType, exrom, game bool, chips []chipPacket) []byte {
	header := make([]byte, 64)
	copy(header[0:16], "C64 CARTRIDGE   ")
	binary.BigEndian.PutUint32(header[16:20], 64)
	binary.BigEndian.PutUint16(header[0x16:0x18], uint16(typ))
	if exrom {
		header[0x18] = 0
	} else {
		header[0x18] = 1
	}
	if game {
		header[0x19] = 0
	} else {
		header[0x19] = 1
	}
	copy(header[0x20:0x40], "TEST")

	buf := append([]byte{}, header...)
	for _, c := range chips {
		packet := make([]byte, 16+len(c.data))
		copy(packet[0:4], "CHIP")
		binary.BigEndian.PutUint32(packet[4:8], uint32(16+len(c.data)))
		binary.BigEndian.PutUint16(packet[10:12], c.bank)
		binary.BigEndian.PutUint16(packet[12:14], c.loadAt)
		binary.BigEndian.PutUint16(packet[14:16], uint16(len(c.data)))
		copy(packet[16:], c.data)
		buf = append(buf, packet...)
	}
	return buf
}

func TestParseCRTHeaderAndChips(t *testing.T) {
	chip := make([]byte, 8192)
	chip[0] = 0xAB
	raw := buildCRT(TypeOcean, true, false, []chipPacket{{bank: 0, loadAt: 0x8000, data: chip}})

	img, err := ParseCRT(raw)
	if err != nil {
		t.Fatalf("ParseCRT: %v", err)
	}
	if img.Name != "TEST" {
		t.Fatalf("Name=%q, want TEST", img.Name)
	}
	if img.Type != TypeOcean {
		t.Fatalf("Type=%d, want TypeOcean", img.Type)
	}
	if !img.EXROM || img.GAME {
		t.Fatalf("EXROM/GAME=%v/%v, want true/false (EXROM low = ROM present)", img.EXROM, img.GAME)
	}
	if len(img.Chips) != 1 || img.Chips[0].data[0] != 0xAB {
		t.Fatalf("expected one CHIP packet with the loaded byte")
	}
}

func TestParseCRTRejectsBadHeader(t *testing.T) {
	if _, err := ParseCRT([]byte("not a crt")); err == nil {
		t.Fatalf("expected an error for a non-CRT file")
	}
}

func TestOceanMapperBankSwitchAndRange(t *testing.T) {
	bank0 := make([]byte, 8192)
	bank0[0] = 0x01
	bank1Lo := make([]byte, 8192)
	bank1Lo[0] = 0x02
	bank1Hi := make([]byte, 8192)
	bank1Hi[0] = 0x03

	img := &Image{
		EXROM: true, GAME: false,
		Chips: []chipPacket{
			{bank: 0, loadAt: 0x8000, data: bank0},
			{bank: 1, loadAt: 0x8000, data: bank1Lo},
			{bank: 1, loadAt: 0xA000, data: bank1Hi},
		},
	}
	m := newOceanMapper(img)

	if v, ok := m.Peek(0x8000); !ok || v != 0x01 {
		t.Fatalf("bank 0 $8000 = %d (ok=%v), want 0x01", v, ok)
	}

	if ok := m.Poke(0xDE00, 0x01); !ok {
		t.Fatalf("expected Poke($DE00, 1) to be recognized as a bank-select write")
	}

	if v, ok := m.Peek(0x8000); !ok || v != 0x02 {
		t.Fatalf("bank 1 $8000 = %d (ok=%v), want 0x02 after bank switch", v, ok)
	}
	// Regression: a 16K Ocean image's second CHIP packet (loadAt $A000)
	// must also be reachable once its bank is selected, not just the low 8K.
	if v, ok := m.Peek(0xA000); !ok || v != 0x03 {
		t.Fatalf("bank 1 $A000 = %d (ok=%v), want 0x03 (16K Ocean range)", v, ok)
	}
}

func TestOceanMapperIgnoresNonSelectWrites(t *testing.T) {
	img := &Image{EXROM: true, GAME: false, Chips: []chipPacket{{bank: 0, loadAt: 0x8000, data: make([]byte, 8192)}}}
	m := newOceanMapper(img)
	if m.Poke(0xD000, 0x01) {
		t.Fatalf("a write outside $DE00 must not be treated as a bank select")
	}
}

func TestSimonsBasicToggle(t *testing.T) {
	bank0 := make([]byte, 8192)
	bank0[0] = 0x10
	bank1 := make([]byte, 8192)
	bank1[0] = 0x20
	img := &Image{EXROM: true, GAME: false, Chips: []chipPacket{
		{bank: 0, loadAt: 0x8000, data: bank0},
		{bank: 1, loadAt: 0x8000, data: bank1},
	}}
	m := newSimonsBasicMapper(img)

	if v, _ := m.Peek(0x8000); v != 0x10 {
		t.Fatalf("default bank should be 0, got %d", v)
	}
	m.Poke(0xDE00, 0x00)
	if v, _ := m.Peek(0x8000); v != 0x20 {
		t.Fatalf("after $DE00 write, expected bank 1 (0x20), got %d", v)
	}
	m.Poke(0xDF00, 0x00)
	if v, _ := m.Peek(0x8000); v != 0x10 {
		t.Fatalf("after $DF00 write, expected bank 0 (0x10), got %d", v)
	}
}

func TestC64GSBankEncodedInAddress(t *testing.T) {
	banks := make([]chipPacket, 4)
	for i := range banks {
		data := make([]byte, 8192)
		data[0] = byte(0x40 + i)
		banks[i] = chipPacket{bank: uint16(i), loadAt: 0x8000, data: data}
	}
	img := &Image{EXROM: true, GAME: false, Chips: banks}
	m := newC64GSMapper(img)

	m.Poke(0xDE02, 0x00) // bank encoded in low address bits, not the data byte
	if v, _ := m.Peek(0x8000); v != 0x42 {
		t.Fatalf("expected bank 2 (0x42) selected via address $DE02, got %#x", v)
	}
}

func TestNormalMapperFixedBank(t *testing.T) {
	data := make([]byte, 8192)
	data[0] = 0x99
	img := &Image{EXROM: true, GAME: false, Chips: []chipPacket{{bank: 0, loadAt: 0x8000, data: data}}}
	m := newNormalMapper(img)

	if v, ok := m.Peek(0x8000); !ok || v != 0x99 {
		t.Fatalf("Peek($8000)=%d (ok=%v), want 0x99", v, ok)
	}
	if m.Poke(0x8000, 0x00) {
		t.Fatalf("normal mapper has no bank-select register, Poke should never be recognized")
	}
}

func TestNewMapperFallsBackForUnknownType(t *testing.T) {
	img := &Image{Type: CartridgeType(999), Chips: []chipPacket{{bank: 0, loadAt: 0x8000, data: make([]byte, 8192)}}}
	mapper, warning := NewMapper(img)
	if warning == "" {
		t.Fatalf("expected a warning for an unsupported cartridge type")
	}
	if _, ok := mapper.(*normalMapper); !ok {
		t.Fatalf("expected fallback to normalMapper, got %T", mapper)
	}
}

func TestParsePRG(t *testing.T) {
	raw := []byte{0x01, 0x08, 0xAA, 0xBB}
	p, err := ParsePRG(raw)
	if err != nil {
		t.Fatalf("ParsePRG: %v", err)
	}
	if p.LoadAddr != 0x0801 {
		t.Fatalf("LoadAddr=0x%04X, want 0x0801", p.LoadAddr)
	}
	if len(p.Data) != 2 || p.Data[0] != 0xAA {
		t.Fatalf("Data=%v, want [0xAA 0xBB]", p.Data)
	}
}

func TestParsePRGRejectsTooShort(t *testing.T) {
	if _, err := ParsePRG([]byte{0x01}); err == nil {
		t.Fatalf("expected an error for a PRG shorter than a load address")
	}
}
