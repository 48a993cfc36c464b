package bus

import "testing"

// fakeCart is a minimal Cartridge stand-in: one selectable 16-byte bank at
// $8000 and a bank-select register at $DE00, enough to exercise the cart
// I/O routing this package owns.
type fakeCart struct {
	banks   [][16]byte
	current int
	pokes   []uint16 // records every address the bus routed here
}

func (c *fakeCart) Peek(addr uint16) (byte, bool) {
	if addr >= 0x8000 && addr <= 0x800F {
		return c.banks[c.current][addr-0x8000], true
	}
	return 0, false
}

func (c *fakeCart) Poke(addr uint16, v byte) bool {
	c.pokes = append(c.pokes, addr)
	if addr == 0xDE00 {
		c.current = int(v)
		return true
	}
	return false
}

func (c *fakeCart) EXROM() bool { return false }
func (c *fakeCart) GAME() bool  { return true }

func newTestBus() *Bus {
	b := New()
	b.Reset() // CHAREN+HIRAM+LORAM set, so I/O and cart ROM windows are visible
	return b
}

func TestPeekAfterPoke(t *testing.T) {
	b := newTestBus()
	b.Poke(0x0400, 0x42)
	if got := b.Peek(0x0400); got != 0x42 {
		t.Fatalf("Peek(0x0400)=0x%02X, want 0x42", got)
	}
}

func TestWritesAlwaysHitRAMUnderROM(t *testing.T) {
	b := newTestBus()
	b.LoadKernal(make([]byte, 8192))
	b.Poke(0xE000, 0x11) // KERNAL banked in, but the write must go to RAM
	b.port01 = 0x35       // bank KERNAL out (clear HIRAM)
	if got := b.Peek(0xE000); got != 0x11 {
		t.Fatalf("RAM under KERNAL ROM = 0x%02X, want 0x11 (write-through)", got)
	}
}

func TestPort01BankSwitching(t *testing.T) {
	b := newTestBus()
	b.LoadBASIC(make([]byte, 8192))
	for i := range b.basicROM {
		b.basicROM[i] = 0xAA
	}
	b.ram[0xA000] = 0x55

	b.port01 = 0x37 // LORAM+HIRAM+CHAREN: BASIC ROM visible
	if got := b.Peek(0xA000); got != 0xAA {
		t.Fatalf("BASIC banked in: got 0x%02X, want 0xAA", got)
	}

	b.port01 = 0x36 // LORAM cleared: BASIC ROM banked out, RAM shows through
	if got := b.Peek(0xA000); got != 0x55 {
		t.Fatalf("BASIC banked out: got 0x%02X, want 0x55", got)
	}
}

// TestCartridgeIOWindowRouting is the regression test for the bug where
// $DE00-$DFFF writes fell through to plain RAM instead of reaching the
// cartridge mapper's bank-select logic.
func TestCartridgeIOWindowRouting(t *testing.T) {
	b := newTestBus()
	cart := &fakeCart{banks: [][16]byte{{}, {}}}
	cart.banks[1][0] = 0x99
	b.AttachCartridge(cart)

	b.Poke(0xDE00, 0x01) // select bank 1

	if len(cart.pokes) != 1 || cart.pokes[0] != 0xDE00 {
		t.Fatalf("cart.Poke not invoked for $DE00 write: pokes=%v", cart.pokes)
	}
	if got := b.Peek(0x8000); got != 0x99 {
		t.Fatalf("Peek(0x8000) after bank select = 0x%02X, want 0x99", got)
	}
}

func TestCartridgeIOWindowHiddenWhenIONotVisible(t *testing.T) {
	b := newTestBus()
	cart := &fakeCart{banks: [][16]byte{{}, {}}}
	b.AttachCartridge(cart)

	b.port01 = 0x30 // LORAM, HIRAM and CHAREN cleared: I/O window (and so cart I/O) not visible
	b.Poke(0xDE00, 0x01)

	if len(cart.pokes) != 0 {
		t.Fatalf("cart.Poke invoked while I/O window hidden: pokes=%v", cart.pokes)
	}
	if got := b.Peek(0xDE00); got != b.ram[0xDE00] {
		t.Fatalf("Peek(0xDE00) with I/O hidden should read RAM, got 0x%02X", got)
	}
}

func TestColorRAMIsFourBitsWide(t *testing.T) {
	b := newTestBus()
	b.ColorRAMPoke(0xD800, 0xFF)
	if got := b.ColorRAMPeek(0xD800); got != 0xFF {
		t.Fatalf("ColorRAMPeek=0x%02X, want 0xFF (low nibble + forced-1 high nibble)", got)
	}
	if got := b.VICView(0, 0xD800); got != 0x0F {
		t.Fatalf("VICView color RAM=0x%02X, want 0x0F (masked to 4 bits)", got)
	}
}

func TestVICViewSeesCharROMInBanksZeroAndTwo(t *testing.T) {
	b := newTestBus()
	b.LoadCharROM(make([]byte, 4096))
	b.charROM[0] = 0x7E

	if got := b.VICView(0, 0x1000); got != 0x7E {
		t.Fatalf("bank 0 $1000: got 0x%02X, want char ROM byte 0x7E", got)
	}
	b.ram[0x5000] = 0x11 // bank 1 has no char ROM window: VIC $1000 is RAM $4000+$1000
	if got := b.VICView(1, 0x1000); got != 0x11 {
		t.Fatalf("bank 1 $1000: got 0x%02X, want plain RAM 0x11", got)
	}
}
