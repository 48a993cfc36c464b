// Package keyboard implements the C64 8x8 keyboard matrix scanned
// through CIA-1's ports, plus a paste-from-clipboard convenience that
// feeds synthesized keystrokes into the matrix one at a time. The
// clipboard.Init/clipboard.Read(FmtText) usage is grounded on the
// teacher's video_backend_ebiten.go paste handler.
package keyboard

import (
	"sync"

	"golang.design/x/clipboard"
)

// Matrix is the 8x8 row/column grid; row is the output from CIA-1 port
// A (pulled low to select a row), column is read back on port B.
type Matrix struct {
	mu      sync.Mutex
	pressed [8][8]bool

	pasteQueue []rune
	pasteHold  int

	clipboardOnce sync.Once
	clipboardOK   bool
}

func NewMatrix() *Matrix { return &Matrix{} }

// SetKey marks a physical key (row, col) as pressed or released.
func (m *Matrix) SetKey(row, col int, down bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pressed[row][col] = down
}

// ReadPortA/ReadPortB implement cia.CIA's Peripheral interface for
// CIA-1: writing a 0 bit to a port-A row and reading port B back
// reports which columns in that row are pressed (active low).
func (m *Matrix) ReadPortA(ddr, out byte) byte { return 0xFF }

func (m *Matrix) ReadPortB(ddr, out byte) byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	rowSelect := out // caller already masked by ddr before calling in practice
	result := byte(0xFF)
	for row := 0; row < 8; row++ {
		if rowSelect&(1<<uint(row)) != 0 {
			continue
		}
		for col := 0; col < 8; col++ {
			if m.pressed[row][col] {
				result &^= 1 << uint(col)
			}
		}
	}
	return result
}

// QueuePaste reads the system clipboard and enqueues it as synthesized
// keystrokes; Tick drains the queue one character per call, holding
// each key down for a few frames so the running BASIC/KERNAL input
// loop notices it (real paste-buffer emulation, not a memory poke).
func (m *Matrix) QueuePaste() error {
	m.clipboardOnce.Do(func() { m.clipboardOK = clipboard.Init() == nil })
	if !m.clipboardOK {
		return nil
	}
	data := clipboard.Read(clipboard.FmtText)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pasteQueue = append(m.pasteQueue, []rune(string(data))...)
	return nil
}

// petsciiMatrixPos maps a PETSCII/ASCII rune to its (row, col) in the
// standard C64 keyboard matrix for the common printable range; keys
// outside this map are skipped during paste rather than failing it.
var petsciiMatrixPos = map[rune][2]int{
	'A': {1, 2}, 'B': {3, 4}, 'C': {2, 4}, 'D': {2, 2}, 'E': {1, 6},
	'F': {2, 5}, 'G': {3, 2}, 'H': {3, 5}, 'I': {4, 1}, 'J': {4, 2},
	'K': {4, 5}, 'L': {5, 2}, 'M': {4, 4}, 'N': {4, 7}, 'O': {4, 6},
	'P': {5, 1}, 'Q': {7, 6}, 'R': {2, 1}, 'S': {1, 5}, 'T': {2, 6},
	'U': {3, 6}, 'V': {3, 7}, 'W': {1, 1}, 'X': {2, 7}, 'Y': {3, 1},
	'Z': {1, 4}, ' ': {7, 4}, '\n': {0, 1}, '\r': {0, 1},
}

// Tick drains one queued paste character per call if the previous key's
// hold time has elapsed.
func (m *Matrix) Tick() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pasteHold > 0 {
		m.pasteHold--
		return
	}
	if len(m.pasteQueue) == 0 {
		return
	}
	for row := range m.pressed {
		for col := range m.pressed[row] {
			m.pressed[row][col] = false
		}
	}
	r := m.pasteQueue[0]
	m.pasteQueue = m.pasteQueue[1:]
	if pos, ok := petsciiMatrixPos[r]; ok {
		m.pressed[pos[0]][pos[1]] = true
	}
	m.pasteHold = 3
}
