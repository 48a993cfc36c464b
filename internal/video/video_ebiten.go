//go:build !headless

// Backend wired on github.com/hajimehoshi/ebiten/v2, grounded on the
// teacher's video_backend_ebiten.go: an ebiten.Game driving a single
// RGBA texture updated once per completed frame, plus a clipboard-paste
// hotkey forwarded to the keyboard matrix.
package video

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenSink implements Sink on top of an ebiten window.
type EbitenSink struct {
	img        *ebiten.Image
	width      int
	height     int
	scale      int
	pasteFlag  bool
	titleShown string
}

// NewEbitenSink opens a window sized width*scale x height*scale.
func NewEbitenSink(width, height, scale int, title string) (*EbitenSink, error) {
	if scale < 1 {
		scale = 2
	}
	s := &EbitenSink{
		img:        ebiten.NewImage(width, height),
		width:      width,
		height:     height,
		scale:      scale,
		titleShown: title,
	}
	ebiten.SetWindowSize(width*scale, height*scale)
	ebiten.SetWindowTitle(title)
	return s, nil
}

func (s *EbitenSink) Present(frame []uint32, width, height int) error {
	if width != s.width || height != s.height {
		return &Error{Operation: "present", Details: "frame size mismatch"}
	}
	pix := make([]byte, width*height*4)
	for i, c := range frame {
		pix[i*4+0] = byte(c >> 16)
		pix[i*4+1] = byte(c >> 8)
		pix[i*4+2] = byte(c)
		pix[i*4+3] = 0xFF
	}
	s.img.WritePixels(pix)
	return nil
}

func (s *EbitenSink) PollPaste() bool {
	fired := s.pasteFlag
	s.pasteFlag = false
	return fired
}

func (s *EbitenSink) Close() error { return nil }

// Run blocks running the ebiten main loop, calling tick once per display
// frame (VIC runs its own internal cycle counting independently; this
// only paces presentation and input polling).
func (s *EbitenSink) Run(tick func()) error {
	return ebiten.RunGame(&gameAdapter{sink: s, tick: tick})
}

type gameAdapter struct {
	sink *EbitenSink
	tick func()
}

func (g *gameAdapter) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyV) && (ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)) {
		g.sink.pasteFlag = true
	}
	g.tick()
	return nil
}

func (g *gameAdapter) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.sink.img, nil)
	if ebiten.IsKeyPressed(ebiten.KeyF1) {
		ebitenutil.DebugPrint(screen, g.sink.titleShown)
	}
}

func (g *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.sink.width, g.sink.height
}
