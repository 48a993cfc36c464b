//go:build headless

// Headless fallback, grounded on the teacher's gui_frontend_headless.go:
// frames are accepted and discarded (or optionally retained for test
// inspection) with no window system dependency at all.
package video

// HeadlessSink discards frames; LastFrame optionally retains the most
// recent one for tests/tools that want to inspect output without a GUI.
type HeadlessSink struct {
	Retain    bool
	LastFrame []uint32
}

func NewHeadlessSink(retain bool) *HeadlessSink {
	return &HeadlessSink{Retain: retain}
}

func (s *HeadlessSink) Present(frame []uint32, width, height int) error {
	if s.Retain {
		if cap(s.LastFrame) < len(frame) {
			s.LastFrame = make([]uint32, len(frame))
		}
		s.LastFrame = s.LastFrame[:len(frame)]
		copy(s.LastFrame, frame)
	}
	return nil
}

func (s *HeadlessSink) PollPaste() bool { return false }

func (s *HeadlessSink) Close() error { return nil }

// Run executes tick in a tight loop until it returns false, standing in
// for the ebiten backend's windowed main loop.
func (s *HeadlessSink) Run(tick func() bool) error {
	for tick() {
	}
	return nil
}
