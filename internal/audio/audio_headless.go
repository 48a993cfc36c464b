//go:build headless

// Headless fallback, grounded on the teacher's audio_backend_headless.go
// style: a no-op stub that satisfies the interface without opening any
// real output device.
package audio

type HeadlessSink struct {
	started bool
}

func NewHeadlessSink(sampleRate int) *HeadlessSink {
	return &HeadlessSink{}
}

func (s *HeadlessSink) Start(src Source) { s.started = true }

func (s *HeadlessSink) Stop() { s.started = false }

func (s *HeadlessSink) Close() { s.started = false }

func (s *HeadlessSink) Started() bool { return s.started }
