//go:build !headless

// Backend wired on github.com/ebitengine/oto/v3, grounded directly on
// the teacher's audio_backend_oto.go: an atomic source pointer read
// lock-free from oto's Read callback, float32LE mono output.
package audio

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/oto/v3"
)

type OtoSink struct {
	ctx       *oto.Context
	player    *oto.Player
	src       atomic.Pointer[Source]
	sampleBuf []float32
	started   bool
	mutex     sync.Mutex
}

func NewOtoSink(sampleRate int) (*OtoSink, error) {
	opts := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	}
	ctx, ready, err := oto.NewContext(opts)
	if err != nil {
		return nil, err
	}
	<-ready
	return &OtoSink{ctx: ctx}, nil
}

func (s *OtoSink) Start(src Source) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.src.Store(&src)
	if s.player == nil {
		s.player = s.ctx.NewPlayer(s)
		s.sampleBuf = make([]float32, 4096)
	}
	if !s.started {
		s.player.Play()
		s.started = true
	}
}

func (s *OtoSink) Read(p []byte) (int, error) {
	srcPtr := s.src.Load()
	if srcPtr == nil {
		for i := range p {
			p[i] = 0
		}
		return len(p), nil
	}
	src := *srcPtr
	numSamples := len(p) / 4
	if len(s.sampleBuf) < numSamples {
		s.sampleBuf = make([]float32, numSamples)
	}
	buf := s.sampleBuf[:numSamples]
	for i := 0; i < numSamples; i++ {
		buf[i] = float32(src.NextSample()) / 32768.0
	}
	copy(p, (*[1 << 30]byte)(unsafe.Pointer(&buf[0]))[:len(p)])
	return len(p), nil
}

func (s *OtoSink) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.started && s.player != nil {
		s.player.Close()
		s.started = false
	}
}

func (s *OtoSink) Close() {
	s.Stop()
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.player != nil {
		s.player.Close()
		s.player = nil
	}
}

func (s *OtoSink) Started() bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.started
}
