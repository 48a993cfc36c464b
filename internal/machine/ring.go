package machine

import (
	"sync/atomic"

	"c64emu/internal/corelog"
)

var ringLog = corelog.New("audio-ring")

// ring is a lock-free single-producer/single-consumer sample queue,
// grounded on §5's concurrency model ("communication uses lock-free
// single-producer/single-consumer discipline") and the teacher's
// SoundChip.ReadSampleFromRing consumer shape (audio_backend_oto.go).
// The scheduler goroutine is the sole producer; the host audio
// callback is the sole consumer.
type ring struct {
	buf        []int16
	mask       uint32
	writeIndex atomic.Uint32
	readIndex  atomic.Uint32
}

func newRing(size int) *ring {
	n := 1
	for n < size {
		n <<= 1
	}
	return &ring{buf: make([]int16, n), mask: uint32(n - 1)}
}

// push drops the oldest unread sample when the ring is full rather than
// blocking the scheduler — audio underrun is preferable to stalling the
// cycle-accurate core.
func (r *ring) push(v int16) {
	w := r.writeIndex.Load()
	next := w + 1
	if next-r.readIndex.Load() > r.mask {
		r.readIndex.Add(1)
		ringLog.Warn("audio consumer falling behind, dropping oldest sample")
	}
	r.buf[w&r.mask] = v
	r.writeIndex.Store(next)
}

func (r *ring) pop() int16 {
	read := r.readIndex.Load()
	if read == r.writeIndex.Load() {
		return 0
	}
	v := r.buf[read&r.mask]
	r.readIndex.Store(read + 1)
	return v
}
