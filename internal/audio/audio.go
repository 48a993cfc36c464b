// Package audio defines the sample sink interface; the oto-backed and
// headless backends are build-tag selected, grounded on the teacher's
// audio_backend_oto.go/audio_backend_headless.go split.
package audio

// Source supplies one int16 PCM sample per call, pulled by the backend
// at the configured sample rate (driven by SID.Sample in this module).
type Source interface {
	NextSample() int16
}

// Sink owns the platform audio output stream.
type Sink interface {
	Start(src Source)
	Stop()
	Close()
	Started() bool
}
