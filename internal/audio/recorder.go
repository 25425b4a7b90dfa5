// Package audio provides microphone capture for voice turns. Capture is a
// strategy behind the Recorder interface: the real implementation shells out
// to ffmpeg, and Available acts as the capability probe deciding whether
// local capture can be used at all.
package audio

import "context"

// Session is a live capture session holding the microphone.
type Session interface {
	// Stop terminates the capture, releases the device, and returns the
	// recorded WAV bytes. A nil, nil return means nothing was captured.
	Stop() ([]byte, error)
}

// Recorder creates microphone capture sessions.
type Recorder interface {
	// Available reports whether this capture strategy can run on the host.
	Available() bool
	// Start acquires the microphone and begins recording.
	Start(ctx context.Context) (Session, error)
}
