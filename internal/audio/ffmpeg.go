package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// FFmpegRecorder captures the microphone by running an ffmpeg process that
// writes WAV to a temp file until it is interrupted.
type FFmpegRecorder struct {
	Command    string
	Device     string
	SampleRate int
	Channels   int
}

// NewFFmpegRecorder returns a recorder using the given capture command.
func NewFFmpegRecorder(command, device string, sampleRate, channels int) *FFmpegRecorder {
	return &FFmpegRecorder{
		Command:    command,
		Device:     device,
		SampleRate: sampleRate,
		Channels:   channels,
	}
}

// Available reports whether the capture command is on PATH.
func (r *FFmpegRecorder) Available() bool {
	_, err := exec.LookPath(r.Command)
	return err == nil
}

// Start launches the capture process. It fails fast when the device cannot
// be opened (the platform's equivalent of a denied microphone permission).
func (r *FFmpegRecorder) Start(ctx context.Context) (Session, error) {
	path := filepath.Join(os.TempDir(), "parley-"+uuid.NewString()+".wav")

	cmd := exec.Command(r.Command, r.args(path)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", r.Command, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	// An unusable device makes ffmpeg exit almost immediately. Give it a
	// short grace window so acquisition failures surface here instead of as
	// an empty recording later.
	select {
	case err := <-done:
		_ = os.Remove(path)
		if err == nil {
			err = fmt.Errorf("capture process exited before recording")
		}
		if msg := lastLine(stderr.String()); msg != "" {
			return nil, fmt.Errorf("open capture device: %s: %w", msg, err)
		}
		return nil, fmt.Errorf("open capture device: %w", err)
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		_ = os.Remove(path)
		return nil, ctx.Err()
	case <-time.After(300 * time.Millisecond):
	}

	return &ffmpegSession{cmd: cmd, path: path, done: done}, nil
}

func (r *FFmpegRecorder) args(outPath string) []string {
	format, device := captureInput(r.Device)
	return []string{
		"-y",
		"-f", format,
		"-i", device,
		"-ar", strconv.Itoa(r.SampleRate),
		"-ac", strconv.Itoa(r.Channels),
		outPath,
	}
}

// captureInput maps the configured device to ffmpeg's per-platform input
// format and device syntax.
func captureInput(device string) (string, string) {
	switch runtime.GOOS {
	case "darwin":
		return "avfoundation", device
	case "windows":
		return "dshow", "audio=" + device
	default:
		return "alsa", device
	}
}

func lastLine(s string) string {
	lines := bytes.Split(bytes.TrimSpace([]byte(s)), []byte("\n"))
	if len(lines) == 0 {
		return ""
	}
	return string(bytes.TrimSpace(lines[len(lines)-1]))
}

type ffmpegSession struct {
	cmd  *exec.Cmd
	path string
	done chan error
}

// Stop interrupts ffmpeg so it finalizes the WAV header, then collects the
// recorded bytes. The temp file is removed on every path.
func (s *ffmpegSession) Stop() ([]byte, error) {
	if runtime.GOOS == "windows" {
		_ = s.cmd.Process.Kill()
	} else {
		_ = s.cmd.Process.Signal(os.Interrupt)
	}
	waitErr := <-s.done

	data, readErr := os.ReadFile(s.path)
	_ = os.Remove(s.path)

	if readErr != nil || len(data) == 0 {
		// ffmpeg exits non-zero when interrupted; that alone is not a
		// failure. Only report an error when nothing was recorded and the
		// process actually failed.
		if waitErr != nil && readErr != nil {
			return nil, fmt.Errorf("capture produced no audio: %w", waitErr)
		}
		return nil, nil
	}
	return data, nil
}
