// Package voice owns the recording-session state machine for voice turns:
//
//	idle -> acquiring -> recording -> encoding -> sending -> idle
//
// with idle -> legacy-pending -> idle as the fallback branch when local
// capture is unavailable or the microphone cannot be acquired. At most one
// session exists at a time; toggling while a session is active requests a
// stop rather than starting a second one.
package voice

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"parley/internal/api"
	"parley/internal/audio"
)

// State is the recording-session state.
type State int

const (
	StateIdle State = iota
	StateAcquiring
	StateRecording
	StateEncoding
	StateSending
	StateLegacyPending
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAcquiring:
		return "acquiring"
	case StateRecording:
		return "recording"
	case StateEncoding:
		return "encoding"
	case StateSending:
		return "sending"
	case StateLegacyPending:
		return "legacy-pending"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Decision tells the caller what follow-up work a toggle requires.
type Decision int

const (
	// DecisionNone: nothing to start; either a stop was noted for an
	// in-flight acquisition or the session is busy submitting.
	DecisionNone Decision = iota
	// DecisionCapture: run BeginCapture.
	DecisionCapture
	// DecisionStop: run StopAndSend.
	DecisionStop
	// DecisionLegacy: run Legacy.
	DecisionLegacy
)

// CaptureOutcome reports how BeginCapture ended.
type CaptureOutcome int

const (
	// CaptureStarted: the microphone is held and chunks are buffering.
	CaptureStarted CaptureOutcome = iota
	// CaptureFellBack: acquisition failed; the caller must run Legacy.
	CaptureFellBack
	// CaptureDiscarded: a stop arrived before acquisition finished; the
	// device was released and nothing will be submitted.
	CaptureDiscarded
)

// Transport is the slice of the backend client the controller needs.
type Transport interface {
	VoiceChat(ctx context.Context, audio, conversationID string) (api.VoiceChatResponse, error)
	Voice(ctx context.Context) (api.VoiceResponse, error)
}

// Result is the outcome of a completed voice turn.
type Result struct {
	Transcription string
	Response      string
	// Submitted is false when the session ended without sending anything
	// (stopped before any audio was captured).
	Submitted bool
}

// Controller drives one recording session at a time. Capture and network
// work happen on caller goroutines, so state is mutex-guarded.
type Controller struct {
	mu            sync.Mutex
	state         State
	stopRequested bool
	session       audio.Session

	recorder  audio.Recorder
	transport Transport
	log       *zap.Logger
}

// New returns an idle controller.
func New(recorder audio.Recorder, transport Transport, log *zap.Logger) *Controller {
	return &Controller{
		recorder:  recorder,
		transport: transport,
		log:       log,
	}
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Toggle is the single entry point for the capture control. From idle it
// starts a session (local capture when the capability probe passes, the
// legacy server-side path otherwise); while capturing it requests a stop;
// while a submission is in flight it does nothing.
func (c *Controller) Toggle() Decision {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateIdle:
		c.stopRequested = false
		if c.recorder.Available() {
			c.state = StateAcquiring
			return DecisionCapture
		}
		c.state = StateLegacyPending
		return DecisionLegacy
	case StateAcquiring:
		c.stopRequested = true
		return DecisionNone
	case StateRecording:
		// Claim the stop here so a repeated toggle before StopAndSend runs
		// cannot produce a second stop.
		c.state = StateEncoding
		return DecisionStop
	default:
		return DecisionNone
	}
}

// BeginCapture acquires the microphone and starts buffering. Acquisition
// failure is not surfaced to the user: it logs and falls back to the legacy
// path, per the permission-failure policy.
func (c *Controller) BeginCapture(ctx context.Context) CaptureOutcome {
	sess, err := c.recorder.Start(ctx)

	c.mu.Lock()
	if err != nil {
		c.state = StateLegacyPending
		c.mu.Unlock()
		c.log.Warn("microphone unavailable, falling back to server-side capture", zap.Error(err))
		return CaptureFellBack
	}
	if c.stopRequested {
		c.stopRequested = false
		c.state = StateIdle
		c.mu.Unlock()
		if _, stopErr := sess.Stop(); stopErr != nil {
			c.log.Warn("releasing discarded capture session", zap.Error(stopErr))
		}
		return CaptureDiscarded
	}
	c.session = sess
	c.state = StateRecording
	c.mu.Unlock()
	return CaptureStarted
}

// StopAndSend stops the capture, releases the device, and submits the
// recording to the voice-chat endpoint. A session with zero captured bytes
// is not submitted: it returns Result{Submitted: false} with no error.
func (c *Controller) StopAndSend(ctx context.Context, conversationID string) (Result, error) {
	c.mu.Lock()
	sess := c.session
	c.session = nil
	c.state = StateEncoding
	c.mu.Unlock()

	if sess == nil {
		c.setState(StateIdle)
		return Result{}, nil
	}

	data, err := sess.Stop()
	if err != nil {
		c.setState(StateIdle)
		return Result{}, fmt.Errorf("stop capture: %w", err)
	}
	if len(data) == 0 {
		c.setState(StateIdle)
		return Result{}, nil
	}

	payload := EncodePayload(data)
	c.setState(StateSending)

	resp, err := c.transport.VoiceChat(ctx, payload, conversationID)
	c.setState(StateIdle)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Transcription: resp.Transcription,
		Response:      resp.Response,
		Submitted:     true,
	}, nil
}

// Legacy asks the server to record on its own device. Used when local
// capture is unavailable or acquisition failed.
func (c *Controller) Legacy(ctx context.Context) (api.VoiceResponse, error) {
	resp, err := c.transport.Voice(ctx)
	c.setState(StateIdle)
	return resp, err
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// EncodePayload frames WAV bytes the way the voice-chat endpoint expects:
// a data URL whose base64 part follows the first comma.
func EncodePayload(wav []byte) string {
	return "data:audio/wav;base64," + base64.StdEncoding.EncodeToString(wav)
}
