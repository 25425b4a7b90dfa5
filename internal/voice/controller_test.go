package voice

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"parley/internal/api"
	"parley/internal/audio"
)

type fakeSession struct {
	data    []byte
	stopErr error
	stopped bool
}

func (s *fakeSession) Stop() ([]byte, error) {
	s.stopped = true
	return s.data, s.stopErr
}

type fakeRecorder struct {
	available bool
	session   *fakeSession
	startErr  error
	starts    int
}

func (r *fakeRecorder) Available() bool { return r.available }

func (r *fakeRecorder) Start(ctx context.Context) (audio.Session, error) {
	r.starts++
	if r.startErr != nil {
		return nil, r.startErr
	}
	return r.session, nil
}

type fakeTransport struct {
	voiceChats    int
	voiceCalls    int
	lastAudio     string
	lastConvID    string
	voiceChatResp api.VoiceChatResponse
	voiceChatErr  error
	voiceResp     api.VoiceResponse
	voiceErr      error
}

func (t *fakeTransport) VoiceChat(ctx context.Context, audio, conversationID string) (api.VoiceChatResponse, error) {
	t.voiceChats++
	t.lastAudio = audio
	t.lastConvID = conversationID
	return t.voiceChatResp, t.voiceChatErr
}

func (t *fakeTransport) Voice(ctx context.Context) (api.VoiceResponse, error) {
	t.voiceCalls++
	return t.voiceResp, t.voiceErr
}

func TestToggleCaptureRoundTrip(t *testing.T) {
	rec := &fakeRecorder{available: true, session: &fakeSession{data: []byte("RIFFdata")}}
	tr := &fakeTransport{voiceChatResp: api.VoiceChatResponse{
		Transcription: "hello",
		Response:      "hi",
	}}
	c := New(rec, tr, zap.NewNop())

	require.Equal(t, DecisionCapture, c.Toggle())
	require.Equal(t, CaptureStarted, c.BeginCapture(context.Background()))
	require.Equal(t, StateRecording, c.State())

	require.Equal(t, DecisionStop, c.Toggle())
	res, err := c.StopAndSend(context.Background(), "default")
	require.NoError(t, err)

	assert.True(t, res.Submitted)
	assert.Equal(t, "hello", res.Transcription)
	assert.Equal(t, "hi", res.Response)
	assert.Equal(t, 1, tr.voiceChats)
	assert.Equal(t, "default", tr.lastConvID)
	assert.Equal(t, EncodePayload([]byte("RIFFdata")), tr.lastAudio)
	assert.Equal(t, StateIdle, c.State())
}

func TestStopWithNoCapturedAudioDoesNotSubmit(t *testing.T) {
	rec := &fakeRecorder{available: true, session: &fakeSession{data: nil}}
	tr := &fakeTransport{}
	c := New(rec, tr, zap.NewNop())

	c.Toggle()
	require.Equal(t, CaptureStarted, c.BeginCapture(context.Background()))

	res, err := c.StopAndSend(context.Background(), "default")
	require.NoError(t, err)

	assert.False(t, res.Submitted)
	assert.Equal(t, 0, tr.voiceChats)
	assert.Equal(t, StateIdle, c.State())
}

func TestAcquisitionFailureFallsBackToLegacy(t *testing.T) {
	rec := &fakeRecorder{available: true, startErr: errors.New("device busy")}
	tr := &fakeTransport{voiceResp: api.VoiceResponse{Message: "spoken text", Engine: "google"}}
	c := New(rec, tr, zap.NewNop())

	require.Equal(t, DecisionCapture, c.Toggle())
	require.Equal(t, CaptureFellBack, c.BeginCapture(context.Background()))
	require.Equal(t, StateLegacyPending, c.State())

	resp, err := c.Legacy(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "spoken text", resp.Message)
	assert.Equal(t, 1, tr.voiceCalls)
	assert.Equal(t, 0, tr.voiceChats)
	assert.Equal(t, StateIdle, c.State())
}

func TestRecorderUnavailableUsesLegacy(t *testing.T) {
	rec := &fakeRecorder{available: false}
	c := New(rec, &fakeTransport{}, zap.NewNop())

	require.Equal(t, DecisionLegacy, c.Toggle())
	assert.Equal(t, StateLegacyPending, c.State())
	assert.Equal(t, 0, rec.starts)
}

func TestStopWhileAcquiringDiscardsSession(t *testing.T) {
	sess := &fakeSession{data: []byte("RIFFdata")}
	rec := &fakeRecorder{available: true, session: sess}
	tr := &fakeTransport{}
	c := New(rec, tr, zap.NewNop())

	require.Equal(t, DecisionCapture, c.Toggle())
	// Second toggle lands before acquisition completes.
	require.Equal(t, DecisionNone, c.Toggle())

	require.Equal(t, CaptureDiscarded, c.BeginCapture(context.Background()))
	assert.True(t, sess.stopped)
	assert.Equal(t, 0, tr.voiceChats)
	assert.Equal(t, StateIdle, c.State())
}

func TestRepeatedToggleAfterStopIsRejected(t *testing.T) {
	rec := &fakeRecorder{available: true, session: &fakeSession{data: []byte("RIFFdata")}}
	tr := &fakeTransport{voiceChatResp: api.VoiceChatResponse{Transcription: "hi", Response: "hello"}}
	c := New(rec, tr, zap.NewNop())

	c.Toggle()
	require.Equal(t, CaptureStarted, c.BeginCapture(context.Background()))
	require.Equal(t, DecisionStop, c.Toggle())

	// The stop is claimed immediately; a rapid extra toggle before
	// StopAndSend runs must not produce a second stop.
	assert.Equal(t, StateEncoding, c.State())
	assert.Equal(t, DecisionNone, c.Toggle())

	res, err := c.StopAndSend(context.Background(), "default")
	require.NoError(t, err)
	assert.True(t, res.Submitted)
	assert.Equal(t, 1, tr.voiceChats)
}

func TestToggleWhileSubmittingDoesNothing(t *testing.T) {
	c := New(&fakeRecorder{available: true}, &fakeTransport{}, zap.NewNop())
	c.setState(StateSending)

	assert.Equal(t, DecisionNone, c.Toggle())
	assert.Equal(t, StateSending, c.State())
}

func TestStopAndSendStopError(t *testing.T) {
	rec := &fakeRecorder{available: true, session: &fakeSession{stopErr: errors.New("device lost")}}
	tr := &fakeTransport{}
	c := New(rec, tr, zap.NewNop())

	c.Toggle()
	require.Equal(t, CaptureStarted, c.BeginCapture(context.Background()))

	_, err := c.StopAndSend(context.Background(), "default")
	require.Error(t, err)
	assert.Equal(t, 0, tr.voiceChats)
	assert.Equal(t, StateIdle, c.State())
}

func TestEncodePayload(t *testing.T) {
	wav := []byte{0x52, 0x49, 0x46, 0x46}
	payload := EncodePayload(wav)

	assert.Equal(t, "data:audio/wav;base64,"+base64.StdEncoding.EncodeToString(wav), payload)
}
