package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"parley/internal/api"
	"parley/internal/audio"
	"parley/internal/config"
	"parley/internal/logging"
	"parley/internal/store"
	"parley/internal/ui"
	"parley/internal/voice"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogPath)
	defer log.Sync()

	// Preferences are a convenience; run with defaults when the store cannot
	// be opened.
	var prefs *store.Prefs
	if dir, err := config.Dir(); err != nil {
		log.Warn("resolving config directory", zap.Error(err))
	} else if prefs, err = store.Open(dir); err != nil {
		log.Warn("opening preference store", zap.Error(err))
		prefs = nil
	}

	client := api.New(cfg.ServerURL, log)
	recorder := audio.NewFFmpegRecorder(
		cfg.Recorder.Command,
		cfg.Recorder.Device,
		cfg.Recorder.SampleRate,
		cfg.Recorder.Channels,
	)
	controller := voice.New(recorder, client, log)

	m := ui.InitialModel(cfg, client, controller, prefs, log)
	p := ui.NewProgram(&m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if prefs != nil {
		if err := prefs.Close(); err != nil {
			log.Warn("closing preference store", zap.Error(err))
		}
	}
}
