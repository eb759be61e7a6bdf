// Package sim provides an in-memory host implementation used for headless
// runs and tests. The stage is backed by the local filesystem: opening a
// scene or composing a layer requires the file to exist, mirroring the
// resolution failures a real runtime reports.
package sim

import (
	"errors"
	"log/slog"

	"github.com/mvaleri/go-stageloop/stageloop/host"
)

// Options configures the simulated host application.
type Options struct {
	// LaunchConfig is opaque host launch configuration, recorded as-is.
	LaunchConfig map[string]any

	// Experience names the host experience profile.
	Experience string

	// MaxFrames stops the app after this many rendered frames (0 = unlimited).
	MaxFrames int
}

// App simulates the host application: a timeline, a stage and an extension
// registry, advanced one frame per Render call. All methods are meant to be
// called from the playback loop's goroutine.
type App struct {
	opts       Options
	timeline   *Timeline
	stage      *Stage
	extensions map[string]bool
	frames     int
	closed     bool
}

func New(opts Options) *App {
	return &App{
		opts:       opts,
		timeline:   &Timeline{},
		stage:      &Stage{},
		extensions: make(map[string]bool),
	}
}

// Timeline returns the host timeline handle.
func (a *App) Timeline() *Timeline { return a.timeline }

// Stage returns the host stage handle.
func (a *App) Stage() *Stage { return a.stage }

// Experience returns the configured experience profile.
func (a *App) Experience() string { return a.opts.Experience }

func (a *App) IsRunning() bool {
	if a.closed {
		return false
	}
	return a.opts.MaxFrames == 0 || a.frames < a.opts.MaxFrames
}

// Render advances the host by one frame. The timeline playhead moves one
// timecode unit per rendered frame while playing.
func (a *App) Render() error {
	if a.closed {
		return errors.New("sim: render after close")
	}

	a.frames++
	a.timeline.advance(1)
	return nil
}

// FrameCount returns the number of frames rendered so far.
func (a *App) FrameCount() int { return a.frames }

func (a *App) EnableExtension(id string) error {
	if a.closed {
		return errors.New("sim: enable extension after close")
	}

	a.extensions[id] = true
	slog.Debug("Extension enabled", "id", id)
	return nil
}

// ExtensionEnabled reports whether the named extension has been enabled.
func (a *App) ExtensionEnabled(id string) bool { return a.extensions[id] }

func (a *App) Close() error {
	if a.closed {
		return nil
	}

	a.closed = true
	slog.Info("Host application closed", "frames", a.frames)
	return nil
}

var _ host.App = (*App)(nil)
