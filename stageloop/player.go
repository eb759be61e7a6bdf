// Package stageloop implements a looping animation player on top of a
// simulation host: it plays the host timeline at a fixed rate, restarts from
// frame zero when the terminal frame is reached or after an external
// stop/start, and swaps scenes on request.
package stageloop

import (
	"fmt"
	"log/slog"

	"github.com/mvaleri/go-stageloop/stageloop/events"
	"github.com/mvaleri/go-stageloop/stageloop/host"
	"github.com/mvaleri/go-stageloop/stageloop/timing"
)

// RateHz is the playback loop rate.
const RateHz = 60.0

// TimecodeBase is the fixed timecode rate of the host timeline, independent
// of the loop's own rate.
const TimecodeBase = 60.0

// LivestreamExtension is enabled once at startup so remote viewers can
// attach to the host's stream.
const LivestreamExtension = "omni.kit.livestream.webrtc"

// LoadHandler reacts to a scene-load event. Handlers run synchronously on
// the playback loop's goroutine, before the next render.
type LoadHandler func(events.LoadScene)

// Player owns the frame counter and the terminal frame, and drives the host
// timeline: render, sleep the rest of the cycle, then decide whether to
// restart playback, advance the counter, or do nothing.
type Player struct {
	app      host.App
	timeline host.Timeline
	limiter  timing.Limiter

	frameIndex     int
	lastFrameIndex int
	resetPending   bool

	bus    *events.Bus
	onLoad LoadHandler
}

// New creates a player over the given host handles. The livestream extension
// is enabled as part of construction.
func New(app host.App, timeline host.Timeline, lastFrameIndex int) (*Player, error) {
	if lastFrameIndex < 0 {
		return nil, fmt.Errorf("stageloop: last frame index must be non-negative, got %d", lastFrameIndex)
	}

	limiter, err := timing.NewSteadyRate(RateHz)
	if err != nil {
		return nil, err
	}

	p := &Player{
		app:            app,
		timeline:       timeline,
		limiter:        limiter,
		lastFrameIndex: lastFrameIndex,
	}

	if err := app.EnableExtension(LivestreamExtension); err != nil {
		slog.Warn("Could not enable livestream extension", "id", LivestreamExtension, "error", err)
	}

	return p, nil
}

// SetLimiter replaces the cycle limiter. A nil limiter disables rate
// limiting, which is what batch sim runs want.
func (p *Player) SetLimiter(l timing.Limiter) {
	if l == nil {
		l = timing.NewNoOpLimiter()
	}
	p.limiter = l
}

// SetBus attaches the event bus drained once per cycle.
func (p *Player) SetBus(bus *events.Bus) {
	p.bus = bus
}

// OnLoadScene registers the handler invoked for scene-load events.
func (p *Player) OnLoadScene(h LoadHandler) {
	p.onLoad = h
}

// FrameIndex returns the current frame counter.
func (p *Player) FrameIndex() int { return p.frameIndex }

// LastFrameIndex returns the terminal frame.
func (p *Player) LastFrameIndex() int { return p.lastFrameIndex }

// SetTerminalFrame updates the frame at which playback loops back to zero.
func (p *Player) SetTerminalFrame(v int) error {
	if v < 0 {
		return fmt.Errorf("stageloop: terminal frame must be non-negative, got %d", v)
	}

	p.lastFrameIndex = v
	return nil
}

// PlayFromStart commands the host to play the full animation range from
// timecode zero and resets the frame counter.
func (p *Player) PlayFromStart() {
	p.timeline.SetEndTime(float64(p.lastFrameIndex) / TimecodeBase)
	p.timeline.Play(0, float64(p.lastFrameIndex))
	p.frameIndex = 0
}

// Run drives the playback loop until the host application stops running,
// then closes it. Playback starts immediately.
func (p *Player) Run() error {
	slog.Info("Starting playback loop", "last_frame_index", p.lastFrameIndex, "rate_hz", RateHz)

	p.PlayFromStart()

	for p.app.IsRunning() {
		p.drainEvents()

		// Render first so host-side input (e.g. a stop button) is observed
		// before this cycle's decisions.
		if err := p.app.Render(); err != nil {
			slog.Error("Render failed", "error", err)
		}

		p.limiter.WaitForNextFrame()
		p.Step()
	}

	slog.Info("Playback loop exited", "frame_index", p.frameIndex)
	return p.app.Close()
}

// Step runs one cycle of the playback state machine.
func (p *Player) Step() {
	if p.timeline.IsStopped() && !p.resetPending {
		p.resetPending = true
	}
	if p.timeline.IsPlaying() && p.resetPending {
		p.PlayFromStart()
		p.resetPending = false
	}

	// Loop back around once the terminal frame is reached.
	if p.frameIndex >= p.lastFrameIndex {
		p.PlayFromStart()
	}

	if p.timeline.IsPlaying() {
		p.frameIndex++
	}
}

func (p *Player) drainEvents() {
	if p.bus == nil {
		return
	}

	for {
		e, ok := p.bus.Poll()
		if !ok {
			return
		}

		if p.onLoad == nil {
			slog.Warn("Dropping scene load event, no handler registered", "directory", e.Directory)
			continue
		}

		slog.Info("Handling scene load event",
			"directory", e.Directory,
			"last_frame_index", e.LastFrameIndex,
			"layers", len(e.LayerPaths))
		p.onLoad(e)
	}
}
