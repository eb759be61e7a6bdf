// Package host defines the boundary to the simulation runtime that owns the
// scene graph, timeline and render primitives. The playback controller only
// ever talks to these interfaces; concrete hosts live in the subpackages.
package host

// App is the handle to the simulation application.
type App interface {
	// IsRunning reports whether the host application is still alive.
	// The playback loop exits as soon as this turns false.
	IsRunning() bool

	// Render processes one host update: renders a frame and pumps any
	// host-side input or window events.
	Render() error

	// EnableExtension requests that the host load the named extension.
	EnableExtension(id string) error

	// Close shuts the host application down. Safe to call more than once.
	Close() error
}

// Timeline is the host playback timeline, addressed in timecode units.
type Timeline interface {
	IsPlaying() bool
	IsStopped() bool

	// SetEndTime sets the timeline end, in seconds.
	SetEndTime(seconds float64)

	// Play starts playback over the given timecode range.
	Play(startTimecode, endTimecode float64)

	// Stop halts playback and rewinds to the start timecode.
	Stop()

	// CurrentTimecode returns the playhead position.
	CurrentTimecode() float64
}

// Stage is the composed scene the host is currently displaying.
type Stage interface {
	// Open replaces the current stage with the scene at path.
	Open(path string) error

	// InsertSubLayer composes a layer onto the stage root at the given
	// position in the sublayer list (0 = highest priority). Layers already
	// at or below that position are pushed down.
	InsertSubLayer(path string, index int) error

	// SubLayers returns the composed layer identifiers, highest priority first.
	SubLayers() []string

	// ScenePath returns the path of the currently open scene, if any.
	ScenePath() string
}
