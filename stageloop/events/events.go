// Package events carries the one externally delivered event the player
// reacts to: a request to load a new scene and animation.
package events

// LoadScene asks the player to reinitialize from a new scene directory.
// LayerPaths are override layers in priority order, highest first.
type LoadScene struct {
	Directory      string   `json:"directory"`
	LastFrameIndex int      `json:"last_frame_index"`
	LayerPaths     []string `json:"layer_paths,omitempty"`
}

// Bus is a buffered queue of scene-load events. Producers may publish from
// any goroutine; the playback loop drains the queue once per cycle and
// dispatches each event synchronously.
type Bus struct {
	events chan LoadScene
}

// NewBus creates a bus that buffers up to bufferSize pending events.
func NewBus(bufferSize int) *Bus {
	return &Bus{
		events: make(chan LoadScene, bufferSize),
	}
}

// Publish enqueues an event. Returns false if the queue is full.
func (b *Bus) Publish(e LoadScene) bool {
	select {
	case b.events <- e:
		return true
	default:
		return false
	}
}

// Poll returns the next pending event without blocking.
func (b *Bus) Poll() (LoadScene, bool) {
	select {
	case e := <-b.events:
		return e, true
	default:
		return LoadScene{}, false
	}
}

// Pending returns the number of queued events.
func (b *Bus) Pending() int {
	return len(b.events)
}
