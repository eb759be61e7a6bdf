package sim

import "github.com/mvaleri/go-stageloop/stageloop/host"

// Timeline models the host playback timeline. The playhead advances while
// playing and holds at the end timecode; looping is the controller's job.
type Timeline struct {
	playing    bool
	current    float64
	start      float64
	end        float64
	endSeconds float64
	playCalls  int
}

func (t *Timeline) IsPlaying() bool { return t.playing }
func (t *Timeline) IsStopped() bool { return !t.playing }

func (t *Timeline) SetEndTime(seconds float64) {
	t.endSeconds = seconds
}

func (t *Timeline) Play(startTimecode, endTimecode float64) {
	t.start = startTimecode
	t.end = endTimecode
	t.current = startTimecode
	t.playing = true
	t.playCalls++
}

func (t *Timeline) Stop() {
	t.playing = false
	t.current = t.start
}

// Resume restarts playback without moving the playhead. This is what a
// user's play button does after a stop.
func (t *Timeline) Resume() {
	t.playing = true
}

func (t *Timeline) CurrentTimecode() float64 { return t.current }

// EndTimecode returns the end of the last played range.
func (t *Timeline) EndTimecode() float64 { return t.end }

// EndTime returns the configured end time in seconds.
func (t *Timeline) EndTime() float64 { return t.endSeconds }

// PlayCalls returns how many times Play has been commanded.
func (t *Timeline) PlayCalls() int { return t.playCalls }

func (t *Timeline) advance(units float64) {
	if !t.playing {
		return
	}

	t.current += units
	if t.current > t.end {
		t.current = t.end
	}
}

var _ host.Timeline = (*Timeline)(nil)
