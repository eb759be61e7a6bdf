package sim

import (
	"fmt"
	"os"
	"slices"

	"github.com/mvaleri/go-stageloop/stageloop/host"
)

// Stage models the composed scene. Scene and layer paths resolve against the
// local filesystem.
type Stage struct {
	scenePath string
	subLayers []string
}

// Open replaces the current stage with the scene at path. Any previously
// composed sublayers are dropped.
func (s *Stage) Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("sim: open stage %s: %w", path, err)
	}

	s.scenePath = path
	s.subLayers = nil
	return nil
}

// InsertSubLayer composes the layer at path into the sublayer list.
// The index is clamped to the current list bounds.
func (s *Stage) InsertSubLayer(path string, index int) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("sim: open layer %s: %w", path, err)
	}

	if index < 0 {
		index = 0
	}
	if index > len(s.subLayers) {
		index = len(s.subLayers)
	}

	s.subLayers = slices.Insert(s.subLayers, index, path)
	return nil
}

func (s *Stage) SubLayers() []string {
	return slices.Clone(s.subLayers)
}

func (s *Stage) ScenePath() string { return s.scenePath }

var _ host.Stage = (*Stage)(nil)
