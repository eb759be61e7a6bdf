// Package scene opens the main scene on the host stage and composes
// override layers onto it.
package scene

import (
	"log/slog"

	"github.com/mvaleri/go-stageloop/stageloop/host"
)

// Controller is the playback surface the initializer drives after a scene
// swap. *stageloop.Player satisfies it.
type Controller interface {
	SetTerminalFrame(v int) error
	PlayFromStart()
}

// Initializer opens scenes on the host stage and restarts playback.
type Initializer struct {
	app       host.App
	stage     host.Stage
	sceneName string
	ctrl      Controller
}

func NewInitializer(app host.App, stage host.Stage, sceneName string, ctrl Controller) *Initializer {
	return &Initializer{
		app:       app,
		stage:     stage,
		sceneName: sceneName,
		ctrl:      ctrl,
	}
}

// Initialize opens the main scene under dir, composes the override layers
// (input order = priority order, highest first), updates the terminal frame
// and restarts playback.
//
// A main scene that fails to open is fatal: the error is logged and the host
// application is closed. A layer that fails to resolve is logged and skipped,
// keeping the remaining layers.
func (i *Initializer) Initialize(dir string, lastFrameIndex int, layerPaths []string) {
	mainScenePath := dir + i.sceneName
	if err := i.stage.Open(mainScenePath); err != nil {
		slog.Error("Could not open stage, closing application", "path", mainScenePath, "error", err)
		if cerr := i.app.Close(); cerr != nil {
			slog.Error("Failed to close application", "error", cerr)
		}
		return
	}

	slog.Info("Opened stage", "path", mainScenePath, "layers", len(layerPaths))

	// Every insert targets position 0, so composing in reverse input order
	// leaves the first path with the highest priority.
	for idx := len(layerPaths) - 1; idx >= 0; idx-- {
		if err := i.stage.InsertSubLayer(layerPaths[idx], 0); err != nil {
			slog.Error("Could not open layer", "path", layerPaths[idx], "error", err)
		}
	}

	if err := i.ctrl.SetTerminalFrame(lastFrameIndex); err != nil {
		slog.Error("Rejected terminal frame from scene load", "value", lastFrameIndex, "error", err)
		return
	}

	i.ctrl.PlayFromStart()
}
