package sim_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mvaleri/go-stageloop/stageloop/host"
	"github.com/mvaleri/go-stageloop/stageloop/host/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppImplementsHostInterfaces(t *testing.T) {
	var _ host.App = (*sim.App)(nil)
	var _ host.Timeline = (*sim.Timeline)(nil)
	var _ host.Stage = (*sim.Stage)(nil)
}

func TestAppFrameBudget(t *testing.T) {
	app := sim.New(sim.Options{MaxFrames: 3})

	for i := 0; i < 3; i++ {
		assert.True(t, app.IsRunning())
		require.NoError(t, app.Render())
	}

	assert.False(t, app.IsRunning())
	assert.Equal(t, 3, app.FrameCount())
}

func TestAppClose(t *testing.T) {
	app := sim.New(sim.Options{})

	require.NoError(t, app.Close())
	assert.False(t, app.IsRunning())
	assert.Error(t, app.Render())
	assert.Error(t, app.EnableExtension("omni.kit.livestream.webrtc"))

	// Closing again is fine.
	assert.NoError(t, app.Close())
}

func TestAppExtensions(t *testing.T) {
	app := sim.New(sim.Options{})

	assert.False(t, app.ExtensionEnabled("omni.kit.livestream.webrtc"))
	require.NoError(t, app.EnableExtension("omni.kit.livestream.webrtc"))
	assert.True(t, app.ExtensionEnabled("omni.kit.livestream.webrtc"))
}

func TestTimeline(t *testing.T) {
	t.Run("advances one timecode unit per frame while playing", func(t *testing.T) {
		app := sim.New(sim.Options{})
		tl := app.Timeline()

		tl.Play(0, 5)
		assert.True(t, tl.IsPlaying())
		assert.False(t, tl.IsStopped())

		require.NoError(t, app.Render())
		require.NoError(t, app.Render())
		assert.Equal(t, 2.0, tl.CurrentTimecode())
	})

	t.Run("playhead holds at the end timecode", func(t *testing.T) {
		app := sim.New(sim.Options{})
		tl := app.Timeline()

		tl.Play(0, 2)
		for i := 0; i < 5; i++ {
			require.NoError(t, app.Render())
		}
		assert.Equal(t, 2.0, tl.CurrentTimecode())
	})

	t.Run("does not advance while stopped", func(t *testing.T) {
		app := sim.New(sim.Options{})
		tl := app.Timeline()

		tl.Play(0, 10)
		require.NoError(t, app.Render())
		tl.Stop()

		assert.True(t, tl.IsStopped())
		assert.Equal(t, 0.0, tl.CurrentTimecode(), "stop rewinds to the start timecode")

		require.NoError(t, app.Render())
		assert.Equal(t, 0.0, tl.CurrentTimecode())
	})

	t.Run("resume keeps the playhead", func(t *testing.T) {
		app := sim.New(sim.Options{})
		tl := app.Timeline()

		tl.Play(0, 10)
		require.NoError(t, app.Render())
		require.NoError(t, app.Render())
		tl.Stop()
		tl.Resume()

		assert.True(t, tl.IsPlaying())
		assert.Equal(t, 0.0, tl.CurrentTimecode())
	})

	t.Run("counts play commands", func(t *testing.T) {
		tl := sim.New(sim.Options{}).Timeline()

		tl.Play(0, 10)
		tl.Play(0, 10)
		assert.Equal(t, 2, tl.PlayCalls())
	})
}

func TestStage(t *testing.T) {
	dir := t.TempDir()
	scenePath := filepath.Join(dir, "main_scene.usd")
	require.NoError(t, os.WriteFile(scenePath, []byte("#usda 1.0"), 0644))

	t.Run("open resolves against the filesystem", func(t *testing.T) {
		stage := &sim.Stage{}

		require.NoError(t, stage.Open(scenePath))
		assert.Equal(t, scenePath, stage.ScenePath())

		assert.Error(t, stage.Open(filepath.Join(dir, "missing.usd")))
	})

	t.Run("open drops previously composed layers", func(t *testing.T) {
		layer := filepath.Join(dir, "ovr.usd")
		require.NoError(t, os.WriteFile(layer, nil, 0644))

		stage := &sim.Stage{}
		require.NoError(t, stage.Open(scenePath))
		require.NoError(t, stage.InsertSubLayer(layer, 0))
		require.NoError(t, stage.Open(scenePath))
		assert.Empty(t, stage.SubLayers())
	})

	t.Run("insert at zero pushes existing layers down", func(t *testing.T) {
		var paths []string
		for _, name := range []string{"a.usd", "b.usd", "c.usd"} {
			p := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(p, nil, 0644))
			paths = append(paths, p)
		}

		stage := &sim.Stage{}
		require.NoError(t, stage.Open(scenePath))
		for _, p := range paths {
			require.NoError(t, stage.InsertSubLayer(p, 0))
		}

		assert.Equal(t, []string{paths[2], paths[1], paths[0]}, stage.SubLayers())
	})

	t.Run("missing layer fails without touching the list", func(t *testing.T) {
		stage := &sim.Stage{}
		require.NoError(t, stage.Open(scenePath))

		assert.Error(t, stage.InsertSubLayer(filepath.Join(dir, "missing.usd"), 0))
		assert.Empty(t, stage.SubLayers())
	})
}
