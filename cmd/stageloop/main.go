package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mvaleri/go-stageloop/stageloop"
	"github.com/mvaleri/go-stageloop/stageloop/config"
	"github.com/mvaleri/go-stageloop/stageloop/control"
	"github.com/mvaleri/go-stageloop/stageloop/events"
	"github.com/mvaleri/go-stageloop/stageloop/host"
	"github.com/mvaleri/go-stageloop/stageloop/host/sim"
	"github.com/mvaleri/go-stageloop/stageloop/host/term"
	"github.com/mvaleri/go-stageloop/stageloop/scene"
	"github.com/mvaleri/go-stageloop/stageloop/timing"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "stageloop"
	app.Description = "Plays a looping scene animation on a simulation host"
	app.Usage = "stageloop [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "Path to a YAML config file",
		},
		cli.StringFlag{
			Name:  "host",
			Usage: "Host implementation to drive (term or sim)",
			Value: "term",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run with the sim host (0 = unlimited)",
			Value: 0,
		},
		cli.StringFlag{
			Name:  "listen",
			Usage: "Address for the scene-load control endpoint (empty = disabled)",
		},
	}
	app.Action = runPlayer

	if err := app.Run(os.Args); err != nil {
		slog.Error("Error running player", "error", err)
		os.Exit(1)
	}
}

func runPlayer(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}

	simApp := sim.New(sim.Options{
		LaunchConfig: cfg.SimulationApp.LaunchConfig,
		Experience:   cfg.SimulationApp.Experience,
		MaxFrames:    c.Int("frames"),
	})

	var hostApp host.App = simApp
	switch c.String("host") {
	case "sim":
	case "term":
		termApp := term.New(simApp)
		if err := termApp.Init(); err != nil {
			return err
		}
		hostApp = termApp
	default:
		return fmt.Errorf("unknown host %q (want term or sim)", c.String("host"))
	}

	player, err := stageloop.New(hostApp, simApp.Timeline(), cfg.LastFrameIndex)
	if err != nil {
		return err
	}

	// Batch sim runs are not throttled, same as a headless run.
	if c.String("host") == "sim" && c.Int("frames") > 0 {
		player.SetLimiter(timing.NewNoOpLimiter())
	}

	bus := events.NewBus(16)
	player.SetBus(bus)

	initializer := scene.NewInitializer(hostApp, simApp.Stage(), cfg.SceneName, player)
	player.OnLoadScene(func(e events.LoadScene) {
		initializer.Initialize(e.Directory, e.LastFrameIndex, e.LayerPaths)
	})

	if addr := c.String("listen"); addr != "" {
		srv := control.NewServer(bus)
		if err := srv.Listen(addr); err != nil {
			return err
		}
		defer func() {
			if err := srv.Shutdown(context.Background()); err != nil {
				slog.Error("Control server shutdown failed", "error", err)
			}
		}()
	}

	if cfg.USDDirectory != "" {
		initializer.Initialize(cfg.USDDirectory, cfg.LastFrameIndex, cfg.LayerPaths)
	}

	return player.Run()
}
