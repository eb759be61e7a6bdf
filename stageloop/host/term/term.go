// Package term wraps the sim host with an interactive terminal view: it
// renders playback state with tcell and maps keys onto the timeline, which
// is how a user stops and restarts the animation by hand.
package term

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/mvaleri/go-stageloop/stageloop/host"
	"github.com/mvaleri/go-stageloop/stageloop/host/sim"
)

const (
	barWidth    = 50
	maxLogLines = 12
)

// App renders the simulated host in a terminal. Key bindings: space toggles
// timeline stop/play, q/Esc/Ctrl+C quits.
type App struct {
	*sim.App
	screen    tcell.Screen
	logBuffer *LogBuffer
	running   bool
	quit      chan struct{}
}

func New(inner *sim.App) *App {
	return &App{
		App:  inner,
		quit: make(chan struct{}),
	}
}

// Init takes over the terminal and routes slog output into the view's log
// panel. Required before the first Render.
func (a *App) Init() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("term: initialize screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("term: initialize screen: %w", err)
	}

	a.screen = screen
	a.running = true

	a.logBuffer = NewLogBuffer(100)
	slog.SetDefault(slog.New(NewLogBufferHandler(a.logBuffer, slog.LevelDebug)))

	a.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	a.screen.Clear()

	go a.handleSignals()

	slog.Info("Terminal host initialized")
	return nil
}

func (a *App) IsRunning() bool {
	select {
	case <-a.quit:
		return false
	default:
	}
	return a.running && a.App.IsRunning()
}

// Render polls pending key events, advances the inner host one frame and
// redraws the view.
func (a *App) Render() error {
	for a.screen.HasPendingEvent() {
		ev := a.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			a.handleKey(ev)
		case *tcell.EventResize:
			a.screen.Sync()
		}
	}

	if err := a.App.Render(); err != nil {
		return err
	}

	a.draw()
	a.screen.Show()
	return nil
}

func (a *App) Close() error {
	if a.screen != nil {
		a.screen.Fini()
		a.screen = nil
	}
	return a.App.Close()
}

func (a *App) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.running = false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			a.running = false
		case ' ':
			tl := a.Timeline()
			if tl.IsPlaying() {
				slog.Info("Timeline stopped by user")
				tl.Stop()
			} else {
				slog.Info("Timeline resumed by user")
				tl.Resume()
			}
		}
	}
}

func (a *App) handleSignals() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	<-signals
	close(a.quit)
}

func (a *App) draw() {
	a.screen.Clear()

	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	textStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	dimStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)

	a.drawText(1, 0, titleStyle, " Stage Player ")

	scene := a.Stage().ScenePath()
	if scene == "" {
		scene = "(no scene loaded)"
	}
	a.drawText(1, 2, textStyle, "Scene:  "+scene)

	layers := a.Stage().SubLayers()
	if len(layers) == 0 {
		a.drawText(1, 3, dimStyle, "Layers: none")
	} else {
		a.drawText(1, 3, textStyle, fmt.Sprintf("Layers: %s", strings.Join(layers, ", ")))
	}

	tl := a.Timeline()
	state := "STOPPED"
	stateStyle := tcell.StyleDefault.Foreground(tcell.ColorRed)
	if tl.IsPlaying() {
		state = "PLAYING"
		stateStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	}
	a.drawText(1, 5, stateStyle, state)
	a.drawText(10, 5, textStyle, fmt.Sprintf("timecode %.0f / %.0f  end %.2fs", tl.CurrentTimecode(), tl.EndTimecode(), tl.EndTime()))

	a.drawBar(1, 6, tl.CurrentTimecode(), tl.EndTimecode())

	a.drawText(1, 8, titleStyle, " Logs ")
	logs := a.logBuffer.Recent(maxLogLines)
	for i, entry := range logs {
		style := textStyle
		switch entry.Level {
		case slog.LevelDebug:
			style = dimStyle
		case slog.LevelWarn:
			style = tcell.StyleDefault.Foreground(tcell.ColorYellow)
		case slog.LevelError:
			style = tcell.StyleDefault.Foreground(tcell.ColorRed)
		}
		a.drawText(1, 9+i, style, FormatLogEntry(entry))
	}

	_, height := a.screen.Size()
	a.drawText(1, height-1, dimStyle, " Space=stop/play  q=quit ")
}

func (a *App) drawBar(x, y int, current, end float64) {
	filled := 0
	if end > 0 {
		filled = int(current / end * float64(barWidth))
		if filled > barWidth {
			filled = barWidth
		}
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	a.screen.SetContent(x, y, '[', nil, style)
	for i := 0; i < barWidth; i++ {
		ch := ' '
		if i < filled {
			ch = '='
		} else if i == filled {
			ch = '>'
		}
		a.screen.SetContent(x+1+i, y, ch, nil, style)
	}
	a.screen.SetContent(x+1+barWidth, y, ']', nil, style)
}

func (a *App) drawText(x, y int, style tcell.Style, text string) {
	width, _ := a.screen.Size()
	for i, ch := range text {
		if x+i >= width {
			break
		}
		a.screen.SetContent(x+i, y, ch, nil, style)
	}
}

var _ host.App = (*App)(nil)
