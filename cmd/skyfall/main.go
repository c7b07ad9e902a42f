package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/elgoog577215-beep/skyfall/audio"
	"github.com/elgoog577215-beep/skyfall/config"
	"github.com/elgoog577215-beep/skyfall/engine"
	"github.com/elgoog577215-beep/skyfall/input"
	"github.com/elgoog577215-beep/skyfall/record"
	"github.com/elgoog577215-beep/skyfall/render"
	"github.com/elgoog577215-beep/skyfall/status"
	"github.com/elgoog577215-beep/skyfall/system"
)

var (
	configFlag = flag.String("config", "", "Config file or directory holding skyfall.toml")
	debugFlag  = flag.Bool("debug", false, "Write debug logs to the log directory")
	seedFlag   = flag.Uint64("seed", 0, "Gameplay seed, 0 uses the config or the clock")
	muteFlag   = flag.Bool("mute", false, "Start with audio muted")
	scoresFlag = flag.Int("scores", 0, "Print the N most recent runs and exit")
)

// expireInterval polls the key bridge for lapsed holds
const expireInterval = 40 * time.Millisecond

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *seedFlag != 0 {
		cfg.Sim.Seed = *seedFlag
	}

	if *scoresFlag > 0 {
		if err := printScores(cfg, *scoresFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read records: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logFile, logger := setupLogging(cfg.Log.Dir, cfg.Log.Debug || *debugFlag, cfg.Log.Level)
	if logFile != nil {
		defer logFile.Close()
	}
	logger.Info().Str("config", cfg.Source).Msg("starting")

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Panic Recovery: restore the terminal before printing the trace
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mSKYFALL CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	app := newApp(cfg, screen, logger)
	app.run()
	app.close()
	screen.Fini()
}

// app wires the simulation to the terminal, audio and the score ledger
type app struct {
	cfg    config.Config
	screen tcell.Screen
	logger zerolog.Logger

	sim      *engine.Simulation
	loop     *engine.Loop
	renderer *render.TerminalRenderer
	bridge   *input.TerminalBridge

	sound  *audio.SoundManager
	cues   *audio.CuePlayer
	store  *record.Store
	writer *record.Writer

	// Loop goroutine only
	snap engine.Snapshot
}

func newApp(cfg config.Config, screen tcell.Screen, logger zerolog.Logger) *app {
	a := &app{
		cfg:    cfg,
		screen: screen,
		logger: logger,
		bridge: input.NewTerminalBridge(),
	}

	a.sim = engine.NewSimulation(engine.Config{
		Seed:     cfg.Sim.Seed,
		Bindings: input.NewFileStore(cfg.Bindings.Path),
		Registry: status.NewRegistry(),
		Logger:   logger,
	})
	a.renderer = render.NewTerminalRenderer(screen)
	a.sim.SetAspect(a.renderer.Aspect())

	a.setupRecords()
	a.setupAudio()

	a.loop = engine.NewLoop(a.sim, cfg.Sim.TickRate, logger)
	a.loop.OnFrame(a.draw)
	return a
}

func (a *app) setupRecords() {
	if !a.cfg.Records.Enabled {
		return
	}
	store, err := record.Open(a.cfg.Records.Path, a.logger)
	if err != nil {
		a.logger.Warn().Err(err).Msg("records disabled")
		return
	}
	a.store = store

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if best, ok, err := store.Best(ctx); err != nil {
		a.logger.Warn().Err(err).Msg("best score lookup failed")
	} else if ok {
		a.sim.SetBestScore(best.Score)
	}

	a.writer = record.NewWriter(store, a.cfg.Records.QueueSize, a.sim.Seed, a.logger)
	a.sim.Bus().Subscribe(a.writer)
}

func (a *app) setupAudio() {
	// Indicator shows muted until a device is open
	a.renderer.SetMuted(true)
	if !a.cfg.Audio.Enabled {
		return
	}
	acfg := audio.DefaultConfig()
	acfg.MasterVolume = a.cfg.Audio.Volume

	sound := audio.NewSoundManager(acfg.SampleRate)
	if err := sound.Initialize(); err != nil {
		a.logger.Warn().Err(err).Msg("audio unavailable, continuing without sound")
		return
	}
	a.sound = sound
	a.cues = audio.NewCuePlayer(sound, acfg, a.logger)
	a.cues.SetMuted(*muteFlag)
	a.renderer.SetMuted(*muteFlag)
	a.sim.Bus().Subscribe(a.cues)
}

// draw renders the frame, runs on the loop goroutine
func (a *app) draw(sim *engine.Simulation) {
	sim.Snapshot(&a.snap)
	a.renderer.RenderFrame(&a.snap)
}

func (a *app) run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer a.crashed("LOOP")
		if err := a.loop.Run(ctx); err != nil {
			a.logger.Error().Err(err).Msg("loop failed")
		}
	}()

	events := make(chan tcell.Event, 256)
	go func() {
		defer a.crashed("EVENT POLLER")
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	expire := time.NewTicker(expireInterval)
	defer expire.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !a.handleEvent(ev) {
				cancel()
				wg.Wait()
				return
			}
		case now := <-expire.C:
			for _, c := range a.bridge.Expire(now) {
				a.loop.Post(func(s *engine.Simulation) { s.Release(c) })
			}
		}
	}
}

// crashed restores the terminal if a background goroutine panics
func (a *app) crashed(where string) {
	if r := recover(); r != nil {
		a.screen.Fini()
		fmt.Fprintf(os.Stderr, "\r\n\x1b[31m%s CRASHED: %v\x1b[0m\r\n", where, r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
		os.Exit(1)
	}
}

// handleEvent translates one terminal event, returns false to quit
func (a *app) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)

	case *tcell.EventMouse:
		pressed, released := a.bridge.Mouse(ev)
		x, y := ev.Position()
		a.loop.Post(func(s *engine.Simulation) {
			for _, c := range pressed {
				s.Press(c)
			}
			for _, c := range released {
				s.Release(c)
			}
			nx, ny := a.renderer.ViewportNDC(x, y)
			s.SetPointer(nx, ny)
			a.renderer.SetCrosshair(x, y, true)
		})

	case *tcell.EventResize:
		a.screen.Sync()
		w, h := ev.Size()
		a.loop.Post(func(s *engine.Simulation) {
			a.renderer.Resize(w, h)
			s.SetAspect(a.renderer.Aspect())
		})

	case *tcell.EventFocus:
		if !ev.Focused {
			a.bridge.Reset()
			a.loop.Post(func(s *engine.Simulation) {
				s.ReleaseAll()
				s.ClearPointer()
				a.renderer.SetCrosshair(0, 0, false)
			})
		}
	}
	return true
}

func (a *app) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyCtrlS:
		if a.cues != nil {
			muted := !a.cues.Muted()
			a.cues.SetMuted(muted)
			a.loop.Post(func(*engine.Simulation) { a.renderer.SetMuted(muted) })
		}
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case 'r', 'R':
			a.loop.Post(func(s *engine.Simulation) {
				if s.State() == system.StateDestroyed {
					s.Restart()
				}
			})
		}
	}

	for _, c := range a.bridge.Key(ev, ev.When()) {
		a.loop.Post(func(s *engine.Simulation) { s.Press(c) })
	}
	return true
}

// close flushes the ledger and releases devices after the loop stopped
func (a *app) close() {
	if a.writer != nil {
		a.writer.Close()
		a.logger.Info().
			Uint64("saved", a.writer.Saved()).
			Uint64("failed", a.writer.Failed()).
			Msg("records flushed")
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("records close failed")
		}
	}
	if a.sound != nil {
		a.sound.Cleanup()
	}
	a.logger.Info().Uint64("dropped_commands", a.loop.Dropped()).Msg("stopped")
}

// printScores lists recent runs and the best one
func printScores(cfg config.Config, n int) error {
	store, err := record.Open(cfg.Records.Path, zerolog.Nop())
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	runs, err := store.Recent(ctx, n)
	if err != nil {
		return err
	}
	for _, r := range runs {
		fmt.Printf("%s  %s  destroyed %3d  collisions %3d  %6.1fs\n",
			r.EndedAt.Format(time.DateTime), engine.FormatScore(r.Score),
			r.Destroyed(), r.Collisions, float64(r.DurationMs)/1000)
	}
	if best, ok, err := store.Best(ctx); err != nil {
		return err
	} else if ok {
		fmt.Printf("best %s\n", engine.FormatScore(best.Score))
	}
	return nil
}
