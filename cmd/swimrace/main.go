package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/swimrace/audio"
	"github.com/lixenwraith/swimrace/config"
	"github.com/lixenwraith/swimrace/constants"
	"github.com/lixenwraith/swimrace/core"
	"github.com/lixenwraith/swimrace/engine"
	"github.com/lixenwraith/swimrace/events"
	"github.com/lixenwraith/swimrace/input"
	"github.com/lixenwraith/swimrace/race"
	"github.com/lixenwraith/swimrace/status"
)

var (
	configFlag = flag.String("config", "", "Path to a TOML configuration file")
	envFlag    = flag.String("env", ".env", "Path to a .env file, ignored when missing")
	keymapFlag = flag.String("keymap", "", "Path to a TOML keymap overriding the default bindings")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/swimrace.log")
)

func init() {
	flag.Float64("score", 0, "Score carried in from the quiz, sets player speed")
	flag.Uint64("seed", 0, "Race seed, 0 draws a random one")
	flag.String("inventory", "", "Purchased power-ups, e.g. shield=2,magnet")
	flag.Bool("audio", true, "Enable sound effects")
	flag.Int("volume", 50, "Master volume 0-100")
}

func main() {
	flag.Parse()

	result, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "swimrace: %v\n", err)
		os.Exit(1)
	}
	if result != nil {
		fmt.Printf("%s wins at frame %d. %s\n", result.Winner, result.Frame, engine.WinnerMessage(result.IsPlayer))
	}
}

func run() (*engine.Result, error) {
	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := config.Load(*configFlag, *envFlag, log.Default())
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(config.FlagLookup(flag.CommandLine)); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Debug && logFile == nil {
		if logFile = setupLogging(true); logFile != nil {
			defer logFile.Close()
		}
	}

	keys := input.DefaultKeyTable()
	if *keymapFlag != "" {
		data, err := os.ReadFile(*keymapFlag)
		if err != nil {
			return nil, err
		}
		override, err := input.LoadKeyConfig(data)
		if err != nil {
			return nil, err
		}
		keys = input.MergeKeyTable(keys, override)
	}

	inventory, unknown := cfg.Inventory()
	for _, id := range unknown {
		log.Printf("ignoring unknown power-up %q", id)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	core.SetCrashCleanup(screen.Fini)

	sound := audio.NewSoundManager(cfg.AudioSettings(), log.Default())
	if err := sound.Initialize(); err != nil {
		log.Printf("%v (continuing without audio)", err)
	}
	defer sound.Cleanup()

	router := events.NewRouter()
	router.Register(sound)

	completed := make(chan engine.Result, 1)
	session := race.New(engine.Options{
		Score:     cfg.Race.Score,
		Inventory: inventory,
		Track:     cfg.TrackLayout(),
		Seed:      cfg.Race.Seed,
		Feedback:  router,
		OnComplete: func(r engine.Result) {
			completed <- r
		},
		Logger:  log.Default(),
		Metrics: status.NewRegistry(),
	}, cfg.LayoutCounts())
	log.Printf("race %s: score %.0f, inventory %v", session.ID, session.Score, session.Inventory.Map())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	loop := engine.NewFrameLoop(session, constants.FrameUpdateInterval, nil)
	loop.Start(ctx)
	defer loop.Stop()

	a := newApp(screen, loop, input.NewMachine(keys), sound)

	// Input polling uses its own goroutine as it blocks on the terminal
	eventChan := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	frameTicker := time.NewTicker(constants.FrameUpdateInterval)
	defer frameTicker.Stop()

	var result *engine.Result
	for {
		select {
		case <-ctx.Done():
			return result, nil
		case ev := <-eventChan:
			if !a.handleEvent(ev) {
				return result, nil
			}
		case r := <-completed:
			result = &r
			log.Printf("race %s complete: %s won (player=%v) at frame %d", session.ID, r.Winner, r.IsPlayer, r.Frame)
			log.Printf("metrics: %v", session.Metrics.Export())
		case now := <-frameTicker.C:
			a.frame(now)
		}
	}
}
