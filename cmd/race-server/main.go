// Command race-server hosts one race over websocket for browser renderers
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/swimrace/config"
	"github.com/lixenwraith/swimrace/engine"
	"github.com/lixenwraith/swimrace/events"
	"github.com/lixenwraith/swimrace/network"
	"github.com/lixenwraith/swimrace/race"
	"github.com/lixenwraith/swimrace/status"
)

var (
	configFlag = flag.String("config", "", "Path to a TOML configuration file")
	envFlag    = flag.String("env", ".env", "Path to a .env file, ignored when missing")
	exitFlag   = flag.Bool("exit-on-complete", false, "Shut down once the race result is reported")
)

func init() {
	flag.String("listen", "127.0.0.1:8080", "HTTP listen address")
	flag.Float64("score", 0, "Score carried in from the quiz, sets player speed")
	flag.Uint64("seed", 0, "Race seed, 0 draws a random one")
	flag.String("inventory", "", "Purchased power-ups, e.g. shield=2,magnet")
	flag.Bool("debug", false, "Log every race notice")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "race-server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configFlag, *envFlag, log.Default())
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(config.FlagLookup(flag.CommandLine)); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	inventory, unknown := cfg.Inventory()
	for _, id := range unknown {
		log.Printf("ignoring unknown power-up %q", id)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	router := events.NewRouter()
	if cfg.Debug {
		router.Register(events.HandlerFunc{
			Types: []events.EventType{
				events.NoticeCountdown, events.NoticeRaceStart, events.NoticePowerUpActivated,
				events.NoticeObstacleHit, events.NoticeShieldBroken, events.NoticeBoosterCollected,
				events.NoticeRaceFinished, events.NoticeRaceComplete,
			},
			Fn: func(ev events.GameEvent) {
				log.Printf("frame %d: %s %+v", ev.Frame, ev.Type, ev.Payload)
			},
		})
	}

	metrics := status.NewRegistry()
	session := race.New(engine.Options{
		Score:     cfg.Race.Score,
		Inventory: inventory,
		Track:     cfg.TrackLayout(),
		Seed:      cfg.Race.Seed,
		Feedback:  router,
		OnComplete: func(r engine.Result) {
			log.Printf("race complete: %s won (player=%v) at frame %d", r.Winner, r.IsPlayer, r.Frame)
			log.Printf("metrics: %v", metrics.Export())
			if *exitFlag {
				cancel()
			}
		},
		Logger:  log.Default(),
		Metrics: metrics,
	}, cfg.LayoutCounts())

	format, err := network.ParseFormat(cfg.Server.Format)
	if err != nil {
		return err
	}
	netCfg := network.DefaultConfig()
	netCfg.Address = cfg.Server.Listen
	netCfg.BroadcastEvery = cfg.Server.BroadcastEvery
	netCfg.DefaultFormat = format

	hub := network.NewHub(session, netCfg, log.Default())
	return hub.ListenAndServe(ctx)
}
