package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fuddlesworth/pokesharp/internal/component"
	"github.com/fuddlesworth/pokesharp/internal/config"
	"github.com/fuddlesworth/pokesharp/internal/core/ecs"
	"github.com/fuddlesworth/pokesharp/internal/core/event"
	"github.com/fuddlesworth/pokesharp/internal/core/sched"
	"github.com/fuddlesworth/pokesharp/internal/data"
	"github.com/fuddlesworth/pokesharp/internal/scripting"
	"github.com/fuddlesworth/pokesharp/internal/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/engine.toml"
	if p := os.Getenv("POKESHARP_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	log.Info("engine starting",
		zap.String("name", cfg.Engine.Name),
		zap.Duration("tick_rate", cfg.Engine.TickRate),
		zap.Bool("parallel", cfg.Engine.Parallel))

	seed := cfg.Engine.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// 3. Load data tables
	maps, err := data.LoadMapTable(cfg.Data.Dir + "/map_list.yaml")
	if err != nil {
		return fmt.Errorf("load maps: %w", err)
	}
	tilesets, err := data.LoadTilesetTable(cfg.Data.Dir + "/tileset_list.yaml")
	if err != nil {
		return fmt.Errorf("load tilesets: %w", err)
	}
	log.Info("data loaded", zap.Int("maps", maps.Count()), zap.Int("tilesets", tilesets.Count()))

	// 4. World, stores, event bus
	world := ecs.NewWorld()
	stores := component.NewStores(world)
	bus := event.NewBus()

	player := spawnPlayer(world, stores, maps)

	// 5. Scheduler and built-in systems
	scheduler := sched.NewScheduler(sched.NewRegistry(), log, cfg.Engine.Parallel)
	render := system.NewRenderSystem(stores)

	walker := randomWalker(seed)
	for _, d := range []*sched.SystemDescriptor{
		system.NewEventRotationSystem(bus).Descriptor(),
		system.NewInputSystem(stores, walker).Descriptor(),
		system.NewMovementSystem(stores, maps, tilesets, bus).Descriptor(),
		system.NewEncounterSystem(stores, maps, tilesets, bus, seed).Descriptor(),
		system.NewAnimationSystem(stores).Descriptor(),
		system.NewCameraSystem(stores).Descriptor(),
		render.Descriptor(),
		system.NewCleanupSystem().Descriptor(),
	} {
		if err := scheduler.Register(d); err != nil {
			return fmt.Errorf("register %s: %w", d.ID, err)
		}
	}

	// 6. Lua-scripted systems
	if cfg.Scripting.Enabled {
		luaEngine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return fmt.Errorf("lua engine: %w", err)
		}
		defer luaEngine.Close()
		if luaEngine.Has("on_tick") {
			if err := scheduler.Register(luaEngine.System("script-tick", 50, nil, nil, "on_tick")); err != nil {
				return fmt.Errorf("register script-tick: %w", err)
			}
		}
	}

	scheduler.RebuildPlan()
	log.Info("execution plan ready")
	fmt.Println(scheduler.DescribePlan())

	// 7. Frame loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Engine.TickRate)
	defer ticker.Stop()

	log.Info("frame loop started", zap.Uint64("player", uint64(player)))

	for {
		select {
		case <-ticker.C:
			world.AdvanceFrame()
			res := scheduler.Tick(world, cfg.Engine.TickRate)
			if !res.OK() {
				log.Warn("frame finished with errors",
					zap.Uint64("frame", world.Frame()),
					zap.Int("failed_systems", len(res.Errors)))
			}
			for _, enc := range event.Drain[event.EncounterStarted](bus) {
				log.Info("wild encounter",
					zap.String("species", enc.Species),
					zap.Int("level", enc.Level))
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			return nil
		}
	}
}

// spawnPlayer places the player and camera on the first map.
func spawnPlayer(w *ecs.World, stores *component.Stores, maps *data.MapTable) ecs.Entity {
	var mapID int32
	maps.Each(func(m *data.MapInfo) {
		if mapID == 0 || m.MapID < mapID {
			mapID = m.MapID
		}
	})

	player := w.Spawn()
	stores.Players.Attach(player, &component.PlayerTag{})
	stores.Positions.Attach(player, &component.Position{MapID: mapID})
	stores.Intents.Attach(player, &component.Intent{})
	stores.Sprites.Attach(player, &component.Sprite{SheetID: 1})
	stores.Animations.Attach(player, &component.Animation{FrameCount: 4, FrameTime: 120 * time.Millisecond})

	camera := w.Spawn()
	stores.Cameras.Attach(camera, &component.Camera{Target: player, HalfW: 10, HalfH: 7})
	return player
}

// randomWalker drives the demo player on a seeded random walk, one step
// roughly every fourth frame.
func randomWalker(seed int64) system.Source {
	rng := rand.New(rand.NewSource(seed))
	dirs := [][2]int32{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	return system.SourceFunc(func() (int32, int32, bool) {
		if rng.Intn(4) != 0 {
			return 0, 0, false
		}
		d := dirs[rng.Intn(len(dirs))]
		return d[0], d[1], true
	})
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
