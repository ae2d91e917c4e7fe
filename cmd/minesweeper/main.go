package main

import (
	"flag"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper-tui/internal/config"
	"github.com/vancomm/minesweeper-tui/internal/game"
	"github.com/vancomm/minesweeper-tui/internal/mines"
	"github.com/vancomm/minesweeper-tui/internal/store"
	"github.com/vancomm/minesweeper-tui/internal/tui"
)

var (
	log = logrus.New()

	configPath    string
	configPathSet bool
	seed          uint64
)

func init() {
	const (
		defaultConfigPath = ""
		usage             = "config file path"
	)
	flag.StringVar(&configPath, "config", defaultConfigPath, usage)
	flag.StringVar(&configPath, "c", defaultConfigPath, usage+" (shorthand)")
	flag.Uint64Var(&seed, "seed", 0, "mine placement seed (0 = random)")
}

// setupLogging routes logs to a rotating file: stdout belongs to the
// game screen.
func setupLogging(cfg config.Config) {
	logLevel := logrus.InfoLevel
	if cfg.Development() {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)
	log.SetOutput(io.Discard)

	if cfg.LogFile == "" {
		return
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   cfg.LogFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      logLevel,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal("unable to create log file hook: ", err)
	}
	log.AddHook(hook)
}

func setupBestTimes(cfg config.Config) game.BestStore {
	if cfg.DatabasePath == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		log.WithError(err).Warn("cannot create database directory, best times disabled")
		return nil
	}
	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		log.WithError(err).Warn("cannot open database, best times disabled")
		return nil
	}
	best, err := store.NewBestTimes(db)
	if err != nil {
		log.WithError(err).Warn("cannot create best times table, best times disabled")
		return nil
	}
	return best
}

func difficulties(cfg config.Config) ([]mines.Difficulty, error) {
	presets := mines.Presets()
	if cfg.Custom.Empty() {
		return presets, nil
	}
	custom, err := mines.Custom(
		cfg.Custom.Width, cfg.Custom.Height, cfg.Custom.MineCount,
	)
	if err != nil {
		return nil, err
	}
	return append(presets, custom), nil
}

func main() {
	flag.Parse()
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" || f.Name == "c" {
			configPathSet = true
		}
	})

	cfg, err := config.Load(configPath, configPathSet)
	if err != nil {
		log.Fatal(err)
	}

	setupLogging(cfg)

	log.Info("starting up, mode = ", cfg.Mode)
	log.WithFields(cfg.Fields()).Debug("config")

	levels, err := difficulties(cfg)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal("invalid custom difficulty: ", err)
	}

	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.WithField("seed", seed).Debug("seeding generator")

	safeArea := mines.SafeCell
	if cfg.SafeNeighborhood {
		safeArea = mines.SafeNeighborhood
	}

	ctl := game.NewController(game.Options{
		Rand:         rand.New(rand.NewPCG(seed, seed>>32)),
		SafeArea:     safeArea,
		Difficulties: levels,
		Best:         setupBestTimes(cfg),
		Log:          log,
	})

	screen, err := tcell.NewScreen()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal("unable to create screen: ", err)
	}
	if err := screen.Init(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal("unable to init screen: ", err)
	}
	defer screen.Fini()

	if err := ctl.Run(tui.NewInput(screen), tui.NewRenderer(screen)); err != nil {
		log.WithError(err).Error("game loop ended with error")
		return
	}
	log.Info("clean exit")
}
