// Package config loads application settings from an optional JSON file
// with MINESWEEPER_* environment overrides on top.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

// CustomDifficulty is an optional user-defined board added to the menu.
type CustomDifficulty struct {
	Width     int `json:"width" env:"MINESWEEPER_CUSTOM_WIDTH"`
	Height    int `json:"height" env:"MINESWEEPER_CUSTOM_HEIGHT"`
	MineCount int `json:"mine_count" env:"MINESWEEPER_CUSTOM_MINES"`
}

func (d CustomDifficulty) Empty() bool {
	return d == CustomDifficulty{}
}

type Config struct {
	Mode string `json:"mode" env:"MINESWEEPER_MODE"`
	// LogFile receives rotating structured logs; the terminal itself
	// belongs to the game screen. Empty disables logging.
	LogFile      string `json:"log_file" env:"MINESWEEPER_LOG_FILE"`
	DatabasePath string `json:"database_path" env:"MINESWEEPER_DATABASE_PATH"`
	// SafeNeighborhood clears the whole 8-neighborhood around the first
	// reveal instead of just the clicked cell.
	SafeNeighborhood bool             `json:"safe_neighborhood" env:"MINESWEEPER_SAFE_NEIGHBORHOOD"`
	Custom           CustomDifficulty `json:"custom"`
}

func Default() Config {
	return Config{
		Mode:         "production",
		DatabasePath: defaultDatabasePath(),
	}
}

func defaultDatabasePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "minesweeper.db"
	}
	return filepath.Join(dir, "minesweeper-tui", "minesweeper.db")
}

// Load merges defaults, the JSON file at path (missing file is fine
// unless explicitly requested) and environment variables, in that
// order.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case err != nil:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

func (c Config) Fields() logrus.Fields {
	return logrus.Fields{
		"mode":              c.Mode,
		"log_file":          c.LogFile,
		"database_path":     c.DatabasePath,
		"safe_neighborhood": c.SafeNeighborhood,
		"custom":            !c.Custom.Empty(),
	}
}
