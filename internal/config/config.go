package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"kireiroutine/internal/storage"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "kirei.db"
	EnvConfigPath         = "KIREI_CONFIG"
	appDirName            = "kireiroutine"
)

type Keymap struct {
	Quit      string `toml:"quit"`
	Left      string `toml:"left"`
	Right     string `toml:"right"`
	Up        string `toml:"up"`
	Down      string `toml:"down"`
	PrevMonth string `toml:"prev_month"`
	NextMonth string `toml:"next_month"`
	Today     string `toml:"today"`
	Plan      string `toml:"plan"`
	Bulk      string `toml:"bulk"`
	Pick      string `toml:"pick"`
	Move      string `toml:"move"`
	Drag      string `toml:"drag"`
	Clear     string `toml:"clear"`
	Summary   string `toml:"summary"`
	TaskUp    string `toml:"task_up"`
	TaskDown  string `toml:"task_down"`
	Confirm   string `toml:"confirm"`
	Cancel    string `toml:"cancel"`
}

type Config struct {
	Engine           string `toml:"engine"`
	DBPath           string `toml:"db_path"`
	CatalogPath      string `toml:"catalog_path"`
	Verbose          bool   `toml:"verbose"`
	WeekStartsMonday bool   `toml:"week_starts_monday"`
	Keys             Keymap `toml:"keys"`
}

// ResolveConfigPath picks $KIREI_CONFIG, then the user config directory,
// then config.toml in the working directory.
func ResolveConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, appDirName, DefaultConfigFileName)
	}
	return DefaultConfigFileName
}

// LoadOrCreate reads the config at path, writing the defaults there first
// if the file does not exist. Relative db_path and catalog_path values are
// resolved against the config file's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(path), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.Engine == "" {
		cfg.Engine = storage.EngineSQLite
	}
	return cfg.resolve(path), nil
}

func (c Config) resolve(configPath string) Config {
	dir := filepath.Dir(configPath)
	if c.DBPath != "" && !filepath.IsAbs(c.DBPath) && !isDSN(c.DBPath) {
		c.DBPath = filepath.Join(dir, c.DBPath)
	}
	if c.CatalogPath != "" && !filepath.IsAbs(c.CatalogPath) {
		c.CatalogPath = filepath.Join(dir, c.CatalogPath)
	}
	return c
}

func isDSN(p string) bool {
	return strings.HasPrefix(p, "file:")
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		Engine: storage.EngineSQLite,
		DBPath: DefaultDBName,
		Keys: Keymap{
			Quit:      "q",
			Left:      "h",
			Right:     "l",
			Up:        "k",
			Down:      "j",
			PrevMonth: "[",
			NextMonth: "]",
			Today:     "t",
			Plan:      "a",
			Bulk:      "b",
			Pick:      " ",
			Move:      "m",
			Drag:      "g",
			Clear:     "x",
			Summary:   "s",
			TaskUp:    "K",
			TaskDown:  "J",
			Confirm:   "enter",
			Cancel:    "esc",
		},
	}
}
