package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	AppName               = "tasklite"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "tasklite.db"
	DefaultStorageKey     = "tasks"
)

type Keymap struct {
	Quit            string `toml:"quit"`
	Add             string `toml:"add"`
	Up              string `toml:"up"`
	Down            string `toml:"down"`
	Toggle          string `toml:"toggle"`
	Delete          string `toml:"delete"`
	Edit            string `toml:"edit"`
	Expand          string `toml:"expand"`
	CycleFilter     string `toml:"cycle_filter"`
	FilterAll       string `toml:"filter_all"`
	FilterActive    string `toml:"filter_active"`
	FilterCompleted string `toml:"filter_completed"`
	Confirm         string `toml:"confirm"`
	Cancel          string `toml:"cancel"`
	Help            string `toml:"help"`
}

type Config struct {
	DBPath        string `toml:"db_path"`
	StorageKey    string `toml:"storage_key"`
	DefaultFilter string `toml:"default_filter"`
	LogFile       string `toml:"log_file"`
	LogLevel      string `toml:"log_level"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath returns <user config dir>/tasklite/config.toml, or
// config.toml in the working directory when there is no user config dir.
func ResolveConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// LoadOrCreate reads path, writing the defaults there first when the file
// does not exist. A relative db_path is taken relative to the config file.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg.DBPath = filepath.Join(filepath.Dir(path), DefaultDBName)
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
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
	if !filepath.IsAbs(cfg.DBPath) {
		cfg.DBPath = filepath.Join(filepath.Dir(path), cfg.DBPath)
	}
	if cfg.StorageKey == "" {
		cfg.StorageKey = DefaultStorageKey
	}
	if cfg.DefaultFilter == "" {
		cfg.DefaultFilter = "all"
	}
	cfg.Keys = cfg.Keys.withDefaults(Default().Keys)
	return cfg, nil
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

// withDefaults fills keys left blank in the file.
func (k Keymap) withDefaults(d Keymap) Keymap {
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&k.Quit, d.Quit)
	fill(&k.Add, d.Add)
	fill(&k.Up, d.Up)
	fill(&k.Down, d.Down)
	fill(&k.Toggle, d.Toggle)
	fill(&k.Delete, d.Delete)
	fill(&k.Edit, d.Edit)
	fill(&k.Expand, d.Expand)
	fill(&k.CycleFilter, d.CycleFilter)
	fill(&k.FilterAll, d.FilterAll)
	fill(&k.FilterActive, d.FilterActive)
	fill(&k.FilterCompleted, d.FilterCompleted)
	fill(&k.Confirm, d.Confirm)
	fill(&k.Cancel, d.Cancel)
	fill(&k.Help, d.Help)
	return k
}

func Default() Config {
	return Config{
		DBPath:        DefaultDBName,
		StorageKey:    DefaultStorageKey,
		DefaultFilter: "all",
		LogLevel:      "info",
		Keys: Keymap{
			Quit:            "q",
			Add:             "a",
			Up:              "k",
			Down:            "j",
			Toggle:          " ",
			Delete:          "d",
			Edit:            "e",
			Expand:          "o",
			CycleFilter:     "f",
			FilterAll:       "1",
			FilterActive:    "2",
			FilterCompleted: "3",
			Confirm:         "enter",
			Cancel:          "esc",
			Help:            "?",
		},
	}
}
