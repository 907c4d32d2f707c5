// Package config loads the settings that gamecmd runs with. Settings come
// from a TOML file, then from GAMECMD_* environment variables, then from
// whatever the caller sets afterwards (normally command-line flags).
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/dekarrin/gamecmd/internal/journal"
	"github.com/dekarrin/gamecmd/internal/journal/inmem"
	"github.com/dekarrin/gamecmd/internal/journal/sqlite"
	"github.com/dekarrin/gamecmd/internal/logging"
	"github.com/dekarrin/gamecmd/internal/util"
)

const (
	DefaultQueueSize   = 20
	DefaultOutputWidth = 80
	DefaultJournal     = "none"
	DefaultLogLevel    = "warn"

	// MinQueueSize is the smallest queue that can hold a command; one slot
	// is always left empty.
	MinQueueSize = 2

	MinOutputWidth = 20
)

// JournalType is the type of a journal backend.
type JournalType string

func (jt JournalType) String() string {
	return string(jt)
}

const (
	JournalNone     JournalType = "none"
	JournalSQLite   JournalType = "sqlite"
	JournalInMemory JournalType = "inmem"
)

// ParseJournalType parses a string found in a connection string into a
// JournalType.
func ParseJournalType(s string) (JournalType, error) {
	sLower := strings.ToLower(s)

	switch sLower {
	case JournalSQLite.String():
		return JournalSQLite, nil
	case JournalInMemory.String():
		return JournalInMemory, nil
	case JournalNone.String():
		return JournalNone, nil
	default:
		return JournalNone, fmt.Errorf("journal type not one of 'sqlite', 'inmem', or 'none': %q", s)
	}
}

// Journal contains settings for where executed commands are recorded.
type Journal struct {
	// Type is the type of backend. It also determines which of the other
	// fields are valid.
	Type JournalType

	// DataDir is the directory the database is stored in. Only used by
	// JournalSQLite.
	DataDir string
}

// Connect opens the configured journal backend. For JournalNone, a nil
// Repository is returned with no error.
func (j Journal) Connect() (journal.Repository, error) {
	switch j.Type {
	case JournalInMemory:
		return inmem.NewEntriesRepository(), nil
	case JournalSQLite:
		err := os.MkdirAll(j.DataDir, 0770)
		if err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}

		repo, err := sqlite.NewEntriesDB(j.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite: %w", err)
		}

		return repo, nil
	case JournalNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown journal type: %q", j.Type.String())
	}
}

// Validate returns an error if the Journal does not have the fields its type
// needs.
func (j Journal) Validate() error {
	switch j.Type {
	case JournalInMemory, JournalNone:
		return nil
	case JournalSQLite:
		if j.DataDir == "" {
			return fmt.Errorf("DataDir not set to path")
		}
		return nil
	default:
		return fmt.Errorf("unknown journal type: %q", j.Type.String())
	}
}

// ParseJournalConnString parses a journal connection string of the form
// "engine:params" (or just "engine" if no other params are required). For
// example, "sqlite:/data" gives a JournalSQLite that keeps its database in
// /data, and "inmem" gives a JournalInMemory. An empty string is the same as
// "none".
func ParseJournalConnString(s string) (Journal, error) {
	if strings.TrimSpace(s) == "" {
		return Journal{Type: JournalNone}, nil
	}

	var paramStr string
	parts := strings.SplitN(s, ":", 2)

	if len(parts) == 2 {
		paramStr = strings.TrimSpace(parts[1])
	}

	eng, err := ParseJournalType(strings.TrimSpace(parts[0]))
	if err != nil {
		return Journal{}, fmt.Errorf("unsupported journal engine: %w", err)
	}

	switch eng {
	case JournalInMemory, JournalNone:
		// there cannot be any other options
		if paramStr != "" {
			return Journal{}, fmt.Errorf("unsupported param(s) for %s journal engine: %s", eng, paramStr)
		}
		return Journal{Type: eng}, nil
	case JournalSQLite:
		if paramStr == "" {
			return Journal{}, fmt.Errorf("sqlite journal engine requires path to data directory after ':'")
		}
		return Journal{Type: JournalSQLite, DataDir: paramStr}, nil
	default:
		return Journal{}, fmt.Errorf("unknown journal engine: %q", eng.String())
	}
}

// Config is everything gamecmd can be configured with.
type Config struct {
	// QueueSize is the capacity of the command queue. One slot is always
	// kept free, so at most QueueSize-1 commands can wait at once.
	QueueSize int `toml:"queue_size" env:"GAMECMD_QUEUE_SIZE"`

	// LevelFile is the TOML level to play.
	LevelFile string `toml:"level_file" env:"GAMECMD_LEVEL_FILE"`

	// SaveFile is where the save command writes to. If empty, saving is
	// disabled.
	SaveFile string `toml:"save_file" env:"GAMECMD_SAVE_FILE"`

	// Journal is a journal connection string; see ParseJournalConnString.
	Journal string `toml:"journal" env:"GAMECMD_JOURNAL"`

	LogLevel string `toml:"log_level" env:"GAMECMD_LOG_LEVEL"`
	LogFile  string `toml:"log_file" env:"GAMECMD_LOG_FILE"`

	// EasyOpen makes open, close and disarm pick the direction themselves
	// when there is only one thing they could act on.
	EasyOpen bool `toml:"easy_open" env:"GAMECMD_EASY_OPEN"`

	OutputWidth int `toml:"output_width" env:"GAMECMD_OUTPUT_WIDTH"`

	// AutoRepeat overrides how many times a repeatable command runs when no
	// count is given, keyed by verb.
	AutoRepeat map[string]int `toml:"auto_repeat"`
}

// Default returns the configuration used when nothing else is given.
func Default() Config {
	return Config{
		QueueSize:   DefaultQueueSize,
		Journal:     DefaultJournal,
		LogLevel:    DefaultLogLevel,
		EasyOpen:    true,
		OutputWidth: DefaultOutputWidth,
	}
}

// Load reads the config file at path on top of the defaults and then applies
// any GAMECMD_* environment variables. If path is empty, only the defaults
// and the environment are used.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			logging.Logger.Warn("unknown keys in config file", "file", path, "keys", undec)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg.FillDefaults(), nil
}

// FillDefaults returns a new Config identical to cfg but with unset values
// set to their defaults.
func (cfg Config) FillDefaults() Config {
	newCFG := cfg

	if newCFG.QueueSize == 0 {
		newCFG.QueueSize = DefaultQueueSize
	}
	if newCFG.OutputWidth == 0 {
		newCFG.OutputWidth = DefaultOutputWidth
	}
	if newCFG.Journal == "" {
		newCFG.Journal = DefaultJournal
	}
	if newCFG.LogLevel == "" {
		newCFG.LogLevel = DefaultLogLevel
	}

	return newCFG
}

// JournalSettings parses the journal connection string.
func (cfg Config) JournalSettings() (Journal, error) {
	return ParseJournalConnString(cfg.Journal)
}

// Validate returns an error if the Config has invalid field values set.
func (cfg Config) Validate() error {
	if cfg.QueueSize < MinQueueSize {
		return fmt.Errorf("queue_size: must be at least %d, but is %d", MinQueueSize, cfg.QueueSize)
	}
	if cfg.OutputWidth < MinOutputWidth {
		return fmt.Errorf("output_width: must be at least %d, but is %d", MinOutputWidth, cfg.OutputWidth)
	}
	if cfg.LevelFile == "" {
		return fmt.Errorf("level_file: not set")
	}

	switch strings.ToLower(strings.TrimSpace(cfg.LogLevel)) {
	case "debug", "info", "warn", "warning", "error", "fatal":
	default:
		return fmt.Errorf("log_level: must be one of debug, info, warn, error, or fatal, but is %q", cfg.LogLevel)
	}

	j, err := cfg.JournalSettings()
	if err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	if err := j.Validate(); err != nil {
		return fmt.Errorf("journal: %w", err)
	}

	for _, verb := range util.OrderedKeys(cfg.AutoRepeat) {
		if cfg.AutoRepeat[verb] < 0 {
			return fmt.Errorf("auto_repeat: %s: must not be negative, but is %d", verb, cfg.AutoRepeat[verb])
		}
	}

	return nil
}
