// Package ops loads the desk runtime configuration.
package ops

import (
	"fmt"
	"os"
	"time"

	"github.com/bytedance/sonic"
)

const (
	defaultDataDir      = "data"
	defaultOutDir       = "out"
	defaultGUIThrottle  = 300 * time.Millisecond
	defaultSnapshotPath = "out/positions.json"
	defaultLotSize      = 10_000_000
	defaultQuotePrice   = 100.0
)

var defaultBooks = []string{"TRSY1", "TRSY2", "TRSY3"}

// FileConfig mirrors the JSON config layout.
type FileConfig struct {
	DataDir           string          `json:"dataDir"`
	OutDir            string          `json:"outDir"`
	Books             []string        `json:"books"`
	GUIThrottleMS     int             `json:"guiThrottleMs"`
	DisableGUI        bool            `json:"disableGui"`
	LotSize           int64           `json:"lotSize"`
	QuotePrice        float64         `json:"quotePrice"`
	PaceRecordsPerSec float64         `json:"paceRecordsPerSec"`
	SnapshotPath      string          `json:"snapshotPath"`
	Postgres          *PostgresConfig `json:"postgres"`
}

// PostgresConfig enables the database historical sink.
type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	SSLMode  string `json:"sslMode"`
}

// Loaded is the resolved configuration ready for use.
type Loaded struct {
	DataDir           string
	OutDir            string
	Books             []string
	GUIThrottle       time.Duration
	DisableGUI        bool
	LotSize           int64
	QuotePrice        float64
	PaceRecordsPerSec float64
	SnapshotPath      string
	Postgres          *PostgresConfig
}

// Default returns the baseline configuration.
func Default() Loaded {
	return Loaded{
		DataDir:      defaultDataDir,
		OutDir:       defaultOutDir,
		Books:        defaultBooks,
		GUIThrottle:  defaultGUIThrottle,
		LotSize:      defaultLotSize,
		QuotePrice:   defaultQuotePrice,
		SnapshotPath: defaultSnapshotPath,
	}
}

// Load reads a JSON config file and resolves defaults. An empty path yields
// the defaults.
func Load(path string) (Loaded, error) {
	loaded := Default()
	if path == "" {
		return loaded, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Loaded{}, err
	}
	var cfg FileConfig
	if err := sonic.Unmarshal(data, &cfg); err != nil {
		return Loaded{}, fmt.Errorf("decode config: %w", err)
	}

	if cfg.DataDir != "" {
		loaded.DataDir = cfg.DataDir
	}
	if cfg.OutDir != "" {
		loaded.OutDir = cfg.OutDir
	}
	if len(cfg.Books) > 0 {
		loaded.Books = cfg.Books
	}
	if cfg.GUIThrottleMS > 0 {
		loaded.GUIThrottle = time.Duration(cfg.GUIThrottleMS) * time.Millisecond
	}
	loaded.DisableGUI = cfg.DisableGUI
	if cfg.LotSize > 0 {
		loaded.LotSize = cfg.LotSize
	}
	if cfg.QuotePrice > 0 {
		loaded.QuotePrice = cfg.QuotePrice
	}
	if cfg.PaceRecordsPerSec > 0 {
		loaded.PaceRecordsPerSec = cfg.PaceRecordsPerSec
	}
	if cfg.SnapshotPath != "" {
		loaded.SnapshotPath = cfg.SnapshotPath
	}
	loaded.Postgres = cfg.Postgres

	if err := loaded.validate(); err != nil {
		return Loaded{}, err
	}
	return loaded, nil
}

func (l Loaded) validate() error {
	if len(l.Books) == 0 {
		return fmt.Errorf("books must not be empty")
	}
	for _, book := range l.Books {
		if book == "" {
			return fmt.Errorf("book name must not be empty")
		}
	}
	if l.Postgres != nil && l.Postgres.Database == "" {
		return fmt.Errorf("postgres database must not be empty")
	}
	return nil
}
