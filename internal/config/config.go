package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/justyntemme/fstree/internal/debug"
)

// Config holds all user-configurable settings loaded from config.json
type Config struct {
	Tree     TreeConfig     `json:"tree"`
	Behavior BehaviorConfig `json:"behavior"`
	Store    StoreConfig    `json:"store"`
}

// TreeConfig holds settings for the tree controller
type TreeConfig struct {
	Workers        int      `json:"workers"`        // Background request workers
	Roots          []string `json:"roots"`          // Replaces the host roots when non-empty
	ShowAttributes bool     `json:"showAttributes"` // Initial attribute display of new entries
}

// BehaviorConfig holds behavior settings
type BehaviorConfig struct {
	RestoreLastSelection bool `json:"restoreLastSelection"`
}

// StoreConfig holds the settings database location
type StoreConfig struct {
	Path string `json:"path"`
}

// Overrides are read from FSTREE_* environment variables and take
// precedence over the config file. Zero values leave the file's value.
type Overrides struct {
	Workers   int      `envconfig:"WORKERS"`
	Roots     []string `envconfig:"ROOTS"`
	StorePath string   `envconfig:"STORE_PATH"`
	Debug     string   `envconfig:"DEBUG"`
}

// Manager handles loading, saving, and accessing configuration
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	parseErr error // Stores parsing error if config failed to load
}

// NewManager creates a configuration manager for the file at path. An
// empty path selects ConfigPath().
func NewManager(path string) *Manager {
	if path == "" {
		path = ConfigPath()
	}
	return &Manager{
		config: DefaultConfig(),
		path:   path,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	workers := runtime.NumCPU()
	if workers > 4 {
		workers = 4
	}
	return &Config{
		Tree: TreeConfig{
			Workers:        workers,
			ShowAttributes: false,
		},
		Behavior: BehaviorConfig{
			RestoreLastSelection: true,
		},
		Store: StoreConfig{
			Path: DefaultStorePath(),
		},
	}
}

// ConfigPath returns the config file path: ~/.config/fstree/config.json
// This is consistent across all platforms (Windows, macOS, Linux)
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fstree", "config.json")
}

// DefaultStorePath returns the settings database path in the user's
// config directory.
func DefaultStorePath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Dir(filepath.Dir(ConfigPath()))
	}
	return filepath.Join(configDir, "fstree", "fstree.db")
}

// Path returns the config file path used by Load and Save.
func (m *Manager) Path() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// Load reads the configuration from the config file
// If the file doesn't exist, creates it with defaults
// If parsing fails, stores the error and returns defaults
// Environment overrides are applied in every case.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.parseErr = nil
	if err := m.loadFileLocked(); err != nil {
		return err
	}
	return m.applyEnvLocked()
}

func (m *Manager) loadFileLocked() error {
	configDir := filepath.Dir(m.path)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		log.Printf("Config: failed to create directory %s: %v", configDir, err)
		return err
	}

	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		debug.Log(debug.CONFIG, "creating default config at %s", m.path)
		m.config = DefaultConfig()
		if saveErr := m.saveUnlocked(); saveErr != nil {
			log.Printf("Config: failed to save default config: %v", saveErr)
			return saveErr
		}
		return nil
	}
	if err != nil {
		log.Printf("Config: failed to read %s: %v", m.path, err)
		return err
	}

	// Start from defaults so missing keys keep their default values.
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		log.Printf("Config: JSON parse error: %v", err)
		m.parseErr = err
		m.config = DefaultConfig()
		return nil // Don't return error - we're using defaults
	}

	debug.Log(debug.CONFIG, "loaded from %s", m.path)
	m.config = cfg
	return nil
}

func (m *Manager) applyEnvLocked() error {
	var o Overrides
	if err := envconfig.Process("FSTREE", &o); err != nil {
		return fmt.Errorf("config: environment overrides: %w", err)
	}
	if o.Workers > 0 {
		m.config.Tree.Workers = o.Workers
	}
	if len(o.Roots) > 0 {
		m.config.Tree.Roots = o.Roots
	}
	if o.StorePath != "" {
		m.config.Store.Path = o.StorePath
	}
	debug.Configure(o.Debug)
	return nil
}

// saveUnlocked saves config without acquiring lock (caller must hold lock)
func (m *Manager) saveUnlocked() error {
	return writeConfig(m.path, m.config)
}

func writeConfig(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return *DefaultConfig()
	}
	cfg := *m.config
	cfg.Tree.Roots = append([]string(nil), m.config.Tree.Roots...)
	return cfg
}

// ParseError returns the parsing error if config failed to load
func (m *Manager) ParseError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.parseErr
}

// SetShowAttributes updates the initial attribute display setting and
// writes it to the config file. Only the file's own values are written
// back, so environment overrides stay out of it. An unparsable file is
// left untouched.
func (m *Manager) SetShowAttributes(show bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config.Tree.ShowAttributes = show

	onDisk := DefaultConfig()
	data, err := os.ReadFile(m.path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, onDisk); err != nil {
			return fmt.Errorf("config %s is invalid, not saving: %w", m.path, err)
		}
	case !os.IsNotExist(err):
		return err
	}
	onDisk.Tree.ShowAttributes = show

	debug.Log(debug.CONFIG, "showAttributes=%v saved to %s", show, m.path)
	return writeConfig(m.path, onDisk)
}

// GenerateConfig backs up the existing config at path and writes a fresh
// default config. Returns the backup path if a backup was created, or
// empty string if no existing config.
func GenerateConfig(path string) (backupPath string, err error) {
	if path == "" {
		path = ConfigPath()
	}

	if _, err := os.Stat(path); err == nil {
		timestamp := time.Now().Format("20060102-150405")
		backupPath = filepath.Join(filepath.Dir(path), "config.backup."+timestamp+".json")

		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read existing config: %w", err)
		}
		if err := os.WriteFile(backupPath, data, 0o644); err != nil {
			return "", fmt.Errorf("failed to write backup: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return backupPath, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := writeConfig(path, DefaultConfig()); err != nil {
		return backupPath, fmt.Errorf("failed to write config: %w", err)
	}
	return backupPath, nil
}
