package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/justyntemme/sneaky-t/pkg/models"
	"github.com/spf13/viper"
)

const (
	configFileName = "config.json"
	logFileName    = "sneaky-t.log"
	homeDirName    = "sneaky-t"
	envPrefix      = "SNEAKY"

	DefaultTextSize  = 16
	DefaultTextColor = "#1cb8c3ff"
	DefaultTheme     = "dark"
	MinTextSize      = 8
	MaxTextSize      = 48
	TextSizeStep     = 2
)

// Config holds the application configuration
type Config struct {
	Appearance models.Appearance `json:"appearance" mapstructure:"appearance"`
	Control    models.Control    `json:"control" mapstructure:"control"`
}

// DefaultConfig returns the configuration written on first start
func DefaultConfig() *Config {
	return &Config{
		Appearance: models.Appearance{
			TextSize:  DefaultTextSize,
			TextColor: DefaultTextColor,
			Theme:     DefaultTheme,
		},
		Control: models.Control{
			ShowHide: []string{"ctrl+@", "`"},
			NextPage: []string{"right", "l", " ", "pgdown"},
			PrevPage: []string{"left", "h", "pgup"},
		},
	}
}

// Manager loads the configuration file and keeps it current when the file
// is edited while the reader runs.
type Manager struct {
	v      *viper.Viper
	path   string
	logger *slog.Logger

	// saveMu keeps file events from being read between an in-memory update
	// and the write that follows it
	saveMu sync.Mutex

	mu        sync.RWMutex
	config    *Config
	callbacks []func(old, cur *Config)
}

// NewManager loads the config at path, writing the defaults there first if
// the file does not exist yet.
func NewManager(path string, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		v:      viper.New(),
		path:   path,
		logger: logger.With("component", "config"),
	}

	defaults := DefaultConfig()
	m.v.SetDefault("appearance.text_size", defaults.Appearance.TextSize)
	m.v.SetDefault("appearance.text_color", defaults.Appearance.TextColor)
	m.v.SetDefault("appearance.theme", defaults.Appearance.Theme)
	m.v.SetDefault("control.show_hide", defaults.Control.ShowHide)
	m.v.SetDefault("control.next_page", defaults.Control.NextPage)
	m.v.SetDefault("control.prev_page", defaults.Control.PrevPage)

	// SNEAKY_APPEARANCE_TEXT_SIZE=20 and friends
	m.v.SetEnvPrefix(envPrefix)
	m.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.v.AutomaticEnv()

	m.v.SetConfigFile(path)
	m.v.SetConfigType("json")

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := writeFile(path, defaults); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
		m.logger.Info("wrote default config", "path", path)
	}

	if err := m.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := m.load()
	if err != nil {
		return nil, err
	}
	m.config = cfg
	return m, nil
}

// load parses the current viper state into a Config struct
func (m *Manager) load() (*Config, error) {
	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Appearance.TextSize = ClampTextSize(cfg.Appearance.TextSize)
	return &cfg, nil
}

// Path returns the config file path
func (m *Manager) Path() string {
	return m.path
}

// Get returns the current configuration (thread-safe)
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Appearance returns the current appearance settings
func (m *Manager) Appearance() models.Appearance {
	return m.Get().Appearance
}

// OnChange registers a callback for config changes made to the file
func (m *Manager) OnChange(fn func(old, cur *Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

// WatchConfig enables hot-reloading of the configuration file
func (m *Manager) WatchConfig() {
	m.v.OnConfigChange(func(e fsnotify.Event) {
		// a save in progress has already swapped m.config; wait for the
		// file to match it
		m.saveMu.Lock()
		cfg, err := m.reload()
		if err != nil {
			m.saveMu.Unlock()
			m.logger.Warn("ignoring config change", "file", e.Name, "error", err)
			return
		}
		old, callbacks, changed := m.swap(cfg)
		m.saveMu.Unlock()

		if changed {
			notify(callbacks, old, cfg)
		}
	})
	m.v.WatchConfig()
}

// reload reads the file again. Viper reports changes even when its own read
// failed, which would leave the previous contents in place.
func (m *Manager) reload() (*Config, error) {
	if err := m.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return m.load()
}

// apply swaps in cfg and notifies callbacks if anything changed
func (m *Manager) apply(cfg *Config) {
	if old, callbacks, changed := m.swap(cfg); changed {
		notify(callbacks, old, cfg)
	}
}

// swap replaces the current config. Our own saves come back as file events
// carrying an identical config; those report changed == false.
func (m *Manager) swap(cfg *Config) (old *Config, callbacks []func(old, cur *Config), changed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	old = m.config
	if reflect.DeepEqual(old, cfg) {
		return old, nil, false
	}
	m.config = cfg
	callbacks = make([]func(old, cur *Config), len(m.callbacks))
	copy(callbacks, m.callbacks)
	return old, callbacks, true
}

func notify(callbacks []func(old, cur *Config), old, cur *Config) {
	for _, fn := range callbacks {
		fn(old, cur)
	}
}

// SetTextSize updates the text size and saves
func (m *Manager) SetTextSize(size int) error {
	size = ClampTextSize(size)
	return m.update(func(c *Config) { c.Appearance.TextSize = size })
}

// SetTextColor updates the text colour and saves
func (m *Manager) SetTextColor(color string) error {
	return m.update(func(c *Config) { c.Appearance.TextColor = color })
}

// SetTheme updates the UI theme and saves
func (m *Manager) SetTheme(name string) error {
	return m.update(func(c *Config) { c.Appearance.Theme = name })
}

// update changes the in-memory config before writing it, so the file event
// caused by our own write reloads an identical config.
func (m *Manager) update(fn func(*Config)) error {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.mu.Lock()
	cfg := *m.config
	fn(&cfg)
	m.config = &cfg
	m.mu.Unlock()

	return m.Save()
}

// Save persists the configuration to disk
func (m *Manager) Save() error {
	if err := writeFile(m.path, m.Get()); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}

func writeFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// replace the file in one step so the watcher never reads it half written
	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ClampTextSize keeps size within the supported range
func ClampTextSize(size int) int {
	if size < MinTextSize {
		return MinTextSize
	}
	if size > MaxTextSize {
		return MaxTextSize
	}
	return size
}

// DefaultHome returns the data root, ~/.config/sneaky-t on most systems
func DefaultHome() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, homeDirName), nil
}

// FilePath returns the config file inside home
func FilePath(home string) string {
	return filepath.Join(home, configFileName)
}

// LogPath returns the log file inside home
func LogPath(home string) string {
	return filepath.Join(home, logFileName)
}
