package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/longhd1308/ClockApp/internal/domain"
)

// FileRepository implements domain.SettingsRepository using a JSON file.
// This is a secondary adapter.
type FileRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileRepository creates a new file-based settings repository.
func NewFileRepository(path string) (*FileRepository, error) {
	if path == "" {
		return nil, errors.New("path is required")
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create settings dir: %w", err)
	}

	return &FileRepository{path: path}, nil
}

// Path returns the file backing the repository.
func (f *FileRepository) Path() string {
	return f.path
}

// persistedData represents the JSON structure on disk.
type persistedData struct {
	Language         string                   `json:"language"`
	TickInterval     string                   `json:"tickInterval"`
	DefaultSelection domain.DurationSelection `json:"defaultSelection"`
}

// Load reads the settings from disk. A missing file yields the defaults.
func (f *FileRepository) Load() (domain.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultSettings(), nil
		}
		return domain.Settings{}, fmt.Errorf("read settings: %w", err)
	}

	var persisted persistedData
	if err := json.Unmarshal(data, &persisted); err != nil {
		return domain.Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}

	settings := domain.DefaultSettings()

	// Unknown or empty values keep their defaults
	if lang, err := domain.ParseLanguage(persisted.Language); err == nil {
		settings.Language = lang
	}
	if persisted.TickInterval != "" {
		d, err := time.ParseDuration(persisted.TickInterval)
		if err != nil {
			return domain.Settings{}, fmt.Errorf("parse tickInterval %q: %w", persisted.TickInterval, err)
		}
		settings.TickInterval = d
	}
	settings.DefaultSelection = persisted.DefaultSelection.Clamp()

	return settings, nil
}

// Save persists the settings to disk.
func (f *FileRepository) Save(settings domain.Settings) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	persisted := persistedData{
		Language:         string(settings.Language),
		TickInterval:     settings.TickInterval.String(),
		DefaultSelection: settings.DefaultSelection,
	}

	data, err := json.MarshalIndent(persisted, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Atomic write
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write tmp: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("rename tmp: %w", err)
	}

	return nil
}

// DefaultPath returns the default settings file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "clockapp", "settings.json")
}

// MemoryRepository keeps settings in memory. The CLI uses it when --config is
// empty.
type MemoryRepository struct {
	mu       sync.Mutex
	settings domain.Settings
}

// NewMemoryRepository creates a repository seeded with settings.
func NewMemoryRepository(settings domain.Settings) *MemoryRepository {
	return &MemoryRepository{settings: settings}
}

// Load returns the stored settings.
func (m *MemoryRepository) Load() (domain.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings, nil
}

// Save replaces the stored settings.
func (m *MemoryRepository) Save(settings domain.Settings) error {
	m.mu.Lock()
	m.settings = settings
	m.mu.Unlock()
	return nil
}
