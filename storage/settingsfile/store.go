// Package settingsfile persists settings.Settings as a small JSON document.
package settingsfile

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/trezcool/recordsync/core"
	"github.com/trezcool/recordsync/core/settings"
)

const (
	keyClassStartTime       = "class_start_time"
	keyClassDurationMinutes = "class_duration_minutes"
)

type Store struct {
	mu     sync.Mutex
	path   string
	logger core.Logger
}

var _ settings.Repository = (*Store)(nil)

// New returns a store backed by `path`, which must carry a .json extension.
func New(path string, logger core.Logger) *Store {
	return &Store{path: path, logger: logger}
}

func (s *Store) Path() string { return s.path }

// Read returns the persisted settings. A missing or malformed file reads as zero Settings.
func (s *Store) Read(_ context.Context) settings.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("reading settings file, using defaults", errors.Wrapf(err, "reading %s", s.path))
		}
		return settings.Settings{}
	}

	var st settings.Settings
	if err := v.Unmarshal(&st); err != nil {
		s.logger.Warn("decoding settings file, using defaults", errors.Wrapf(err, "decoding %s", s.path))
		return settings.Settings{}
	}
	return st
}

func (s *Store) Write(_ context.Context, st settings.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", filepath.Dir(s.path))
	}

	v := viper.New()
	v.SetConfigType("json")
	v.Set(keyClassStartTime, st.ClassStartTime)
	v.Set(keyClassDurationMinutes, st.ClassDurationMinutes)
	if err := v.WriteConfigAs(s.path); err != nil {
		return errors.Wrapf(err, "writing %s", s.path)
	}
	return nil
}
