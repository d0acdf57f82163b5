package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kazz187/pmgraph/pkg/cerr"
	"github.com/kazz187/pmgraph/pkg/storage"
)

// SettingsFile is read from the corpus root when present.
const SettingsFile = "pmgraph.yaml"

const (
	DefaultSearchTaskLimit  = 10
	DefaultProgressBarWidth = 20
	DefaultStandupWindow    = 24 * time.Hour
)

type Settings struct {
	Search   SearchSettings   `yaml:"search"`
	Progress ProgressSettings `yaml:"progress"`
	Standup  StandupSettings  `yaml:"standup"`
}

type SearchSettings struct {
	TaskLimit int `yaml:"task_limit"`
}

type ProgressSettings struct {
	BarWidth int `yaml:"bar_width"`
}

type StandupSettings struct {
	Window Duration `yaml:"window"`
}

// Duration decodes Go duration strings such as "36h".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func DefaultSettings() Settings {
	return Settings{
		Search:   SearchSettings{TaskLimit: DefaultSearchTaskLimit},
		Progress: ProgressSettings{BarWidth: DefaultProgressBarWidth},
		Standup:  StandupSettings{Window: Duration(DefaultStandupWindow)},
	}
}

// LoadSettings reads SettingsFile from store. A missing file yields the
// defaults; an unreadable or malformed one is logged and also yields the
// defaults, so a broken settings file never blocks a report.
func LoadSettings(ctx context.Context, store storage.Storage) Settings {
	settings := DefaultSettings()
	data, err := store.Read(ctx, SettingsFile)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.WarnContext(ctx, "failed to read settings, using defaults", "path", SettingsFile, "error", cerr.WrapStorageReadError(SettingsFile, err))
		}
		return settings
	}
	parsed := DefaultSettings()
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		slog.WarnContext(ctx, "invalid settings file, using defaults", "path", SettingsFile, "error", err)
		return settings
	}
	return parsed.normalized()
}

func (s Settings) normalized() Settings {
	def := DefaultSettings()
	if s.Search.TaskLimit <= 0 {
		s.Search.TaskLimit = def.Search.TaskLimit
	}
	if s.Progress.BarWidth <= 0 {
		s.Progress.BarWidth = def.Progress.BarWidth
	}
	if s.Standup.Window <= 0 {
		s.Standup.Window = def.Standup.Window
	}
	return s
}
