package config

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

type BaseEnv struct {
	Env       string `envconfig:"ENV" default:"local"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"warn"`
	Root      string `envconfig:"ROOT" default:"."`
	CorpusDir string `envconfig:"CORPUS_DIR" default:".claude"`
	Color     string `envconfig:"COLOR" default:"auto"`
	ASCII     bool   `envconfig:"ASCII" default:"false"`
}

type StorageEnv struct {
	Type string `envconfig:"STORAGE_TYPE" default:"local"`
	// S3 settings (used when Type == "s3")
	S3Bucket string `envconfig:"S3_BUCKET"`
	S3Prefix string `envconfig:"S3_PREFIX" default:".claude/"`
	S3Region string `envconfig:"S3_REGION" default:"ap-northeast-1"`
}

type Env struct {
	BaseEnv
	StorageEnv
}

const namespace = "PMGRAPH"

func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(namespace, &env); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}
	return &env, nil
}

func (e *BaseEnv) SlogLevel() slog.Level {
	if e == nil {
		return slog.LevelWarn
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(e.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}

// Colored resolves the COLOR setting (auto, always, never) against whether
// the output is a terminal.
func (e *BaseEnv) Colored(isTerminal bool) bool {
	switch e.Color {
	case "always":
		return true
	case "never":
		return false
	default:
		return isTerminal
	}
}

// CorpusPath is the local directory holding prds/, epics/ and rules/.
func (e *BaseEnv) CorpusPath() string {
	return filepath.Join(e.Root, e.CorpusDir)
}
