package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	Dir string `mapstructure:"dir" default:"./archives"`
}

// Archiver writes snapshots below a directory, mostly for development setups
type Archiver struct {
	dir string
}

func NewArchiver(config Config, prefix string) (*Archiver, error) {
	dir := config.Dir
	if dir == "" {
		dir = "./archives"
	}
	dir = filepath.Join(dir, filepath.FromSlash(prefix))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive dir: %w", err)
	}
	return &Archiver{dir: dir}, nil
}

func (a *Archiver) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target := filepath.Join(a.dir, filepath.FromSlash(filepath.Clean("/"+key)))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	return os.WriteFile(target, data, 0o644)
}
