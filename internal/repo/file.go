package repo

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// FileStore persists trips in a line-based text file, one trip per line.
type FileStore struct {
	path     string
	fallback decimal.Decimal
	log      *slog.Logger
}

// NewFileStore constructs a FileStore for path. Reloaded trips get fallback
// as their budget. Malformed lines are skipped and reported through log.
func NewFileStore(path string, fallback decimal.Decimal, log *slog.Logger) *FileStore {
	if log == nil {
		log = slog.Default()
	}
	return &FileStore{path: path, fallback: fallback, log: log}
}

// Load reads every well-formed line. A missing file is an empty history.
func (s *FileStore) Load(_ context.Context) ([]domain.Trip, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Trip{}, nil
		}
		return nil, fmt.Errorf("repo.FileStore.Load: %w: %w", domain.ErrStorageUnavailable, err)
	}
	defer f.Close()

	// Lines of any length are read whole; an oversized one is skipped like
	// any other malformed line.
	trips := []domain.Trip{}
	r := bufio.NewReader(f)
	for lineNo := 1; ; lineNo++ {
		line, err := r.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("repo.FileStore.Load: %w: %w", domain.ErrStorageUnavailable, err)
		}
		if strings.TrimSpace(line) != "" {
			if t, perr := ParseLine(line, s.fallback); perr != nil {
				s.log.Warn("skipping malformed trip line",
					"path", s.path,
					"line", lineNo,
					"error", perr,
				)
			} else {
				trips = append(trips, t)
			}
		}
		if err != nil {
			break
		}
	}
	return trips, nil
}

// Save truncates the file and writes every trip. The file is closed before
// Save returns, also when a write fails.
func (s *FileStore) Save(_ context.Context, trips []domain.Trip) (err error) {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("repo.FileStore.Save: %w: %w", domain.ErrStorageUnavailable, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("repo.FileStore.Save: close: %w: %w", domain.ErrStorageUnavailable, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	for _, t := range trips {
		if _, err := w.WriteString(FormatLine(t) + "\n"); err != nil {
			return fmt.Errorf("repo.FileStore.Save: %w: %w", domain.ErrStorageUnavailable, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("repo.FileStore.Save: %w: %w", domain.ErrStorageUnavailable, err)
	}
	return nil
}
