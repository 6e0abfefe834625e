package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const backupPrefix = "washbay_"

// BackupService периодически снимает копию sqlite-файла через VACUUM INTO:
// снимок консистентен даже при параллельной записи.
type BackupService struct {
	db        *DB
	dir       string
	interval  time.Duration
	retention int
	logger    *zerolog.Logger
}

func NewBackupService(db *DB, dir string, interval time.Duration, retentionDays int, logger *zerolog.Logger) *BackupService {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &BackupService{
		db:        db,
		dir:       dir,
		interval:  interval,
		retention: retentionDays,
		logger:    logger,
	}
}

// Run snapshots on a ticker until the context is cancelled. The first
// snapshot is taken immediately.
func (s *BackupService) Run(ctx context.Context) {
	s.logger.Info().
		Str("dir", s.dir).
		Dur("interval", s.interval).
		Msg("backup service started")

	if _, err := s.Snapshot(ctx); err != nil {
		s.logger.Error().Err(err).Msg("initial backup failed")
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("backup service stopped")
			return
		case <-ticker.C:
			if _, err := s.Snapshot(ctx); err != nil {
				s.logger.Error().Err(err).Msg("scheduled backup failed")
			}
			s.prune()
		}
	}
}

// Snapshot writes a consistent copy of the database and returns its path.
func (s *BackupService) Snapshot(ctx context.Context) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	name := backupPrefix + time.Now().Format("20060102_150405") + ".db"
	path := filepath.Join(s.dir, name)

	if _, err := s.db.ExecContext(ctx, `VACUUM INTO ?`, path); err != nil {
		return "", fmt.Errorf("failed to snapshot database: %w", err)
	}

	s.logger.Info().Str("path", path).Msg("database backup written")
	return path, nil
}

// prune deletes snapshots older than the retention window.
func (s *BackupService) prune() {
	if s.retention <= 0 {
		return
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to read backup directory")
		return
	}

	cutoff := time.Now().AddDate(0, 0, -s.retention)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), backupPrefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			s.logger.Info().Str("file", entry.Name()).Msg("deleting expired backup")
			os.Remove(filepath.Join(s.dir, entry.Name()))
		}
	}
}
