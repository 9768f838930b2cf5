// Package updater handles self-updates of the blinkd binary from
// GitHub releases.
package updater

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/creativeprojects/go-selfupdate"

	"github.com/smazurov/blinkd/internal/systemd"
	"github.com/smazurov/blinkd/internal/version"
)

// Sentinel errors returned by Check, Apply and Rollback.
var (
	ErrNoUpdate = errors.New("no update available")
	ErrNoBackup = errors.New("no backup available")
)

// Options configures the updater.
type Options struct {
	Repository  string // GitHub repo slug, e.g. "smazurov/blinkd"
	Prerelease  bool
	RestartUnit string // systemd unit to restart after a successful update, empty to skip
}

// UpdateInfo describes the latest release relative to the running binary.
type UpdateInfo struct {
	CurrentVersion  string
	LatestVersion   string
	ReleaseNotes    string
	ReleaseURL      string
	PublishedAt     time.Time
	UpdateAvailable bool
}

// Updater checks for and applies releases, keeping one backup of the
// previous binary for rollback.
type Updater struct {
	opts    Options
	repo    selfupdate.Repository
	updater *selfupdate.Updater
	backups *backupManager
	latest  *selfupdate.Release
	logger  *slog.Logger
}

// New creates an updater. It fails early when the executable's
// directory is not writable, since Apply could never succeed.
func New(opts Options, logger *slog.Logger) (*Updater, error) {
	if err := checkWritePermission(); err != nil {
		return nil, err
	}

	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub source: %w", err)
	}

	up, err := selfupdate.NewUpdater(selfupdate.Config{
		Source:     source,
		Prerelease: opts.Prerelease,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create updater: %w", err)
	}

	backups, err := newBackupManager(logger)
	if err != nil {
		return nil, err
	}

	return &Updater{
		opts:    opts,
		repo:    selfupdate.ParseSlug(opts.Repository),
		updater: up,
		backups: backups,
		logger:  logger,
	}, nil
}

func checkWritePermission() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return fmt.Errorf("failed to resolve symlinks: %w", err)
	}

	dir := filepath.Dir(exe)
	tmp := filepath.Join(dir, ".blinkd.update.test")
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("no write permission to %s: %w", dir, err)
	}
	f.Close()
	os.Remove(tmp)
	return nil
}

// Check queries GitHub for the latest release and compares it against
// the running binary. A dev build always counts as outdated.
func (u *Updater) Check(ctx context.Context) (*UpdateInfo, error) {
	current := version.Version

	release, found, err := u.updater.DetectLatest(ctx, u.repo)
	if err != nil {
		return nil, fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("repository %s not found or has no releases", u.opts.Repository)
	}

	info := &UpdateInfo{
		CurrentVersion: current,
		LatestVersion:  release.Version(),
		ReleaseNotes:   release.ReleaseNotes,
		ReleaseURL:     release.URL,
		PublishedAt:    release.PublishedAt,
	}

	if current == "dev" || release.GreaterThan(current) {
		info.UpdateAvailable = true
		u.latest = release
	}

	return info, nil
}

// Apply downloads and installs the latest release, backing up the
// current binary first. A failed install restores the backup. When a
// restart unit is configured, the unit is restarted afterwards.
func (u *Updater) Apply(ctx context.Context) error {
	if u.latest == nil {
		info, err := u.Check(ctx)
		if err != nil {
			return err
		}
		if !info.UpdateAvailable {
			return ErrNoUpdate
		}
	}

	if err := u.backups.create(); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	if err := u.updater.UpdateTo(ctx, u.latest, exe); err != nil {
		u.restoreAfterFailure()
		return fmt.Errorf("failed to apply update: %w", err)
	}

	u.logger.Info("Update applied", "version", u.latest.Version())
	return u.restartUnit(ctx)
}

// Rollback restores the previously backed up binary.
func (u *Updater) Rollback(ctx context.Context) error {
	if !u.backups.hasBackup() {
		return ErrNoBackup
	}
	if err := u.backups.restore(); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}

	u.logger.Info("Rollback completed", "version", u.backups.backupVersion())
	return u.restartUnit(ctx)
}

// BackupVersion returns the version of the stored backup, empty when
// no backup exists.
func (u *Updater) BackupVersion() string {
	return u.backups.backupVersion()
}

func (u *Updater) restoreAfterFailure() {
	if !u.backups.hasBackup() {
		u.logger.Error("No backup available for automatic rollback")
		return
	}
	if err := u.backups.restore(); err != nil {
		u.logger.Error("Failed to restore backup", "error", err)
		return
	}
	u.logger.Info("Automatic rollback completed")
}

func (u *Updater) restartUnit(ctx context.Context) error {
	if u.opts.RestartUnit == "" {
		return nil
	}

	mgr, err := systemd.NewManager(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to systemd: %w", err)
	}
	defer mgr.Close()

	u.logger.Info("Restarting unit", "unit", u.opts.RestartUnit)
	if err := mgr.RestartService(ctx, u.opts.RestartUnit); err != nil {
		return fmt.Errorf("failed to restart %s: %w", u.opts.RestartUnit, err)
	}
	return nil
}
