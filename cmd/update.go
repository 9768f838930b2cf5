package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/smazurov/blinkd/internal/logging"
	"github.com/smazurov/blinkd/internal/updater"
	"github.com/smazurov/blinkd/internal/version"
)

// CreateUpdateCmd creates the update command.
func CreateUpdateCmd() *cobra.Command {
	var repo string
	var prerelease bool
	var checkOnly bool
	var rollback bool
	var restartUnit string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the blinkd binary from GitHub releases",
		Long: `Checks GitHub for a newer release and replaces the running binary, keeping a ` +
			`backup of the previous version for rollback.`,
		Run: func(_ *cobra.Command, _ []string) {
			logging.Initialize(logging.Config{Level: "info", Format: "text"})
			logger := logging.GetLogger("updater")

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			up, err := updater.New(updater.Options{
				Repository:  repo,
				Prerelease:  prerelease,
				RestartUnit: restartUnit,
			}, logger)
			if err != nil {
				fmt.Fprintln(os.Stderr, "update:", err)
				os.Exit(1)
			}

			if rollback {
				if err := up.Rollback(ctx); err != nil {
					fmt.Fprintln(os.Stderr, "rollback:", err)
					os.Exit(1)
				}
				fmt.Printf("Rolled back to %s\n", up.BackupVersion())
				return
			}

			info, err := up.Check(ctx)
			if err != nil {
				fmt.Fprintln(os.Stderr, "update:", err)
				os.Exit(1)
			}

			if !info.UpdateAvailable {
				fmt.Printf("Already up to date (%s)\n", version.String())
				return
			}

			fmt.Printf("Update available: %s -> %s\n", info.CurrentVersion, info.LatestVersion)
			if checkOnly {
				if info.ReleaseURL != "" {
					fmt.Println(info.ReleaseURL)
				}
				return
			}

			if err := up.Apply(ctx); err != nil {
				if errors.Is(err, updater.ErrNoUpdate) {
					fmt.Printf("Already up to date (%s)\n", version.String())
					return
				}
				fmt.Fprintln(os.Stderr, "update:", err)
				os.Exit(1)
			}
			fmt.Printf("Updated to %s\n", info.LatestVersion)
		},
	}

	cmd.Flags().StringVar(&repo, "repo", "smazurov/blinkd", "GitHub repository slug to update from")
	cmd.Flags().BoolVar(&prerelease, "prerelease", false, "Include prereleases")
	cmd.Flags().BoolVar(&checkOnly, "check", false, "Only check for an update, do not apply it")
	cmd.Flags().BoolVar(&rollback, "rollback", false, "Restore the previously backed up binary")
	cmd.Flags().StringVar(&restartUnit, "restart-unit", "", "systemd unit to restart after updating")

	return cmd
}
