// Package cli implements the gitscoutctl command tree. Commands run the full
// scoring pipeline in-process against the configured store, so the CLI and
// the HTTP service see the same data.
package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/gitscout/gitscout/internal/adapters/github"
	service "github.com/gitscout/gitscout/internal/app"
	"github.com/gitscout/gitscout/internal/config"
	"github.com/gitscout/gitscout/pkg/logger"
)

// Build-time version metadata, overridden with -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "gitscoutctl",
	Short: "Score GitHub candidates against standard profiles",
	Long: `gitscoutctl evaluates a GitHub account's public activity against a
standard profile and produces a weighted 0-100 score with a hiring
recommendation.

Profiles and comparison history live in the same SQLite database the
gitscout service uses; point GITSCOUT_DB_PATH at the service's database
to share state.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(versionCmd)

	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesCreateCmd)
	profilesCmd.AddCommand(profilesDeleteCmd)

	compareCmd.Flags().StringP("profile", "p", "", "Standard profile id to score against")
	compareCmd.Flags().String("owner", "local", "Owner id recorded on the comparison")
	_ = compareCmd.MarkFlagRequired("profile")

	profilesCmd.PersistentFlags().String("owner", "local", "Owner id for profile operations")
	profilesCreateCmd.Flags().StringP("file", "f", "", "Path to a profile JSON document")
	_ = profilesCreateCmd.MarkFlagRequired("file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// startService builds and starts a Service from the environment config.
// Logging is kept at warn so command output stays readable.
func startService(ctx context.Context) (*service.Service, error) {
	if err := logger.Init(); err != nil {
		return nil, err
	}
	_ = logger.SetLevelString("warn")

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	client := github.New(
		github.WithBaseURL(cfg.GitHubBaseURL),
		github.WithToken(cfg.GitHubToken),
		github.WithTopRepoLimit(cfg.TopRepoSample),
		github.WithCommitWindow(cfg.CommitWindowDays),
		github.WithConcurrency(cfg.FetchConcurrency),
		github.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.RequestTimeoutMS) * time.Millisecond}),
	)

	svc := service.New(
		service.WithDBPath(cfg.DBPath),
		service.WithCacheSize(cfg.ProfileCacheSize),
		service.WithSupplier(client),
	)
	if err := svc.Start(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}
