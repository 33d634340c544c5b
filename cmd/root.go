/*
Copyright © 2023 Alixinne <alixinne@pm.me>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"labelsync/config"
	"labelsync/constants"
	"labelsync/sync"
	"labelsync/vcs"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:               "labelsync",
	Short:             "Audit, sync and manage repository labels",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var dryRun bool
var debugMode bool
var configPath string
var hostName string
var token string

func setup(cmd *cobra.Command, args []string) error {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	if !debugMode {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), constants.DRY_RUN, dryRun))

	return nil
}

// loadClient connects to the selected host. Commands that change labels
// require a token.
func loadClient(ctx context.Context, requireToken bool) (vcs.Vcs, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	host, err := cfg.Host(hostName)
	if err != nil {
		return nil, err
	}

	if token != "" {
		host.Token = token
	}

	if requireToken && host.Token == "" {
		return nil, fmt.Errorf("no access token defined, set %s or pass --token", constants.TOKEN_ENV)
	}

	return vcs.LoadClient(ctx, host)
}

// parseTarget splits "namespace/repository" or "namespace".
func parseTarget(target string) (sync.Target, error) {
	parts := strings.Split(target, "/")

	switch {
	case len(parts) == 1 && parts[0] != "":
		return sync.Target{Namespace: parts[0]}, nil
	case len(parts) == 2 && parts[0] != "" && parts[1] != "":
		return sync.Target{Namespace: parts[0], Repository: parts[1]}, nil
	default:
		return sync.Target{}, fmt.Errorf("invalid target format: %s", target)
	}
}

var errNoAction = errors.New("at least one of --create, --delete, --modify must be set")

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		log.Error().Err(err).Send()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "Dry-run mode")
	rootCmd.PersistentFlags().BoolVarP(&debugMode, "debug", "D", false, "Debug mode")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Path to the host configuration")
	rootCmd.PersistentFlags().StringVar(&hostName, "host", "", "Name of the configured host to use (default: first host)")
	rootCmd.PersistentFlags().StringVarP(&token, "token", "T", "", fmt.Sprintf("Access token (also settable with a %s environment variable)", constants.TOKEN_ENV))
}
