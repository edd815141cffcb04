// Command paygwctl calls the payment gateway from the command line.
//
// Credentials are read from a YAML config file whose ${VAR} references are
// expanded from the environment; a .env file in the working directory is
// loaded first when present.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sirosfoundation/go-paygw/pkg/config"
)

var Version = "dev"

// app carries the state shared by all subcommands
type app struct {
	configPath string
	envFile    string
	verbose    bool

	logger *slog.Logger
	cfg    *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "paygwctl",
		Short:         "Payment gateway client (Direct API and SEVD)",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "paygw.yaml", "Path to the YAML configuration file")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before the configuration")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(pingCmd(a))
	rootCmd.AddCommand(statusCmd(a))
	rootCmd.AddCommand(chargeCmd(a))
	rootCmd.AddCommand(captureCmd(a))
	rootCmd.AddCommand(creditCmd(a))
	rootCmd.AddCommand(sevdSaleCmd(a))

	return rootCmd
}

func (a *app) setup(stderr io.Writer) error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", a.envFile, err)
		}
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.logger.Debug("configuration loaded",
		"path", a.configPath,
		"environment", cfg.Environment,
		"base_url", cfg.ResolvedBaseURL())
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
