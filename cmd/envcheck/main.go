// envcheck - asserts that the environment loaded from a dotenv file carries the expected value
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/qolzam/envcheck/internal/api"
	"github.com/qolzam/envcheck/internal/envcheck"
	"github.com/qolzam/envcheck/internal/pkg/log"
	"github.com/qolzam/envcheck/internal/platform/config"
)

const (
	serviceName    = "envcheck"
	serviceVersion = "v1.0.0"
)

type options struct {
	envFiles []string
	key      string
	expected string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error("%v", err)
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           serviceName,
		Short:         "Assert an environment variable loaded from a dotenv file",
		Version:       serviceVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringSliceVar(&opts.envFiles, "env-file", nil, "dotenv file to load; the first existing one wins (default from ENVCHECK_ENV_FILES or .env)")
	root.PersistentFlags().StringVar(&opts.key, "key", "", "variable to check (default from ENVCHECK_KEY or DJANGO_ENV)")
	root.PersistentFlags().StringVar(&opts.expected, "expected", "", "expected value (default from ENVCHECK_EXPECTED or TESTING)")

	root.AddCommand(newRunCmd(opts), newServeCmd(opts))
	return root
}

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the check once and exit non-zero on mismatch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, check, err := acquire(cmd, opts)
			if err != nil {
				return err
			}

			res, err := check.Run(envcheck.ProcessSnapshot())
			printResult(cmd.OutOrStdout(), res)
			return err
		},
	}
}

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the check result over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, check, err := acquire(cmd, opts)
			if err != nil {
				return err
			}

			handler := api.NewHandler(check, envcheck.ProcessSnapshot())
			app := api.Router(handler, cfg.Server)

			errCh := make(chan error, 1)
			go func() {
				log.Info("Starting %s %s on %s", serviceName, serviceVersion, cfg.Server.Addr())
				errCh <- app.Listen(cfg.Server.Addr())
			}()

			// Graceful shutdown
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			select {
			case err := <-errCh:
				return fmt.Errorf("failed to start server: %w", err)
			case <-quit:
			}

			log.Info("Shutting down server...")
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := app.ShutdownWithContext(ctx); err != nil {
				log.Warn("Server forced to shutdown: %v", err)
			}
			log.Info("Server stopped")
			return nil
		},
	}
}

// acquire loads the env file into the process before anything reads it,
// then builds the check from configuration and flags.
func acquire(cmd *cobra.Command, opts *options) (*config.Config, envcheck.Check, error) {
	cfg, err := config.LoadFromEnv(opts.envFiles...)
	if err != nil {
		return nil, envcheck.Check{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.Check.Loaded == "" {
		log.Warn("No env file found (tried %v), using process environment only", cfg.Check.EnvFiles)
	} else {
		log.Info("Loaded env file %s", cfg.Check.Loaded)
	}

	check := envcheck.Check{Key: cfg.Check.Key, Expected: cfg.Check.Expected}
	if cmd.Flags().Changed("key") {
		check.Key = opts.key
	}
	if cmd.Flags().Changed("expected") {
		check.Expected = opts.expected
	}
	if err := check.Validate(); err != nil {
		return nil, envcheck.Check{}, err
	}
	return cfg, check, nil
}

func printResult(w io.Writer, res envcheck.Result) {
	switch {
	case res.Passed:
		fmt.Fprintf(w, "PASS %s = %q\n", res.Key, res.Observed)
	case !res.Present:
		fmt.Fprintf(w, "FAIL %s is not set, expected %q\n", res.Key, res.Expected)
	default:
		fmt.Fprintf(w, "FAIL %s = %q, expected %q\n", res.Key, res.Observed, res.Expected)
	}
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, envcheck.ErrAssertionMismatch):
		return 1
	default:
		return 2
	}
}
