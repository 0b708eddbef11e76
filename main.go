package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/supsi-dacd-isaac/stripe-testbed/observability"
)

var Version = "dev"

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.ErrorContext(ctx, "Error loading .env file", slog.Any("error", err))
	}

	shutdown, err := observability.Setup(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "error setting up OpenTelemetry", slog.Any("error", err))
	}
	if shutdown != nil {
		defer func() {
			if err := shutdown(ctx); err != nil {
				slog.ErrorContext(ctx, "error during shutdown", slog.Any("error", err))
			}
		}()
	}

	rootCmd := &cobra.Command{
		Use:     "stripe-testbed",
		Short:   "Stripe operations testbed",
		Version: Version,
	}
	rootCmd.PersistentFlags().String("config", "conf/config.json", "Path to configuration file")

	rootCmd.AddCommand(setCmd())
	rootCmd.AddCommand(getCmd())
	rootCmd.AddCommand(listPaymentsCmd())
	rootCmd.AddCommand(createCustomerCmd())
	rootCmd.AddCommand(createRefundCmd())
	rootCmd.AddCommand(listMethodsCmd())
	rootCmd.AddCommand(paymentDetailsCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
