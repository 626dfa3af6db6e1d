package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "token-relay",
		Short: "Mint identity-backend custom tokens over HTTP",
		Long: `token-relay holds the privileged service-account credential and mints
custom tokens for game clients through POST /createCustomToken.

Running without a subcommand is the same as "token-relay serve".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	root.AddCommand(newServeCmd(), newHealthcheckCmd(), newMintCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP relay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

// newHealthcheckCmd backs the container healthcheck in the distroless image.
func newHealthcheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "healthcheck",
		Short: "Check /health on the local relay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := runHealthcheck(cmd.Context(), os.Getenv("PORT")); err != nil {
				return fmt.Errorf("healthcheck failed: %w", err)
			}
			return nil
		},
	}
}

func newMintCmd() *cobra.Command {
	var uid string
	cmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint one custom token with the configured credential and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMint(cmd.Context(), cmd.OutOrStdout(), uid)
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "uid to mint a token for")
	_ = cmd.MarkFlagRequired("uid")
	return cmd
}
