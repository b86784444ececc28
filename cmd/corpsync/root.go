package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"corpsync/internal/config"
	"corpsync/internal/domain"
	"corpsync/internal/graph"
	"corpsync/internal/report"
	"corpsync/internal/service"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "corpsync",
		Short:        "Sync BI-tool users into the metadata graph as corp-user change proposals",
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd())
	root.AddCommand(newValidateCmd())
	return root
}

func newValidateCmd() *cobra.Command {
	var recipePath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a recipe file without running ingestion",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := config.Load(recipePath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "recipe OK")
			return nil
		},
	}
	cmd.Flags().StringVarP(&recipePath, "recipe", "r", "recipe.yaml", "Path to the recipe file")

	return cmd
}

func newRunCmd() *cobra.Command {
	var recipePath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Resolve principals from the source export and write work units",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(recipePath)
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

			principals, err := readPrincipals(cfg.Source.UsersFile)
			if err != nil {
				return err
			}

			var store domain.EntityStore
			if cfg.DataHubAPI.Enabled() {
				store = graph.NewClient(cfg.DataHubAPI.Server, cfg.DataHubAPI.Token, graph.WithLogger(logger))
			}

			rep := report.New()
			resolver := service.NewUserResolver(cfg.Ownership, store, rep, logger, cfg.Platform)

			mcps, err := resolver.ResolveMany(cmd.Context(), principals)
			if err != nil {
				return err
			}
			units := resolver.WorkUnits(mcps)

			if err := writeWorkUnits(cfg.Output.Path, units); err != nil {
				return err
			}
			logger.Info("run complete",
				"summary", rep.Summary(), "workUnits", len(units), "output", cfg.Output.Path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&recipePath, "recipe", "r", "recipe.yaml", "Path to the recipe file")

	return cmd
}

// readPrincipals loads the BI tool's user export, a JSON array of principals.
func readPrincipals(path string) ([]*domain.Principal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read users file: %w", err)
	}
	var principals []*domain.Principal
	if err := json.Unmarshal(data, &principals); err != nil {
		return nil, fmt.Errorf("parse users file: %w", err)
	}
	return principals, nil
}

// writeWorkUnits writes one JSON work unit per line.
func writeWorkUnits(path string, units []domain.WorkUnit) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	enc := json.NewEncoder(f)
	for _, wu := range units {
		if err := enc.Encode(wu); err != nil {
			f.Close()
			return fmt.Errorf("encode work unit %s: %w", wu.ID, err)
		}
	}
	return f.Close()
}
