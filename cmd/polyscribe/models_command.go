package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"polyscribe/internal/config"
	"polyscribe/internal/services"
	"polyscribe/internal/workflow"
)

func newModelsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the available transcription models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			registry := workflow.NewRegistry(cfg)
			rows := make([][]string, 0, len(registry.IDs()))
			for _, id := range registry.IDs() {
				rows = append(rows, []string{
					id,
					modelKind(cfg, id),
					yesNo(slices.Contains(cfg.Models.Enabled, id)),
					modelAvailability(registry, id),
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Model", "Kind", "Enabled", "Available"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func modelAvailability(registry *services.Registry, id string) string {
	transcriber, err := registry.Get(id)
	if err != nil {
		return err.Error()
	}
	if err := transcriber.Available(); err != nil {
		return "no: " + err.Error()
	}
	return "yes"
}

func modelKind(cfg *config.Config, id string) string {
	if script, ok := cfg.ScriptModelFor(id); ok {
		return "script: " + script.Script
	}
	return "built-in"
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
