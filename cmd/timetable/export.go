package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/schedulely/timetable-extractor/internal/export"
)

func exportCmd(logger *slog.Logger) *cobra.Command {
	var out string
	var timeout time.Duration
	var noCache bool

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Extract a timetable and write it as an XLSX workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			res, err := runExtraction(ctx, logger, args[0], noCache)
			if err != nil {
				return err
			}
			if res.Failed() {
				return fmt.Errorf("extraction failed: %s", res.Error)
			}

			svc := export.NewService(logger)
			data, err := svc.TimetableXLSX(res)
			if err != nil {
				return err
			}

			if out == "" {
				out = "timetable.xlsx"
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			logger.Info("export.written", "path", out, "entries", len(res.Entries))
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default timetable.xlsx)")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall extraction deadline")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "skip the result cache")
	return cmd
}
