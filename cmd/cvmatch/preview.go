package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/acquisition"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/cleaning"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/fetch"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/logger"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/observability"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/scrape"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/types"
)

var previewCmd = &cobra.Command{
	Use:   "preview <url>",
	Short: "Extract and clean a job posting without analyzing",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(_ *cobra.Command, args []string) error {
	log, err := logger.New(false, false)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	normalizer := cleaning.NewNormalizer(nil, log)
	opts := &fetch.Options{Timeout: fetch.DefaultTimeout}
	resolver := acquisition.NewResolver(scrape.NewLinkedIn(opts, log), normalizer)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	outcome := resolver.Resolve(ctx, acquisition.ModeAuto, args[0], types.JobFields{})
	if !outcome.OK {
		return fmt.Errorf("could not extract the posting from %s", args[0])
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintJob(outcome.Fields)
	fmt.Println()
	fmt.Println(outcome.Fields.Description)
	return nil
}
