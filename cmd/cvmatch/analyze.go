package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/acquisition"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/cleaning"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/feedback"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/fetch"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/llm"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/logger"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/observability"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/resume"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/scoring"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/scrape"
	"github.com/Abszoluto/IA-avaliadora-curriculos/internal/types"
)

var (
	analyzeCV          string
	analyzeURL         string
	analyzeDescription string
	analyzeTitle       string
	analyzeCompany     string
	analyzeVerbose     bool
	analyzeDebug       bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a one-shot compatibility analysis",
	Long: `Score a resume against a job posting. The posting comes either from
a LinkedIn URL (--url) or pasted text (--description). Without a
GEMINI_API_KEY the AI feedback stages are skipped.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeCV, "cv", "", "Path to the resume file (.docx or plain text)")
	analyzeCmd.Flags().StringVar(&analyzeURL, "url", "", "Job posting URL")
	analyzeCmd.Flags().StringVar(&analyzeDescription, "description", "", "Pasted job description")
	analyzeCmd.Flags().StringVar(&analyzeTitle, "title", "", "Job title override")
	analyzeCmd.Flags().StringVar(&analyzeCompany, "company", "", "Company name override")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print stage details")
	analyzeCmd.Flags().BoolVar(&analyzeDebug, "debug", false, "Enable debug logging")
	_ = analyzeCmd.MarkFlagRequired("cv")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(_ *cobra.Command, _ []string) error {
	if analyzeURL == "" && analyzeDescription == "" {
		return fmt.Errorf("either --url or --description is required")
	}

	log, err := logger.New(false, analyzeDebug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	var client llm.Client
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		gemini, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), apiKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		client = gemini
		defer func() { _ = gemini.Close() }()
	} else {
		log.Warn("GEMINI_API_KEY not set, skipping AI stages")
	}

	job, err := acquireJob(ctx, client, log)
	if err != nil {
		return err
	}

	file, err := os.Open(analyzeCV)
	if err != nil {
		return fmt.Errorf("failed to open resume: %w", err)
	}
	resumeText := resume.ExtractText(analyzeCV, file)
	_ = file.Close()
	if resume.IsErrorText(resumeText) {
		return fmt.Errorf("%s", resumeText)
	}

	score := scoring.Compatibility(resumeText, job.Description)
	audit := scoring.AuditResume(resumeText, job.Description)

	printer := observability.NewPrinter(os.Stdout)
	if analyzeVerbose {
		printer.PrintJob(job)
	}
	printer.PrintScore(score, audit)

	if client != nil {
		generator := feedback.NewGenerator(client, log)
		fb := generator.GenerateFeedback(ctx, resumeText, job.Description, job.Title, job.Company)
		if fb.Err {
			return fmt.Errorf("%s", fb.ErrMessage)
		}
		printer.PrintFeedback(fb)

		rw := generator.GenerateRewrite(ctx, resumeText, job.Description, job.Title, job.Company)
		if !rw.Err {
			printer.PrintRewrite(rw)
		}
	}

	return nil
}

// acquireJob resolves the posting fields from the URL or pasted description.
func acquireJob(ctx context.Context, client llm.Client, log *zap.Logger) (types.JobFields, error) {
	var refiner cleaning.Refiner
	if client != nil {
		refiner = llm.NewDescriptionRefiner(client, log)
	}
	normalizer := cleaning.NewNormalizer(refiner, log)

	opts := &fetch.Options{Timeout: fetch.DefaultTimeout}
	resolver := acquisition.NewResolver(scrape.NewLinkedIn(opts, log), normalizer)

	mode := acquisition.ModeManual
	if analyzeURL != "" {
		mode = acquisition.ModeAuto
	}

	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	outcome := resolver.Resolve(fetchCtx, mode, analyzeURL, types.JobFields{
		Title:       analyzeTitle,
		Company:     analyzeCompany,
		Description: analyzeDescription,
	})
	if !outcome.OK {
		switch outcome.Reason {
		case acquisition.FailureExtractionEmpty:
			return types.JobFields{}, fmt.Errorf("could not extract the posting from %s, pass --description instead", analyzeURL)
		case acquisition.FailureDescriptionRequired:
			return types.JobFields{}, fmt.Errorf("the pasted description is empty")
		default:
			return types.JobFields{}, fmt.Errorf("posting acquisition failed")
		}
	}

	return outcome.Fields, nil
}
