package main

import (
    "context"
    "fmt"
    "log/slog"
    "os"
    "time"

    "github.com/google/uuid"
    "github.com/spf13/cobra"

    "github.com/thywilljoshua/pdf-image-captioner/internal/ai"
    "github.com/thywilljoshua/pdf-image-captioner/internal/config"
    "github.com/thywilljoshua/pdf-image-captioner/internal/convert"
)

func rootCmd() *cobra.Command {
    var out string
    var sleepSeconds float64
    var pageNumbers bool
    var envFile string
    var verbose bool

    cmd := &cobra.Command{
        Use:   "pdfcaption <pdf>",
        Short: "Extract text from a PDF file and generate captions for its images",
        Long: `pdfcaption extracts the text of every page of a PDF, asks a generative
model to caption each embedded image, and appends the captions to the text
of the page they appear on.

Settings are read from the environment and from config/.env:
  GOOGLE_API_KEY          Gemini API key (required for the gemini backend)
  GENERATIVE_MODEL_NAME   model to use (default ` + ai.DefaultGeminiModel + `)
  BACKOFF_MAX_TRIES       max attempts per image when rate limited (default unlimited)
  BACKOFF_MAX_TIME        max seconds per image when rate limited (default unlimited)
  CAPTION_BACKEND         gemini, openai, or noop for a dry run (default gemini)
  OPENAI_API_KEY          API key for the openai backend
  OPENAI_BASE_URL         base URL of an OpenAI-compatible endpoint`,
        Args:          cobra.ExactArgs(1),
        SilenceUsage:  true,
        SilenceErrors: true,
        RunE: func(cmd *cobra.Command, args []string) error {
            if sleepSeconds < 0 {
                return fmt.Errorf("--seconds-to-sleep-between-requests must not be negative, got %v", sleepSeconds)
            }
            pdfPath := args[0]

            level := slog.LevelInfo
            if verbose {
                level = slog.LevelDebug
            }
            logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})).
                With("run_id", uuid.New().String())

            settings, err := config.Load(envFile)
            if err != nil {
                return fmt.Errorf("loading settings failed: %w", err)
            }
            backend := newBackend(settings)
            captioner := ai.NewCaptioner(backend,
                ai.WithRetryPolicy(ai.RetryPolicy{
                    MaxAttempts: settings.BackoffMaxTries,
                    MaxElapsed:  settings.BackoffMaxTime,
                }),
                ai.WithLogger(logger),
            )

            logger.Info("captioning pdf", "pdf", pdfPath, "backend", settings.Backend, "model", settings.ModelName)
            start := time.Now()
            res, err := convert.Run(cmd.Context(), pdfPath, convert.Config{
                Captioner:      captioner,
                MinInterval:    time.Duration(sleepSeconds * float64(time.Second)),
                AddPageNumbers: pageNumbers,
                Logger:         logger,
            })
            if err != nil {
                return err
            }

            if out != "" {
                if err := os.WriteFile(out, []byte(res.Report), 0o644); err != nil {
                    return err
                }
            } else {
                fmt.Fprintln(cmd.OutOrStdout(), res.Report)
            }
            printSummary(cmd.ErrOrStderr(), res.Stats, out, time.Since(start))
            return nil
        },
    }
    cmd.Flags().StringVarP(&out, "output", "o", "", "path to the output file (default: standard output)")
    cmd.Flags().Float64VarP(&sleepSeconds, "seconds-to-sleep-between-requests", "s", 1.0, "seconds to sleep between requests to the captioning service, to avoid rate limiting")
    cmd.Flags().BoolVar(&pageNumbers, "page-numbers", true, "prefix every page with its page number")
    cmd.Flags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file to load settings from")
    cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log retries and per-image progress")
    return cmd
}

// newBackend returns a handle that builds the API client on first use and
// keeps it for the life of the process. The noop backend makes no calls.
func newBackend(s *config.Settings) ai.Backend {
    switch s.Backend {
    case config.BackendNoop:
        return ai.Noop{}
    case config.BackendOpenAI:
        return ai.NewLazyBackend(s.Backend, func(ctx context.Context) (ai.Backend, error) {
            return ai.NewOpenAI(ai.OpenAIConfig{APIKey: s.OpenAIAPIKey, Model: s.ModelName, BaseURL: s.OpenAIBaseURL})
        })
    default:
        return ai.NewLazyBackend(s.Backend, func(ctx context.Context) (ai.Backend, error) {
            return ai.NewGemini(ctx, s.GoogleAPIKey, s.ModelName)
        })
    }
}
