package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/studylog/internal/analysis"
	"github.com/at-ishikawa/studylog/internal/bootstrap"
	"github.com/at-ishikawa/studylog/internal/careless"
	"github.com/at-ishikawa/studylog/internal/chat"
	"github.com/at-ishikawa/studylog/internal/config"
	"github.com/at-ishikawa/studylog/internal/database"
	"github.com/at-ishikawa/studylog/internal/inference/openai"
	"github.com/at-ishikawa/studylog/internal/question"
	"github.com/at-ishikawa/studylog/internal/search"
	"github.com/at-ishikawa/studylog/internal/server"
	"github.com/at-ishikawa/studylog/internal/summary"
)

const shutdownTimeout = 30 * time.Second

var configFile string

func main() {
	var debugMode bool
	rootCmd := &cobra.Command{
		Use:           "studylog-server",
		Short:         "Study log HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}

	slog.SetDefault(
		slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})),
	)
}

func run(ctx context.Context) error {
	app := bootstrap.New(shutdownTimeout)

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}
	loc := cfg.Location()

	db, err := database.Open(cfg.Database, loc)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	app.AddShutdownHook(func(context.Context) error {
		return db.Close()
	})

	client, err := openai.NewClient(cfg.OpenAI)
	if err != nil {
		return fmt.Errorf("openai.NewClient() > %w", err)
	}
	app.AddShutdownHook(func(context.Context) error {
		return client.Close()
	})

	questions := question.NewDBRepository(db)
	mistakes := careless.NewDBRepository(db)
	keywords := analysis.NewKeywordGenerator(client)
	handler := server.New(server.Dependencies{
		Questions: questions,
		Mistakes:  mistakes,
		Analyzer:  analysis.NewAssembler(client, questions, loc),
		Summaries: summary.NewEngine(questions, mistakes, summary.NewDBRepository(db), client),
		Recorder:  careless.NewService(mistakes, loc),
		Chat:      chat.NewRelay(client),
		Keywords:  keywords,
		Search:    search.NewService(questions, keywords, cfg.Server.SearchLimit),
	}, cfg.Server, loc)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	app.AddShutdownHook(srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Default().Info("starting server", "addr", srv.Addr, "model", client.GetModel())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}
