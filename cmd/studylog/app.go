package main

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/studylog/internal/careless"
	"github.com/at-ishikawa/studylog/internal/config"
	"github.com/at-ishikawa/studylog/internal/database"
	"github.com/at-ishikawa/studylog/internal/inference/openai"
	"github.com/at-ishikawa/studylog/internal/question"
	"github.com/at-ishikawa/studylog/internal/summary"
)

// app holds what every data command needs: the stores and the AI model client.
type app struct {
	cfg       *config.Config
	db        *sqlx.DB
	client    *openai.Client
	questions *question.DBRepository
	mistakes  *careless.DBRepository
	summaries *summary.DBRepository
	engine    *summary.Engine
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	db, err := database.Open(cfg.Database, cfg.Location())
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	client, err := openai.NewClient(cfg.OpenAI)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("openai.NewClient() > %w", err)
	}

	a := &app{
		cfg:       cfg,
		db:        db,
		client:    client,
		questions: question.NewDBRepository(db),
		mistakes:  careless.NewDBRepository(db),
		summaries: summary.NewDBRepository(db),
	}
	a.engine = summary.NewEngine(a.questions, a.mistakes, a.summaries, client)
	return a, nil
}

func (a *app) Close() error {
	return errors.Join(a.client.Close(), a.db.Close())
}
