package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/mktierney/rolecall"
	"github.com/mktierney/rolecall/cmd/rolecall/internal/bot"
	"github.com/mktierney/rolecall/cmd/rolecall/internal/command"
	"github.com/mktierney/rolecall/cmd/rolecall/internal/discord"
	"github.com/mktierney/rolecall/config"
	"github.com/mktierney/rolecall/repo/null"
	"github.com/mktierney/rolecall/repo/sqlite"
)

var log = logrus.StandardLogger().WithFields(logrus.Fields{
	"component": "main",
})

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil {
		log.WithError(err).Fatal("shutting down")
	}
}

func run(ctx context.Context) error {
	// A .env file is optional; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("ROLECALL_CONFIG"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("bad log level %q: %w", cfg.LogLevel, err)
	}
	logrus.SetLevel(level)

	registry, err := cfg.Registry()
	if err != nil {
		return err
	}

	var history rolecall.History = null.NewRepository()
	if cfg.Database != "" {
		db, err := sql.Open("sqlite", cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		history, err = sqlite.NewRepository(db)
		if err != nil {
			return fmt.Errorf("failed to prepare database: %w", err)
		}
	}

	session, err := discord.NewDialer(cfg.Token).Dial()
	if err != nil {
		return fmt.Errorf("failed to connect to Discord: %w", err)
	}
	defer session.Close()
	log.Info("connected to Discord")

	adapter := discord.NewSession(session)
	svc := rolecall.NewService(registry, adapter, history)
	router := command.NewRouter("@" + adapter.Username())

	tasks := []bot.Task{
		{
			Name:  "prune-role-history",
			Every: 24 * time.Hour,
			Run: func(ctx context.Context) error {
				cutoff := time.Now().UTC().AddDate(0, 0, -cfg.HistoryRetentionDays)
				pruned, err := history.PruneOlderThan(ctx, cutoff)
				if err != nil {
					return err
				}
				log.WithField("pruned", pruned).Info("pruned role history")
				return nil
			},
		},
	}

	// Sweeping needs a fixed guild to walk; multi-guild deployments
	// still clean up empty roles on each removal.
	if cfg.GuildID != "" {
		tasks = append(tasks, bot.Task{
			Name:  "sweep-empty-roles",
			Every: time.Hour,
			Run: func(ctx context.Context) error {
				deleted, err := svc.SweepEmptyRoles(ctx, cfg.GuildID)
				if err != nil {
					return err
				}
				if len(deleted) > 0 {
					log.WithField("deleted", deleted).Info("swept empty roles")
				}
				return nil
			},
		})
	}

	b := bot.New(svc, adapter, router, tasks...)
	return b.Listen(ctx, adapter.Messages(ctx), adapter.Components(ctx))
}
