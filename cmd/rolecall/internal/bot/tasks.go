package bot

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Task is a periodic background job.
type Task struct {
	Name  string
	Every time.Duration
	Run   func(ctx context.Context) error
}

func (b *Bot) startTasks(ctx context.Context) {
	for _, task := range b.tasks {
		if task.Every <= 0 || task.Run == nil {
			continue
		}

		go func(task Task) {
			logger := log.WithFields(logrus.Fields{"task": task.Name})
			logger.WithField("every", task.Every).Info("task started")

			ticker := time.NewTicker(task.Every)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					logger.Info("task stopped")
					return
				case <-ticker.C:
					if err := task.Run(ctx); err != nil {
						logger.WithError(err).Error("task run failed")
					}
				}
			}
		}(task)
	}
}
