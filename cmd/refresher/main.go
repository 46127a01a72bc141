// The refresher re-aggregates previously searched topics in the background,
// overwriting their stored documents with fresh provider results.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"studydesk/internal/app"
	"studydesk/internal/queue"
)

type refreshTaskPayload struct {
	Topic string `json:"topic"`
}

func main() {
	deps, err := app.Build(context.Background())
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	if deps.Queue == nil {
		deps.Log.Error("QUEUE_URL is required for the refresher")
		os.Exit(1)
	}
	deps.Log.Info("refresher starting")

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		return deps.Queue.Worker(ctx, queue.TaskTypeRefresh, func(ctx context.Context, task queue.Task) error {
			var payload refreshTaskPayload
			if err := json.Unmarshal(task.Payload, &payload); err != nil {
				return err
			}
			return handleRefresh(ctx, deps, payload)
		})
	})

	if err := g.Wait(); err != nil {
		deps.Log.Error("refresher stopped", "err", err)
	}
}

func handleRefresh(ctx context.Context, deps app.Deps, payload refreshTaskPayload) error {
	if payload.Topic == "" {
		return fmt.Errorf("refresh task missing topic")
	}
	record, err := deps.Aggregator.Aggregate(ctx, payload.Topic)
	if err != nil {
		return fmt.Errorf("refresh %q: %w", payload.Topic, err)
	}
	deps.Log.Info("refreshed topic", "topic", payload.Topic, "key", record.Key)
	return nil
}
