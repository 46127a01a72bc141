package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"studydesk/internal/app"
	"studydesk/internal/cache"
	"studydesk/internal/content"
	"studydesk/internal/httputil"
	"studydesk/internal/queue"
)

type fetchResponse struct {
	Topic string `json:"topic"`
	content.Bundle
}

// generateRequest accepts either a raw block of article text or a reference
// to an article inside a previously stored record.
type generateRequest struct {
	Content  string `json:"content"`
	Topic    string `json:"topic"`
	Title    string `json:"title"`
	Provider string `json:"provider" validate:"omitempty,oneof=wikipedia youtube mdn"`
}

type refreshRequest struct {
	Topic string `json:"topic" validate:"required"`
}

type refreshTaskPayload struct {
	Topic string `json:"topic"`
}

func main() {
	deps, err := app.Build(context.Background())
	if err != nil {
		slog.Default().Error("failed to build dependencies", "err", err)
		os.Exit(1)
	}
	r := httputil.NewRouter(deps.Log)

	r.Get("/fetch-content", fetchContentHandler(deps))
	r.Post("/generate-questions", generateQuestionsHandler(deps))
	r.Post("/refresh-content", refreshContentHandler(deps))
	r.Get("/healthz", httputil.HealthHandler(deps.Log))

	addr := fmt.Sprintf(":%d", deps.Config.Port)
	deps.Log.Info("server listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		deps.Log.Error("server failed", "err", err)
	}
}

func fetchContentHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		topic := r.URL.Query().Get("topic")
		if topic == "" {
			httputil.Fail(deps.Log, w, "topic is required", nil, http.StatusBadRequest)
			return
		}

		record, err := deps.Aggregator.Aggregate(r.Context(), topic)
		if err != nil {
			httputil.Fail(deps.Log, w, "Failed to fetch content", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, fetchResponse{Topic: topic, Bundle: record.Content})
	}
}

func generateQuestionsHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}

		ctx := r.Context()
		text := req.Content
		if text == "" {
			if req.Topic == "" || req.Title == "" || req.Provider == "" {
				httputil.Fail(deps.Log, w, "Content is required", nil, http.StatusBadRequest)
				return
			}
			var err error
			text, err = deps.Aggregator.FindArticle(ctx, req.Topic, req.Title, content.Provider(req.Provider))
			switch {
			case errors.Is(err, content.ErrArticleNotFound):
				httputil.Fail(deps.Log, w, "no content found for this article", err, http.StatusNotFound)
				return
			case errors.Is(err, content.ErrNoArticleText):
				httputil.Fail(deps.Log, w, "this provider's results carry no text to generate from", err, http.StatusBadRequest)
				return
			case err != nil:
				httputil.Fail(deps.Log, w, "failed to load stored content", err, http.StatusInternalServerError)
				return
			}
			if text == "" {
				httputil.Fail(deps.Log, w, "stored article has no text", nil, http.StatusNotFound)
				return
			}
		}

		key := cache.Key(text)
		if cached, err := deps.Cache.GetQuestions(ctx, key); err != nil {
			deps.Log.Warn("cache lookup failed", "err", err)
		} else if cached != "" {
			httputil.WriteJSON(w, http.StatusOK, map[string]string{"questions": cached})
			return
		}

		questions, err := deps.Generator.Questions(ctx, text)
		if err != nil {
			httputil.Fail(deps.Log, w, "Question generation failed", err, http.StatusInternalServerError)
			return
		}

		ttl := time.Duration(deps.Config.CacheTTL) * time.Second
		if err := deps.Cache.SetQuestions(ctx, key, questions, ttl); err != nil {
			deps.Log.Warn("failed to cache questions", "err", err)
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"questions": questions})
	}
}

func refreshContentHandler(deps app.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Queue == nil {
			httputil.Fail(deps.Log, w, "background refresh is not configured", nil, http.StatusServiceUnavailable)
			return
		}
		var req refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.Fail(deps.Log, w, "invalid payload", err, http.StatusBadRequest)
			return
		}
		if err := httputil.Validator.Struct(&req); err != nil {
			httputil.Fail(deps.Log, w, "topic is required", err, http.StatusBadRequest)
			return
		}

		body, err := json.Marshal(refreshTaskPayload{Topic: req.Topic})
		if err != nil {
			httputil.Fail(deps.Log, w, "failed to encode task", err, http.StatusInternalServerError)
			return
		}
		task := queue.Task{Type: queue.TaskTypeRefresh, Payload: body}
		if err := queue.EnqueueWithRetry(r.Context(), deps.Queue, task, 3, 200*time.Millisecond); err != nil {
			httputil.Fail(deps.Log, w, "failed to enqueue refresh; please retry", err, http.StatusInternalServerError)
			return
		}
		httputil.WriteJSON(w, http.StatusAccepted, map[string]string{
			"topic":  req.Topic,
			"status": "queued",
		})
	}
}
