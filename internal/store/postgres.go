package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"studydesk/internal/content"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{db: db}
	if err := s.migrate(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	// Advisory lock so concurrent service starts don't race the migration.
	const lockID = 771203641

	var acquired bool
	err := s.db.QueryRowContext(ctx, `SELECT pg_try_advisory_lock($1)`, lockID).Scan(&acquired)
	if err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	if !acquired {
		// Another instance is migrating; give it a moment and move on.
		time.Sleep(2 * time.Second)
		return nil
	}
	defer func() {
		_, _ = s.db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockID)
	}()

	_, err = s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS articles (
			key TEXT PRIMARY KEY,
			original_topic TEXT NOT NULL,
			content JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create articles table: %w", err)
	}
	return nil
}

// Put upserts the document for record.Key. The write timestamp is assigned
// by the database, not the caller.
func (s *PostgresStore) Put(ctx context.Context, record content.Record) error {
	body, err := json.Marshal(record.Content)
	if err != nil {
		return fmt.Errorf("failed to encode record content: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO articles(key, original_topic, content, updated_at)
		VALUES($1, $2, $3, now())
		ON CONFLICT (key) DO UPDATE
		SET original_topic = excluded.original_topic,
		    content = excluded.content,
		    updated_at = now()`,
		record.Key, record.Topic, body)
	if err != nil {
		return fmt.Errorf("failed to store record %q: %w", record.Key, err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (content.Record, error) {
	var (
		rec  content.Record
		body []byte
	)
	row := s.db.QueryRowContext(ctx, `SELECT key, original_topic, content, updated_at FROM articles WHERE key=$1`, key)
	if err := row.Scan(&rec.Key, &rec.Topic, &body, &rec.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return content.Record{}, ErrRecordNotFound
		}
		return content.Record{}, fmt.Errorf("failed to get record %q: %w", key, err)
	}
	if err := json.Unmarshal(body, &rec.Content); err != nil {
		return content.Record{}, fmt.Errorf("failed to decode record %q: %w", key, err)
	}
	return rec, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
