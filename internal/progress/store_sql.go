package progress

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Save(ctx context.Context, userID, progressType string, data json.RawMessage) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO progress (user_id, progress_type, data_json, updated_at)
		 VALUES ($1,$2,$3,$4)
		 ON CONFLICT (user_id, progress_type) DO UPDATE SET data_json=EXCLUDED.data_json, updated_at=EXCLUDED.updated_at`,
		userID, progressType, string(data), time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *SQLStore) Load(ctx context.Context, userID, progressType string) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT data_json, updated_at FROM progress WHERE user_id=$1 AND progress_type=$2`,
		userID, progressType)
	var dataJSON, ts string
	if err := row.Scan(&dataJSON, &ts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	return Entry{Data: json.RawMessage(dataJSON), Timestamp: ts}, nil
}
