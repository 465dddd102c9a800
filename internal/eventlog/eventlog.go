// Package eventlog keeps an append-only record of relayed submissions, so
// attempts survive even when the form-relay mail is lost.
package eventlog

import (
	"context"
	"database/sql"
	"time"
)

type Event struct {
	Offset    int64  `json:"offset"`
	SiteID    string `json:"site_id"`
	Type      string `json:"type"`
	Key       string `json:"key"`
	DataJSON  string `json:"data"`
	CreatedAt int64  `json:"created_at"`
}

const TypeSubmissionRelayed = "SubmissionRelayed"

type Repo struct {
	db     *sql.DB
	siteID string
}

func NewRepo(db *sql.DB, siteID string) *Repo {
	if siteID == "" {
		siteID = "local"
	}
	return &Repo{db: db, siteID: siteID}
}

func (r *Repo) Append(ctx context.Context, typ, key, dataJSON string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (site_id, typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		r.siteID, typ, key, dataJSON, time.Now().Unix())
	return err
}

// Recent returns the newest events, newest first.
func (r *Repo) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT "offset", site_id, typ, key, data, created_at
		 FROM event_log ORDER BY "offset" DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Offset, &e.SiteID, &e.Type, &e.Key, &e.DataJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
