package data

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

const (
	// RunLimitDefault is the default number of runs returned by ListRuns.
	RunLimitDefault = 20

	insertRunSQL = `INSERT INTO run (input, records, positives, negatives, auroc, aupr, ndcg, out_prefix, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	selectRunsSQL = `SELECT id, input, records, positives, negatives, auroc, aupr, ndcg, out_prefix, created_at
		FROM run
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`
)

// Run is a single recorded scoring run.
type Run struct {
	ID        int64     `json:"id" yaml:"id"`
	Input     string    `json:"input" yaml:"input"`
	Records   int       `json:"records" yaml:"records"`
	Positives int       `json:"positives" yaml:"positives"`
	Negatives int       `json:"negatives" yaml:"negatives"`
	AUROC     float64   `json:"auroc" yaml:"auroc"`
	AUPR      float64   `json:"aupr" yaml:"aupr"`
	NDCG      float64   `json:"ndcg" yaml:"ndcg"`
	OutPrefix string    `json:"out_prefix" yaml:"out_prefix"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// SaveRun inserts the run and sets its ID. Zero CreatedAt is set to now.
func (s *Store) SaveRun(ctx context.Context, r *Run) error {
	if s == nil || s.db == nil {
		return errDBNotInitialized
	}
	if r == nil {
		return errors.New("run required")
	}
	if r.Input == "" {
		return errors.New("run input required")
	}

	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	row := s.db.QueryRowContext(ctx, rebind(s.driver, insertRunSQL),
		r.Input, r.Records, r.Positives, r.Negatives,
		r.AUROC, r.AUPR, r.NDCG, r.OutPrefix, r.CreatedAt.UnixMilli())

	if err := row.Scan(&r.ID); err != nil {
		return errors.Wrap(err, "failed to insert run")
	}

	return nil
}

// ListRuns returns up to limit runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if s == nil || s.db == nil {
		return nil, errDBNotInitialized
	}
	if limit <= 0 {
		limit = RunLimitDefault
	}

	rows, err := s.db.QueryContext(ctx, rebind(s.driver, selectRunsSQL), limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query runs")
	}
	defer rows.Close()

	list := make([]*Run, 0)
	for rows.Next() {
		r := &Run{}
		var created int64
		if err := rows.Scan(&r.ID, &r.Input, &r.Records, &r.Positives, &r.Negatives,
			&r.AUROC, &r.AUPR, &r.NDCG, &r.OutPrefix, &created); err != nil {
			return nil, errors.Wrap(err, "failed to scan run row")
		}
		r.CreatedAt = time.UnixMilli(created).UTC()
		list = append(list, r)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate runs")
	}

	return list, nil
}
