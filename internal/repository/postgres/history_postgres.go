package postgres

import (
	"context"
	"database/sql"

	"docqa/internal/model"
	"docqa/internal/repository"
)

// HistoryPostgres is a PostgreSQL implementation of repository.HistoryRepository.
type HistoryPostgres struct {
	db *sql.DB
}

// NewHistoryPostgres creates a new HistoryPostgres repository.
func NewHistoryPostgres(db *sql.DB) *HistoryPostgres {
	return &HistoryPostgres{db: db}
}

var _ repository.HistoryRepository = (*HistoryPostgres)(nil)

// Create inserts a new chat record and returns the stored row.
func (r *HistoryPostgres) Create(ctx context.Context, rec *model.ChatRecord) (*model.ChatRecord, error) {
	const q = `
		INSERT INTO chat_history (id, document_id, question, answer, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, document_id, question, answer, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		rec.ID,
		rec.DocumentID,
		rec.Question,
		rec.Answer,
		rec.CreatedAt,
	)
	var out model.ChatRecord
	if err := row.Scan(
		&out.ID,
		&out.DocumentID,
		&out.Question,
		&out.Answer,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns chat records most-recent-first. With a document filter only
// that document's records are returned; the filter is not validated against
// the documents table, so history of deleted documents remains listable.
func (r *HistoryPostgres) List(ctx context.Context, hq repository.HistoryQuery) ([]model.ChatRecord, error) {
	const qAll = `
		SELECT id, document_id, question, answer, created_at
		FROM chat_history
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	const qByDoc = `
		SELECT id, document_id, question, answer, created_at
		FROM chat_history
		WHERE document_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	var rows *sql.Rows
	var err error
	if hq.DocumentID != nil {
		rows, err = r.db.QueryContext(ctx, qByDoc, *hq.DocumentID, hq.Limit)
	} else {
		rows, err = r.db.QueryContext(ctx, qAll, hq.Limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ChatRecord, 0)
	for rows.Next() {
		var rec model.ChatRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.DocumentID,
			&rec.Question,
			&rec.Answer,
			&rec.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Clear removes chat records in bulk and returns how many rows were removed.
func (r *HistoryPostgres) Clear(ctx context.Context, documentID *string) (int64, error) {
	var res sql.Result
	var err error
	if documentID != nil {
		res, err = r.db.ExecContext(ctx, `DELETE FROM chat_history WHERE document_id = $1`, *documentID)
	} else {
		res, err = r.db.ExecContext(ctx, `DELETE FROM chat_history`)
	}
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
