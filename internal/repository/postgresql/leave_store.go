package postgresql

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/leaveport/leaveport-backend-go/internal/domain/leave"
	"github.com/leaveport/leaveport-backend-go/internal/pkg/database"
)

// leaveStoreRepositoryImpl persists each user's leave requests as one JSONB
// document, read and written whole. Last write wins; there is no row-level
// merging across concurrent writers.
type leaveStoreRepositoryImpl struct {
	db *database.DB
}

func NewLeaveStoreRepository(db *database.DB) leave.StoreRepository {
	return &leaveStoreRepositoryImpl{db: db}
}

// Load implements leave.StoreRepository. A missing row is an empty document,
// not an error.
func (r *leaveStoreRepositoryImpl) Load(ctx context.Context, userID string) (leave.Document, error) {
	q := GetQuerier(ctx, r.db)

	var raw []byte
	err := q.QueryRow(ctx,
		`SELECT doc FROM leave_request_docs WHERE user_id = $1`, userID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Document{SchemaVersion: leave.SchemaVersion}, nil
		}
		return leave.Document{}, err
	}

	doc, err := leave.DecodeDocument(raw)
	if err != nil {
		return leave.Document{}, leave.ErrDocumentCorrupt
	}
	return doc, nil
}

// Save implements leave.StoreRepository.
func (r *leaveStoreRepositoryImpl) Save(ctx context.Context, userID string, doc leave.Document) error {
	q := GetQuerier(ctx, r.db)

	doc.SchemaVersion = leave.SchemaVersion
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	_, err = q.Exec(ctx, `
		INSERT INTO leave_request_docs (user_id, doc, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()`,
		userID, raw)
	return err
}

// Clear implements leave.StoreRepository. Clearing an absent document is a
// no-op.
func (r *leaveStoreRepositoryImpl) Clear(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		`DELETE FROM leave_request_docs WHERE user_id = $1`, userID)
	return err
}
