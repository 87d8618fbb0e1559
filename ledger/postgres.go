package ledger

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"lab-reservations/reservation"
)

// Postgres keeps the audit trail in an append-only table. Rows are only
// ever inserted; there is no update or delete path.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Append(ctx context.Context, entry reservation.LedgerEntry) error {
	id := uuid.New()

	query := `INSERT INTO ledger_entries (id, submitted_at, requester_name, requester_email, responsible_name, responsible_email, measurements, purpose, reservation_day, slot_start, duration_minutes, document_ref, event_link) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	args := make([]any, 0, 13)
	args = append(args, id)
	for _, v := range entry.Values() {
		args = append(args, v)
	}

	if _, err := p.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("exec context: %w", err)
	}
	return nil
}
