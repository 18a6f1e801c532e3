package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/debemdeboas/oremos-juntos/internal/db"
	"github.com/google/uuid"
)

type DBLeadRepository struct { // implements LeadRepository
	db db.Db
}

func NewDBLeadRepository(database db.Db) *DBLeadRepository {
	return &DBLeadRepository{db: database}
}

func (r *DBLeadRepository) Insert(ctx context.Context, name, email string) (Lead, error) {
	lead := Lead{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Name:      name,
		Email:     email,
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO leads (id, created_at, name, email, contacted) VALUES (?, ?, ?, ?, ?)`,
		lead.ID, lead.CreatedAt, lead.Name, lead.Email, false,
	)
	if err != nil {
		return Lead{}, fmt.Errorf("error saving lead: %w", err)
	}

	repoLogger.Debug().Str("lead_id", lead.ID).Msg("Lead saved")
	return lead, nil
}

func (r *DBLeadRepository) List(ctx context.Context) ([]Lead, error) {
	rows, err := r.db.Query(ctx, `SELECT id, created_at, name, email, contacted FROM leads ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying leads: %w", err)
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		var lead Lead
		if err := rows.Scan(&lead.ID, &lead.CreatedAt, &lead.Name, &lead.Email, &lead.Contacted); err != nil {
			return nil, fmt.Errorf("error scanning lead: %w", err)
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

func (r *DBLeadRepository) SetContacted(ctx context.Context, id string, contacted bool) error {
	res, err := r.db.Exec(ctx, `UPDATE leads SET contacted = ? WHERE id = ?`, contacted, id)
	if err != nil {
		return fmt.Errorf("error updating lead: %w", err)
	}
	return expectOneRow(res, id)
}

func (r *DBLeadRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM leads WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error deleting lead: %w", err)
	}
	return expectOneRow(res, id)
}

func expectOneRow(res interface{ RowsAffected() (int64, error) }, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("lead %s: %w", id, ErrNotFound)
	}
	return nil
}
