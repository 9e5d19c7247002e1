package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ShauryaRahlon/Travel-Delite/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CatalogRepository struct {
	q querier
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{q: querier{pool: pool}}
}

func (r *CatalogRepository) ListExperiences(ctx context.Context) ([]domain.Experience, error) {
	const query = `
SELECT id, name, description, price, image_url, created_at
FROM experiences
ORDER BY name ASC, created_at ASC`

	rows, err := r.q.query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list experiences: %w", err)
	}
	defer rows.Close()

	experiences := []domain.Experience{}
	for rows.Next() {
		var e domain.Experience
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.Price, &e.ImageURL, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan experience: %w", err)
		}
		experiences = append(experiences, e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate experiences: %w", rows.Err())
	}
	return experiences, nil
}

func (r *CatalogRepository) GetExperienceWithSlots(ctx context.Context, id string) (domain.Experience, error) {
	const experienceQuery = `
SELECT id, name, description, price, image_url, created_at
FROM experiences
WHERE id = $1`

	var e domain.Experience
	err := r.q.queryRow(ctx, experienceQuery, id).
		Scan(&e.ID, &e.Name, &e.Description, &e.Price, &e.ImageURL, &e.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) || errors.Is(err, pgx.ErrNoRows) {
			return domain.Experience{}, domain.ErrExperienceNotFound
		}
		return domain.Experience{}, fmt.Errorf("get experience: %w", err)
	}

	const slotsQuery = `
SELECT id, experience_id, slot_date, slot_time, total_tickets, booked_tickets
FROM slots
WHERE experience_id = $1
ORDER BY slot_date ASC, to_timestamp(slot_time, 'HH12:MI AM')::time ASC, slot_time ASC`

	rows, err := r.q.query(ctx, slotsQuery, id)
	if err != nil {
		return domain.Experience{}, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	e.Slots = []domain.Slot{}
	for rows.Next() {
		var s domain.Slot
		if err := rows.Scan(&s.ID, &s.ExperienceID, &s.Date, &s.Time, &s.TotalTickets, &s.BookedTickets); err != nil {
			return domain.Experience{}, fmt.Errorf("scan slot: %w", err)
		}
		e.Slots = append(e.Slots, s)
	}
	if rows.Err() != nil {
		return domain.Experience{}, fmt.Errorf("iterate slots: %w", rows.Err())
	}
	return e, nil
}
