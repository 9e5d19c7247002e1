package postgres

import (
	"context"
	"fmt"

	"github.com/ShauryaRahlon/Travel-Delite/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	q querier
}

func NewAdminRepository(pool *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{q: querier{pool: pool}}
}

func (r *AdminRepository) CreateExperience(ctx context.Context, exp domain.Experience) error {
	const stmt = `
INSERT INTO experiences (id, name, description, price, image_url, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.exec(ctx, stmt, exp.ID, exp.Name, exp.Description, exp.Price, exp.ImageURL, exp.CreatedAt)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create experience: %w", err)
	}
	return nil
}

func (r *AdminRepository) CreateSlot(ctx context.Context, slot domain.Slot) error {
	const stmt = `
INSERT INTO slots (id, experience_id, slot_date, slot_time, total_tickets, booked_tickets)
VALUES ($1, $2, $3, $4, $5, 0)`
	_, err := r.q.exec(ctx, stmt, slot.ID, slot.ExperienceID, slot.Date, slot.Time, slot.TotalTickets)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		if isForeignKeyViolation(err) {
			return domain.ErrExperienceNotFound
		}
		return fmt.Errorf("create slot: %w", err)
	}
	return nil
}
