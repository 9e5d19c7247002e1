package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ShauryaRahlon/Travel-Delite/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	pool *pgxpool.Pool
	q    querier
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool, q: querier{pool: pool}}
}

func (r *BookingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *BookingRepository) GetExperiencePrice(ctx context.Context, experienceID string) (int64, error) {
	const query = `SELECT price FROM experiences WHERE id = $1`

	var price int64
	if err := r.q.queryRow(ctx, query, experienceID).Scan(&price); err != nil {
		if isInvalidUUID(err) || errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrExperienceNotFound
		}
		return 0, fmt.Errorf("get experience price: %w", err)
	}
	return price, nil
}

// ReserveSlot is the compare-and-increment on slot capacity. Concurrent
// callers block on the row lock and re-check the predicate after the
// competing transaction commits, so the last seat goes to exactly one caller.
func (r *BookingRepository) ReserveSlot(ctx context.Context, experienceID, slotID string) error {
	const stmt = `
UPDATE slots
SET booked_tickets = booked_tickets + 1
WHERE id = $1 AND experience_id = $2 AND booked_tickets < total_tickets`

	tag, err := r.q.exec(ctx, stmt, slotID, experienceID)
	if err != nil {
		if isInvalidUUID(err) || isCheckViolation(err) {
			return domain.ErrSlotUnavailable
		}
		return fmt.Errorf("reserve slot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSlotUnavailable
	}
	return nil
}

func (r *BookingRepository) CreateBooking(ctx context.Context, booking domain.Booking) error {
	const stmt = `
INSERT INTO bookings (id, experience_id, slot_id, user_name, user_email, promo_code, final_price, created_at)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)`

	_, err := r.q.exec(ctx, stmt,
		booking.ID,
		booking.ExperienceID,
		booking.SlotID,
		booking.UserName,
		booking.UserEmail,
		booking.PromoCode,
		booking.FinalPrice,
		booking.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrSlotUnavailable
		}
		if isUniqueViolation(err) {
			return fmt.Errorf("create booking: duplicate id %s: %w", booking.ID, err)
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}
