package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"carsharing-backend/internal/domain"
	"carsharing-backend/internal/logger"
	"carsharing-backend/internal/repository"
	"carsharing-backend/internal/repository/filter"
)

const paymentColumns = `p.id, p.status, p.type, p.rental_id, p.session_url, p.session_id, p.amount_to_pay`

type paymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	p := &domain.Payment{}
	var status, typ string
	if err := row.Scan(&p.ID, &status, &typ, &p.RentalID, &p.SessionURL, &p.SessionID, &p.AmountToPay); err != nil {
		return nil, err
	}
	p.Status = domain.PaymentStatus(status)
	p.Type = domain.PaymentType(typ)
	return p, nil
}

func (r *paymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (status, type, rental_id, session_url, session_id, amount_to_pay)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	logger.DatabaseCall("INSERT", "payments", "rentalID", p.RentalID, "sessionID", p.SessionID)
	err := r.db.QueryRowContext(ctx, query, string(p.Status), string(p.Type), p.RentalID, p.SessionURL, p.SessionID, p.AmountToPay).Scan(&p.ID)
	logger.DatabaseResult("INSERT", 1, err, "paymentID", p.ID)
	return err
}

func (r *paymentRepository) GetBySessionID(ctx context.Context, sessionID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments p WHERE p.session_id = $1 AND p.deleted = false`
	p, err := scanPayment(r.db.QueryRowContext(ctx, query, sessionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("payment for session %s: %w", sessionID, domain.ErrNotFound)
	}
	return p, err
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, sessionID string, status domain.PaymentStatus) (*domain.Payment, bool, error) {
	query := `UPDATE payments p SET status = $1
	          WHERE p.session_id = $2 AND p.deleted = false AND p.status <> 'PAID'
	          RETURNING ` + paymentColumns
	logger.DatabaseCall("UPDATE", "payments.status", "sessionID", sessionID, "status", status)
	p, err := scanPayment(r.db.QueryRowContext(ctx, query, string(status), sessionID))
	if err == nil {
		logger.DatabaseResult("UPDATE", 1, nil, "sessionID", sessionID)
		return p, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		logger.DatabaseResult("UPDATE", 0, err, "sessionID", sessionID)
		return nil, false, err
	}
	// Either missing or already PAID; PAID stays as it is.
	p, err = r.GetBySessionID(ctx, sessionID)
	return p, false, err
}

func (r *paymentRepository) List(ctx context.Context, f filter.Filter) ([]domain.Payment, error) {
	where, args := f.Where(1)
	query := `SELECT ` + paymentColumns + ` FROM payments p JOIN rentals r ON r.id = p.rental_id
	          WHERE p.deleted = false AND r.deleted = false AND ` + where + ` ORDER BY p.id`
	return r.list(ctx, query, args...)
}

func (r *paymentRepository) ListByStatuses(ctx context.Context, statuses ...domain.PaymentStatus) ([]domain.Payment, error) {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	query := `SELECT ` + paymentColumns + ` FROM payments p WHERE p.deleted = false AND p.status = ANY($1) ORDER BY p.id`
	return r.list(ctx, query, pq.Array(names))
}

func (r *paymentRepository) list(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	logger.DatabaseCall("SELECT", "payments", "args", len(args))
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("SELECT", int64(len(payments)), nil)
	return payments, nil
}
