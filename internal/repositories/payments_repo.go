package repositories

import (
	"context"

	"housebill/internal/models"

	"github.com/google/uuid"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.PaymentRecord) error
	ListByMember(ctx context.Context, memberID uuid.UUID) ([]*models.PaymentRecord, error)
	ListAll(ctx context.Context) ([]*models.PaymentRecord, error)
	DeleteAll(ctx context.Context) error
}

type paymentRepo struct {
	db DB
}

func NewPaymentRepo(db DB) PaymentRepository {
	return &paymentRepo{db: db}
}

// Create inserts a ledger entry. paid_at is assigned by the database and
// scanned back into the record.
func (r *paymentRepo) Create(ctx context.Context, payment *models.PaymentRecord) error {
	query := `
		INSERT INTO payment_history (id, member_id, amount, paid_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING paid_at
	`
	return r.db.QueryRow(ctx, query, payment.ID, payment.MemberID, payment.Amount).Scan(&payment.PaidAt)
}

func (r *paymentRepo) ListByMember(ctx context.Context, memberID uuid.UUID) ([]*models.PaymentRecord, error) {
	query := `
		SELECT id, member_id, amount, paid_at
		FROM payment_history
		WHERE member_id = $1
		ORDER BY paid_at DESC
	`
	rows, err := r.db.Query(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.PaymentRecord
	for rows.Next() {
		payment := &models.PaymentRecord{}
		if err := rows.Scan(&payment.ID, &payment.MemberID, &payment.Amount, &payment.PaidAt); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

func (r *paymentRepo) ListAll(ctx context.Context) ([]*models.PaymentRecord, error) {
	query := `
		SELECT ph.id, ph.member_id, ph.amount, ph.paid_at, m.name AS member_name, h.name AS house_name
		FROM payment_history ph
		JOIN members m ON ph.member_id = m.id
		LEFT JOIN houses h ON m.house_id = h.id
		ORDER BY ph.paid_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.PaymentRecord
	for rows.Next() {
		payment := &models.PaymentRecord{}
		if err := rows.Scan(&payment.ID, &payment.MemberID, &payment.Amount, &payment.PaidAt,
			&payment.MemberName, &payment.HouseName); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

func (r *paymentRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM payment_history`)
	return err
}
