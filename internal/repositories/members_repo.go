package repositories

import (
	"context"
	"time"

	"housebill/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Member, error)
	Update(ctx context.Context, member *models.Member) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.Member, error)
	ListByHouse(ctx context.Context, houseID uuid.UUID) ([]*models.Member, error)
	ListPaymentDue(ctx context.Context, from, to time.Time) ([]*models.Member, error)
	ListForExport(ctx context.Context) ([]*models.Member, error)
	DeleteAll(ctx context.Context) error
}

type memberRepo struct {
	db DB
}

func NewMemberRepo(db DB) MemberRepository {
	return &memberRepo{db: db}
}

func (r *memberRepo) Create(ctx context.Context, member *models.Member) error {
	query := `
		INSERT INTO members (id, house_id, product_id, name, email, phone, monthly_fee, billing_cycle, payment_date, expiration_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
	`
	_, err := r.db.Exec(ctx, query, member.ID, member.HouseID, member.ProductID, member.Name, member.Email,
		member.Phone, member.MonthlyFee, member.BillingCycle, member.PaymentDate, member.ExpirationDate)
	return err
}

func (r *memberRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Member, error) {
	member := &models.Member{}
	query := `
		SELECT m.id, m.house_id, m.product_id, m.name, m.email, m.phone, m.monthly_fee, m.billing_cycle,
		       m.payment_date, m.expiration_date, m.created_at, h.name AS house_name
		FROM members m
		LEFT JOIN houses h ON m.house_id = h.id
		WHERE m.id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&member.ID, &member.HouseID, &member.ProductID, &member.Name,
		&member.Email, &member.Phone, &member.MonthlyFee, &member.BillingCycle,
		&member.PaymentDate, &member.ExpirationDate, &member.CreatedAt, &member.HouseName)
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (r *memberRepo) Update(ctx context.Context, member *models.Member) error {
	query := `
		UPDATE members
		SET house_id = $1, product_id = $2, name = $3, email = $4, phone = $5,
		    monthly_fee = $6, billing_cycle = $7, payment_date = $8, expiration_date = $9
		WHERE id = $10
	`
	tag, err := r.db.Exec(ctx, query, member.HouseID, member.ProductID, member.Name, member.Email, member.Phone,
		member.MonthlyFee, member.BillingCycle, member.PaymentDate, member.ExpirationDate, member.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the member's payment history first, then the member row,
// inside one transaction.
func (r *memberRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM payment_history WHERE member_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}

func (r *memberRepo) List(ctx context.Context) ([]*models.Member, error) {
	query := `
		SELECT m.id, m.house_id, m.product_id, m.name, m.email, m.phone, m.monthly_fee, m.billing_cycle,
		       m.payment_date, m.expiration_date, m.created_at, h.name AS house_name, p.name AS product_name
		FROM members m
		LEFT JOIN houses h ON m.house_id = h.id
		LEFT JOIN products p ON m.product_id = p.id
		ORDER BY m.created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMembers(rows, true)
}

func (r *memberRepo) ListByHouse(ctx context.Context, houseID uuid.UUID) ([]*models.Member, error) {
	query := `
		SELECT m.id, m.house_id, m.product_id, m.name, m.email, m.phone, m.monthly_fee, m.billing_cycle,
		       m.payment_date, m.expiration_date, m.created_at, h.name AS house_name
		FROM members m
		LEFT JOIN houses h ON m.house_id = h.id
		WHERE m.house_id = $1
		ORDER BY m.name
	`
	rows, err := r.db.Query(ctx, query, houseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMembers(rows, false)
}

// ListPaymentDue returns members whose payment date falls inside [from, to],
// ordered by payment date. Used for the upcoming-payments dashboard panel.
func (r *memberRepo) ListPaymentDue(ctx context.Context, from, to time.Time) ([]*models.Member, error) {
	query := `
		SELECT m.id, m.house_id, m.product_id, m.name, m.email, m.phone, m.monthly_fee, m.billing_cycle,
		       m.payment_date, m.expiration_date, m.created_at, h.name AS house_name
		FROM members m
		LEFT JOIN houses h ON m.house_id = h.id
		WHERE m.payment_date >= $1 AND m.payment_date <= $2
		ORDER BY m.payment_date
	`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMembers(rows, false)
}

// ListForExport orders members by house name then member name, the fixed
// ordering of the CSV export format.
func (r *memberRepo) ListForExport(ctx context.Context) ([]*models.Member, error) {
	query := `
		SELECT m.id, m.house_id, m.product_id, m.name, m.email, m.phone, m.monthly_fee, m.billing_cycle,
		       m.payment_date, m.expiration_date, m.created_at, h.name AS house_name
		FROM members m
		LEFT JOIN houses h ON m.house_id = h.id
		ORDER BY h.name, m.name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMembers(rows, false)
}

func (r *memberRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM members`)
	return err
}

func scanMembers(rows pgx.Rows, withProduct bool) ([]*models.Member, error) {
	var members []*models.Member
	for rows.Next() {
		member := &models.Member{}
		dest := []any{&member.ID, &member.HouseID, &member.ProductID, &member.Name, &member.Email, &member.Phone,
			&member.MonthlyFee, &member.BillingCycle, &member.PaymentDate, &member.ExpirationDate,
			&member.CreatedAt, &member.HouseName}
		if withProduct {
			dest = append(dest, &member.ProductName)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}
