package repositories

import (
	"context"

	"housebill/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type HouseRepository interface {
	Create(ctx context.Context, house *models.House) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.House, error)
	Update(ctx context.Context, house *models.House) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*models.House, error)
	DeleteAll(ctx context.Context) error
}

type houseRepo struct {
	db DB
}

func NewHouseRepo(db DB) HouseRepository {
	return &houseRepo{db: db}
}

func (r *houseRepo) Create(ctx context.Context, house *models.House) error {
	query := `
		INSERT INTO houses (id, name, description, product_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err := r.db.Exec(ctx, query, house.ID, house.Name, house.Description, house.ProductID)
	return err
}

func (r *houseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.House, error) {
	house := &models.House{}
	query := `
		SELECT id, name, description, product_id, created_at
		FROM houses
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&house.ID, &house.Name, &house.Description, &house.ProductID, &house.CreatedAt)
	if err != nil {
		return nil, err
	}
	return house, nil
}

func (r *houseRepo) Update(ctx context.Context, house *models.House) error {
	query := `
		UPDATE houses
		SET name = $1, description = $2, product_id = $3
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, query, house.Name, house.Description, house.ProductID, house.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the house together with its members and their payment
// history in one transaction, preserving referential integrity.
func (r *houseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM payment_history WHERE member_id IN (SELECT id FROM members WHERE house_id = $1)`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM members WHERE house_id = $1`, id); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM houses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	return tx.Commit(ctx)
}

func (r *houseRepo) List(ctx context.Context) ([]*models.House, error) {
	query := `
		SELECT h.id, h.name, h.description, h.product_id, h.created_at,
		       p.name AS product_name, p.icon AS product_icon, p.color AS product_color
		FROM houses h
		LEFT JOIN products p ON h.product_id = p.id
		ORDER BY h.created_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var houses []*models.House
	for rows.Next() {
		house := &models.House{}
		if err := rows.Scan(&house.ID, &house.Name, &house.Description, &house.ProductID, &house.CreatedAt,
			&house.ProductName, &house.ProductIcon, &house.ProductColor); err != nil {
			return nil, err
		}
		houses = append(houses, house)
	}
	return houses, rows.Err()
}

func (r *houseRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM houses`)
	return err
}
