package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tenebrio-farm/internal/domain"
	"github.com/jhoicas/tenebrio-farm/internal/domain/entity"
	"github.com/jhoicas/tenebrio-farm/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un ítem.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (id, category, name, unit, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, item.ID, item.Category, item.Name, item.Unit, item.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrapErr("insert item", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID; nil, nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	query := `SELECT id, category, name, unit, created_at FROM items WHERE id = $1`
	var it entity.Item
	err := r.q.QueryRow(ctx, query, id).Scan(&it.ID, &it.Category, &it.Name, &it.Unit, &it.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get item", err)
	}
	return &it, nil
}

// List lista los ítems ordenados por categoría y nombre.
func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	query := `SELECT id, category, name, unit, created_at FROM items ORDER BY category, name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, wrapErr("list items", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.Category, &it.Name, &it.Unit, &it.CreatedAt); err != nil {
			return nil, wrapErr("scan item", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
