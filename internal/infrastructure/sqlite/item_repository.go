package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/tenebrio-farm/internal/domain"
	"github.com/jhoicas/tenebrio-farm/internal/domain/entity"
	"github.com/jhoicas/tenebrio-farm/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo ítems sobre SQLite.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar db o tx.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un ítem.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO items (id, category, name, unit, created_at) VALUES (?, ?, ?, ?, ?)`,
		item.ID, item.Category, item.Name, item.Unit, formatTime(item.CreatedAt),
	)
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	if err != nil {
		return wrapErr("insert item", err)
	}
	return nil
}

// GetByID obtiene un ítem; nil, nil si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, category, name, unit, created_at FROM items WHERE id = ?`, id)
	it, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get item", err)
	}
	return it, nil
}

// List lista los ítems por categoría y nombre.
func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, category, name, unit, created_at FROM items ORDER BY category, name`)
	if err != nil {
		return nil, wrapErr("list items", err)
	}
	defer func() { _ = rows.Close() }()
	var list []*entity.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, wrapErr("scan item", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*entity.Item, error) {
	var it entity.Item
	var created string
	if err := s.Scan(&it.ID, &it.Category, &it.Name, &it.Unit, &created); err != nil {
		return nil, err
	}
	t, err := parseTime(created)
	if err != nil {
		return nil, err
	}
	it.CreatedAt = t
	return &it, nil
}
