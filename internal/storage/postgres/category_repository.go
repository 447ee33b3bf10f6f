package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hemantkumar00/product-category-service/internal/domain"
)

// CategoryRepository — PostgreSQL-реализация CategoryRepository.
// Уникальность названия обеспечивается constraint'ом таблицы.
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository создаёт PostgreSQL-реализацию поверх открытого Store.
func NewCategoryRepository(store *Store) *CategoryRepository {
	return &CategoryRepository{db: store.DB()}
}

func (r *CategoryRepository) Create(category domain.Category) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, title, created_at, updated_at)
		VALUES ($1,$2,$3,$4)
	`, category.ID, category.Title, category.CreatedAt, category.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCategoryAlreadyExists
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) Get(id string) (domain.Category, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return r.selectOne(ctx, `
		SELECT id, title, created_at, updated_at FROM categories WHERE id = $1
	`, id)
}

func (r *CategoryRepository) FindByTitle(title string) (domain.Category, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return r.selectOne(ctx, `
		SELECT id, title, created_at, updated_at FROM categories WHERE title = $1
	`, title)
}

func (r *CategoryRepository) Save(category domain.Category) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `
		UPDATE categories SET title = $2, updated_at = $3 WHERE id = $1
	`, category.ID, category.Title, category.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrCategoryAlreadyExists
		}
		return fmt.Errorf("update category: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) List(pageNumber, pageSize int) ([]domain.Category, error) {
	if pageNumber < 1 || pageSize < 1 {
		return nil, domain.ErrPageInvalid
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, created_at, updated_at FROM categories
		ORDER BY title
		LIMIT $1 OFFSET $2
	`, pageSize, (pageNumber-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("select categories: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Category, 0, pageSize)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return result, nil
}

func (r *CategoryRepository) selectOne(ctx context.Context, query string, arg interface{}) (domain.Category, error) {
	var c domain.Category
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&c.ID, &c.Title, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Category{}, domain.ErrCategoryNotFound
		}
		return domain.Category{}, fmt.Errorf("select category: %w", err)
	}
	return c, nil
}

// isUniqueViolation распознаёт нарушение уникального ограничения PostgreSQL.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ domain.CategoryRepository = (*CategoryRepository)(nil)
