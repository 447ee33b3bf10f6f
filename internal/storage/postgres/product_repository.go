package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hemantkumar00/product-category-service/internal/domain"
)

// ProductRepository — PostgreSQL-реализация ProductRepository;
// она же служит InventoryStore для координатора.
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт PostgreSQL-реализацию поверх открытого Store.
func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{db: store.DB()}
}

const productColumns = `id, title, price, description, img_url, quantity, category_id, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Title, &p.Price, &p.Description, &p.ImgURL,
		&p.Quantity, &p.CategoryID, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *ProductRepository) Create(product domain.Product) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		product.ID, product.Title, product.Price, product.Description, product.ImgURL,
		product.Quantity, product.CategoryID, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepository) Get(id string) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+` FROM products WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) Save(product domain.Product) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET title = $2, price = $3, description = $4, img_url = $5,
		    quantity = $6, category_id = $7, updated_at = $8
		WHERE id = $1
	`,
		product.ID, product.Title, product.Price, product.Description, product.ImgURL,
		product.Quantity, product.CategoryID, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) List(pageNumber, pageSize int) (domain.ProductPage, error) {
	if pageNumber < 1 || pageSize < 1 {
		return domain.ProductPage{}, domain.ErrPageInvalid
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&total); err != nil {
		return domain.ProductPage{}, fmt.Errorf("count products: %w", err)
	}

	items, err := r.queryProducts(ctx, `
		SELECT `+productColumns+` FROM products
		ORDER BY title, id
		LIMIT $1 OFFSET $2
	`, pageSize, (pageNumber-1)*pageSize)
	if err != nil {
		return domain.ProductPage{}, err
	}
	return domain.NewProductPage(items, total, pageNumber, pageSize), nil
}

func (r *ProductRepository) FindByTitleContaining(query string) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	// LIKE без нижнего регистра: поиск чувствителен к регистру.
	return r.queryProducts(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE title LIKE '%' || $1 || '%'
		ORDER BY title, id
	`, query)
}

// sortColumn сводит атрибут сортировки к белому списку колонок: произвольная
// строка вызывающего не попадает в ORDER BY.
func sortColumn(attr string) string {
	switch attr {
	case "price", "quantity", "created_at":
		return attr
	default:
		return "title"
	}
}

func (r *ProductRepository) FindByTitleAndCategory(query, categoryID, sortAttr string, pageNumber, pageSize int) (domain.ProductPage, error) {
	if pageNumber < 1 || pageSize < 1 {
		return domain.ProductPage{}, domain.ErrPageInvalid
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var total int
	if err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM products
		WHERE category_id = $1 AND title LIKE '%' || $2 || '%'
	`, categoryID, query).Scan(&total); err != nil {
		return domain.ProductPage{}, fmt.Errorf("count products by category: %w", err)
	}

	items, err := r.queryProducts(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE category_id = $1 AND title LIKE '%' || $2 || '%'
		ORDER BY `+sortColumn(sortAttr)+`, id
		LIMIT $3 OFFSET $4
	`, categoryID, query, pageSize, (pageNumber-1)*pageSize)
	if err != nil {
		return domain.ProductPage{}, err
	}
	return domain.NewProductPage(items, total, pageNumber, pageSize), nil
}

func (r *ProductRepository) GetQuantity(id string) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var quantity int
	err := r.db.QueryRowContext(ctx, `SELECT quantity FROM products WHERE id = $1`, id).Scan(&quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrProductNotFound
		}
		return 0, fmt.Errorf("select quantity: %w", err)
	}
	return quantity, nil
}

func (r *ProductRepository) SetQuantity(id string, quantity int) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx, `
		UPDATE products SET quantity = $2, updated_at = NOW() WHERE id = $1
	`, id, quantity)
	if err != nil {
		return fmt.Errorf("update quantity: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Exists(id string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check product exists: %w", err)
	}
	return exists, nil
}

func (r *ProductRepository) queryProducts(ctx context.Context, query string, args ...interface{}) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return result, nil
}

var _ domain.ProductRepository = (*ProductRepository)(nil)
var _ domain.InventoryStore = (*ProductRepository)(nil)
