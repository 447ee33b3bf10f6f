package domain

import "time"

// Product описывает товар каталога. Количество на складе (Quantity) меняется
// только через InventoryCoordinator, остальные поля — через CRUD-путь.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	ImgURL      string    `json:"img_url"`
	Quantity    int       `json:"quantity"`
	CategoryID  string    `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Category — категория товара с уникальным названием.
type Category struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidateInvariants проверяет базовые инварианты товара и возвращает список замечаний.
func (p *Product) ValidateInvariants() []error {
	var errs []error

	if p.Title == "" {
		errs = append(errs, ErrProductTitleRequired)
	}
	if p.Price <= 0 {
		errs = append(errs, ErrProductPriceInvalid)
	}
	if p.Description == "" {
		errs = append(errs, ErrProductDescriptionRequired)
	}
	if p.ImgURL == "" {
		errs = append(errs, ErrProductImageRequired)
	}
	if p.Quantity < 0 {
		errs = append(errs, ErrProductQuantityInvalid)
	}
	if p.CategoryID == "" {
		errs = append(errs, ErrProductCategoryRequired)
	}

	return errs
}

// ValidateInvariants проверяет инварианты категории.
func (c *Category) ValidateInvariants() []error {
	var errs []error

	if c.Title == "" {
		errs = append(errs, ErrCategoryTitleRequired)
	}

	return errs
}
