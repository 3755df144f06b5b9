// Package repository persists canonical products in Postgres.
//
// The products table is keyed by the natural key product_code; the uuid id
// column exists for foreign keys only. Writes go through Upsert, which
// checks existence first and reports which action it took. Last writer wins:
// there is no optimistic concurrency token, which is acceptable while
// imports run as a single sequential batch job.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"catalog-import/internal/catalog"
)

// DBTX is the subset of pgx operations the repository needs.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Action reports which write an upsert performed.
type Action string

const (
	ActionInserted Action = "inserted"
	ActionUpdated  Action = "updated"
)

// UpsertResult is the outcome of one upsert: the action taken and the row
// as stored.
type UpsertResult struct {
	Action  Action
	Product catalog.Product
}

// ProductRepository performs existence-checked upserts against the products
// table.
type ProductRepository struct {
	db DBTX
}

// New returns a repository bound to the given connection source.
func New(db DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, product_code, name, description, price, discount_price,
	currency, brand, advertiser, category, subcategory,
	affiliate_link, image_url, availability, created_at, updated_at`

// Exists reports whether a product with the given code is stored.
// A missing row is a normal outcome, not an error; any other lookup failure
// is surfaced so it cannot be mistaken for "not found".
func (r *ProductRepository) Exists(ctx context.Context, productCode string) (bool, error) {
	var id string
	err := r.db.QueryRow(ctx,
		`SELECT id FROM products WHERE product_code = $1`,
		productCode,
	).Scan(&id)

	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check product %s: %w", productCode, err)
	}
	return true, nil
}

// Upsert stores a product under its natural key: update when a row with the
// same product_code exists, insert otherwise.
func (r *ProductRepository) Upsert(ctx context.Context, p catalog.Product) (UpsertResult, error) {
	exists, err := r.Exists(ctx, p.ProductCode)
	if err != nil {
		return UpsertResult{}, err
	}

	if exists {
		stored, err := r.Update(ctx, p.ProductCode, p)
		if err != nil {
			return UpsertResult{}, err
		}
		return UpsertResult{Action: ActionUpdated, Product: stored}, nil
	}

	stored, err := r.Insert(ctx, p)
	if err != nil {
		return UpsertResult{}, err
	}
	return UpsertResult{Action: ActionInserted, Product: stored}, nil
}

// Insert stores a new product row and returns it as stored.
func (r *ProductRepository) Insert(ctx context.Context, p catalog.Product) (catalog.Product, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO products (
			id, product_code, name, description, price, discount_price,
			currency, brand, advertiser, category, subcategory,
			affiliate_link, image_url, availability
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+productColumns,
		uuid.NewString(), p.ProductCode, p.Name, toPgText(p.Description),
		p.Price, p.DiscountPrice, p.Currency, p.Brand, p.Advertiser,
		toPgText(p.Category), p.Subcategory, p.AffiliateLink, p.ImageURL,
		p.Availability,
	)

	stored, err := scanProduct(row)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("insert product %s: %w", p.ProductCode, err)
	}
	return stored, nil
}

// Update replaces every data column of the row keyed by productCode and
// returns the row as stored. updated_at is refreshed server-side.
func (r *ProductRepository) Update(ctx context.Context, productCode string, p catalog.Product) (catalog.Product, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE products SET
			name = $1, description = $2, price = $3, discount_price = $4,
			currency = $5, brand = $6, advertiser = $7, category = $8,
			subcategory = $9, affiliate_link = $10, image_url = $11,
			availability = $12, updated_at = now()
		WHERE product_code = $13
		RETURNING `+productColumns,
		p.Name, toPgText(p.Description), p.Price, p.DiscountPrice,
		p.Currency, p.Brand, p.Advertiser, toPgText(p.Category),
		p.Subcategory, p.AffiliateLink, p.ImageURL, p.Availability,
		productCode,
	)

	stored, err := scanProduct(row)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("update product %s: %w", productCode, err)
	}
	return stored, nil
}
