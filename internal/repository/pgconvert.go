package repository

import (
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"catalog-import/internal/catalog"
)

// toPgText binds a string to a nullable text column: empty means NULL.
func toPgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

// fromPgText reads a nullable text column back to a plain string.
func fromPgText(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}

// scanProduct reads one full product row.
func scanProduct(row pgx.Row) (catalog.Product, error) {
	var (
		p           catalog.Product
		description pgtype.Text
		category    pgtype.Text
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)

	err := row.Scan(
		&p.ID, &p.ProductCode, &p.Name, &description, &p.Price,
		&p.DiscountPrice, &p.Currency, &p.Brand, &p.Advertiser,
		&category, &p.Subcategory, &p.AffiliateLink, &p.ImageURL,
		&p.Availability, &createdAt, &updatedAt,
	)
	if err != nil {
		return catalog.Product{}, err
	}

	p.Description = fromPgText(description)
	p.Category = fromPgText(category)
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return p, nil
}
