// Package catalog defines the canonical product shape that every feed
// variant is normalized into, the alias table driving that normalization,
// and the business validation applied before persistence.
package catalog

import "time"

// Default values applied by the transformer when a feed omits a column.
const (
	DefaultCurrency     = "lei"
	DefaultAvailability = "unknown"
)

// Product is the canonical catalog entity.
//
// ProductCode is the sole identity key: no two persisted rows share one.
// CreatedAt/UpdatedAt are system-managed by the repository and ignored on
// the way in.
type Product struct {
	ID            string
	ProductCode   string
	Name          string
	Description   string
	Price         float64
	DiscountPrice *float64
	Currency      string
	Brand         string
	Advertiser    string
	Category      string
	Subcategory   string
	AffiliateLink string
	ImageURL      string
	Availability  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
