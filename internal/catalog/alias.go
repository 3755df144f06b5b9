package catalog

import "catalog-import/internal/feed"

// Canonical field names used as AliasTable keys.
const (
	FieldProductCode   = "product_code"
	FieldName          = "name"
	FieldDescription   = "description"
	FieldPrice         = "price"
	FieldDiscountPrice = "discount_price"
	FieldCurrency      = "currency"
	FieldBrand         = "brand"
	FieldAdvertiser    = "advertiser"
	FieldCategory      = "category"
	FieldSubcategory   = "subcategory"
	FieldAffiliateLink = "affiliate_link"
	FieldImageURL      = "image_url"
	FieldAvailability  = "availability"
)

// AliasTable maps a canonical field name to the raw column names that may
// carry it, in priority order: the first column present with a non-null
// value wins.
//
// Tables are configuration data. Build one per feed format and hand it to
// NewTransformer; the transformer copies it, so later mutation of the
// caller's map has no effect.
type AliasTable map[string][]string

// DefaultAliases returns the alias table for the affiliate feed formats this
// importer was built against.
//
// category has no aliases on purpose: feeds carry advertiser-specific
// taxonomies and main-category assignment happens downstream.
func DefaultAliases() AliasTable {
	return AliasTable{
		FieldProductCode:   {"Product code", "product_code", "code"},
		FieldName:          {"Product name", "name"},
		FieldDescription:   {"Product description", "desc", "description"},
		FieldPrice:         {"Price with VAT", "price_vat", "vat_price"},
		FieldDiscountPrice: {"Price with discount, with VAT", "discount_price"},
		FieldCurrency:      {"Currency"},
		FieldBrand:         {"Manufacturer", "Brand"},
		FieldAdvertiser:    {"Advertiser name", "Advertiser"},
		FieldCategory:      {},
		FieldSubcategory:   {"Category"},
		FieldAffiliateLink: {"Product affiliate link", "Affiliate link"},
		FieldImageURL:      {"Product picture", "Image URL"},
		FieldAvailability:  {"Availability", "Stock"},
	}
}

// Resolve walks the alias list for a canonical field and returns the first
// raw column present with a non-null value.
func (t AliasTable) Resolve(rec feed.Record, field string) (feed.Value, bool) {
	for _, col := range t[field] {
		if v, ok := rec.Lookup(col); ok {
			return v, true
		}
	}
	return feed.Null, false
}

// clone deep-copies the table.
func (t AliasTable) clone() AliasTable {
	out := make(AliasTable, len(t))
	for field, aliases := range t {
		cols := make([]string, len(aliases))
		copy(cols, aliases)
		out[field] = cols
	}
	return out
}
