package catalog

import (
	"strings"

	"catalog-import/internal/feed"
)

// Transformer maps raw feed records onto the canonical product shape.
//
// Transform is pure and never fails: missing columns fall back to zero
// values or field defaults, and malformed numerics coerce rather than error.
// Deciding whether the result is acceptable is the validator's job.
type Transformer struct {
	aliases AliasTable
}

// NewTransformer builds a transformer for the given alias table. Pass nil
// to use DefaultAliases.
func NewTransformer(aliases AliasTable) *Transformer {
	if aliases == nil {
		aliases = DefaultAliases()
	}
	return &Transformer{aliases: aliases.clone()}
}

// Transform produces a best-effort canonical product from one feed record.
func (t *Transformer) Transform(rec feed.Record) Product {
	return Product{
		ProductCode:   t.stringField(rec, FieldProductCode, ""),
		Name:          t.stringField(rec, FieldName, ""),
		Description:   t.stringField(rec, FieldDescription, ""),
		Price:         t.numberField(rec, FieldPrice),
		DiscountPrice: t.optionalNumberField(rec, FieldDiscountPrice),
		Currency:      t.stringField(rec, FieldCurrency, DefaultCurrency),
		Brand:         t.stringField(rec, FieldBrand, ""),
		Advertiser:    t.stringField(rec, FieldAdvertiser, ""),
		Category:      "", // main-category assignment happens downstream
		Subcategory:   t.stringField(rec, FieldSubcategory, ""),
		AffiliateLink: normalizeLink(t.stringField(rec, FieldAffiliateLink, "")),
		ImageURL:      t.stringField(rec, FieldImageURL, ""),
		Availability:  t.stringField(rec, FieldAvailability, DefaultAvailability),
	}
}

// stringField resolves a field to text, falling back to def when no alias
// matches.
func (t *Transformer) stringField(rec feed.Record, field, def string) string {
	v, ok := t.aliases.Resolve(rec, field)
	if !ok {
		return def
	}
	return v.String()
}

// numberField resolves a field to a number, coercing text and defaulting to
// 0 when the value is missing or unparseable.
func (t *Transformer) numberField(rec feed.Record, field string) float64 {
	v, ok := t.aliases.Resolve(rec, field)
	if !ok {
		return 0
	}
	f, ok := v.Float()
	if !ok {
		return 0
	}
	return f
}

// optionalNumberField resolves a field to a number or nil. Missing,
// unparseable, and zero values all mean "absent": a discount of 0 is no
// discount.
func (t *Transformer) optionalNumberField(rec feed.Record, field string) *float64 {
	v, ok := t.aliases.Resolve(rec, field)
	if !ok {
		return nil
	}
	f, ok := v.Float()
	if !ok || f == 0 {
		return nil
	}
	return &f
}

// normalizeLink makes affiliate links absolute. Feeds deliver
// protocol-relative links ("//shop.example.com/x"); anything not already
// starting with http gets an https: prefix.
func normalizeLink(link string) string {
	if link == "" || strings.HasPrefix(link, "http") {
		return link
	}
	return "https:" + link
}
