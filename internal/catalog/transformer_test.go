package catalog

import (
	"testing"

	"catalog-import/internal/feed"
)

func TestTransform_AliasPriority(t *testing.T) {
	// Both "Product code" and "code" carry values; the higher-priority
	// alias must win.
	tr := NewTransformer(nil)
	rec := feed.Record{
		"Product code": feed.StringValue("FIRST"),
		"code":         feed.StringValue("SECOND"),
	}

	p := tr.Transform(rec)
	if p.ProductCode != "FIRST" {
		t.Errorf("ProductCode = %q, want %q (first alias wins)", p.ProductCode, "FIRST")
	}
}

func TestTransform_AliasFallback(t *testing.T) {
	tr := NewTransformer(nil)
	rec := feed.Record{
		"code": feed.StringValue("ONLY"),
	}

	p := tr.Transform(rec)
	if p.ProductCode != "ONLY" {
		t.Errorf("ProductCode = %q, want %q", p.ProductCode, "ONLY")
	}
}

func TestTransform_Defaults(t *testing.T) {
	tr := NewTransformer(nil)
	p := tr.Transform(feed.Record{})

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"currency", p.Currency, DefaultCurrency},
		{"availability", p.Availability, DefaultAvailability},
		{"description", p.Description, ""},
		{"brand", p.Brand, ""},
		{"advertiser", p.Advertiser, ""},
		{"subcategory", p.Subcategory, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}

	if p.Price != 0 {
		t.Errorf("Price = %v, want 0", p.Price)
	}
	if p.DiscountPrice != nil {
		t.Errorf("DiscountPrice = %v, want nil", *p.DiscountPrice)
	}
}

func TestTransform_CategoryAlwaysEmpty(t *testing.T) {
	tr := NewTransformer(nil)
	// "Category" is an alias for subcategory, not category.
	p := tr.Transform(feed.Record{"Category": feed.StringValue("Electronics")})

	if p.Category != "" {
		t.Errorf("Category = %q, want empty", p.Category)
	}
	if p.Subcategory != "Electronics" {
		t.Errorf("Subcategory = %q, want Electronics", p.Subcategory)
	}
}

func TestTransform_LinkNormalization(t *testing.T) {
	tests := []struct {
		name string
		link string
		want string
	}{
		{
			name: "protocol-relative gets https prefix",
			link: "//shop.example.com/x",
			want: "https://shop.example.com/x",
		},
		{
			name: "http left unchanged",
			link: "http://shop.example.com/x",
			want: "http://shop.example.com/x",
		},
		{
			name: "https left unchanged",
			link: "https://shop.example.com/x",
			want: "https://shop.example.com/x",
		},
		{
			name: "empty stays empty",
			link: "",
			want: "",
		},
	}

	tr := NewTransformer(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := feed.Record{}
			if tt.link != "" {
				rec["Affiliate link"] = feed.StringValue(tt.link)
			}
			p := tr.Transform(rec)
			if p.AffiliateLink != tt.want {
				t.Errorf("AffiliateLink = %q, want %q", p.AffiliateLink, tt.want)
			}
		})
	}
}

func TestTransform_PriceCoercion(t *testing.T) {
	tests := []struct {
		name string
		val  feed.Value
		want float64
	}{
		{"number value", feed.NumberValue(19.99), 19.99},
		{"numeric string", feed.StringValue("12.50"), 12.5},
		{"garbage defaults to zero", feed.StringValue("n/a"), 0},
	}

	tr := NewTransformer(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tr.Transform(feed.Record{"Price with VAT": tt.val})
			if p.Price != tt.want {
				t.Errorf("Price = %v, want %v", p.Price, tt.want)
			}
		})
	}
}

func TestTransform_DiscountPrice(t *testing.T) {
	tests := []struct {
		name string
		val  feed.Value
		want *float64
	}{
		{"valid discount", feed.NumberValue(9.99), ptr(9.99)},
		{"zero means no discount", feed.NumberValue(0), nil},
		{"unparseable means no discount", feed.StringValue("n/a"), nil},
	}

	tr := NewTransformer(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tr.Transform(feed.Record{"Price with discount, with VAT": tt.val})
			switch {
			case tt.want == nil && p.DiscountPrice != nil:
				t.Errorf("DiscountPrice = %v, want nil", *p.DiscountPrice)
			case tt.want != nil && (p.DiscountPrice == nil || *p.DiscountPrice != *tt.want):
				t.Errorf("DiscountPrice = %v, want %v", p.DiscountPrice, *tt.want)
			}
		})
	}
}

func TestTransform_NumericProductCodeStringified(t *testing.T) {
	tr := NewTransformer(nil)
	p := tr.Transform(feed.Record{"Product code": feed.NumberValue(12345)})

	if p.ProductCode != "12345" {
		t.Errorf("ProductCode = %q, want %q", p.ProductCode, "12345")
	}
}

func TestNewTransformer_CopiesAliasTable(t *testing.T) {
	aliases := AliasTable{
		FieldProductCode: {"sku"},
	}
	tr := NewTransformer(aliases)

	// Mutating the caller's table after construction must not change
	// resolution.
	aliases[FieldProductCode][0] = "other"

	p := tr.Transform(feed.Record{"sku": feed.StringValue("X1")})
	if p.ProductCode != "X1" {
		t.Errorf("ProductCode = %q, want X1 (alias table must be copied)", p.ProductCode)
	}
}

func ptr(f float64) *float64 { return &f }
