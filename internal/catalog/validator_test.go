package catalog

import (
	"errors"
	"strings"
	"testing"
)

// validProduct returns a product that passes every rule; tests break one
// field at a time.
func validProduct() Product {
	return Product{
		ProductCode:   "P1",
		Name:          "Widget",
		Price:         19.99,
		Currency:      "usd",
		Brand:         "Acme",
		Advertiser:    "Shop",
		Subcategory:   "Tools",
		AffiliateLink: "https://shop.example.com/x",
		ImageURL:      "https://img.example.com/x.jpg",
		Availability:  "in stock",
	}
}

func TestValidate_OK(t *testing.T) {
	v := NewValidator()

	got, err := v.Validate(validProduct())
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got.Currency != "USD" {
		t.Errorf("Currency = %q, want USD (case-normalized)", got.Currency)
	}
}

func TestValidate_CurrencyNormalization(t *testing.T) {
	v := NewValidator()

	// Length 3, lowercase: valid and uppercased.
	p := validProduct()
	p.Currency = "usd"
	got, err := v.Validate(p)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", got.Currency)
	}

	// Length 2: fails with a length violation.
	p = validProduct()
	p.Currency = "US"
	_, err = v.Validate(p)
	var failure *ValidationFailure
	if !errors.As(err, &failure) {
		t.Fatalf("Validate() error = %v, want ValidationFailure", err)
	}
	if len(failure.Violations) != 1 || failure.Violations[0].Field != FieldCurrency {
		t.Errorf("Violations = %v, want single currency violation", failure.Violations)
	}
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Product)
		wantField string
	}{
		{
			name:      "missing product code",
			mutate:    func(p *Product) { p.ProductCode = "" },
			wantField: FieldProductCode,
		},
		{
			name:      "product code too long",
			mutate:    func(p *Product) { p.ProductCode = strings.Repeat("x", 101) },
			wantField: FieldProductCode,
		},
		{
			name:      "missing name",
			mutate:    func(p *Product) { p.Name = "" },
			wantField: FieldName,
		},
		{
			name:      "name too long",
			mutate:    func(p *Product) { p.Name = strings.Repeat("x", 256) },
			wantField: FieldName,
		},
		{
			name:      "description too long",
			mutate:    func(p *Product) { p.Description = strings.Repeat("x", 1001) },
			wantField: FieldDescription,
		},
		{
			name:      "zero price",
			mutate:    func(p *Product) { p.Price = 0 },
			wantField: FieldPrice,
		},
		{
			name:      "negative price",
			mutate:    func(p *Product) { p.Price = -1 },
			wantField: FieldPrice,
		},
		{
			name:      "non-positive discount",
			mutate:    func(p *Product) { d := -1.0; p.DiscountPrice = &d },
			wantField: FieldDiscountPrice,
		},
		{
			name:      "discount at or above price",
			mutate:    func(p *Product) { d := 19.99; p.DiscountPrice = &d },
			wantField: FieldDiscountPrice,
		},
		{
			name:      "brand too long",
			mutate:    func(p *Product) { p.Brand = strings.Repeat("x", 101) },
			wantField: FieldBrand,
		},
		{
			name:      "advertiser too long",
			mutate:    func(p *Product) { p.Advertiser = strings.Repeat("x", 101) },
			wantField: FieldAdvertiser,
		},
		{
			name:      "subcategory too long",
			mutate:    func(p *Product) { p.Subcategory = strings.Repeat("x", 101) },
			wantField: FieldSubcategory,
		},
		{
			name:      "missing availability",
			mutate:    func(p *Product) { p.Availability = "" },
			wantField: FieldAvailability,
		},
		{
			name:      "availability too long",
			mutate:    func(p *Product) { p.Availability = strings.Repeat("x", 51) },
			wantField: FieldAvailability,
		},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(&p)

			_, err := v.Validate(p)
			var failure *ValidationFailure
			if !errors.As(err, &failure) {
				t.Fatalf("Validate() error = %v, want ValidationFailure", err)
			}

			found := false
			for _, viol := range failure.Violations {
				if viol.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("Violations = %v, want one for field %q", failure.Violations, tt.wantField)
			}
		})
	}
}

func TestValidate_EmptyOptionalTextFieldsAllowed(t *testing.T) {
	v := NewValidator()

	p := validProduct()
	p.Brand = ""
	p.Advertiser = ""
	p.Subcategory = ""
	p.Description = ""

	if _, err := v.Validate(p); err != nil {
		t.Errorf("Validate() error = %v, want none for empty optional text fields", err)
	}
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	v := NewValidator()

	p := validProduct()
	p.ProductCode = ""
	p.Name = ""
	p.Price = 0
	p.Currency = "x"

	_, err := v.Validate(p)
	var failure *ValidationFailure
	if !errors.As(err, &failure) {
		t.Fatalf("Validate() error = %v, want ValidationFailure", err)
	}
	if len(failure.Violations) != 4 {
		t.Errorf("len(Violations) = %d, want 4 (all problems reported)", len(failure.Violations))
	}
}

func TestValidate_TrimsFields(t *testing.T) {
	v := NewValidator()

	p := validProduct()
	p.ProductCode = "  P1  "
	p.Name = " Widget "

	got, err := v.Validate(p)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got.ProductCode != "P1" || got.Name != "Widget" {
		t.Errorf("trim failed: code=%q name=%q", got.ProductCode, got.Name)
	}
}

func TestValidationFailure_ErrorMessage(t *testing.T) {
	f := &ValidationFailure{Violations: []Violation{
		{Field: FieldProductCode, Message: "required"},
	}}
	if f.Error() != "product_code: required" {
		t.Errorf("Error() = %q, want %q", f.Error(), "product_code: required")
	}

	f.Violations = append(f.Violations, Violation{Field: FieldPrice, Message: "must be positive"})
	if f.Error() != "product_code: required; price: must be positive" {
		t.Errorf("Error() = %q", f.Error())
	}
}
