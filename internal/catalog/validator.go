package catalog

import (
	"fmt"
	"strings"
)

// Length limits enforced on canonical products.
const (
	maxProductCodeLen  = 100
	maxNameLen         = 255
	maxDescriptionLen  = 1000
	maxBrandLen        = 100
	maxAdvertiserLen   = 100
	maxSubcategoryLen  = 100
	maxAvailabilityLen = 50
	currencyCodeLen    = 3
)

// Violation is a single field-level validation failure.
type Violation struct {
	Field   string // Canonical field name
	Value   string // The offending value
	Message string // Human-readable rule description
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidationFailure carries the full set of violations for one product so
// batch diagnostics can report every problem, not just the first.
type ValidationFailure struct {
	Violations []Violation
}

func (f *ValidationFailure) Error() string {
	msgs := make([]string, len(f.Violations))
	for i, v := range f.Violations {
		msgs[i] = v.Error()
	}
	return strings.Join(msgs, "; ")
}

// Validator enforces business constraints on canonical products.
//
// Validation runs strictly after transformation and strictly before
// persistence. It also finishes normalization: identity and text fields are
// trimmed and the currency code is uppercased in the returned product.
type Validator struct{}

// NewValidator returns a product validator.
func NewValidator() *Validator { return &Validator{} }

// Validate checks a product against the catalog's constraints.
//
// On success it returns the normalized product. On failure it returns a
// *ValidationFailure listing every violated rule in field order.
func (v *Validator) Validate(p Product) (Product, error) {
	p.ProductCode = strings.TrimSpace(p.ProductCode)
	p.Name = strings.TrimSpace(p.Name)
	p.Currency = strings.TrimSpace(p.Currency)
	p.Brand = strings.TrimSpace(p.Brand)
	p.Advertiser = strings.TrimSpace(p.Advertiser)
	p.Subcategory = strings.TrimSpace(p.Subcategory)
	p.Availability = strings.TrimSpace(p.Availability)

	var violations []Violation

	addViolation := func(field, value, message string) {
		violations = append(violations, Violation{Field: field, Value: value, Message: message})
	}

	if p.ProductCode == "" {
		addViolation(FieldProductCode, p.ProductCode, "required")
	} else if len(p.ProductCode) > maxProductCodeLen {
		addViolation(FieldProductCode, p.ProductCode, fmt.Sprintf("must be at most %d characters", maxProductCodeLen))
	}

	if p.Name == "" {
		addViolation(FieldName, p.Name, "required")
	} else if len(p.Name) > maxNameLen {
		addViolation(FieldName, p.Name, fmt.Sprintf("must be at most %d characters", maxNameLen))
	}

	if len(p.Description) > maxDescriptionLen {
		addViolation(FieldDescription, p.Description, fmt.Sprintf("must be at most %d characters", maxDescriptionLen))
	}

	if p.Price <= 0 {
		addViolation(FieldPrice, fmt.Sprintf("%g", p.Price), "must be positive")
	}

	if p.DiscountPrice != nil {
		if *p.DiscountPrice <= 0 {
			addViolation(FieldDiscountPrice, fmt.Sprintf("%g", *p.DiscountPrice), "must be positive")
		} else if *p.DiscountPrice >= p.Price {
			addViolation(FieldDiscountPrice, fmt.Sprintf("%g", *p.DiscountPrice), "must be less than price")
		}
	}

	if len(p.Currency) != currencyCodeLen {
		addViolation(FieldCurrency, p.Currency, "must be a 3-letter code")
	} else {
		p.Currency = strings.ToUpper(p.Currency)
	}

	if len(p.Brand) > maxBrandLen {
		addViolation(FieldBrand, p.Brand, fmt.Sprintf("must be at most %d characters", maxBrandLen))
	}

	if len(p.Advertiser) > maxAdvertiserLen {
		addViolation(FieldAdvertiser, p.Advertiser, fmt.Sprintf("must be at most %d characters", maxAdvertiserLen))
	}

	if len(p.Subcategory) > maxSubcategoryLen {
		addViolation(FieldSubcategory, p.Subcategory, fmt.Sprintf("must be at most %d characters", maxSubcategoryLen))
	}

	if p.Availability == "" {
		addViolation(FieldAvailability, p.Availability, "required")
	} else if len(p.Availability) > maxAvailabilityLen {
		addViolation(FieldAvailability, p.Availability, fmt.Sprintf("must be at most %d characters", maxAvailabilityLen))
	}

	if len(violations) > 0 {
		return Product{}, &ValidationFailure{Violations: violations}
	}

	return p, nil
}
