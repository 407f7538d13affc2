package dataprep

import (
	"fmt"
	"strings"
	"unicode"

	"autovalue/pkg/data"
)

// Canonical column names. Every dataset is mapped onto this vocabulary
// before any feature is built.
const (
	CarName      = "Car_Name"
	Year         = "Year"
	SellingPrice = "Selling_Price"
	PresentPrice = "Present_Price"
	KmsDriven    = "Kms_Driven"
	FuelType     = "Fuel_Type"
	SellerType   = "Seller_Type"
	Transmission = "Transmission"
	Owner        = "Owner"

	// Age is derived from Year; it never appears in raw data.
	Age = "Age"
)

// aliases maps a canonical key (see canonicalKey) to its column name.
var aliases = map[string]string{
	"carname":      CarName,
	"name":         CarName,
	"year":         Year,
	"sellingprice": SellingPrice,
	"presentprice": PresentPrice,
	"kmsdriven":    KmsDriven,
	"kmdriven":     KmsDriven,
	"fueltype":     FuelType,
	"fuel":         FuelType,
	"sellertype":   SellerType,
	"transmission": Transmission,
	"owner":        Owner,
}

// Required lists the columns a training dataset must carry after normalization.
var Required = []string{SellingPrice, Year, KmsDriven, FuelType, SellerType, Transmission}

// NumericFields are parsed as numbers. Order is irrelevant; source order is kept.
var NumericFields = map[string]bool{
	Year:         true,
	SellingPrice: true,
	PresentPrice: true,
	KmsDriven:    true,
	Owner:        true,
}

// CategoricalFields are one-hot encoded.
var CategoricalFields = map[string]bool{
	FuelType:     true,
	SellerType:   true,
	Transmission: true,
}

// DataFormatError reports a dataset that cannot be trained on: either required
// columns are missing after normalization, or a cell cannot be parsed.
type DataFormatError struct {
	Missing []string

	Column string
	Row    int // 1-based data row, header excluded
	Value  string
}

func (e *DataFormatError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("data format: missing required columns %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("data format: column %s row %d: cannot parse %q", e.Column, e.Row, e.Value)
}

func canonicalKey(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CanonicalName maps a raw header to the canonical vocabulary.
// It is case and separator insensitive: "km_driven", "Kms_Driven" and
// "KMS DRIVEN" all map to Kms_Driven.
func CanonicalName(raw string) (string, bool) {
	name, ok := aliases[canonicalKey(raw)]
	return name, ok
}

// NormalizeColumns renames recognized columns to their canonical names and
// drops everything else. When two columns map to the same name the first one
// wins. The returned slice lists the raw names that were dropped.
func NormalizeColumns(f *data.Frame) (*data.Frame, []string) {
	var keep []int
	var dropped []string
	seen := map[string]bool{}
	names := make([]string, 0, len(f.Header))
	for i, h := range f.Header {
		name, ok := CanonicalName(h)
		if !ok || seen[name] {
			dropped = append(dropped, h)
			continue
		}
		seen[name] = true
		keep = append(keep, i)
		names = append(names, name)
	}
	out := f.Select(keep)
	out.Header = names
	return out, dropped
}

// RequireColumns returns a *DataFormatError listing every name absent from f.
func RequireColumns(f *data.Frame, names ...string) error {
	var missing []string
	for _, n := range names {
		if f.Column(n) < 0 {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return &DataFormatError{Missing: missing}
	}
	return nil
}
