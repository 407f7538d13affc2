package dataprep

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"autovalue/pkg/data"
)

func TestCanonicalName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"km_driven", KmsDriven, true},
		{"Kms_Driven", KmsDriven, true},
		{"KMS DRIVEN", KmsDriven, true},
		{"fuel", FuelType, true},
		{"Fuel_Type", FuelType, true},
		{"selling_price", SellingPrice, true},
		{"Present-Price", PresentPrice, true},
		{"seller_type", SellerType, true},
		{"name", CarName, true},
		{"owner", Owner, true},
		{"mileage", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := CanonicalName(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Errorf("CanonicalName(%q) = %q, %v; want %q, %v", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNormalizeColumns(t *testing.T) {
	f := &data.Frame{
		Header: []string{"name", "year", "selling_price", "km_driven", "fuel", "seats", "Fuel_Type"},
		Rows:   [][]string{{"Swift", "2015", "450000", "70000", "Petrol", "5", "Diesel"}},
	}
	got, dropped := NormalizeColumns(f)
	wantHeader := []string{CarName, Year, SellingPrice, KmsDriven, FuelType}
	if !reflect.DeepEqual(got.Header, wantHeader) {
		t.Fatalf("header = %v; want %v", got.Header, wantHeader)
	}
	if !reflect.DeepEqual(dropped, []string{"seats", "Fuel_Type"}) {
		t.Fatalf("dropped = %v", dropped)
	}
	if got.Rows[0][4] != "Petrol" {
		t.Fatalf("first fuel column should win, got %q", got.Rows[0][4])
	}
}

func TestRequireColumns(t *testing.T) {
	f := &data.Frame{Header: []string{Year, FuelType}}
	err := RequireColumns(f, SellingPrice, Year, Transmission)
	var dfe *DataFormatError
	if !errors.As(err, &dfe) {
		t.Fatalf("expected *DataFormatError, got %v", err)
	}
	if !reflect.DeepEqual(dfe.Missing, []string{SellingPrice, Transmission}) {
		t.Fatalf("missing = %v", dfe.Missing)
	}
	if !strings.Contains(err.Error(), "Selling_Price") {
		t.Errorf("error message %q lacks column name", err)
	}
	if err := RequireColumns(f, Year); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseNumeric(t *testing.T) {
	got, err := ParseNumeric(KmsDriven, []string{"27000", "", "NA", "4.5"})
	if err != nil {
		t.Fatalf("ParseNumeric error: %v", err)
	}
	if got[0] != 27000 || got[3] != 4.5 {
		t.Fatalf("values = %v", got)
	}
	if !math.IsNaN(got[1]) || !math.IsNaN(got[2]) {
		t.Fatalf("missing cells should be NaN: %v", got)
	}

	_, err = ParseNumeric(KmsDriven, []string{"1", "lots"})
	var dfe *DataFormatError
	if !errors.As(err, &dfe) {
		t.Fatalf("expected *DataFormatError, got %v", err)
	}
	if dfe.Row != 2 || dfe.Value != "lots" {
		t.Fatalf("error = %+v", dfe)
	}
}

func TestParseNumericRejectsInfinity(t *testing.T) {
	for _, v := range []string{"Inf", "+Inf", "-inf", "Infinity", "1e999"} {
		_, err := ParseNumeric(SellingPrice, []string{"3.5", v})
		var dfe *DataFormatError
		if !errors.As(err, &dfe) {
			t.Errorf("%q: expected *DataFormatError, got %v", v, err)
			continue
		}
		if dfe.Column != SellingPrice || dfe.Row != 2 || dfe.Value != v {
			t.Errorf("%q: error = %+v", v, dfe)
		}
	}
}

func TestParseOwnerPhrases(t *testing.T) {
	got, err := ParseNumeric(Owner, []string{"First Owner", "Second Owner", "Fourth & Above Owner", "Test Drive Car", "1"})
	if err != nil {
		t.Fatalf("ParseNumeric error: %v", err)
	}
	want := []float64{0, 1, 3, 0, 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("owner = %v; want %v", got, want)
	}
	if _, err := ParseNumeric(Owner, []string{"many"}); err == nil {
		t.Fatal("expected error for unknown owner phrase")
	}
}

func TestDeriveAge(t *testing.T) {
	got := DeriveAge([]float64{2017, math.NaN(), 2026}, 2026)
	if got[0] != 9 || got[2] != 0 || !math.IsNaN(got[1]) {
		t.Fatalf("ages = %v", got)
	}
}

func TestOneHotDropFirst(t *testing.T) {
	col := []string{"Petrol", "Diesel", "CNG", "Diesel", ""}
	names, cols := OneHotDropFirst(FuelType, col)
	wantNames := []string{"Fuel_Type_Diesel", "Fuel_Type_Petrol"}
	if !reflect.DeepEqual(names, wantNames) {
		t.Fatalf("names = %v; want %v", names, wantNames)
	}
	want := [][]float64{
		{0, 1, 0, 1, 0},
		{1, 0, 0, 0, 0},
	}
	if !reflect.DeepEqual(cols, want) {
		t.Fatalf("cols = %v; want %v", cols, want)
	}
	// every row has at most one hot entry
	for i := range col {
		hot := 0
		for j := range cols {
			hot += int(cols[j][i])
		}
		if hot > 1 {
			t.Fatalf("row %d has %d hot entries", i, hot)
		}
	}
}

func TestOneHotSingleCategory(t *testing.T) {
	names, cols := OneHotDropFirst(Transmission, []string{"Manual", "Manual"})
	if names != nil || cols != nil {
		t.Fatalf("single category should emit nothing, got %v", names)
	}
}

func TestCategoriesIgnoresOrder(t *testing.T) {
	a := Categories([]string{"Manual", "Automatic"})
	b := Categories([]string{"Automatic", "Manual", "Manual"})
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("categories depend on row order: %v vs %v", a, b)
	}
}

func TestFeatureSelect(t *testing.T) {
	got := FeatureSelect([]string{"a", "b", "c"}, []int{2, 0})
	if !reflect.DeepEqual(got, []string{"c", "a"}) {
		t.Fatalf("FeatureSelect = %v", got)
	}
}
