package trainer

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"reflect"
	"strings"
	"testing"
	"time"

	"autovalue/pkg/data"
	"autovalue/pkg/dataprep"
)

var fixedClock = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }

func quiet() Option { return WithLogger(log.New(io.Discard, "", 0)) }

// listings builds a synthetic dataset shaped like the classic 300-row
// used-car table: prices in lakhs, value decaying with age and mileage.
func listings(n int, seed int64) *data.Frame {
	rng := rand.New(rand.NewSource(seed))
	fuels := []string{"Petrol", "Diesel", "CNG"}
	sellers := []string{"Dealer", "Individual"}
	transmissions := []string{"Manual", "Automatic"}
	f := &data.Frame{Header: []string{
		"Car_Name", "Year", "Present_Price", "Kms_Driven", "Fuel", "Seller_Type", "Transmission", "Owner", "Selling_Price",
	}}
	for i := 0; i < n; i++ {
		year := 2005 + rng.Intn(18)
		present := 3 + rng.Float64()*20
		kms := 5000 + rng.Intn(150000)
		fuel := fuels[i%3]
		seller := sellers[rng.Intn(2)]
		trans := transmissions[rng.Intn(2)]
		owner := rng.Intn(2)
		price := present * math.Pow(0.9, float64(2026-year)) * (1 - float64(kms)/600000)
		if fuel == "Diesel" {
			price *= 1.1
		}
		if seller == "Individual" {
			price *= 0.85
		}
		price += rng.NormFloat64() * 0.05
		f.Rows = append(f.Rows, []string{
			fmt.Sprintf("car%d", i),
			fmt.Sprint(year),
			fmt.Sprintf("%.2f", present),
			fmt.Sprint(kms),
			fuel, seller, trans,
			fmt.Sprint(owner),
			fmt.Sprintf("%.2f", price),
		})
	}
	return f
}

func TestTrainSchemaOrder(t *testing.T) {
	res, err := Train(listings(300, 1), WithClock(fixedClock), quiet())
	if err != nil {
		t.Fatalf("Train error: %v", err)
	}
	want := []string{
		"Present_Price", "Kms_Driven", "Owner", "Age",
		"Fuel_Type_Diesel", "Fuel_Type_Petrol",
		"Seller_Type_Individual",
		"Transmission_Manual",
	}
	if !reflect.DeepEqual(res.Columns, want) {
		t.Fatalf("columns = %v\nwant      %v", res.Columns, want)
	}
	if res.Model.Width() != len(want) {
		t.Fatalf("model width = %d; want %d", res.Model.Width(), len(want))
	}
	if res.TrainRows != 240 || len(res.HoldoutActual) != 60 {
		t.Fatalf("split = %d/%d; want 240/60", res.TrainRows, len(res.HoldoutActual))
	}
	if res.Metadata.Accuracy < 70 {
		t.Fatalf("accuracy = %.2f%%; want >= 70%%", res.Metadata.Accuracy)
	}
	if !reflect.DeepEqual(res.Dropped, []string(nil)) {
		t.Fatalf("dropped = %v", res.Dropped)
	}
}

func TestTrainReproducible(t *testing.T) {
	a, err := Train(listings(300, 7), WithClock(fixedClock), quiet())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Train(listings(300, 7), WithClock(fixedClock), quiet())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Columns, b.Columns) {
		t.Fatalf("column order differs: %v vs %v", a.Columns, b.Columns)
	}
	if a.Metadata != b.Metadata {
		t.Fatalf("metadata differs: %+v vs %+v", a.Metadata, b.Metadata)
	}
	if !reflect.DeepEqual(a.HoldoutPredicted, b.HoldoutPredicted) {
		t.Fatal("holdout predictions differ between runs")
	}
}

func TestTrainNormalizesHeaders(t *testing.T) {
	f := listings(60, 3)
	f.Header = []string{"name", "year", "present_price", "km_driven", "fuel", "seller_type", "transmission", "owner", "selling_price"}
	// an extra column that no model should see
	f.Header = append(f.Header, "mileage")
	for i := range f.Rows {
		f.Rows[i] = append(f.Rows[i], "18 kmpl")
	}
	res, err := Train(f, WithClock(fixedClock), quiet())
	if err != nil {
		t.Fatalf("Train error: %v", err)
	}
	if !reflect.DeepEqual(res.Dropped, []string{"mileage"}) {
		t.Fatalf("dropped = %v", res.Dropped)
	}
	for _, c := range res.Columns {
		if c == "Year" || c == "Car_Name" || strings.HasPrefix(c, "mileage") {
			t.Fatalf("column %q must not be a feature", c)
		}
	}
}

func TestTrainMissingColumns(t *testing.T) {
	f := &data.Frame{
		Header: []string{"Year", "Kms_Driven", "Fuel_Type"},
		Rows:   [][]string{{"2015", "100", "Petrol"}},
	}
	_, err := Train(f, WithClock(fixedClock), quiet())
	var dfe *dataprep.DataFormatError
	if !errors.As(err, &dfe) {
		t.Fatalf("expected *DataFormatError, got %v", err)
	}
	want := []string{"Selling_Price", "Seller_Type", "Transmission"}
	if !reflect.DeepEqual(dfe.Missing, want) {
		t.Fatalf("missing = %v; want %v", dfe.Missing, want)
	}
}

func TestTrainUnparsableNumber(t *testing.T) {
	tests := []struct {
		name   string
		row    int
		col    int
		value  string
		column string
	}{
		{"words in kms", 5, 3, "twelve thousand", "Kms_Driven"},
		{"infinite label", 3, 8, "Inf", "Selling_Price"},
		{"infinite kms", 7, 3, "-Infinity", "Kms_Driven"},
		{"infinite showroom price", 2, 2, "+Inf", "Present_Price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := listings(30, 9)
			f.Rows[tt.row][tt.col] = tt.value
			_, err := Train(f, WithClock(fixedClock), quiet())
			var dfe *dataprep.DataFormatError
			if !errors.As(err, &dfe) {
				t.Fatalf("expected *DataFormatError, got %v", err)
			}
			if dfe.Column != tt.column || dfe.Row != tt.row+1 || dfe.Value != tt.value {
				t.Fatalf("error = %+v", dfe)
			}
		})
	}
}

func TestTrainWithoutOptionalColumns(t *testing.T) {
	full := listings(80, 5)
	// drop Present_Price and Owner
	f := full.Select([]int{0, 1, 3, 4, 5, 6, 8})
	res, err := Train(f, WithClock(fixedClock), quiet())
	if err != nil {
		t.Fatalf("Train error: %v", err)
	}
	for _, c := range res.Columns {
		if c == "Present_Price" || c == "Owner" {
			t.Fatalf("unexpected column %q", c)
		}
	}
	if res.Columns[0] != "Kms_Driven" || res.Columns[1] != "Age" {
		t.Fatalf("columns = %v", res.Columns)
	}
}

func TestTrainDropsUnlabelledRows(t *testing.T) {
	f := listings(12, 6)
	f.Rows[0][8] = ""
	f.Rows[1][8] = "NA"
	res, err := Train(f, WithClock(fixedClock), quiet())
	if err != nil {
		t.Fatalf("Train error: %v", err)
	}
	if got := res.TrainRows + len(res.HoldoutActual); got != 10 {
		t.Fatalf("usable rows = %d; want 10", got)
	}
}

func TestTrainTooFewRows(t *testing.T) {
	f := listings(1, 8)
	if _, err := Train(f, WithClock(fixedClock), quiet()); !errors.Is(err, ErrTooFewRows) {
		t.Fatalf("err = %v; want ErrTooFewRows", err)
	}
}

func TestBuildDesignMissingCategory(t *testing.T) {
	f := &data.Frame{
		Header: []string{"Year", "Kms_Driven", "Fuel_Type", "Seller_Type", "Transmission", "Selling_Price"},
		Rows: [][]string{
			{"2020", "100", "Petrol", "Dealer", "Manual", "5"},
			{"2018", "", "", "Individual", "Automatic", "3"},
			{"2016", "300", "Diesel", "Dealer", "Manual", "2"},
		},
	}
	d, err := BuildDesign(f, 2026)
	if err != nil {
		t.Fatalf("BuildDesign error: %v", err)
	}
	wantCols := []string{"Kms_Driven", "Age", "Fuel_Type_Petrol", "Seller_Type_Individual", "Transmission_Manual"}
	if !reflect.DeepEqual(d.Columns, wantCols) {
		t.Fatalf("columns = %v; want %v", d.Columns, wantCols)
	}
	row := d.X[1]
	if !math.IsNaN(row[0]) || row[1] != 8 || row[2] != 0 || row[3] != 1 || row[4] != 0 {
		t.Fatalf("row 1 = %v", row)
	}
	if d.Y[2] != 2 {
		t.Fatalf("labels = %v", d.Y)
	}
}
