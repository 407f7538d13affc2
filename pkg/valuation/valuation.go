// Package valuation rebuilds a model-ready feature vector from user input
// and turns the model's output into a presentable valuation.
//
// The vector is aligned column for column with the schema persisted at
// training time. Anything the schema does not name is left at zero: a numeric
// column the schema lacks, a baseline category and a category never seen in
// training all degrade silently rather than failing.
package valuation

import (
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"autovalue/pkg/artifact"
	"autovalue/pkg/dataprep"
	"autovalue/pkg/model"
	"autovalue/pkg/pipeline"
)

// Declared value sets offered to users.
var (
	FuelTypes     = []string{"Petrol", "Diesel", "CNG", "LPG"}
	SellerTypes   = []string{"Dealer", "Individual"}
	Transmissions = []string{"Manual", "Automatic"}
)

// Input is one valuation request.
type Input struct {
	ShowroomPrice    float64
	KilometersDriven float64
	ManufactureYear  int
	FuelType         string
	SellerType       string
	Transmission     string
}

// Result is a valuation. RetentionRatio is the raw ratio and may exceed 1;
// use DisplayRetention for presentation.
type Result struct {
	PredictedValue     float64
	RetentionRatio     float64
	RetentionAvailable bool // false when the showroom price is not positive
	Age                int
}

// DisplayRetention caps the retention ratio at 1.
func (r Result) DisplayRetention() float64 { return min(r.RetentionRatio, 1.0) }

// ServingContext is the loaded, immutable model state. It is built once at
// startup and shared by every request without locking.
type ServingContext struct {
	model    model.Regressor
	schema   *pipeline.Schema
	metadata model.Metadata
	now      func() time.Time
}

// Option configures a ServingContext.
type Option func(*ServingContext)

// WithClock sets the clock used to derive vehicle age.
func WithClock(now func() time.Time) Option { return func(s *ServingContext) { s.now = now } }

// New builds a serving context from already-loaded parts. The model must
// have been fitted on exactly len(columns) features.
func New(m model.Regressor, columns []string, meta model.Metadata, opts ...Option) (*ServingContext, error) {
	schema, err := pipeline.NewSchema(columns)
	if err != nil {
		return nil, &SchemaUnavailableError{Artifact: artifact.ColumnsName, Err: err}
	}
	if m == nil {
		return nil, &SchemaUnavailableError{Artifact: artifact.ModelName, Err: errors.New("no model")}
	}
	if m.Width() != schema.Len() {
		return nil, &SchemaUnavailableError{
			Artifact: artifact.ModelName,
			Err:      fmt.Errorf("model expects %d features, schema has %d", m.Width(), schema.Len()),
		}
	}
	s := &ServingContext{model: m, schema: schema, metadata: meta, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Load reads the artifacts once. Any failure is returned as a
// *SchemaUnavailableError; callers should not retry.
func Load(l artifact.Loader, opts ...Option) (*ServingContext, error) {
	b, err := l.Load()
	if err != nil {
		var ae *artifact.Error
		if errors.As(err, &ae) {
			return nil, &SchemaUnavailableError{Artifact: ae.Artifact, Err: ae.Err}
		}
		return nil, &SchemaUnavailableError{Err: err}
	}
	return New(b.Model, b.Columns, b.Metadata, opts...)
}

// Metadata returns the accuracy figures recorded at training time.
func (s *ServingContext) Metadata() (model.Metadata, error) {
	if s == nil {
		return model.Metadata{}, errUnavailable
	}
	return s.metadata, nil
}

// Columns returns the feature schema the model was trained on.
func (s *ServingContext) Columns() []string {
	if s == nil {
		return nil
	}
	return s.schema.Columns()
}

// UnmatchedCategories lists, per categorical field, the declared values that
// have no dummy column. Each is either the training baseline or a value the
// training data never contained; both encode as all zero.
func (s *ServingContext) UnmatchedCategories() map[string][]string {
	out := map[string][]string{}
	if s == nil {
		return out
	}
	for field, values := range declared {
		for _, v := range values {
			if _, ok := s.schema.Dummy(field, v); !ok {
				out[field] = append(out[field], v)
			}
		}
	}
	return out
}

// LogUnmatchedCategories reports UnmatchedCategories once, typically at startup.
func (s *ServingContext) LogUnmatchedCategories(l *log.Logger) {
	unmatched := s.UnmatchedCategories()
	for _, field := range []string{dataprep.FuelType, dataprep.SellerType, dataprep.Transmission} {
		if vals := unmatched[field]; len(vals) > 0 {
			l.Printf("valuation: %s has %d dummy columns; values %v have no column (baseline or unseen in training)",
				field, len(s.schema.DummyColumns(field)), vals)
		}
	}
}

var declared = map[string][]string{
	dataprep.FuelType:     FuelTypes,
	dataprep.SellerType:   SellerTypes,
	dataprep.Transmission: Transmissions,
}

var errUnavailable = &SchemaUnavailableError{Err: errors.New("model artifacts were not loaded")}

// Features builds the feature vector for in, ordered by the schema.
func (s *ServingContext) Features(in Input) ([]float64, error) {
	if s == nil {
		return nil, errUnavailable
	}
	return s.features(in, s.age(in)), nil
}

func (s *ServingContext) age(in Input) int { return s.now().Year() - in.ManufactureYear }

func (s *ServingContext) features(in Input, age int) []float64 {
	x := s.schema.Vector()

	// Owner is not collected from users and is always zero.
	numeric := []struct {
		column string
		value  float64
	}{
		{dataprep.PresentPrice, in.ShowroomPrice},
		{dataprep.KmsDriven, in.KilometersDriven},
		{dataprep.Owner, 0},
		{dataprep.Age, float64(age)},
	}
	for _, n := range numeric {
		if i, ok := s.schema.Index(n.column); ok {
			x[i] = n.value
		}
	}

	for _, c := range []struct{ field, value string }{
		{dataprep.FuelType, in.FuelType},
		{dataprep.SellerType, in.SellerType},
		{dataprep.Transmission, in.Transmission},
	} {
		if i, ok := s.schema.Dummy(c.field, c.value); ok {
			x[i] = 1
		}
	}
	return x
}

// Valuate prices one vehicle. It reads only immutable state and is safe for
// concurrent use. On a nil context it returns a *SchemaUnavailableError.
func (s *ServingContext) Valuate(in Input) (Result, error) {
	if s == nil {
		return Result{}, errUnavailable
	}
	age := s.age(in)
	x := s.features(in, age)

	p := s.model.PredictOne(x)
	if p < 0 || math.IsNaN(p) {
		p = 0
	}
	res := Result{PredictedValue: p, Age: age}
	if in.ShowroomPrice > 0 {
		res.RetentionRatio = res.PredictedValue / in.ShowroomPrice
		res.RetentionAvailable = true
	}
	return res, nil
}
