package trainer

import (
	"autovalue/pkg/data"
	"autovalue/pkg/dataprep"
)

// Design is the encoded training table: one row per usable listing, one
// column per entry of Columns, plus the label.
type Design struct {
	Columns []string
	X       [][]float64
	Y       []float64
}

// BuildDesign turns a normalized frame into a feature matrix.
//
// Column order: numeric fields in source order (label and Year excluded),
// then Age, then the drop-first dummies of each categorical field in source
// order. Rows without a label are dropped. Car_Name never becomes a feature.
func BuildDesign(f *data.Frame, currentYear int) (*Design, error) {
	label, err := dataprep.ParseNumeric(dataprep.SellingPrice, f.Values(f.Column(dataprep.SellingPrice)))
	if err != nil {
		return nil, err
	}
	keep := dataprep.DropMissing(label)

	var (
		columns  []string
		features [][]float64 // column-major
		age      []float64
		dummies  [][]float64
		dummyCol []string
	)
	for c, name := range f.Header {
		switch {
		case name == dataprep.SellingPrice || name == dataprep.CarName:
			continue
		case name == dataprep.Year:
			years, err := dataprep.ParseNumeric(name, f.Values(c))
			if err != nil {
				return nil, err
			}
			age = dataprep.DeriveAge(dataprep.FeatureSelect(years, keep), currentYear)
		case dataprep.NumericFields[name]:
			vals, err := dataprep.ParseNumeric(name, f.Values(c))
			if err != nil {
				return nil, err
			}
			columns = append(columns, name)
			features = append(features, dataprep.FeatureSelect(vals, keep))
		case dataprep.CategoricalFields[name]:
			names, cols := dataprep.OneHotDropFirst(name, dataprep.FeatureSelect(f.Values(c), keep))
			dummyCol = append(dummyCol, names...)
			dummies = append(dummies, cols...)
		}
	}
	if age != nil {
		columns = append(columns, dataprep.Age)
		features = append(features, age)
	}
	columns = append(columns, dummyCol...)
	features = append(features, dummies...)

	d := &Design{
		Columns: columns,
		X:       make([][]float64, len(keep)),
		Y:       dataprep.FeatureSelect(label, keep),
	}
	for i := range keep {
		row := make([]float64, len(features))
		for j := range features {
			row[j] = features[j][i]
		}
		d.X[i] = row
	}
	return d, nil
}
