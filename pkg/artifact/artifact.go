// Package artifact persists and restores the three outputs of a training
// run: the model, the ordered feature columns and the accuracy metadata.
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"

	"autovalue/pkg/model"
)

// Artifact names, also used as file names by FileStore.
const (
	ModelName    = "car_price_model.gob"
	ColumnsName  = "model_columns.json"
	MetadataName = "model_meta.json"
)

// Bundle is one complete set of artifacts.
type Bundle struct {
	Model    *model.GradientBoostingRegressor
	Columns  []string
	Metadata model.Metadata
}

// Saver writes a bundle, replacing whatever was stored before.
type Saver interface {
	Save(b *Bundle) error
}

// Loader reads back the last saved bundle.
type Loader interface {
	Load() (*Bundle, error)
}

// Store is a backend that can do both.
type Store interface {
	Saver
	Loader
	Close() error
}

// Error names the artifact an operation failed on.
type Error struct {
	Artifact string
	Err      error
}

func (e *Error) Error() string { return fmt.Sprintf("artifact %s: %v", e.Artifact, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// encode serializes every artifact of b, keyed by artifact name.
func encode(b *Bundle) (map[string][]byte, error) {
	if b == nil || b.Model == nil {
		return nil, &Error{Artifact: ModelName, Err: errors.New("no model")}
	}
	if len(b.Columns) == 0 {
		return nil, &Error{Artifact: ColumnsName, Err: errors.New("no columns")}
	}
	m, err := b.Model.MarshalBinary()
	if err != nil {
		return nil, &Error{Artifact: ModelName, Err: err}
	}
	cols, err := json.Marshal(b.Columns)
	if err != nil {
		return nil, &Error{Artifact: ColumnsName, Err: err}
	}
	meta, err := json.Marshal(b.Metadata)
	if err != nil {
		return nil, &Error{Artifact: MetadataName, Err: err}
	}
	return map[string][]byte{ModelName: m, ColumnsName: cols, MetadataName: meta}, nil
}

// decode is the inverse of encode.
func decode(blobs map[string][]byte) (*Bundle, error) {
	b := &Bundle{Model: &model.GradientBoostingRegressor{}}
	if err := b.Model.UnmarshalBinary(blobs[ModelName]); err != nil {
		return nil, &Error{Artifact: ModelName, Err: err}
	}
	if err := json.Unmarshal(blobs[ColumnsName], &b.Columns); err != nil {
		return nil, &Error{Artifact: ColumnsName, Err: err}
	}
	if len(b.Columns) == 0 {
		return nil, &Error{Artifact: ColumnsName, Err: errors.New("empty column list")}
	}
	if err := json.Unmarshal(blobs[MetadataName], &b.Metadata); err != nil {
		return nil, &Error{Artifact: MetadataName, Err: err}
	}
	return b, nil
}

// names is the fixed save order.
var names = []string{ModelName, ColumnsName, MetadataName}
