package app

import (
	"path/filepath"
	"testing"

	"autovalue/internal/config"
	"autovalue/internal/metrics"
	"autovalue/pkg/artifact"
	"autovalue/pkg/model"
)

func TestOpenStore(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		cfg     config.ArtifactConfig
		wantErr bool
	}{
		{"file", config.ArtifactConfig{Backend: config.BackendFile, Dir: dir}, false},
		{"sqlite", config.ArtifactConfig{Backend: config.BackendSQLite, SQLitePath: filepath.Join(dir, "a.db")}, false},
		{"unknown", config.ArtifactConfig{Backend: "s3"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := OpenStore(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v; wantErr %v", err, tt.wantErr)
			}
			if s != nil {
				s.Close()
			}
		})
	}
}

func TestLoadServingContextDegraded(t *testing.T) {
	store := artifact.NewFileStore(t.TempDir())
	if s := LoadServingContext(store, metrics.NewRegistry()); s != nil {
		t.Fatal("expected nil context when artifacts are missing")
	}
}

func TestLoadServingContext(t *testing.T) {
	g := model.NewGradientBoostingRegressor(model.WithNEstimators(3))
	if err := g.Fit([][]float64{{1}, {2}, {3}, {4}}, []float64{2, 4, 6, 8}); err != nil {
		t.Fatal(err)
	}
	store := artifact.NewFileStore(t.TempDir())
	if err := store.Save(&artifact.Bundle{Model: g, Columns: []string{"Age"}, Metadata: model.Metadata{Accuracy: 99}}); err != nil {
		t.Fatal(err)
	}
	s := LoadServingContext(store, metrics.NewRegistry())
	if s == nil {
		t.Fatal("expected a serving context")
	}
	if meta, _ := s.Metadata(); meta.Accuracy != 99 {
		t.Fatalf("metadata = %+v", meta)
	}
}
