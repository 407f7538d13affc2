package app

import (
	"context"
	"fmt"
	"log"

	"autovalue/internal/config"
	"autovalue/internal/metrics"
	"autovalue/internal/transport/v1/rest"
	"autovalue/pkg/artifact"
	"autovalue/pkg/valuation"
)

// OpenStore opens the artifact backend named in the config.
func OpenStore(c config.ArtifactConfig) (artifact.Store, error) {
	switch c.Backend {
	case config.BackendFile:
		return artifact.NewFileStore(c.Dir), nil
	case config.BackendSQLite:
		s, err := artifact.OpenSQLite(c.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown artifact backend %q", c.Backend)
	}
}

// LoadServingContext loads the artifacts once. On failure it logs the cause,
// marks the service degraded and returns nil; it never retries.
func LoadServingContext(l artifact.Loader, m *metrics.Registry) *valuation.ServingContext {
	s, err := valuation.Load(l)
	if err != nil {
		log.Printf("valuation disabled: %v", err)
		m.SetDegraded()
		return nil
	}

	meta, _ := s.Metadata()
	m.SetModel(meta)
	s.LogUnmatchedCategories(log.Default())
	log.Printf("model loaded: %d features, accuracy %.2f%%", len(s.Columns()), meta.Accuracy)
	return s
}

func MustRunApp() {
	config, err := config.ReadConfig()
	if err != nil {
		log.Fatalf("read config: %s", err.Error())
	}

	store, err := OpenStore(config.Artifact)
	if err != nil {
		log.Fatalf("open artifact store: %s", err.Error())
	}
	defer store.Close()

	reg := metrics.NewRegistry()
	server := rest.New(LoadServingContext(store, reg), reg)
	if err := server.Start(context.Background(), config); err != nil {
		log.Fatalf("start web server: %s", err.Error())
	}
}
