package config

import (
	"os"
	"testing"
)

func TestReadConfigDefaults(t *testing.T) {
	for _, k := range []string{"SERVER_PORT", "ARTIFACT_BACKEND", "ARTIFACT_DIR", "ARTIFACT_SQLITE_PATH", "DATASET_PATH", "TRAIN_PLOT_PATH"} {
		t.Setenv(k, "")
	}
	chdir(t, t.TempDir())

	c, err := ReadConfig()
	if err != nil {
		t.Fatalf("ReadConfig error: %v", err)
	}
	if c.Server.Port != "8080" || c.Artifact.Backend != BackendFile || c.Artifact.Dir != "." {
		t.Errorf("unexpected defaults: %+v", c)
	}
	if c.Artifact.SQLitePath != "artifacts.db" || c.Train.DatasetPath != "car_data.csv" || c.Train.PlotPath != "" {
		t.Errorf("unexpected defaults: %+v", c)
	}
}

func TestReadConfigOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ARTIFACT_BACKEND", "sqlite")
	t.Setenv("ARTIFACT_SQLITE_PATH", "/tmp/x.db")

	c, err := ReadConfig()
	if err != nil {
		t.Fatalf("ReadConfig error: %v", err)
	}
	if c.Server.Port != "9090" || c.Artifact.Backend != BackendSQLite || c.Artifact.SQLitePath != "/tmp/x.db" {
		t.Errorf("overrides not applied: %+v", c)
	}
}

func TestReadConfigRejectsUnknownBackend(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ARTIFACT_BACKEND", "s3")
	if _, err := ReadConfig(); err == nil {
		t.Fatal("expected error")
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent to testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
