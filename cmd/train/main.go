package main

import (
	"flag"
	"fmt"
	"log"

	"autovalue/internal/app"
	"autovalue/internal/config"
	"autovalue/pkg/artifact"
	"autovalue/pkg/data"
	"autovalue/pkg/report"
	"autovalue/pkg/trainer"
)

//
// ---------------------- CLI FLAGS DOCUMENTATION ----------------------
//
// --dataset : Path to the listings CSV. Overrides DATASET_PATH (default car_data.csv)
// --plot    : Optional PNG path for the holdout predicted-vs-actual chart.
//             Overrides TRAIN_PLOT_PATH; empty = no chart
//
// Artifacts go to the store selected by ARTIFACT_BACKEND (file | sqlite),
// ARTIFACT_DIR and ARTIFACT_SQLITE_PATH. Nothing is written unless training
// succeeds.
//
// Example:
//   go run ./cmd/train --dataset car_data.csv --plot holdout.png
//
// ---------------------------------------------------------------------
//

func main() {
	cfg, err := config.ReadConfig()
	if err != nil {
		log.Fatalf("read config: %v", err)
	}

	datasetPath := flag.String("dataset", cfg.Train.DatasetPath, "Path to listings CSV")
	plotPath := flag.String("plot", cfg.Train.PlotPath, "Optional PNG path for the holdout chart")
	flag.Parse()

	raw, err := data.LoadCSV(*datasetPath)
	if err != nil {
		log.Fatalf("load dataset: %v", err)
	}

	res, err := trainer.Train(raw)
	if err != nil {
		log.Fatalf("train: %v", err)
	}

	store, err := app.OpenStore(cfg.Artifact)
	if err != nil {
		log.Fatalf("open artifact store: %v", err)
	}
	defer store.Close()

	bundle := &artifact.Bundle{Model: res.Model, Columns: res.Columns, Metadata: res.Metadata}
	if err := store.Save(bundle); err != nil {
		store.Close()
		log.Fatalf("save artifacts: %v", err)
	}
	log.Printf("trained on %d rows, %d features, MAE %.2f", res.TrainRows, len(res.Columns), res.Metadata.MAE)

	if *plotPath != "" {
		p, err := report.HoldoutScatter(res.HoldoutActual, res.HoldoutPredicted)
		if err != nil {
			log.Printf("holdout chart skipped: %v", err)
		} else if err := report.SavePNG(p, *plotPath); err != nil {
			log.Printf("holdout chart skipped: %v", err)
		} else {
			log.Printf("saved holdout chart to %s", *plotPath)
		}
	}

	fmt.Printf("Success! Model trained. Accuracy: %.2f%%\n", res.Metadata.Accuracy)
}
