package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gpapredict/db"
	"gpapredict/ml"
)

func main() {
	dbPath := flag.String("db", "./data/artifacts.db", "artifact database path")
	scalerPath := flag.String("scaler", "./models/gpa_scaler.json", "fitted scaler artifact")
	modelPath := flag.String("model", "./models/student_gpa_model.json", "trained model artifact")
	scalerKind := flag.String("scaler_kind", "", "scaler kind when the artifact does not name one")
	modelKind := flag.String("model_kind", "", "model kind when the artifact does not name one")
	flag.Parse()

	scaler, err := readArtifact(*scalerPath, scalerWidth(*scalerKind))
	if err != nil {
		log.Fatalf("invalid scaler: %v", err)
	}
	model, err := readArtifact(*modelPath, modelWidth(*modelKind))
	if err != nil {
		log.Fatalf("invalid model: %v", err)
	}
	if scaler.Kind, err = kindOf(*scalerKind, scaler.Payload); err != nil {
		log.Fatalf("invalid scaler: %v", err)
	}
	if model.Kind, err = kindOf(*modelKind, model.Payload); err != nil {
		log.Fatalf("invalid model: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0o755); err != nil {
		log.Fatalf("failed to create database dir: %v", err)
	}
	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, artifact := range []db.Artifact{scaler, model} {
		if err := database.SaveArtifact(ctx, artifact); err != nil {
			log.Fatalf("failed to save %s: %v", artifact.Name, err)
		}
		fmt.Printf("imported %s (%d bytes) into %s\n", artifact.Name, len(artifact.Payload), *dbPath)
	}
}

// readArtifact loads a file and checks it decodes to a 12-wide component
// before it is stored.
func readArtifact(path string, decode func([]byte) (int, error)) (db.Artifact, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return db.Artifact{}, err
	}
	width, err := decode(payload)
	if err != nil {
		return db.Artifact{}, fmt.Errorf("%s: %w", path, err)
	}
	if width != ml.FeatureCount {
		return db.Artifact{}, fmt.Errorf("%s: %w: width %d, want %d", path, ml.ErrShapeMismatch, width, ml.FeatureCount)
	}
	return db.Artifact{Name: filepath.Base(path), Payload: payload}, nil
}

func scalerWidth(kind string) func([]byte) (int, error) {
	return func(payload []byte) (int, error) {
		s, err := ml.LoadScaler(kind, payload)
		if err != nil {
			return 0, err
		}
		return s.Width(), nil
	}
}

func modelWidth(kind string) func([]byte) (int, error) {
	return func(payload []byte) (int, error) {
		m, err := ml.LoadModel(kind, payload)
		if err != nil {
			return 0, err
		}
		return m.Width(), nil
	}
}

// kindOf returns the configured kind, or the one the artifact declares.
func kindOf(configured string, payload []byte) (string, error) {
	if configured != "" {
		return configured, nil
	}
	var header struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(payload, &header); err != nil {
		return "", fmt.Errorf("read kind: %w", err)
	}
	return header.Kind, nil
}
