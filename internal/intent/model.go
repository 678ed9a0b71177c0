package intent

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wearly/supportbot/internal/nlp"
)

// artifactVersion guards the serialized model schema. Loading rejects any
// other version instead of guessing.
const artifactVersion = 1

// Metadata describes a training run; persisted alongside the model.
type Metadata struct {
	VocabularySize  int       `json:"vocabulary_size"`
	TrainingSetSize int       `json:"training_set_size"`
	Classes         []string  `json:"classes"`
	TrainedAt       time.Time `json:"trained_at"`
}

// Model is a fitted vectorizer plus a fitted classifier. Immutable after
// creation; loaded once per process and shared read-only.
type Model struct {
	Vectorizer *Vectorizer `json:"vectorizer"`
	Forest     *Forest     `json:"forest"`
	Classes    []Label     `json:"classes"` // column order of Forest probabilities
	Meta       Metadata    `json:"metadata"`
}

// Predict normalizes the text, projects it through the vectorizer and returns
// the argmax label with its probability as confidence.
func (m *Model) Predict(text string) (Label, float64, error) {
	if m == nil || m.Vectorizer == nil || m.Forest == nil {
		return LabelUnknown, 0, fmt.Errorf("intent model not loaded")
	}

	normalized := nlp.NormalizeJoin(text)
	if normalized == "" {
		// nothing survives normalization, no features to score
		return LabelUnknown, 0, nil
	}

	row := m.Vectorizer.Transform(normalized)
	probs := m.Forest.Proba(row)

	best := 0
	for c := range probs {
		if probs[c] > probs[best] {
			best = c
		}
	}
	return m.Classes[best], probs[best], nil
}

type artifactEnvelope struct {
	SchemaVersion int `json:"schema_version"`
	Model
}

// Save writes the model as a versioned JSON artifact, creating parent
// directories as needed.
func (m *Model) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.Marshal(artifactEnvelope{SchemaVersion: artifactVersion, Model: *m})
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// LoadModel reads a model artifact written by Save. A missing file is the
// caller's signal to run with the rule-based classifier only.
func LoadModel(path string) (*Model, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var env artifactEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}
	if env.SchemaVersion != artifactVersion {
		return nil, fmt.Errorf("unsupported model artifact schema_version %d", env.SchemaVersion)
	}
	if env.Vectorizer == nil || env.Forest == nil || len(env.Classes) == 0 {
		return nil, fmt.Errorf("model artifact incomplete")
	}
	return &env.Model, nil
}
