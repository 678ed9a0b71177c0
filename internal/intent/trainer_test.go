package intent

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	trainOnce   sync.Once
	trainModel  *Model
	trainReport *Report
	trainErr    error
)

// trained fits the model once per test binary; training is deterministic so
// every test sees the same model.
func trained(t *testing.T) (*Model, *Report) {
	t.Helper()
	trainOnce.Do(func() {
		trainModel, trainReport, trainErr = NewTrainer().Train()
	})
	require.NoError(t, trainErr)
	return trainModel, trainReport
}

func TestTrainReport(t *testing.T) {
	trainer := NewTrainer()
	_, report := trained(t)

	assert.Greater(t, report.Accuracy, 0.5, "held-out accuracy")
	assert.Equal(t, trainer.CorpusSize(), report.TrainSize+report.TestSize)
	assert.Greater(t, report.VocabularySize, 0)

	for label, metrics := range report.PerClass {
		assert.GreaterOrEqual(t, metrics.Support, 1, "class %s must have held-out examples", label)
	}
}

func TestTrainDeterministic(t *testing.T) {
	m1, r1, err := NewTrainer().Train()
	require.NoError(t, err)
	m2, r2, err := NewTrainer().Train()
	require.NoError(t, err)

	assert.Equal(t, r1.Accuracy, r2.Accuracy)
	assert.Equal(t, m1.Vectorizer.Vocabulary, m2.Vectorizer.Vocabulary)

	for _, msg := range []string{"hello there", "search for jeans", "return policy", "how many in stock"} {
		l1, c1, err := m1.Predict(msg)
		require.NoError(t, err)
		l2, c2, err := m2.Predict(msg)
		require.NoError(t, err)
		assert.Equal(t, l1, l2)
		assert.Equal(t, c1, c2)
	}
}

func TestTrainedClassifierScenarios(t *testing.T) {
	model, _ := trained(t)
	c := NewClassifier(model, nil)

	// the classifier routes to the rules whenever the model is unsure, so
	// these hold on either path
	tests := []struct {
		in   string
		want Label
	}{
		{"hello", LabelGreeting},
		{"good morning", LabelGreeting},
		{"search for jeans", LabelProductSearch},
		{"what's your return policy", LabelReturnPolicy},
		{"how many t-shirts are in stock", LabelInventory},
		{"track my order", LabelOrderStatus},
		{"??", LabelUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Classify(tt.in), "message %q", tt.in)
	}
}

func TestPredictNeverPanicsOnUnseenText(t *testing.T) {
	model, _ := trained(t)

	label, confidence, err := model.Predict("zzzz qqqq xxxx")
	require.NoError(t, err)
	assert.NotEmpty(t, label)
	assert.GreaterOrEqual(t, confidence, 0.0)
	assert.LessOrEqual(t, confidence, 1.0)
}

func TestArtifactRoundTrip(t *testing.T) {
	model, _ := trained(t)
	path := filepath.Join(t.TempDir(), "models", "intent_model.json")

	require.NoError(t, model.Save(path))
	loaded, err := LoadModel(path)
	require.NoError(t, err)

	require.Equal(t, model.Classes, loaded.Classes)
	for _, msg := range []string{"hello", "find shoes", "where is my order", "??"} {
		wantLabel, wantConf, err := model.Predict(msg)
		require.NoError(t, err)
		gotLabel, gotConf, err := loaded.Predict(msg)
		require.NoError(t, err)
		assert.Equal(t, wantLabel, gotLabel, "message %q", msg)
		assert.InDelta(t, wantConf, gotConf, 1e-12, "message %q", msg)
	}
}

func TestLoadModelRejectsBadArtifacts(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadModel(filepath.Join(dir, "absent.json"))
		assert.Error(t, err)
	})

	t.Run("wrong schema version", func(t *testing.T) {
		path := filepath.Join(dir, "wrong_version.json")
		writeFile(t, path, `{"schema_version": 99}`)
		_, err := LoadModel(path)
		assert.ErrorContains(t, err, "schema_version")
	})

	t.Run("incomplete model", func(t *testing.T) {
		path := filepath.Join(dir, "incomplete.json")
		writeFile(t, path, `{"schema_version": 1}`)
		_, err := LoadModel(path)
		assert.ErrorContains(t, err, "incomplete")
	})

	t.Run("not json", func(t *testing.T) {
		path := filepath.Join(dir, "garbage.json")
		writeFile(t, path, `not json at all`)
		_, err := LoadModel(path)
		assert.Error(t, err)
	})
}
