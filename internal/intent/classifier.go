package intent

import (
	"github.com/sirupsen/logrus"
)

// confidenceThreshold is the minimum statistical confidence to accept a model
// prediction before falling through to the keyword rules.
const confidenceThreshold = 0.3

// Classifier routes between the trained model and the rule-based fallback.
// Safe for concurrent use: the model is read-only after construction.
type Classifier struct {
	model *Model
	log   *logrus.Logger
}

// NewClassifier wires the router. model may be nil (no artifact on disk), in
// which case every message takes the rule-based path.
func NewClassifier(model *Model, log *logrus.Logger) *Classifier {
	if log == nil {
		log = logrus.New()
	}
	return &Classifier{model: model, log: log}
}

// ModelLoaded reports whether the statistical path is available.
func (c *Classifier) ModelLoaded() bool { return c.model != nil }

// Classify returns the intent label for the message. It never errors; any
// failure of the statistical path degrades to the keyword rules.
func (c *Classifier) Classify(message string) Label {
	label, _ := c.ClassifyWithConfidence(message)
	return label
}

// ClassifyWithConfidence also surfaces the model confidence. Confidence is nil
// on the rule-based path: the rules do not score.
func (c *Classifier) ClassifyWithConfidence(message string) (Label, *float64) {
	if c.model != nil {
		label, confidence, err := c.model.Predict(message)
		if err != nil {
			c.log.WithError(err).Warn("model prediction failed, using rule-based fallback")
		} else if confidence > confidenceThreshold {
			return label, &confidence
		}
	}
	return ClassifyRules(message), nil
}
