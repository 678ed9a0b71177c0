package intent

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/wearly/supportbot/internal/nlp"
)

// testFraction is the held-out share of the stratified split.
const testFraction = 0.2

// ClassMetrics is the held-out evaluation for one intent class.
type ClassMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Report is the evaluation summary of a training run.
type Report struct {
	Accuracy       float64                 `json:"accuracy"`
	PerClass       map[string]ClassMetrics `json:"per_class"`
	TrainSize      int                     `json:"train_size"`
	TestSize       int                     `json:"test_size"`
	VocabularySize int                     `json:"vocabulary_size"`
}

// Trainer owns the immutable hand-authored corpus and fits models from it.
type Trainer struct {
	corpus []Example
}

func NewTrainer() *Trainer {
	return &Trainer{corpus: Corpus()}
}

// CorpusSize reports how many training examples the trainer holds.
func (t *Trainer) CorpusSize() int { return len(t.corpus) }

// stratifiedSplit shuffles within each class and carves off the test share,
// keeping at least one test example per class. Seeded, so reproducible.
func stratifiedSplit(n int, labels []int, numClasses int) (train, test []int) {
	rng := rand.New(rand.NewSource(randomSeed))

	byClass := make([][]int, numClasses)
	for i := 0; i < n; i++ {
		byClass[labels[i]] = append(byClass[labels[i]], i)
	}

	for _, idx := range byClass {
		rng.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })
		k := int(float64(len(idx)) * testFraction)
		if k < 1 && len(idx) > 1 {
			k = 1
		}
		test = append(test, idx[:k]...)
		train = append(train, idx[k:]...)
	}
	return train, test
}

// Train normalizes the corpus, fits the vectorizer and forest on the training
// partition, and evaluates on the held-out partition.
func (t *Trainer) Train() (*Model, *Report, error) {
	if len(t.corpus) == 0 {
		return nil, nil, fmt.Errorf("empty training corpus")
	}

	classSet := map[Label]struct{}{}
	for _, ex := range t.corpus {
		classSet[ex.Label] = struct{}{}
	}
	classes := make([]Label, 0, len(classSet))
	for l := range classSet {
		classes = append(classes, l)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })

	classIndex := make(map[Label]int, len(classes))
	for i, l := range classes {
		classIndex[l] = i
	}

	docs := make([]string, len(t.corpus))
	labels := make([]int, len(t.corpus))
	for i, ex := range t.corpus {
		docs[i] = nlp.NormalizeJoin(ex.Phrase)
		labels[i] = classIndex[ex.Label]
	}

	trainIdx, testIdx := stratifiedSplit(len(docs), labels, len(classes))

	trainDocs := make([]string, len(trainIdx))
	for i, idx := range trainIdx {
		trainDocs[i] = docs[idx]
	}
	vectorizer := FitVectorizer(trainDocs)

	x := make([][]float64, len(trainIdx))
	y := make([]int, len(trainIdx))
	for i, idx := range trainIdx {
		x[i] = vectorizer.Transform(docs[idx])
		y[i] = labels[idx]
	}
	forest := FitForest(x, y, len(classes))

	model := &Model{
		Vectorizer: vectorizer,
		Forest:     forest,
		Classes:    classes,
		Meta: Metadata{
			VocabularySize:  vectorizer.NumFeatures(),
			TrainingSetSize: len(t.corpus),
			Classes:         labelStrings(classes),
			TrainedAt:       time.Now().UTC(),
		},
	}

	report := evaluate(model, docs, labels, testIdx, classes)
	report.TrainSize = len(trainIdx)
	report.TestSize = len(testIdx)
	report.VocabularySize = vectorizer.NumFeatures()

	return model, report, nil
}

func evaluate(m *Model, docs []string, labels []int, testIdx []int, classes []Label) *Report {
	correct := 0
	truePos := make([]int, len(classes))
	falsePos := make([]int, len(classes))
	falseNeg := make([]int, len(classes))
	support := make([]int, len(classes))

	for _, idx := range testIdx {
		row := m.Vectorizer.Transform(docs[idx])
		probs := m.Forest.Proba(row)
		pred := 0
		for c := range probs {
			if probs[c] > probs[pred] {
				pred = c
			}
		}

		actual := labels[idx]
		support[actual]++
		if pred == actual {
			correct++
			truePos[actual]++
		} else {
			falsePos[pred]++
			falseNeg[actual]++
		}
	}

	report := &Report{PerClass: make(map[string]ClassMetrics, len(classes))}
	if len(testIdx) > 0 {
		report.Accuracy = float64(correct) / float64(len(testIdx))
	}

	for c, label := range classes {
		var precision, recall, f1 float64
		if truePos[c]+falsePos[c] > 0 {
			precision = float64(truePos[c]) / float64(truePos[c]+falsePos[c])
		}
		if truePos[c]+falseNeg[c] > 0 {
			recall = float64(truePos[c]) / float64(truePos[c]+falseNeg[c])
		}
		if precision+recall > 0 {
			f1 = 2 * precision * recall / (precision + recall)
		}
		report.PerClass[string(label)] = ClassMetrics{
			Precision: precision,
			Recall:    recall,
			F1:        f1,
			Support:   support[c],
		}
	}
	return report
}

func labelStrings(labels []Label) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = string(l)
	}
	return out
}
