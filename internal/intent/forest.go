package intent

import (
	"math"
	"math/rand"
	"sort"
)

const (
	numTrees   = 100
	randomSeed = 42
)

// treeNode is one node of a serialized decision tree. Internal nodes route on
// Feature <= Threshold; leaves (Left == -1) carry the class distribution.
type treeNode struct {
	Feature   int       `json:"f"`
	Threshold float64   `json:"t"`
	Left      int       `json:"l"`
	Right     int       `json:"r"`
	Probs     []float64 `json:"p,omitempty"`
}

// Tree is a flattened decision tree; node 0 is the root.
type Tree struct {
	Nodes []treeNode `json:"nodes"`
}

// Forest is a bagging ensemble of decision trees over tfidf rows.
type Forest struct {
	Trees      []Tree `json:"trees"`
	NumClasses int    `json:"num_classes"`
}

func (t *Tree) predict(row []float64) []float64 {
	i := 0
	for {
		n := &t.Nodes[i]
		if n.Left < 0 {
			return n.Probs
		}
		if row[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// Proba averages per-class distributions across all trees.
func (f *Forest) Proba(row []float64) []float64 {
	probs := make([]float64, f.NumClasses)
	for i := range f.Trees {
		leaf := f.Trees[i].predict(row)
		for c := range leaf {
			probs[c] += leaf[c]
		}
	}
	n := float64(len(f.Trees))
	for c := range probs {
		probs[c] /= n
	}
	return probs
}

type treeBuilder struct {
	x          [][]float64
	y          []int
	numClasses int
	mtry       int
	rng        *rand.Rand
	nodes      []treeNode
}

func gini(counts []int, total int) float64 {
	if total == 0 {
		return 0
	}
	g := 1.0
	for _, c := range counts {
		p := float64(c) / float64(total)
		g -= p * p
	}
	return g
}

func (b *treeBuilder) leaf(idx []int) int {
	counts := make([]int, b.numClasses)
	for _, i := range idx {
		counts[b.y[i]]++
	}
	probs := make([]float64, b.numClasses)
	for c, n := range counts {
		probs[c] = float64(n) / float64(len(idx))
	}
	b.nodes = append(b.nodes, treeNode{Left: -1, Right: -1, Probs: probs})
	return len(b.nodes) - 1
}

func pure(y []int, idx []int) bool {
	first := y[idx[0]]
	for _, i := range idx[1:] {
		if y[i] != first {
			return false
		}
	}
	return true
}

// bestSplit searches mtry random features for the split with lowest weighted
// gini. Returns ok=false when no feature separates the samples.
func (b *treeBuilder) bestSplit(idx []int) (feature int, threshold float64, ok bool) {
	numFeatures := len(b.x[0])
	best := math.Inf(1)

	values := make([]float64, 0, len(idx))
	for t := 0; t < b.mtry; t++ {
		f := b.rng.Intn(numFeatures)

		values = values[:0]
		for _, i := range idx {
			values = append(values, b.x[i][f])
		}
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)

		for v := 0; v+1 < len(sorted); v++ {
			if sorted[v] == sorted[v+1] {
				continue
			}
			thr := (sorted[v] + sorted[v+1]) / 2

			leftCounts := make([]int, b.numClasses)
			rightCounts := make([]int, b.numClasses)
			leftN, rightN := 0, 0
			for _, i := range idx {
				if b.x[i][f] <= thr {
					leftCounts[b.y[i]]++
					leftN++
				} else {
					rightCounts[b.y[i]]++
					rightN++
				}
			}
			score := (float64(leftN)*gini(leftCounts, leftN) +
				float64(rightN)*gini(rightCounts, rightN)) / float64(len(idx))
			if score < best {
				best = score
				feature = f
				threshold = thr
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

func (b *treeBuilder) grow(idx []int) int {
	if len(idx) < 2 || pure(b.y, idx) {
		return b.leaf(idx)
	}

	f, thr, ok := b.bestSplit(idx)
	if !ok {
		return b.leaf(idx)
	}

	var left, right []int
	for _, i := range idx {
		if b.x[i][f] <= thr {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return b.leaf(idx)
	}

	// reserve the node slot before recursing so node 0 stays the root
	pos := len(b.nodes)
	b.nodes = append(b.nodes, treeNode{Feature: f, Threshold: thr})
	l := b.grow(left)
	r := b.grow(right)
	b.nodes[pos].Left = l
	b.nodes[pos].Right = r
	return pos
}

// FitForest trains the bagging ensemble. Trees are grown sequentially from a
// single seeded source so training is reproducible.
func FitForest(x [][]float64, y []int, numClasses int) *Forest {
	rng := rand.New(rand.NewSource(randomSeed))
	mtry := int(math.Sqrt(float64(len(x[0]))))
	if mtry < 1 {
		mtry = 1
	}

	forest := &Forest{NumClasses: numClasses, Trees: make([]Tree, 0, numTrees)}
	for t := 0; t < numTrees; t++ {
		sample := make([]int, len(x))
		for i := range sample {
			sample[i] = rng.Intn(len(x))
		}
		b := &treeBuilder{x: x, y: y, numClasses: numClasses, mtry: mtry, rng: rng}
		b.grow(sample)
		forest.Trees = append(forest.Trees, Tree{Nodes: b.nodes})
	}
	return forest
}
