package markov

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestWalkZeroSteps(t *testing.T) {
	m := newTestModel(t, 2, "a b a b a b")

	result, err := m.WalkFrom(0, "a")
	if err != nil {
		t.Fatalf("WalkFrom(0) error = %v", err)
	}
	if len(result) != 1 || result[0].Word() != "a" {
		t.Errorf("WalkFrom(0, \"a\") = %v, want exactly the node for \"a\"", words(result))
	}
}

func TestWalkNegativeSteps(t *testing.T) {
	m := newTestModel(t, 1, "a b a b a")

	for _, steps := range []int{-1, -2, -100} {
		result, err := m.WalkFrom(steps, "a")
		if err != nil {
			t.Fatalf("WalkFrom(%d) error = %v", steps, err)
		}
		if len(result) != 1 || result[0].Word() != "a" {
			t.Errorf("WalkFrom(%d, \"a\") = %v, want just the start node", steps, words(result))
		}
	}
}

func TestWalkLength(t *testing.T) {
	// A cyclic corpus, so walks of any length stay inside recorded
	// transitions.
	m := newTestModel(t, 1, "a b a b a b a")

	for _, steps := range []int{0, 1, 5, 50} {
		result, err := m.Walk(steps)
		if err != nil {
			t.Fatalf("Walk(%d) error = %v", steps, err)
		}
		if len(result) != steps+1 {
			t.Errorf("Walk(%d) returned %d nodes, want %d", steps, len(result), steps+1)
		}
	}
}

func TestWalkFromUnknownWord(t *testing.T) {
	m := newTestModel(t, 2, "a b a b a b")

	_, err := m.WalkFrom(3, "nonexistent")
	var nnf *NoNodeFoundError
	if !errors.As(err, &nnf) {
		t.Fatalf("WalkFrom() error = %v, want *NoNodeFoundError", err)
	}
	if nnf.Word != "nonexistent" {
		t.Errorf("NoNodeFoundError.Word = %q, want %q", nnf.Word, "nonexistent")
	}
}

func TestWalkEmptyModel(t *testing.T) {
	m := newTestModel(t, 2, "")

	if _, err := m.Walk(3); !errors.Is(err, ErrEmptyModel) {
		t.Errorf("Walk() on empty model error = %v, want ErrEmptyModel", err)
	}
}

func TestWalkDeadEnd(t *testing.T) {
	// "b" only ever appears as the final word, so its node has no
	// recorded prefixes at all.
	m := newTestModel(t, 1, "a a b")

	if _, err := m.WalkFrom(1, "b"); !errors.Is(err, ErrDeadEnd) {
		t.Errorf("WalkFrom() from dead-end node error = %v, want ErrDeadEnd", err)
	}
}

func TestWalkRunsOffTrainingEnd(t *testing.T) {
	// The walk b->c->d reaches the final training word "d", whose node
	// has no arrows under any context.
	m := newTestModel(t, 2, "a b c d")

	_, err := m.WalkFrom(3, "b")
	var ute *UnknownTransitionError
	if !errors.As(err, &ute) {
		t.Fatalf("WalkFrom() error = %v, want *UnknownTransitionError", err)
	}
}

func TestWalkDeterminism(t *testing.T) {
	// The corpus ends with its opening bigram, so every reachable
	// (node, prefix) context is recorded and walks never run off the end.
	const corpus = "a quick fox saw a quick dog chase a quick"

	run := func(seed uint64) []string {
		m := newTestModel(t, 2, corpus)
		m.SetRand(rand.New(rand.NewPCG(seed, 0)))
		result, err := m.Walk(8)
		if err != nil {
			t.Fatalf("Walk() error = %v", err)
		}
		return words(result)
	}

	first := run(42)
	second := run(42)
	if len(first) != len(second) {
		t.Fatalf("walk lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("identically seeded walks diverge at step %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestWeightedSamplingFidelity(t *testing.T) {
	const draws = 100000
	rng := rand.New(rand.NewPCG(1, 2))
	counts := []int{7, 3}

	hits := make([]int, len(counts))
	for i := 0; i < draws; i++ {
		hits[weightedIndex(rng, counts, 10)]++
	}

	ratio := float64(hits[0]) / draws
	if ratio < 0.67 || ratio > 0.73 {
		t.Errorf("empirical probability of the 7-weighted choice = %.4f, want within [0.67, 0.73]", ratio)
	}
}

func TestWalkWeightedTransitions(t *testing.T) {
	// Node "s" has successors a:7, b:3 under the empty prefix.
	wordSeq := make([]string, 0, 20)
	for i := 0; i < 7; i++ {
		wordSeq = append(wordSeq, "s", "a")
	}
	for i := 0; i < 3; i++ {
		wordSeq = append(wordSeq, "s", "b")
	}
	m := newTestModel(t, 1, "")
	if err := m.TrainWords(wordSeq); err != nil {
		t.Fatalf("TrainWords() error = %v", err)
	}
	m.SetRand(rand.New(rand.NewPCG(5, 5)))

	const draws = 100000
	aHits := 0
	for i := 0; i < draws; i++ {
		result, err := m.WalkFrom(1, "s")
		if err != nil {
			t.Fatalf("WalkFrom() error = %v", err)
		}
		if result[1].Word() == "a" {
			aHits++
		}
	}

	ratio := float64(aHits) / draws
	if ratio < 0.67 || ratio > 0.73 {
		t.Errorf("empirical probability of s->a = %.4f, want within [0.67, 0.73]", ratio)
	}
}

// words flattens a node sequence for error messages and comparisons.
func words(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Word()
	}
	return out
}
