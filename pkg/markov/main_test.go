package markov

import (
	"fmt"
	"go/build"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// newTestModel creates a model with a fixed-seed RNG and trains it on text
// with the given options. An empty text leaves the model untrained.
func newTestModel(t *testing.T, order int, text string, opts ...TrainOption) *Model {
	t.Helper()
	m, err := NewModel(order)
	if err != nil {
		t.Fatalf("NewModel(%d) error = %v", order, err)
	}
	m.SetRand(rand.New(rand.NewPCG(7, 13)))
	if text != "" {
		if err := m.TrainString(text, opts...); err != nil {
			t.Fatalf("TrainString() error = %v", err)
		}
	}
	return m
}

// arrowCounts returns the successor word -> count mapping recorded for the
// given word under the given prefix words, or nil if absent.
func arrowCounts(m *Model, word string, prefix ...string) map[string]int {
	node, ok := m.lookup(word)
	if !ok {
		return nil
	}
	ids := make([]int, len(prefix))
	for i, w := range prefix {
		id, ok := m.vocab[w]
		if !ok {
			return nil
		}
		ids[i] = id
	}
	key, _ := prefixKey(nil, ids)
	set, ok := node.arrows[key]
	if !ok {
		return nil
	}
	counts := make(map[string]int, len(set.succs))
	for i, id := range set.succs {
		counts[m.words[id]] = set.counts[i]
	}
	return counts
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = "this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. "
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}

func BenchmarkTrain(b *testing.B) {
	corpus := createBenchmarkCorpus()

	for _, order := range []int{1, 2, 3, 4} {
		b.Run(fmt.Sprintf("Order%d", order), func(b *testing.B) {
			m, err := NewModel(order)
			if err != nil {
				b.Fatalf("NewModel() error = %v", err)
			}

			b.SetBytes(int64(len(corpus)))
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				if err := m.Train(strings.NewReader(corpus)); err != nil {
					b.Fatalf("Train() failed: %v", err)
				}
			}
		})
	}
}

func BenchmarkGenerate(b *testing.B) {
	corpus := createBenchmarkCorpus()

	m, err := NewModel(2)
	if err != nil {
		b.Fatalf("NewModel() error = %v", err)
	}
	if err := m.Train(strings.NewReader(corpus)); err != nil {
		b.Fatalf("Train() setup for benchmark failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, err := m.Generate(50, WithSentences(false))
		if err != nil {
			// A walk that runs off the end of the training sequence is a
			// legitimate outcome on a finite corpus.
			continue
		}
		b.SetBytes(int64(len(s)))
	}
}
