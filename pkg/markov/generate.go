package markov

import (
	"log/slog"
	"strings"
)

// generateOptions is used by Generate to configure default options.
type generateOptions struct {
	sentences bool
	startWord string
	hasStart  bool
}

// GenerateOption is a function that configures text generation. It's used
// as a variadic argument in Generate.
type GenerateOption func(*generateOptions)

// WithSentences toggles sentence mode. When enabled (the default), the walk
// starts from a capitalized word and the result is trimmed back to the last
// word ending in sentence punctuation. Sentence mode only produces useful
// output when the model was trained with case folding and non-word
// stripping disabled.
func WithSentences(enabled bool) GenerateOption {
	return func(o *generateOptions) { o.sentences = enabled }
}

// WithStartWord pins the walk's start to the given word instead of choosing
// a start node at random.
func WithStartWord(word string) GenerateOption {
	return func(o *generateOptions) {
		o.startWord = word
		o.hasStart = true
	}
}

// Generate performs a walk of length maxWords and assembles the visited
// words into a single space-joined string. In sentence mode the result is
// trimmed so it ends on terminal punctuation, unless no visited word has
// any, in which case the untrimmed walk is returned.
func (m *Model) Generate(maxWords int, opts ...GenerateOption) (string, error) {
	options := generateOptions{sentences: true}
	for _, opt := range opts {
		opt(&options)
	}

	var start *Node
	switch {
	case options.hasStart:
		n, ok := m.lookup(options.startWord)
		if !ok {
			return "", &NoNodeFoundError{Word: options.startWord}
		}
		start = n
	case options.sentences:
		var candidates []*Node
		for _, id := range m.nodeIDs {
			if n := m.nodes[id]; isCapitalized(n.word) {
				candidates = append(candidates, n)
			}
		}
		if len(candidates) == 0 {
			return "", ErrNoStartCandidates
		}
		start = candidates[m.rng.IntN(len(candidates))]
	default:
		if len(m.nodeIDs) == 0 {
			return "", ErrEmptyModel
		}
		start = m.nodes[m.nodeIDs[m.rng.IntN(len(m.nodeIDs))]]
	}

	visited, err := m.walk(maxWords, start)
	if err != nil {
		return "", err
	}

	if options.sentences {
		hasTerminal := false
		for _, n := range visited {
			if isTerminal(n.word) {
				hasTerminal = true
				break
			}
		}
		if hasTerminal {
			for len(visited) > 0 && !isTerminal(visited[len(visited)-1].word) {
				visited = visited[:len(visited)-1]
			}
		}
	}

	var b strings.Builder
	for i, n := range visited {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(n.word)
	}

	m.logger.Debug("Generation completed",
		slog.Int("max_words", maxWords),
		slog.Int("result_words", len(visited)),
		slog.Bool("sentences", options.sentences),
	)

	return b.String(), nil
}
