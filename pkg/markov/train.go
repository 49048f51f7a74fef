package markov

import (
	"errors"
	"io"
	"log/slog"
	"strings"
)

// trainOptions is used by the training functions to configure word
// normalization. Both cleanups default to enabled.
type trainOptions struct {
	foldCase     bool
	stripNonWord bool
}

// TrainOption is a function that configures a single training pass. It's
// used as a variadic argument in Train, TrainString, TrainWords, and
// AddWords.
type TrainOption func(*trainOptions)

// WithCaseFolding controls whether every word is lowercased before it
// enters the chain. Enabled by default.
func WithCaseFolding(enabled bool) TrainOption {
	return func(o *trainOptions) { o.foldCase = enabled }
}

// WithNonWordStripping controls whether characters that are not letters,
// digits, or underscores are removed from each word. Enabled by default.
// Disable it to keep punctuation, which sentence-mode generation relies on.
func WithNonWordStripping(enabled bool) TrainOption {
	return func(o *trainOptions) { o.stripNonWord = enabled }
}

// Train reads whitespace-separated words from r and accumulates them into
// the model. It may be called any number of times; nodes and counts carry
// over and keep growing across calls.
func (m *Model) Train(r io.Reader, opts ...TrainOption) error {
	return m.AddWords(NewScanStream(r), opts...)
}

// TrainString is a convenience wrapper around Train that uses a string as
// the input.
func (m *Model) TrainString(s string, opts ...TrainOption) error {
	return m.Train(strings.NewReader(s), opts...)
}

// TrainWords accumulates an already-tokenized word slice into the model.
func (m *Model) TrainWords(words []string, opts ...TrainOption) error {
	return m.AddWords(NewSliceStream(words), opts...)
}

// AddWords normalizes the words from stream and slides the prefix window
// over them, recording a weighted arrow for every (prefix, word, successor)
// occurrence. An input that yields fewer than order+1 normalized words
// cannot record a single transition and fails with ErrInsufficientInput,
// leaving the model untouched.
func (m *Model) AddWords(stream WordStream, opts ...TrainOption) error {
	o := trainOptions{foldCase: true, stripNonWord: true}
	for _, opt := range opts {
		opt(&o)
	}

	next := func() (string, error) {
		w, err := stream.Next()
		if err != nil {
			return "", err
		}
		return normalizeWord(w, o), nil
	}

	// Stage the initial window, the first word, and its first successor
	// before touching the model, so a too-short input has no effect.
	window := make([]string, 0, m.order-1)
	for len(window) < m.order-1 {
		w, err := next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return ErrInsufficientInput
			}
			return err
		}
		window = append(window, w)
	}
	current, err := next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ErrInsufficientInput
		}
		return err
	}
	upcoming, err := next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ErrInsufficientInput
		}
		return err
	}

	prefix := make([]int, len(window))
	for i, w := range window {
		prefix[i] = m.intern(w)
	}
	node := m.ensureNode(current)

	var keyBuf []byte
	var key string
	transitions := 0
	for {
		key, keyBuf = prefixKey(keyBuf, prefix)
		succ := m.ensureNode(upcoming)
		node.addArrow(key, succ.id)
		transitions++

		// The departed word enters the window before the oldest one is
		// dropped; with order 1 both are no-ops.
		prefix = shiftPrefix(prefix, node.id)
		node = succ

		w, err := next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		upcoming = w
	}

	m.logger.Info("Training pass completed",
		slog.Int("order", m.order),
		slog.Int("transitions_added", transitions),
		slog.Int("vocabulary_size", len(m.words)),
		slog.Int("node_count", len(m.nodeIDs)),
	)

	return nil
}
