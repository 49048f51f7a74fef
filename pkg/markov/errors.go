package markov

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInsufficientInput is returned by the training functions when the
	// input does not contain enough words to seed the prefix window and
	// record at least one transition.
	ErrInsufficientInput = errors.New("markov: not enough words to train on")

	// ErrEmptyModel is returned when a walk is requested on a model that
	// has no nodes.
	ErrEmptyModel = errors.New("markov: model has no nodes")

	// ErrDeadEnd is returned when the chosen start node has no outgoing
	// transitions at all, which happens when the word only ever appeared
	// at the end of the training input.
	ErrDeadEnd = errors.New("markov: start node has no outgoing transitions")

	// ErrNoStartCandidates is returned by Generate in sentence mode when
	// no word in the vocabulary starts with an uppercase letter.
	ErrNoStartCandidates = errors.New("markov: no capitalized words to start a sentence from")
)

// NoNodeFoundError is returned when a requested start word is absent from
// the model's vocabulary.
type NoNodeFoundError struct {
	Word string
}

func (e *NoNodeFoundError) Error() string {
	return fmt.Sprintf("markov: no node found for word %q", e.Word)
}

// UnknownTransitionError reports a (word, prefix) pair with no recorded
// successors. A walk that starts from a node's own recorded prefix and
// slides it the same way training did can never hit this; seeing it means
// the sliding-window invariant was broken somewhere.
type UnknownTransitionError struct {
	Word   string
	Prefix []string
}

func (e *UnknownTransitionError) Error() string {
	return fmt.Sprintf("markov: no transitions recorded for word %q under prefix [%s]", e.Word, strings.Join(e.Prefix, " "))
}
