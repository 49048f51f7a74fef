package markov

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Node represents one distinct word from the training input. It holds the
// word's outgoing arrows, grouped by the prefix (the window of words that
// preceded the node in the source) under which each transition was seen.
type Node struct {
	id   int
	word string
	// prefixKeys holds the arrow map's keys in first-seen order. Random
	// choices draw from this slice, never from map iteration, so seeded
	// walks stay reproducible.
	prefixKeys []string
	arrows     map[string]*arrowSet
}

// Word returns the normalized word this node represents.
func (n *Node) Word() string { return n.word }

// Prefixes returns the number of distinct prefixes recorded for this node.
func (n *Node) Prefixes() int { return len(n.prefixKeys) }

// arrowSet is the weighted successor set for a single (node, prefix) pair.
// Successors are kept in first-seen order with their occurrence counts; pos
// indexes them by id for O(1) increments.
type arrowSet struct {
	succs  []int
	counts []int
	pos    map[int]int
	total  int
}

func (a *arrowSet) add(id int) {
	if i, ok := a.pos[id]; ok {
		a.counts[i]++
	} else {
		a.pos[id] = len(a.succs)
		a.succs = append(a.succs, id)
		a.counts = append(a.counts, 1)
	}
	a.total++
}

func (n *Node) addArrow(prefixKey string, succ int) {
	set, ok := n.arrows[prefixKey]
	if !ok {
		set = &arrowSet{pos: make(map[int]int)}
		n.arrows[prefixKey] = set
		n.prefixKeys = append(n.prefixKeys, prefixKey)
	}
	set.add(succ)
}

// Model is a variable-order Markov chain over words. It owns the vocabulary
// (words interned to integer ids), one node per distinct word, and the RNG
// used for walks. A Model is built up by one or more training calls and is
// not safe for concurrent use.
type Model struct {
	order int
	vocab map[string]int // word -> id
	words []string       // id -> word
	nodes map[int]*Node
	// nodeIDs holds node ids in creation order, for reproducible uniform
	// selection.
	nodeIDs []int
	rng     *rand.Rand
	logger  *slog.Logger
}

// NewModel creates an empty Model with the given chain order (the number of
// words, including the predicted one, that determine each transition).
// Order must be at least 1; the prefix window holds order-1 words.
func NewModel(order int) (*Model, error) {
	if order < 1 {
		return nil, fmt.Errorf("markov: order must be at least 1, got %d", order)
	}
	return &Model{
		order:  order,
		vocab:  make(map[string]int),
		nodes:  make(map[int]*Node),
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Order returns the chain order the model was created with.
func (m *Model) Order() int { return m.order }

// Len returns the number of nodes currently in the model.
func (m *Model) Len() int { return len(m.nodeIDs) }

// SetRand replaces the model's random source. Walks and generation draw
// exclusively from it, so a seeded source makes them fully deterministic.
func (m *Model) SetRand(rng *rand.Rand) {
	if rng != nil {
		m.rng = rng
	}
}

// SetLogger sets the logger for the model. By default, all logs are discarded.
func (m *Model) SetLogger(logger *slog.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// intern returns the id for word, assigning the next free id on first sight.
// Interned words do not get a node until ensureNode sees them; the words
// that only ever appear inside the initial prefix window never become nodes.
func (m *Model) intern(word string) int {
	if id, ok := m.vocab[word]; ok {
		return id
	}
	id := len(m.words)
	m.vocab[word] = id
	m.words = append(m.words, word)
	return id
}

func (m *Model) ensureNode(word string) *Node {
	id := m.intern(word)
	if n, ok := m.nodes[id]; ok {
		return n
	}
	n := &Node{id: id, word: word, arrows: make(map[string]*arrowSet)}
	m.nodes[id] = n
	m.nodeIDs = append(m.nodeIDs, id)
	return n
}

func (m *Model) lookup(word string) (*Node, bool) {
	id, ok := m.vocab[word]
	if !ok {
		return nil, false
	}
	n, ok := m.nodes[id]
	return n, ok
}

// prefixKey renders an id window as a space-joined key, reusing buf to
// avoid an allocation per transition. The empty window (order 1) renders
// as the empty string.
func prefixKey(buf []byte, prefix []int) (string, []byte) {
	buf = buf[:0]
	for i, id := range prefix {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendInt(buf, int64(id), 10)
	}
	return string(buf), buf
}

// parsePrefixKey inverts prefixKey. Keys are only ever produced by
// prefixKey, so the numeric parse cannot fail.
func parsePrefixKey(key string) []int {
	if key == "" {
		return nil
	}
	parts := strings.Split(key, " ")
	ids := make([]int, len(parts))
	for i, p := range parts {
		ids[i], _ = strconv.Atoi(p)
	}
	return ids
}

// shiftPrefix slides the window one step: the oldest id drops off and id
// enters at the end. A zero-length window (order 1) is left untouched.
func shiftPrefix(p []int, id int) []int {
	if len(p) == 0 {
		return p
	}
	copy(p, p[1:])
	p[len(p)-1] = id
	return p
}

// prefixWords maps an id window back to its words, for error reporting.
func (m *Model) prefixWords(prefix []int) []string {
	words := make([]string, len(prefix))
	for i, id := range prefix {
		words[i] = m.words[id]
	}
	return words
}
