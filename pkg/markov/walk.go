package markov

import (
	"log/slog"
	"math/rand/v2"
)

// Walk performs a weighted random walk of the given number of steps from a
// start node chosen uniformly at random among all nodes. The returned
// sequence includes the start node, so its length is steps+1.
func (m *Model) Walk(steps int) ([]*Node, error) {
	if len(m.nodeIDs) == 0 {
		return nil, ErrEmptyModel
	}
	node := m.nodes[m.nodeIDs[m.rng.IntN(len(m.nodeIDs))]]
	return m.walk(steps, node)
}

// WalkFrom is like Walk but starts from the node for the given word,
// returning a NoNodeFoundError if the word is not in the model.
func (m *Model) WalkFrom(steps int, word string) ([]*Node, error) {
	node, ok := m.lookup(word)
	if !ok {
		return nil, &NoNodeFoundError{Word: word}
	}
	return m.walk(steps, node)
}

// walk contains the main loop shared by Walk, WalkFrom, and Generate. The
// starting prefix is chosen uniformly among the start node's recorded
// prefixes and then slides exactly the way training slid it, which is what
// guarantees every looked-up (node, prefix) pair exists.
func (m *Model) walk(steps int, node *Node) ([]*Node, error) {
	if steps < 0 {
		steps = 0
	}
	if len(node.prefixKeys) == 0 {
		return nil, ErrDeadEnd
	}
	key := node.prefixKeys[m.rng.IntN(len(node.prefixKeys))]
	prefix := parsePrefixKey(key)

	result := make([]*Node, 0, steps+1)
	result = append(result, node)

	var keyBuf []byte
	for i := 0; i < steps; i++ {
		set, ok := node.arrows[key]
		if !ok {
			return nil, &UnknownTransitionError{Word: node.word, Prefix: m.prefixWords(prefix)}
		}
		succ := set.succs[weightedIndex(m.rng, set.counts, set.total)]

		prefix = shiftPrefix(prefix, node.id)
		key, keyBuf = prefixKey(keyBuf, prefix)
		node = m.nodes[succ]
		result = append(result, node)
	}

	m.logger.Debug("Walk completed",
		slog.Int("steps", steps),
		slog.String("start_word", result[0].word),
		slog.String("end_word", node.word),
	)

	return result, nil
}

// weightedIndex samples an index with probability proportional to
// counts[i]. total must be the sum of counts.
func weightedIndex(rng *rand.Rand, counts []int, total int) int {
	r := rng.IntN(total)
	for i, c := range counts {
		r -= c
		if r < 0 {
			return i
		}
	}
	return len(counts) - 1
}
