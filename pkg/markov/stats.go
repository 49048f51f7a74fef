package markov

// ModelStats holds aggregated statistics for a single model.
type ModelStats struct {
	VocabSize      int // unique normalized words, including prefix-only words
	NodeCount      int // words with a node in the chain
	PrefixCount    int // unique (node, prefix) buckets
	ArrowCount     int // unique (node, prefix, successor) arrows
	TotalFrequency int // sum of all arrow counts; the total number of trained transitions
	DeadEnds       int // nodes with no outgoing transitions at all
}

// Stats returns a snapshot of statistics for the model.
func (m *Model) Stats() ModelStats {
	stats := ModelStats{
		VocabSize: len(m.words),
		NodeCount: len(m.nodeIDs),
	}
	for _, id := range m.nodeIDs {
		node := m.nodes[id]
		if len(node.prefixKeys) == 0 {
			stats.DeadEnds++
			continue
		}
		stats.PrefixCount += len(node.prefixKeys)
		for _, key := range node.prefixKeys {
			set := node.arrows[key]
			stats.ArrowCount += len(set.succs)
			stats.TotalFrequency += set.total
		}
	}
	return stats
}
