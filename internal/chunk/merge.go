package chunk

// Merge greedily folds adjacent chunks back together wherever their
// single-space join still fits the limit. The cascade fills each part
// independently, which can leave a short trailing fragment; merging turns
// "two parts where one would do" back into one. Chunk order never changes,
// and truncated chunks never participate since their text already lost
// content at a fixed point.
func Merge(chunks []Chunk, lim Limit) ([]Chunk, error) {
	c, err := lim.counter()
	if err != nil {
		return nil, err
	}
	if len(chunks) < 2 {
		return chunks, nil
	}

	out := make([]Chunk, 0, len(chunks))
	acc := chunks[0]
	for _, next := range chunks[1:] {
		if !acc.Truncated && !next.Truncated {
			joined := acc.Text + " " + next.Text
			if c.Count(joined) <= lim.Max {
				acc.Text = joined
				continue
			}
		}
		out = append(out, acc)
		acc = next
	}
	return append(out, acc), nil
}
