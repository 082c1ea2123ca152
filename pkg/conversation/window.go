package conversation

const (
	// DefaultWindow is the number of most recent turns forwarded to the
	// provider when no window is configured.
	DefaultWindow = 40
)

// Sanitize drops malformed entries from history and keeps the last window of
// the remaining turns, preserving their relative order. Dropped entries are
// not an error. The input is never modified.
func Sanitize(history History, window int) History {
	if window <= 0 {
		return History{}
	}

	kept := make(History, 0, min(len(history), window))
	for _, turn := range history {
		if !turn.WellFormed() {
			continue
		}
		kept = append(kept, turn)
	}

	if len(kept) > window {
		kept = kept[len(kept)-window:]
	}

	return kept
}
