package carousel

// minWrapCards is the smallest set that hides the wrap seam.
const minWrapCards = 4

// Pad returns the card set used for rendering. Two or three cards are
// extended by repeating a prefix of the input until there are four; a
// single card or four and more are copied unchanged.
func Pad[T any](cards []T) ([]T, error) {
	if len(cards) == 0 {
		return nil, ErrMissingCardData
	}

	out := make([]T, len(cards), max(len(cards), minWrapCards))
	copy(out, cards)
	for i := 0; len(out) > 1 && len(out) < minWrapCards; i++ {
		out = append(out, out[i])
	}
	return out, nil
}
