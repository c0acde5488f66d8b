package runtime

import "github.com/aretw0/truman/pkg/domain"

// ClassifyFrontColor guesses the target color from the front sensor's red
// and blue channels. A channel must exceed the other by ColorRatio; anything
// less is undecided, which is not a third color.
func ClassifyFrontColor(red, blue int) domain.Guess {
	if dominates(red, blue) {
		return domain.Known(domain.Red)
	}
	if dominates(blue, red) {
		return domain.Known(domain.Blue)
	}
	return domain.Guess{}
}

// dominates reports num/den > ColorRatio. A zero denominator never divides:
// the ratio is unbounded for a positive numerator and undefined for zero.
func dominates(num, den int) bool {
	if den == 0 {
		return num > 0
	}
	return float64(num)/float64(den) > ColorRatio
}
