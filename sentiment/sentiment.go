package sentiment

import (
	"strings"
	"unicode"
)

// lexicon is an AFINN-style valence list trimmed to the vocabulary of food
// reviews. Scores range -5..5.
var lexicon = map[string]int{
	"amazing":      4,
	"awesome":      4,
	"best":         3,
	"brilliant":    4,
	"delicious":    3,
	"delightful":   3,
	"easy":         1,
	"excellent":    3,
	"fantastic":    4,
	"favorite":     2,
	"fresh":        1,
	"good":         3,
	"great":        3,
	"incredible":   4,
	"love":         3,
	"loved":        3,
	"lovely":       3,
	"nice":         3,
	"perfect":      3,
	"recommend":    2,
	"superb":       5,
	"tasty":        2,
	"wonderful":    4,
	"wow":          4,
	"yummy":        3,
	"awful":        -3,
	"bad":          -3,
	"bland":        -2,
	"boring":       -3,
	"burnt":        -2,
	"disappointed": -2,
	"disgusting":   -3,
	"dry":          -1,
	"gross":        -2,
	"hate":         -3,
	"hated":        -3,
	"horrible":     -3,
	"inedible":     -3,
	"mediocre":     -1,
	"nasty":        -3,
	"poor":         -2,
	"soggy":        -2,
	"stale":        -2,
	"terrible":     -3,
	"waste":        -1,
	"worst":        -3,
	"wrong":        -2,
}

// Score sums the valence of every known word in text. Unknown words score
// zero; an empty text scores zero.
func Score(text string) int {
	score := 0
	for _, word := range tokenize(text) {
		score += lexicon[word]
	}
	return score
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
