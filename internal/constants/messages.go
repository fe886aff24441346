package constants

import "math/rand"

// Motivational messages shown on the stats screen. Selection is a display
// concern only; nothing in the metrics engine depends on these.
var Messages = []string{
	"Small steps every day.",
	"Consistency beats intensity.",
	"Show up for yourself today.",
	"A streak is built one checkmark at a time.",
	"Don't break the chain.",
	"Progress, not perfection.",
}

// PickMessage returns one of the fixed messages using the supplied source.
func PickMessage(r *rand.Rand) string {
	return Messages[r.Intn(len(Messages))]
}
