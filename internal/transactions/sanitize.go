package transactions

import (
	"github.com/charmbracelet/x/ansi"
)

// clean removes terminal escape sequences from backend text before it is
// painted. Everything else is kept as sent.
func clean(s string) string {
	return ansi.Strip(s)
}

func cleanAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = clean(s)
	}
	return out
}
