package content

import (
	"strings"

	"cityverse/internal/domain/rng"
)

const DefaultCodeLength = 4

// TerminalCodes generates the heist's hacking sequences.
func TerminalCodes(r *rng.Stream, n, length int) []string {
	if length <= 0 {
		length = DefaultCodeLength
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		var b strings.Builder
		for j := 0; j < length; j++ {
			b.WriteByte(byte('0' + r.Intn(10)))
		}
		out = append(out, b.String())
	}
	return out
}
