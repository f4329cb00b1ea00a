package processor

import (
	"fmt"
	"slices"
	"strings"
)

// Report renders a human-readable summary of a demo result.
func Report(res Result) string {
	var sb strings.Builder
	sb.WriteString("## Ordered triplet\n\n")
	sb.WriteString(fmt.Sprintf("start order: %s\n", FormatOrder(res.Order)))
	sb.WriteString(fmt.Sprintf("runs: %d\n\n", len(res.Runs)))

	expected := expectedSequence()
	ok := 0
	for i, seq := range res.Runs {
		status := "ok"
		if slices.Equal(seq, expected) {
			ok++
		} else {
			status = "VIOLATED"
		}
		sb.WriteString(fmt.Sprintf("%d. %s [%s]\n", i+1, strings.Join(seq, ""), status))
	}

	sb.WriteString(fmt.Sprintf("\n%d/%d runs executed %s\n", ok, len(res.Runs), strings.Join(expected, " -> ")))
	return sb.String()
}
