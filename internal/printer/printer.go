// Package printer renders abbreviated single-line summaries of sequence
// values and displays for diagnostics. Full, faithful rendering belongs to
// the nodes' PrettyPrint methods; this package deliberately truncates.
package printer

import "strings"

// Default truncation limits shared by every diagnostic call site. They are
// tuning knobs, not a correctness contract, and can be overridden from the
// configuration file (see util.Configuration).
const (
	DefaultMaxElements     = 4
	DefaultMaxStringLength = 32
)

var (
	maxElements     = DefaultMaxElements
	maxStringLength = DefaultMaxStringLength
)

// Configure replaces the shared truncation limits. Non-positive values keep
// the current setting.
func Configure(elements, stringLength int) {
	if elements > 0 {
		maxElements = elements
	}
	if stringLength > 0 {
		maxStringLength = stringLength
	}
}

// Limits reports the shared truncation limits.
func Limits() (elements, stringLength int) {
	return maxElements, maxStringLength
}

// Abbreviated renders already-stringified elements as a single-line sequence
// summary. The listing is cut short once maxCount elements or maxLen rendered
// characters have been used, and an ellipsis marker takes the place of the
// remainder. Bracket style follows the tuple flag, as does the trailing comma
// that disambiguates a one-element tuple.
func Abbreviated(elements []string, tuple bool, maxCount, maxLen int) string {
	open, closing := "[", "]"
	if tuple {
		open, closing = "(", ")"
	}

	var out strings.Builder
	out.WriteString(open)

	truncated := false
	for i, el := range elements {
		if i >= maxCount || out.Len()+len(el) > maxLen {
			truncated = true
			break
		}
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(el)
	}

	if truncated {
		if out.Len() > len(open) {
			out.WriteString(", ")
		}
		out.WriteString("...")
	} else if tuple && len(elements) == 1 {
		out.WriteString(",")
	}

	out.WriteString(closing)
	return out.String()
}
