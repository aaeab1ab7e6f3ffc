package repl

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func run(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	Start(context.Background(), strings.NewReader(input), &out)
	return out.String()
}

func TestReplEvaluatesLines(t *testing.T) {
	out := run(t, "1 + 2\n")
	assert.Contains(t, out, "3")
}

func TestReplBindingsPersistAcrossLines(t *testing.T) {
	out := run(t, "var xs = [1, 2]\nappend(xs, 3)\nxs\n")
	assert.Contains(t, out, "[1, 2, 3]")
}

func TestReplPrintsSingletonTupleWithComma(t *testing.T) {
	out := run(t, "(5,)\n")
	assert.Contains(t, out, "(5,)")
}

func TestReplReportsParserErrors(t *testing.T) {
	out := run(t, "[1, 2\n")
	assert.Contains(t, out, "parser errors")
}

func TestReplReportsValidationErrors(t *testing.T) {
	out := run(t, "nosuchname\n")
	assert.Contains(t, out, "identifier not found: nosuchname")
}

func TestReplStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	Start(ctx, strings.NewReader("1 + 2\n"), &out)
	assert.NotContains(t, out.String(), "3")
}
