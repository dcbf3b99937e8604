package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_NonTerminalHasNoColor(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)
	p.Success("done")

	assert.Equal(t, "✓ done\n", buf.String())
}

func TestPrinter_Lines(t *testing.T) {
	testCases := []struct {
		name     string
		print    func(p *Printer)
		expected string
	}{
		{"Info", func(p *Printer) { p.Info("loading") }, "• loading\n"},
		{"Error", func(p *Printer) { p.Error("boom") }, "✗ boom\n"},
		{"Stat", func(p *Printer) { p.Stat("Points", 42) }, "  Points: 42\n"},
		{"Subtitle", func(p *Printer) { p.Subtitle("Queries") }, "\nQueries\n"},
		{"Title", func(p *Printer) { p.Title("qtree") }, "\nqtree\n" + strings.Repeat("=", 60) + "\n"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			var buf bytes.Buffer
			testCase.print(NewPlain(&buf))
			assert.Equal(t, testCase.expected, buf.String())
		})
	}
}

func TestPrinter_Progress(t *testing.T) {
	var buf bytes.Buffer
	p := NewPlain(&buf)

	p.Progress(5, 10, "Indexing")
	assert.Contains(t, buf.String(), "50.0%")
	assert.NotContains(t, buf.String(), "\n")
	assert.Equal(t, 20, strings.Count(buf.String(), "█"))

	buf.Reset()
	p.Progress(12, 10, "Indexing")
	assert.Contains(t, buf.String(), "100.0%")
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))

	buf.Reset()
	p.Progress(1, 0, "Nothing")
	assert.Empty(t, buf.String())
}

func TestPrinter_Colored(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{w: &buf, color: true}
	p.Info("hi")

	assert.Equal(t, colorYellow+"• hi"+colorReset+"\n", buf.String())
}
