package diagnostics

import (
	"fmt"
	"io"
	"sort"
)

// ConsoleConsumer prints diagnostics as `file:line:col: message`.
type ConsoleConsumer struct {
	Out io.Writer
}

func NewConsoleConsumer(out io.Writer) *ConsoleConsumer {
	return &ConsoleConsumer{Out: out}
}

func (c *ConsoleConsumer) HandleDiagnostic(d Diagnostic) {
	fmt.Fprintf(c.Out, "%s:%d:%d: %s\n",
		d.Location.File, d.Location.LineNumber, d.Location.ColumnNumber,
		d.Message())
}

func (c *ConsoleConsumer) Flush() {}

// ErrorTrackingConsumer wraps another consumer and remembers whether any
// error-level diagnostic passed through.
type ErrorTrackingConsumer struct {
	next      Consumer
	seenError bool
}

func NewErrorTrackingConsumer(next Consumer) *ErrorTrackingConsumer {
	return &ErrorTrackingConsumer{next: next}
}

func (c *ErrorTrackingConsumer) HandleDiagnostic(d Diagnostic) {
	if d.Level == Error {
		c.seenError = true
	}
	c.next.HandleDiagnostic(d)
}

func (c *ErrorTrackingConsumer) Flush() { c.next.Flush() }

// SeenError reports whether an error has been seen since the last Reset.
func (c *ErrorTrackingConsumer) SeenError() bool { return c.seenError }

func (c *ErrorTrackingConsumer) Reset() { c.seenError = false }

// SortingConsumer buffers diagnostics and delivers them ordered by line
// and column on Flush. Useful when lexing and parsing interleave
// emission order with source order.
type SortingConsumer struct {
	next     Consumer
	buffered []Diagnostic
}

func NewSortingConsumer(next Consumer) *SortingConsumer {
	return &SortingConsumer{next: next}
}

func (c *SortingConsumer) HandleDiagnostic(d Diagnostic) {
	c.buffered = append(c.buffered, d)
}

func (c *SortingConsumer) Flush() {
	sort.SliceStable(c.buffered, func(i, j int) bool {
		li, lj := c.buffered[i].Location, c.buffered[j].Location
		if li.LineNumber != lj.LineNumber {
			return li.LineNumber < lj.LineNumber
		}
		return li.ColumnNumber < lj.ColumnNumber
	})
	for _, d := range c.buffered {
		c.next.HandleDiagnostic(d)
	}
	c.buffered = c.buffered[:0]
	c.next.Flush()
}

// NullConsumer discards everything.
type NullConsumer struct{}

func (NullConsumer) HandleDiagnostic(Diagnostic) {}

func (NullConsumer) Flush() {}
