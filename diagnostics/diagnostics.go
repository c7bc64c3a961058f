// Package diagnostics carries errors and warnings from the front end to
// whoever invoked it. Every stage reports problems by emitting a
// diagnostic against a location handle; nothing in the front end ever
// aborts on malformed input.
package diagnostics

import "fmt"

// Level classifies the severity of a diagnostic.
type Level int8

const (
	Warning Level = iota
	Error
)

func (l Level) String() string {
	switch l {
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return "unknown"
}

// Location is a fully resolved source position. Line holds the text of
// the source line the diagnostic points at, when known.
type Location struct {
	File         string
	Line         string
	LineNumber   int
	ColumnNumber int
}

// Descriptor couples a diagnostic kind with its severity and message
// template. Descriptors are declared as package-level values next to the
// code that emits them; the template uses fmt verbs.
type Descriptor struct {
	Kind   Kind
	Level  Level
	Format string
}

// Diagnostic is one reported problem. The message is rendered lazily via
// FormatFn so consumers can filter on kind or level without paying for
// formatting.
type Diagnostic struct {
	Kind     Kind
	Level    Level
	Location Location
	Format   string
	Args     []any
	FormatFn func(*Diagnostic) string
}

// Message renders the diagnostic text.
func (d *Diagnostic) Message() string {
	if d.FormatFn != nil {
		return d.FormatFn(d)
	}
	return fmt.Sprintf(d.Format, d.Args...)
}

// Consumer receives diagnostics as they are emitted.
type Consumer interface {
	HandleDiagnostic(d Diagnostic)
	// Flush delivers any buffered diagnostics.
	Flush()
}

// LocationTranslator resolves a location handle of type L into a full
// Location. The byte-offset translator owned by the tokenized buffer is
// the primitive; translators for richer handles defer to it.
type LocationTranslator[L any] interface {
	Location(loc L) Location
}

// Emitter is the only way to raise a diagnostic. It pairs a location
// translator for the handle type L with a consumer.
type Emitter[L any] struct {
	translator LocationTranslator[L]
	consumer   Consumer
}

func NewEmitter[L any](translator LocationTranslator[L], consumer Consumer) *Emitter[L] {
	return &Emitter[L]{translator: translator, consumer: consumer}
}

// Emit raises one diagnostic at the given location.
func (e *Emitter[L]) Emit(loc L, desc Descriptor, args ...any) {
	e.consumer.HandleDiagnostic(Diagnostic{
		Kind:     desc.Kind,
		Level:    desc.Level,
		Location: e.translator.Location(loc),
		Format:   desc.Format,
		Args:     args,
		FormatFn: func(d *Diagnostic) string {
			return fmt.Sprintf(d.Format, d.Args...)
		},
	})
}
