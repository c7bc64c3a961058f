package diagnostics

import (
	"bytes"
	"testing"
)

type recordingConsumer struct {
	diagnostics []Diagnostic
	flushed     int
}

func (c *recordingConsumer) HandleDiagnostic(d Diagnostic) {
	c.diagnostics = append(c.diagnostics, d)
}

func (c *recordingConsumer) Flush() { c.flushed++ }

type fixedTranslator struct {
	location Location
}

func (t fixedTranslator) Location(struct{}) Location { return t.location }

func TestEmitterRendersLazily(t *testing.T) {
	recorder := &recordingConsumer{}
	emitter := NewEmitter[struct{}](fixedTranslator{
		location: Location{File: "a.zest", LineNumber: 3, ColumnNumber: 7},
	}, recorder)

	desc := Descriptor{Kind: InvalidDigit, Level: Error,
		Format: "invalid digit '%c' in %s numeric literal"}
	emitter.Emit(struct{}{}, desc, byte('g'), "decimal")

	if len(recorder.diagnostics) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(recorder.diagnostics))
	}
	d := recorder.diagnostics[0]
	if d.Kind != InvalidDigit || d.Level != Error {
		t.Errorf("kind/level = %v/%v", d.Kind, d.Level)
	}
	if d.Location.File != "a.zest" || d.Location.LineNumber != 3 {
		t.Errorf("location = %+v", d.Location)
	}
	if got := d.Message(); got != "invalid digit 'g' in decimal numeric literal" {
		t.Errorf("message = %q", got)
	}
}

func TestConsoleConsumer(t *testing.T) {
	var out bytes.Buffer
	console := NewConsoleConsumer(&out)
	console.HandleDiagnostic(Diagnostic{
		Level:    Error,
		Location: Location{File: "a.zest", LineNumber: 1, ColumnNumber: 2},
		Format:   "something is wrong",
	})
	if got := out.String(); got != "a.zest:1:2: something is wrong\n" {
		t.Errorf("output = %q", got)
	}
}

func TestErrorTrackingConsumer(t *testing.T) {
	tracking := NewErrorTrackingConsumer(NullConsumer{})
	if tracking.SeenError() {
		t.Fatalf("fresh consumer has seen an error")
	}

	tracking.HandleDiagnostic(Diagnostic{Level: Warning})
	if tracking.SeenError() {
		t.Errorf("warning counted as error")
	}

	tracking.HandleDiagnostic(Diagnostic{Level: Error})
	if !tracking.SeenError() {
		t.Errorf("error was not tracked")
	}

	tracking.Reset()
	if tracking.SeenError() {
		t.Errorf("Reset did not clear the error")
	}
}

func TestSortingConsumer(t *testing.T) {
	recorder := &recordingConsumer{}
	sorting := NewSortingConsumer(recorder)

	at := func(line, column int) Diagnostic {
		return Diagnostic{Location: Location{LineNumber: line, ColumnNumber: column}}
	}
	sorting.HandleDiagnostic(at(3, 1))
	sorting.HandleDiagnostic(at(1, 9))
	sorting.HandleDiagnostic(at(1, 2))
	sorting.HandleDiagnostic(at(2, 5))

	if len(recorder.diagnostics) != 0 {
		t.Fatalf("diagnostics delivered before Flush")
	}
	sorting.Flush()

	want := [][2]int{{1, 2}, {1, 9}, {2, 5}, {3, 1}}
	if len(recorder.diagnostics) != len(want) {
		t.Fatalf("diagnostics = %d, want %d", len(recorder.diagnostics), len(want))
	}
	for i, pos := range want {
		loc := recorder.diagnostics[i].Location
		if loc.LineNumber != pos[0] || loc.ColumnNumber != pos[1] {
			t.Errorf("diagnostic %d at %d:%d, want %d:%d",
				i, loc.LineNumber, loc.ColumnNumber, pos[0], pos[1])
		}
	}
	if recorder.flushed != 1 {
		t.Errorf("flushed = %d, want 1", recorder.flushed)
	}
}
