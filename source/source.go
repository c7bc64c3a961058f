// Package source owns the text of one input file: a name plus a
// contiguous, immutable byte range. The text is backed either by a
// read-only memory mapping or by an owned byte slice; pointers into it
// stay valid for the buffer's lifetime.
package source

import (
	"io"
	"math"
	"os"

	"github.com/dhamidi/zest/diagnostics"
)

// Buffer is the text of a single source file.
type Buffer struct {
	filename string
	text     []byte
	mapped   bool
}

// filenameTranslator anchors source-acquisition diagnostics at the file
// name alone; there is no position to point at yet.
type filenameTranslator struct{}

func (filenameTranslator) Location(filename string) diagnostics.Location {
	return diagnostics.Location{File: filename}
}

var (
	errOpeningFile = diagnostics.Descriptor{
		Kind: diagnostics.ErrorOpeningFile, Level: diagnostics.Error,
		Format: "error opening file for read: %v"}
	errStattingFile = diagnostics.Descriptor{
		Kind: diagnostics.ErrorStattingFile, Level: diagnostics.Error,
		Format: "error statting file: %v"}
	errFileTooLarge = diagnostics.Descriptor{
		Kind: diagnostics.FileTooLarge, Level: diagnostics.Error,
		Format: "file is over the 2GiB input limit; size is %d bytes"}
	errReadingFile = diagnostics.Descriptor{
		Kind: diagnostics.ErrorReadingFile, Level: diagnostics.Error,
		Format: "error reading file: %v"}
)

// NewFromText wraps a string as a source buffer. The filename is only a
// label for diagnostics.
func NewFromText(text string, filename string) *Buffer {
	return &Buffer{filename: filename, text: []byte(text)}
}

// NewFromFile opens, stats, and reads the named file, enforcing the
// 2 GiB input ceiling. The content is memory-mapped read-only when the
// platform allows it and read into an owned slice otherwise. Each
// failure emits its own diagnostic and returns nil.
func NewFromFile(filename string, consumer diagnostics.Consumer) *Buffer {
	emitter := diagnostics.NewEmitter[string](filenameTranslator{}, consumer)

	file, err := os.Open(filename)
	if err != nil {
		emitter.Emit(filename, errOpeningFile, err)
		return nil
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		emitter.Emit(filename, errStattingFile, err)
		return nil
	}

	size := info.Size()
	if size >= math.MaxInt32 {
		emitter.Emit(filename, errFileTooLarge, size)
		return nil
	}

	if text, ok := mapFile(file, int(size)); ok {
		return &Buffer{filename: filename, text: text, mapped: true}
	}

	text := make([]byte, size)
	if _, err := io.ReadFull(file, text); err != nil {
		emitter.Emit(filename, errReadingFile, err)
		return nil
	}
	return &Buffer{filename: filename, text: text}
}

// Filename returns the buffer's label.
func (b *Buffer) Filename() string { return b.filename }

// Text returns the source bytes. The slice is pinned until Close.
func (b *Buffer) Text() []byte { return b.text }

// Close releases the backing storage. Owned buffers are garbage
// collected; only mappings need explicit teardown.
func (b *Buffer) Close() error {
	if !b.mapped {
		b.text = nil
		return nil
	}
	text := b.text
	b.text = nil
	b.mapped = false
	return unmapFile(text)
}
