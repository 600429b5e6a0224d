package generator

import "fmt"

// OutputMode selects how the data symbol is rendered in the definition unit.
type OutputMode int

const (
	// ByteArray renders the data as `const unsigned char name[] = { 0x.., }`.
	ByteArray OutputMode = iota
	// StringLiteral renders the data as a pointer to a "\x.." string literal.
	StringLiteral
)

func (m OutputMode) String() string {
	switch m {
	case ByteArray:
		return "array"
	case StringLiteral:
		return "literal"
	default:
		return fmt.Sprintf("OutputMode(%d)", int(m))
	}
}

// DefaultBytesPerLine is the number of array tokens emitted before a line break.
const DefaultBytesPerLine = 6

// EncodeConfig holds the per-run settings shared by every conversion.
// It is treated as read-only once built.
type EncodeConfig struct {
	// Mode selects array or string literal output.
	Mode OutputMode
	// Attribute is appended after the data symbol name when non-empty
	// (e.g. `__attribute__((aligned(4)))`).
	Attribute string
	// Includes are emitted as extra #include lines, in order, after the
	// symbol's own header.
	Includes []string
	// BytesPerLine controls line wrapping in ByteArray mode.
	// Zero means DefaultBytesPerLine.
	BytesPerLine int
}

func (c EncodeConfig) bytesPerLine() int {
	if c.BytesPerLine <= 0 {
		return DefaultBytesPerLine
	}
	return c.BytesPerLine
}

// Source is one fully read input file.
type Source struct {
	Path    string
	Content []byte
}

// EncodedOutput is the text of the two units produced for one source.
type EncodedOutput struct {
	// Declaration is the header (.h) text.
	Declaration string
	// Definition is the source (.c) text.
	Definition string
}
