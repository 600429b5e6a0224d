package generator

import (
	"fmt"
	"strings"
)

const hexDigits = "0123456789ABCDEF"

// Encode renders content as a C declaration unit and definition unit for
// the given symbol. It never fails and does not touch the file system.
//
// The definition always carries `<symbol>_size` equal to len(content), and
// the declaration declares the same two symbols with extern linkage.
func Encode(content []byte, symbol string, cfg EncodeConfig) EncodedOutput {
	return EncodedOutput{
		Declaration: encodeDeclaration(symbol, cfg),
		Definition:  encodeDefinition(content, symbol, cfg),
	}
}

// HeaderName returns the file name of the declaration unit for symbol.
func HeaderName(symbol string) string {
	return symbol + ".h"
}

// SourceName returns the file name of the definition unit for symbol.
func SourceName(symbol string) string {
	return symbol + ".c"
}

func encodeDeclaration(symbol string, cfg EncodeConfig) string {
	guard := strings.ToUpper(symbol)

	var b strings.Builder
	fmt.Fprintf(&b, "#ifndef __%s_H__\n", guard)
	fmt.Fprintf(&b, "#define __%s_H__\n\n", guard)
	fmt.Fprintf(&b, "extern const unsigned  %s_size; \n", symbol)

	switch cfg.Mode {
	case StringLiteral:
		fmt.Fprintf(&b, "extern const unsigned char * %s; \n", symbol)
	default:
		fmt.Fprintf(&b, "extern const unsigned char %s[]; \n", symbol)
	}

	b.WriteString("\n#endif")
	return b.String()
}

func encodeDefinition(content []byte, symbol string, cfg EncodeConfig) string {
	var b strings.Builder
	b.Grow(definitionSize(len(content), cfg))

	fmt.Fprintf(&b, "#include \"%s\"\n", HeaderName(symbol))
	for _, inc := range cfg.Includes {
		fmt.Fprintf(&b, "#include \"%s\"\n", inc)
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "const unsigned  %s_size = %d; \n", symbol, len(content))

	switch cfg.Mode {
	case StringLiteral:
		fmt.Fprintf(&b, "const unsigned char * %s ", symbol)
		writeAttribute(&b, cfg.Attribute)
		b.WriteString("=\n\"")
		writeEscapes(&b, content)
		b.WriteString("\";\n\n")
	default:
		fmt.Fprintf(&b, "const unsigned char %s[] ", symbol)
		writeAttribute(&b, cfg.Attribute)
		b.WriteString("= {\n")
		writeTokens(&b, content, cfg.bytesPerLine())
		b.WriteString("};\n\n")
	}

	return b.String()
}

func writeAttribute(b *strings.Builder, attr string) {
	if attr != "" {
		b.WriteString(attr)
		b.WriteByte(' ')
	}
}

// writeTokens emits "0xNN, " per byte with a newline after every perLine tokens.
func writeTokens(b *strings.Builder, content []byte, perLine int) {
	for i, c := range content {
		b.WriteString("0x")
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0F])
		b.WriteString(", ")
		if (i+1)%perLine == 0 {
			b.WriteByte('\n')
		}
	}
}

// writeEscapes emits "\xNN" per byte with no separators or wrapping.
func writeEscapes(b *strings.Builder, content []byte) {
	for _, c := range content {
		b.WriteString(`\x`)
		b.WriteByte(hexDigits[c>>4])
		b.WriteByte(hexDigits[c&0x0F])
	}
}

// definitionSize estimates the rendered length so the builder grows once.
func definitionSize(n int, cfg EncodeConfig) int {
	size := 256 + len(cfg.Attribute)
	for _, inc := range cfg.Includes {
		size += len(inc) + 12
	}
	if cfg.Mode == StringLiteral {
		return size + 4*n
	}
	return size + 6*n + n/cfg.bytesPerLine()
}
