package generator

import "fmt"

// SourceError reports an input file that could not be opened or read.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("cannot open %s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// DestinationError reports an output file (or directory) that could not be
// created or written.
type DestinationError struct {
	Path string
	Err  error
}

func (e *DestinationError) Error() string {
	return fmt.Sprintf("cannot create file %s: %v", e.Path, e.Err)
}

func (e *DestinationError) Unwrap() error { return e.Err }

// ConfigError reports an unusable run configuration, such as an empty input
// list or an unknown flag.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return e.Msg }

// CollisionError reports two inputs in one run that map to the same symbol.
type CollisionError struct {
	Symbol string
	First  string
	Second string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("inputs %s and %s both map to symbol %q", e.First, e.Second, e.Symbol)
}
