package generator

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xll-gen/bin2c/internal/ui"
)

// CollisionPolicy decides what happens when two inputs sanitize to the same
// symbol within one run.
type CollisionPolicy string

const (
	// CollisionOverwrite lets the later input replace the earlier outputs.
	CollisionOverwrite CollisionPolicy = "overwrite"
	// CollisionFail aborts the run before the later input is written.
	CollisionFail CollisionPolicy = "error"
)

// Options contains the settings for a batch conversion.
type Options struct {
	// Encode is shared by every source in the run.
	Encode EncodeConfig
	// OutDir receives the .c and .h files. Empty means the current directory.
	OutDir string
	// Collision defaults to CollisionOverwrite.
	Collision CollisionPolicy
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// UI receives progress lines. Nil disables them.
	UI *ui.Printer
}

// Generate converts every path in order, writing <symbol>.c and <symbol>.h
// into opts.OutDir for each one.
//
// The run stops at the first failure. Outputs of sources converted before
// the failure are left in place.
//
// Returns:
//   - *ConfigError if paths is empty.
//   - *SourceError if an input cannot be read.
//   - *DestinationError if an output cannot be created or written.
//   - *CollisionError if the policy is CollisionFail and two inputs share a symbol.
func Generate(paths []string, opts Options) error {
	if len(paths) == 0 {
		return &ConfigError{Msg: "no input files specified"}
	}

	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	outDir := opts.OutDir
	if outDir == "" {
		outDir = "."
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return &DestinationError{Path: outDir, Err: err}
	}

	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		symbol := Sanitize(path)
		if prev, ok := seen[symbol]; ok {
			if opts.Collision == CollisionFail {
				return &CollisionError{Symbol: symbol, First: prev, Second: path}
			}
			log.Warn("symbol collision, overwriting previous output",
				"symbol", symbol, "previous", prev, "path", path)
			opts.UI.Warning("Collision", symbol+" ("+prev+", "+path+")")
		}
		seen[symbol] = path

		opts.UI.Step("Converting file " + path + "...")
		log.Debug("converting", "path", path, "symbol", symbol, "mode", opts.Encode.Mode.String())

		src, err := ReadSource(path)
		if err != nil {
			return err
		}

		out := Encode(src.Content, symbol, opts.Encode)
		if err := WriteOutput(outDir, symbol, out); err != nil {
			return err
		}

		log.Info("wrote", "path", path, "symbol", symbol, "bytes", len(src.Content), "dir", outDir)
		opts.UI.Success("Done", symbol)
	}

	return nil
}

// ReadSource reads the whole file at path.
func ReadSource(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, &SourceError{Path: path, Err: err}
	}
	return &Source{Path: path, Content: content}, nil
}

// WriteOutput persists out as <dir>/<symbol>.c and <dir>/<symbol>.h.
// Both files are created before either is written, and both are closed on
// every return path. If the second create fails the first file is left empty.
func WriteOutput(dir, symbol string, out EncodedOutput) (err error) {
	cPath := filepath.Join(dir, SourceName(symbol))
	hPath := filepath.Join(dir, HeaderName(symbol))

	cFile, err := os.Create(cPath)
	if err != nil {
		return &DestinationError{Path: cPath, Err: err}
	}
	defer closeFile(cFile, cPath, &err)

	hFile, err := os.Create(hPath)
	if err != nil {
		return &DestinationError{Path: hPath, Err: err}
	}
	defer closeFile(hFile, hPath, &err)

	if _, err := io.WriteString(cFile, out.Definition); err != nil {
		return &DestinationError{Path: cPath, Err: err}
	}
	if _, err := io.WriteString(hFile, out.Declaration); err != nil {
		return &DestinationError{Path: hPath, Err: err}
	}
	return nil
}

// closeFile closes f and records the close error in errp unless an earlier
// error is already set.
func closeFile(f *os.File, path string, errp *error) {
	if cerr := f.Close(); cerr != nil && *errp == nil {
		*errp = &DestinationError{Path: path, Err: cerr}
	}
}
