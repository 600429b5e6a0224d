package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xll-gen/bin2c/internal/config"
	"github.com/xll-gen/bin2c/internal/generator"
	"github.com/xll-gen/bin2c/internal/templates"
	"github.com/xll-gen/bin2c/internal/ui"
	"gopkg.in/yaml.v3"
)

// initCmd represents the init command.
var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a starter " + config.DefaultFile,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		return runInit(dir, flags.outDir, ui.Stdout())
	},
}

func init() {
	yieldToInput(initCmd)
	rootCmd.AddCommand(initCmd)
}

// runInit writes a starter config file into dir. The content is parsed and
// validated before anything touches the disk.
//
// Returns:
//   - error: If the file already exists, or it cannot be rendered or written.
func runInit(dir, outDir string, out *ui.Printer) error {
	path := filepath.Join(dir, config.DefaultFile)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return fmt.Errorf("%s already exists", path)
	}

	quotedDir, err := yamlString(outDir)
	if err != nil {
		return err
	}

	content, err := templates.Render("bin2c.yaml.tmpl", struct {
		OutDir       string
		BytesPerLine int
	}{
		OutDir:       quotedDir,
		BytesPerLine: generator.DefaultBytesPerLine,
	})
	if err != nil {
		return err
	}

	cfg, err := config.Parse([]byte(content))
	if err != nil {
		return fmt.Errorf("generated %s is invalid: %w", path, err)
	}
	if cfg.Output.Dir != outDir {
		return fmt.Errorf("generated %s is invalid: output dir %q reads back as %q", path, outDir, cfg.Output.Dir)
	}
	config.ApplyDefaults(cfg)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("generated %s is invalid: %w", path, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return &generator.DestinationError{Path: dir, Err: err}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return &generator.DestinationError{Path: path, Err: err}
	}

	out.Success("Created", path)
	return nil
}

// yamlString renders s as a single-line double-quoted yaml scalar.
func yamlString(s string) (string, error) {
	b, err := yaml.Marshal(&yaml.Node{
		Kind:  yaml.ScalarNode,
		Style: yaml.DoubleQuotedStyle,
		Value: s,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(b), "\n"), nil
}
