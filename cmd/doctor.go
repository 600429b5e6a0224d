package cmd

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/xll-gen/bin2c/internal/ui"
)

// compilers are the C compilers doctor looks for, in order.
var compilers = []string{"cc", "gcc", "clang", "cl.exe"}

// doctorCmd represents the doctor command.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check for a C compiler and a writable output directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd.Flags(), &flags)
		if err != nil {
			return err
		}
		out := ui.Stdout()
		out.Header("Checking environment...")
		checkCompiler(out, exec.LookPath)
		checkOutputDir(out, cfg.Output.Dir)
		return nil
	},
}

func init() {
	yieldToInput(doctorCmd)
	rootCmd.AddCommand(doctorCmd)
}

// checkCompiler reports the first C compiler found in PATH.
// Generated files are plain C, so any of them can build the output.
func checkCompiler(out *ui.Printer, lookPath func(string) (string, error)) bool {
	for _, c := range compilers {
		if path, err := lookPath(c); err == nil {
			out.Success("C compiler", path)
			return true
		}
	}
	out.Warning("C compiler", "not found (tried cc, gcc, clang, cl.exe)")
	return false
}

// checkOutputDir verifies that files can be created in dir.
func checkOutputDir(out *ui.Printer, dir string) bool {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		out.Warning("Output dir", dir+" does not exist (it will be created)")
		return true
	}
	if err != nil {
		out.Error("Output dir", err.Error())
		return false
	}
	if !info.IsDir() {
		out.Error("Output dir", dir+" is not a directory")
		return false
	}

	f, err := os.CreateTemp(dir, ".bin2c-doctor-*")
	if err != nil {
		out.Error("Output dir", err.Error())
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)

	abs, _ := filepath.Abs(dir)
	out.Success("Output dir", abs)
	return true
}
