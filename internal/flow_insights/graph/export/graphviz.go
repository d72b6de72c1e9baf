package export

import (
	"fmt"
	"os"
	"os/exec"
)

// DotTo renders a DOT file with the graphviz binary.
func DotTo(pathDOT, outPath, format, dotBin string) error {
	if format == "" {
		format = "svg"
	}
	if dotBin == "" {
		dotBin = "dot"
	}

	if _, err := exec.LookPath(dotBin); err != nil {
		return fmt.Errorf("graphviz: dot binary not found (%q): %w", dotBin, err)
	}

	cmd := exec.Command(dotBin, "-T"+format, pathDOT, "-o", outPath)
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
