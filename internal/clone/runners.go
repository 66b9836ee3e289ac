package clone

import (
	"os/exec"
	"strings"

	"hubgrab/internal/launch"
)

// gitCLI shells out to the git binary for shallow clones.
type gitCLI struct {
	bin string
}

func (g *gitCLI) Clone(url, dir string) (string, error) {
	cmd := exec.Command(g.bin, "clone", "--depth", "1", url, dir)
	output, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(output)), err
}

// editorCLI opens a directory in the editor as a detached process. The
// launch is fire-and-forget; only a failure to start is reported.
type editorCLI struct {
	bin string
}

func (e *editorCLI) Open(dir string) error {
	return launch.Detach(e.bin, dir)
}
