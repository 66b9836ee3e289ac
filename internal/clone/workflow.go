// Package clone implements the request workflow: validate a GitHub URL,
// shallow-clone it into a fresh directory, and open the result in the
// configured editor.
package clone

import (
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/ternarybob/arbor"

	"hubgrab/internal/config"
	"hubgrab/internal/notify"
)

// Outcome is the result of processing one request body.
type Outcome struct {
	Status  int
	Message string
	// Dir is set only when a clone directory was created and survived.
	Dir string
}

// GitClient runs the external clone tool.
type GitClient interface {
	Clone(url, dir string) (string, error)
}

// EditorLauncher opens a directory in the external editor.
type EditorLauncher interface {
	Open(dir string) error
}

var (
	hostPattern = regexp.MustCompile(`^(https|git)://github\.com/.+/.+(\.git)?$`)
	sshPattern  = regexp.MustCompile(`^git@github\.com:.+/.+\.git$`)
)

// Workflow handles clone requests one at a time.
type Workflow struct {
	baseDir    string
	editorName string
	git        GitClient
	editor     EditorLauncher
	notifier   *notify.Notifier
	log        arbor.ILogger

	// Only one clone is ever meaningfully useful at a time.
	mu sync.Mutex
}

// NewWorkflow builds a workflow driving the configured git and editor
// commands.
func NewWorkflow(cfg *config.Config, notifier *notify.Notifier, log arbor.ILogger) *Workflow {
	return &Workflow{
		baseDir:    cfg.Service.CloneDir,
		editorName: cfg.Tools.Editor,
		git:        &gitCLI{bin: cfg.Tools.Git},
		editor:     &editorCLI{bin: cfg.Tools.Editor},
		notifier:   notifier,
		log:        log,
	}
}

// Handle processes one raw request body and reports the outcome. Failures
// after the clone directory exists remove it, except when the clone itself
// succeeded and only the editor launch failed; that clone is preserved for
// the user.
func (w *Workflow) Handle(body []byte) Outcome {
	w.mu.Lock()
	defer w.mu.Unlock()

	url := strings.TrimSpace(strings.ToValidUTF8(string(body), ""))
	if url == "" {
		return w.fail(http.StatusBadRequest, "Error: No content in POST request or empty URL.")
	}

	if !ValidURL(url) {
		return w.fail(http.StatusBadRequest, fmt.Sprintf("Error: Invalid GitHub URL: '%s'.", url))
	}

	repo := RepoName(url)

	dir, err := os.MkdirTemp(w.baseDir, repo+"_")
	if err != nil {
		return w.fail(http.StatusInternalServerError, fmt.Sprintf("Error: Could not create clone directory: %v", err))
	}

	w.notifier.Info("Cloning repository..")
	w.log.Info().Str("url", url).Str("dir", dir).Msg("clone started")

	output, err := w.git.Clone(url, dir)
	if err != nil {
		// Best effort; cleanup failure must not mask the clone error.
		_ = os.RemoveAll(dir)
		return w.fail(http.StatusInternalServerError, fmt.Sprintf("Error: Failed to clone '%s'. Git output: %s", url, output))
	}
	w.log.Info().Str("repo", repo).Str("dir", dir).Msg("clone complete")

	if err := w.editor.Open(dir); err != nil {
		w.log.Warn().Err(err).Str("dir", dir).Msg("editor launch failed")
		out := w.fail(http.StatusInternalServerError, fmt.Sprintf("Error: Cloned '%s' but failed to open in %s.", repo, w.editorName))
		out.Dir = dir
		return out
	}

	return Outcome{
		Status:  http.StatusOK,
		Message: fmt.Sprintf("Success: Cloned '%s' and opened in %s at '%s'.", repo, w.editorName, dir),
		Dir:     dir,
	}
}

func (w *Workflow) fail(status int, message string) Outcome {
	w.notifier.Error(message)
	return Outcome{Status: status, Message: message}
}

// ValidURL reports whether url matches an accepted GitHub repository shape.
// Matching is structural only; the host is never contacted.
func ValidURL(url string) bool {
	return hostPattern.MatchString(url) || sshPattern.MatchString(url)
}

// RepoName derives a repository name from the last path segment of url,
// stripping a trailing .git suffix.
func RepoName(url string) string {
	name := strings.TrimSuffix(url, ".git")
	if i := strings.LastIndexAny(name, "/:"); i >= 0 {
		name = name[i+1:]
	}
	if name == "" {
		return "repository"
	}
	return name
}
