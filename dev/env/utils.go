package devenv

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var modName = regexp.MustCompile(`(?m)^module *([\w\-_]+)$`)

func isWorkspaceRoot(currentdir string) bool {
	mod, err := os.ReadFile(filepath.Join(currentdir, "go.mod"))
	if err != nil {
		return false
	}
	matches := modName.FindSubmatch(mod)
	return len(matches) >= 2 && string(matches[1]) == "truevibe-backend"
}

// GetWorkspaceRoot walks up from the cwd until it finds this module's
// go.mod, so tests and CLI runs can reference files relative to the
// repository no matter which package they start in.
func GetWorkspaceRoot() (string, error) {
	currentdir, err := filepath.Abs(".")
	if err != nil {
		return "", err
	}
	root, err := filepath.Abs("/")
	if err != nil {
		return "", err
	}

	for currentdir != root {
		if !isWorkspaceRoot(currentdir) {
			currentdir = filepath.Join(currentdir, "..")
			continue
		}
		return currentdir, nil
	}

	return "", os.ErrNotExist
}

const stateDirPrefix = "<dev_state>"

// ResolvePath expands the "<dev_state>" prefix into the repository's
// dev/.state directory, creating it if needed. Paths without the
// prefix pass through untouched.
func ResolvePath(path string) (string, error) {
	if !strings.HasPrefix(path, stateDirPrefix) {
		return path, nil
	}

	root, err := GetWorkspaceRoot()
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	stateDir := filepath.Join(root, "dev/.state")
	err = os.MkdirAll(stateDir, 0755)
	if err != nil {
		return "", err
	}
	return filepath.Join(stateDir, strings.TrimPrefix(path, stateDirPrefix)), nil
}
