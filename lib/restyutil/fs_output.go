package restyutil

import (
	"log/slog"
	"os"
	"path/filepath"
	devenv "truevibe-backend/dev/env"
)

// FilesystemOutput dumps every http message exchanged by an
// instrumented client into its own file under the given directory.
// the directory is wiped on construction so each run starts clean.
type FilesystemOutput struct {
	directory string
}

func NewFilesystemOutput(dir string) FilesystemOutput {
	dir, err := devenv.ResolvePath(dir)
	if err != nil {
		panic(err)
	}
	os.RemoveAll(dir)
	err = os.MkdirAll(dir, 0777)
	if err != nil {
		panic(err)
	}
	return FilesystemOutput{directory: dir}
}

func (o FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write message info file", "id", id, "err", err)
	}
}
