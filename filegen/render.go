package filegen

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
)

// Artifact is a rendered file and the mode it must end up with.
type Artifact struct {
	Path string
	Data []byte
	Mode os.FileMode
}

func File(path string, data []byte, mode os.FileMode) Artifact {
	return Artifact{Path: path, Data: data, Mode: mode}
}

// Render writes every artifact, creating parent directories. Files left by an earlier run are
// overwritten and get the artifact's mode back.
func Render(artifacts ...Artifact) error {
	for _, a := range artifacts {
		if err := os.MkdirAll(filepath.Dir(a.Path), 0755); err != nil {
			return fmt.Errorf("error creating directory for %s: %v", a.Path, err)
		}
		if err := ioutil.WriteFile(a.Path, a.Data, a.Mode); err != nil {
			return fmt.Errorf("error writing %s: %v", a.Path, err)
		}
		if err := os.Chmod(a.Path, a.Mode); err != nil {
			return fmt.Errorf("error setting mode of %s: %v", a.Path, err)
		}
	}
	return nil
}
