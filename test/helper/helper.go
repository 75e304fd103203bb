package helper

import (
	"io/ioutil"
	"os"
	"path/filepath"
)

// WithTempDir runs fn inside a fresh directory that is removed afterwards.
func WithTempDir(fn func(dir string)) {
	dir, err := ioutil.TempDir("", "onprem-sim")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	fn(dir)
}

// WriteFiles writes each name => content pair below dir and returns the absolute paths keyed by name.
func WriteFiles(dir string, files map[string]string) map[string]string {
	paths := map[string]string{}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			panic(err)
		}
		if err := ioutil.WriteFile(path, []byte(content), 0644); err != nil {
			panic(err)
		}
		paths[name] = path
	}
	return paths
}
