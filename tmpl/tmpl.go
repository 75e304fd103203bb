package tmpl

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"text/template"
)

// Context resolves the files user data templates read, relative to BasePath.
type Context struct {
	BasePath   string
	FsReadFile func(string) ([]byte, error)
}

func New(basePath string) *Context {
	return &Context{
		BasePath:   basePath,
		FsReadFile: ioutil.ReadFile,
	}
}

func (c *Context) CreateFuncMap() template.FuncMap {
	return template.FuncMap{
		"readFile": c.ReadFile,

		"indent": indent,
	}
}

func (c *Context) ReadFile(filename string) (string, error) {
	path := filename
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.BasePath, filename)
	}

	bytes, err := c.FsReadFile(path)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func indent(spaces int, input string) string {
	idt := strings.Repeat(" ", spaces)

	buf := new(bytes.Buffer)
	for _, line := range strings.Split(strings.TrimSuffix(input, "\n"), "\n") {
		buf.WriteString(idt + line + "\n")
	}
	return buf.String()
}
