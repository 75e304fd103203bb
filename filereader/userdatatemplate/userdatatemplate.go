package userdatatemplate

import (
	"bytes"

	"github.com/tgw-labs/onprem-sim/filereader/texttemplate"
	"github.com/tgw-labs/onprem-sim/tmpl"
)

// GetString renders user data as a Go template. readFile and indent resolve files relative to baseDir.
func GetString(name string, raw string, data interface{}, baseDir string) (string, error) {
	t, err := texttemplate.Parse(name, raw, tmpl.New(baseDir).CreateFuncMap())
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
