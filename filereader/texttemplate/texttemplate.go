package texttemplate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig"
)

var funcs2 = template.FuncMap{
	"checkSizeLessThan": func(size int, content string) (string, error) {
		if len(content) >= size {
			return "", fmt.Errorf("Content length exceeds maximum size %d", size)
		}
		return content, nil
	},
	"toJSON": func(v interface{}) (string, error) {
		data, err := json.Marshal(v)
		return string(data), err
	},
}

// Parse parses raw with the sprig functions plus toJSON and checkSizeLessThan available.
func Parse(name string, raw string, funcs template.FuncMap) (*template.Template, error) {
	return template.New(name).
		Funcs(sprig.HermeticTxtFuncMap()).
		Funcs(funcs).
		Funcs(funcs2).
		Option("missingkey=error").
		Parse(raw)
}

func GetBytesBuffer(name string, raw string, data interface{}) (*bytes.Buffer, error) {
	tmpl, err := Parse(name, raw, nil)
	if err != nil {
		return nil, err
	}

	var buff bytes.Buffer
	if err := tmpl.Execute(&buff, data); err != nil {
		return nil, err
	}
	return &buff, nil
}

func GetString(name string, raw string, data interface{}) (string, error) {
	buf, err := GetBytesBuffer(name, raw, data)

	if err != nil {
		return "", err
	}

	return buf.String(), nil
}
