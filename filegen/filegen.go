package filegen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tgw-labs/onprem-sim/filereader/texttemplate"
)

// CreateFileFromTemplate renders fileTemplate into outputFilePath. An existing file is never overwritten,
// and nothing is written when the template fails to render.
func CreateFileFromTemplate(outputFilePath string, templateOpts interface{}, fileTemplate []byte) error {
	t, err := texttemplate.Parse(filepath.Base(outputFilePath), string(fileTemplate), nil)
	if err != nil {
		return fmt.Errorf("error parsing template for %s: %v", outputFilePath, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, templateOpts); err != nil {
		return fmt.Errorf("error rendering %s: %v", outputFilePath, err)
	}

	if err := os.MkdirAll(filepath.Dir(outputFilePath), 0755); err != nil {
		return fmt.Errorf("error creating directory for %s: %v", outputFilePath, err)
	}

	out, err := os.OpenFile(outputFilePath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("error opening %s : %v", outputFilePath, err)
	}
	defer out.Close()

	if _, err := buf.WriteTo(out); err != nil {
		return fmt.Errorf("error writing %s: %v", outputFilePath, err)
	}
	return nil
}
