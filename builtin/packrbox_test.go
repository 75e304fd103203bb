package builtin

import (
	"strings"
	"testing"
)

func TestBuiltinFilesArePresent(t *testing.T) {
	for _, path := range []string{ConfigTmplFile, RouterUserDataFile, StackTemplateTmplFile} {
		t.Run(path, func(t *testing.T) {
			if _, err := MustBytes(path); err != nil {
				t.Errorf("expected %s to be found in the box: %v", path, err)
			}
		})
	}
}

func TestRouterUserDataIsAScript(t *testing.T) {
	if !strings.HasPrefix(String(RouterUserDataFile), "#!") {
		t.Errorf("expected router user data to start with a shebang")
	}
}
