package helper

import (
	"os"
	"strings"
	"testing"
)

// ClearEnv blanks every environment variable starting with prefix for the duration of the test.
// Config loading ignores empty values, so the test sees only what it sets itself.
func ClearEnv(t *testing.T, prefix string) {
	t.Helper()
	for _, kv := range os.Environ() {
		name := strings.SplitN(kv, "=", 2)[0]
		if strings.HasPrefix(name, prefix) {
			t.Setenv(name, "")
		}
	}
}
