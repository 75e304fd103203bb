package filegen

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempDir(t *testing.T) string {
	dir, err := ioutil.TempDir("", "filegen")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func TestCreateFileFromTemplate(t *testing.T) {
	dir := tempDir(t)
	path := filepath.Join(dir, "nested", "onprem.yaml")
	opts := struct{ Prefix string }{"dc1"}

	require.NoError(t, CreateFileFromTemplate(path, opts, []byte("prefix: {{.Prefix}}\n")))

	content, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "prefix: dc1\n", string(content))

	err = CreateFileFromTemplate(path, opts, []byte("prefix: {{.Prefix}}\n"))
	assert.Error(t, err, "an existing config must not be overwritten")
}

func TestCreateFileFromTemplateRenderError(t *testing.T) {
	dir := tempDir(t)
	path := filepath.Join(dir, "onprem.yaml")

	err := CreateFileFromTemplate(path, struct{}{}, []byte("prefix: {{.Prefix}}\n"))
	require.Error(t, err)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "a failed render must not leave a file behind")
}

func TestRender(t *testing.T) {
	dir := tempDir(t)
	a := filepath.Join(dir, "stack-templates", "onprem.json")
	b := filepath.Join(dir, "userdata", "router.sh")

	require.NoError(t, Render(
		File(a, []byte("{}"), 0644),
		File(b, []byte("#!/bin/bash\n"), 0755),
	))

	content, err := ioutil.ReadFile(a)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(content))

	content, err = ioutil.ReadFile(b)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/bash\n", string(content))
}

func TestRenderResetsMode(t *testing.T) {
	dir := tempDir(t)
	path := filepath.Join(dir, "exported", "stack.json")

	require.NoError(t, Render(File(path, []byte("{}"), 0644)))
	require.NoError(t, Render(File(path, []byte(`{"Resources":{}}`), 0600)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	content, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"Resources":{}}`, string(content))
}

func TestRenderReportsPath(t *testing.T) {
	dir := tempDir(t)
	blocker := filepath.Join(dir, "userdata")
	require.NoError(t, ioutil.WriteFile(blocker, []byte("not a directory"), 0644))

	err := Render(File(filepath.Join(blocker, "router.sh"), []byte("#!/bin/bash\n"), 0644))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "router.sh")
}
