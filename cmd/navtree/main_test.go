package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/navtree/pkg/nav"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "none.env")))

	err := cmd.Execute()
	return out.String(), err
}

func TestValidate_Embedded(t *testing.T) {
	out, err := run(t, "validate")
	require.NoError(t, err)
	assert.Equal(t, "navigation tree OK: 2 groups, 4 leaves\n", out)
}

func TestValidate_IgnoresServerSettings(t *testing.T) {
	t.Setenv("NAVTREE_PORT", "not-a-port")
	t.Setenv("NAVTREE_TLS_CERT_FILE", "/tmp/cert.pem")
	t.Setenv("NAVTREE_TREE_FILE", "")

	out, err := run(t, "validate")
	require.NoError(t, err)
	assert.Equal(t, "navigation tree OK: 2 groups, 4 leaves\n", out)
}

func TestValidate_TreeFileFromEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nav.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"children":[{"text":"Reports","viewType":"reports","leaf":true}]}`), 0o600))
	t.Setenv("NAVTREE_PORT", "not-a-port")
	t.Setenv("NAVTREE_TREE_FILE", path)

	out, err := run(t, "validate")
	require.NoError(t, err)
	assert.Equal(t, "navigation tree OK: 0 groups, 1 leaves\n", out)
}

func TestValidate_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nav.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
children:
  - text: A
    viewType: a
    leaf: true
  - text: B
    viewType: a
    leaf: true
`), 0o600))

	_, err := run(t, "validate", path)
	require.Error(t, err)

	var mte *nav.MalformedTreeError
	require.ErrorAs(t, err, &mte)
	assert.Equal(t, "/B", mte.Path)
}

func TestPrint_Text(t *testing.T) {
	out, err := run(t, "print")
	require.NoError(t, err)

	assert.Contains(t, out, "Tables (expanded)")
	assert.Contains(t, out, "Requests -> requests")
	assert.Contains(t, out, "Incoming Libraries/Samples -> incoming-libraries")
	assert.Less(t, bytes.Index([]byte(out), []byte("Researchers")), bytes.Index([]byte(out), []byte("Quality Control")))
}

func TestPrint_JSONRoundTrip(t *testing.T) {
	out, err := run(t, "print", "--output", "json")
	require.NoError(t, err)

	tree, err := nav.Parse([]byte(out))
	require.NoError(t, err)

	want, err := nav.Load()
	require.NoError(t, err)
	assert.Equal(t, want.Root(), tree.Root())
}

func TestPrint_YAMLRoundTrip(t *testing.T) {
	out, err := run(t, "print", "-o", "yaml")
	require.NoError(t, err)

	tree, err := nav.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, 4, tree.Len())
}

func TestPrint_UnsupportedOutput(t *testing.T) {
	_, err := run(t, "print", "-o", "xml")
	assert.ErrorContains(t, err, `unsupported output "xml"`)
}

func TestFind(t *testing.T) {
	out, err := run(t, "find", "requests")
	require.NoError(t, err)
	assert.Contains(t, out, "Tables")
	assert.Contains(t, out, "Requests")
	assert.Contains(t, out, "x-fa fa-external-link-square")

	out, err = run(t, "find", "does-not-exist")
	require.NoError(t, err)
	assert.Equal(t, "no navigation entry for view type \"does-not-exist\"\n", out)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "navtree version dev")
}

func TestPlaceholderViews(t *testing.T) {
	tree, err := nav.Load()
	require.NoError(t, err)

	views := placeholderViews(tree)
	require.Len(t, views, 4)

	rec := httptest.NewRecorder()
	views["libraries"].ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/views/libraries", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"viewType":"libraries","title":"Libraries/Samples","route":"libraries","url":"/views/libraries"}`, rec.Body.String())
}
