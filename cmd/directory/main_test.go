package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fellowship = `[
 {"email":"ann@example.com","name":"Ann","office":"Lund","gitHub":"ann"},
 {"email":"bo@example.com","name":"Bo","office":"Lund"},
 {"email":"cy@example.com","name":"Cy","office":null}
]`

func proxyServer(t *testing.T, status int, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	wd, wdErr := os.Getwd()
	require.NoError(t, wdErr)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestOffices(t *testing.T) {
	out, err := execute(t, "offices", "--proxy-url", proxyServer(t, http.StatusOK, fellowship))

	require.NoError(t, err)
	assert.Equal(t, "Lund\nUndefined office\n", out)
}

func TestShowFiltersAndSorts(t *testing.T) {
	url := proxyServer(t, http.StatusOK, fellowship)

	out, err := execute(t, "show", "--proxy-url", url, "--view", "list", "--office", "Lund", "--sort", "nameDescending")

	require.NoError(t, err)
	assert.Contains(t, out, "[x] Lund")
	assert.Contains(t, out, "https://github.com/ann")
	assert.NotContains(t, out, "Cy")
	assert.Less(t, strings.Index(out, "Bo"), strings.Index(out, "Ann"))
}

func TestShowOfficeToggledTwice(t *testing.T) {
	url := proxyServer(t, http.StatusOK, fellowship)

	out, err := execute(t, "show", "--proxy-url", url, "--office", "Lund", "--office", "Lund")

	require.NoError(t, err)
	assert.Contains(t, out, "[ ] Lund")
	assert.Contains(t, out, "Cy")
}

func TestShowNotLoadedRendersNothing(t *testing.T) {
	out, err := execute(t, "show", "--proxy-url", proxyServer(t, http.StatusBadRequest, ""))

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestShowRejectsUnknownModes(t *testing.T) {
	url := proxyServer(t, http.StatusOK, fellowship)

	_, err := execute(t, "show", "--proxy-url", url, "--view", "table")
	assert.Error(t, err)

	_, err = execute(t, "show", "--proxy-url", url, "--sort", "byAge")
	assert.Error(t, err)
}

func TestExportWritesCSV(t *testing.T) {
	url := proxyServer(t, http.StatusOK, fellowship)
	dir := t.TempDir()
	path := filepath.Join(dir, "export", "directory.csv")

	out, err := execute(t, "export", "--proxy-url", url, "--out", path, "--sort", "officeAscending", "--search", "o")

	require.NoError(t, err)
	assert.Contains(t, out, "wrote 0 employees")

	out, err = execute(t, "export", "--proxy-url", url, "--out", path, "--sort", "officeDescending")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 3 employees")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(b), "\r\n"), "\r\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "cy@example.com,Cy,Undefined office"))
}

func TestExportFailsWhenNotLoaded(t *testing.T) {
	_, err := execute(t, "export", "--proxy-url", proxyServer(t, http.StatusBadRequest, ""), "--out", filepath.Join(t.TempDir(), "x.csv"))

	assert.ErrorIs(t, err, errNotLoaded)
}

func TestExportUploadNeedsSFTPConfig(t *testing.T) {
	t.Setenv("SFTP_HOST", "")
	url := proxyServer(t, http.StatusOK, fellowship)

	_, err := execute(t, "export", "--proxy-url", url, "--out", filepath.Join(t.TempDir(), "x.csv"), "--sftp")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing env")
}
