package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoutesCommandPrintsTable(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"routes", "--env-file", ""})

	require.NoError(t, root.Execute())
	require.Equal(t,
		"/            home\n/conocenos   about\n/oferta      offer\n/contacto    contact\n",
		out.String())
}

func TestExportCommandWritesPages(t *testing.T) {
	out := filepath.Join(t.TempDir(), "dist")
	t.Setenv("INVA_WEB_MEDIA_DIR", filepath.Join(t.TempDir(), "absent"))

	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"export", "--out", out, "--env-file", ""})

	require.NoError(t, root.Execute())
	require.Contains(t, buf.String(), "exported 4 pages")
	for _, f := range []string{"index.html", "conocenos/index.html", "oferta/index.html", "contacto/index.html", "sitemap.xml", "robots.txt", "static/css/app.css"} {
		_, err := os.Stat(filepath.Join(out, filepath.FromSlash(f)))
		require.NoError(t, err, f)
	}
}

func TestInvalidConfigFailsBeforeRunning(t *testing.T) {
	t.Setenv("INVA_WEB_PORT", "not-a-port")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"routes", "--env-file", ""})
	require.Error(t, root.Execute())
}
