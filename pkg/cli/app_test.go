package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mchmarny/linkscore/pkg/data"
	"github.com/mchmarny/linkscore/pkg/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

const testResults = "0 1 x 0.5 n1n2\t0.1\t0.3 o1o2\n" +
	"0 2 x 0.5 n1n3\t0.4\t0.2 o1o3\n" +
	"1 3 x 0.5 n2n3\t0.35\t0.6 o2o3\n" +
	"1 4 x 0.5 n3n4\t0.8\t0.9 o3o4\n"

func TestMain(m *testing.M) {
	keyring.MockInit()
	initLogging(false)
	os.Exit(m.Run())
}

func writeResults(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "results.tsv")
	require.NoError(t, os.WriteFile(p, []byte(content), 0600))
	return p
}

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(tokenEnvVar, "")

	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	app.ErrWriter = io.Discard
	app.Reader = strings.NewReader(stdin)

	err := app.Run(t.Context(), append([]string{appName}, args...))
	return buf.String(), err
}

func TestScore_Text(t *testing.T) {
	in := writeResults(t, testResults)
	out := filepath.Join(t.TempDir(), "run")

	got, err := runApp(t, "", "--config", t.TempDir(), "--fpath", in, "--out", out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(got), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "AUROC: 0.75", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "AUPR: "))
	assert.True(t, strings.HasPrefix(lines[2], "NDCG: "))

	for _, p := range []string{out + "_roc.png", out + "_pr.png"} {
		_, err := os.Stat(p)
		assert.NoError(t, err, p)
	}
}

func TestScore_HasHeader(t *testing.T) {
	in := writeResults(t, "T R X P pair\tconf\tscore orbit\n"+testResults)
	out := filepath.Join(t.TempDir(), "run")

	got, err := runApp(t, "", "--config", t.TempDir(), "--has-header", "--fpath", in, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, got, "AUROC: 0.75\n")
}

func TestScore_JSON(t *testing.T) {
	in := writeResults(t, testResults)
	out := filepath.Join(t.TempDir(), "run")

	got, err := runApp(t, "", "--config", t.TempDir(), "--format", "json", "--fpath", in, "--out", out)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &doc))
	assert.Equal(t, in, doc["input"])
	assert.InDelta(t, 0.75, doc["auroc"], 1e-9)
	assert.InDelta(t, 4, doc["records"], 0)
	assert.Equal(t, out+"_roc.png", doc["roc_image"])
}

func TestScore_YAML(t *testing.T) {
	in := writeResults(t, testResults)
	out := filepath.Join(t.TempDir(), "run")

	got, err := runApp(t, "", "--config", t.TempDir(), "--format", "yml", "--fpath", in, "--out", out)
	require.NoError(t, err)
	assert.Contains(t, got, "input: "+in)
	assert.Contains(t, got, "auroc: 0.75")
}

func TestScore_InvalidFormat(t *testing.T) {
	_, err := runApp(t, "", "--config", t.TempDir(), "--format", "xml")
	assert.Error(t, err)
}

func TestScore_NoArgs(t *testing.T) {
	got, err := runApp(t, "", "--config", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, got, missingInputMsg)
}

func TestScore_MissingOne(t *testing.T) {
	in := writeResults(t, testResults)

	_, err := runApp(t, "", "--config", t.TempDir(), "--fpath", in)
	assert.Error(t, err)

	_, err = runApp(t, "", "--config", t.TempDir(), "--out", filepath.Join(t.TempDir(), "run"))
	assert.Error(t, err)
}

func TestScore_ParseError(t *testing.T) {
	in := writeResults(t, testResults+"1 2 x\t0.5\t0.1 o\n")

	_, err := runApp(t, "", "--config", t.TempDir(), "--fpath", in, "--out", filepath.Join(t.TempDir(), "run"))
	assert.ErrorIs(t, err, result.ErrParse)
}

func TestScore_MissingFile(t *testing.T) {
	in := filepath.Join(t.TempDir(), "missing.tsv")

	_, err := runApp(t, "", "--config", t.TempDir(), "--fpath", in, "--out", filepath.Join(t.TempDir(), "run"))
	assert.ErrorIs(t, err, result.ErrFile)
}

func TestScore_Remote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer remote-token" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, testResults)
	}))
	t.Cleanup(srv.Close)

	cfgDir := t.TempDir()
	out := filepath.Join(t.TempDir(), "run")

	_, err := runApp(t, "remote-token\n", "--config", cfgDir, "auth")
	require.NoError(t, err)
	t.Cleanup(func() { _ = keyring.Delete(keyringService, keyringUser) })

	got, err := runApp(t, "", "--config", cfgDir, "--fpath", srv.URL+"/results.tsv", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, got, "AUROC: 0.75\n")
}

func TestScore_History(t *testing.T) {
	cfgDir := t.TempDir()
	db := filepath.Join(t.TempDir(), data.DataFileName)
	in := writeResults(t, testResults)

	for i := range 2 {
		out := filepath.Join(t.TempDir(), fmt.Sprintf("run%d", i))
		_, err := runApp(t, "", "--config", cfgDir, "--db", db, "--fpath", in, "--out", out)
		require.NoError(t, err)
	}

	got, err := runApp(t, "", "--config", cfgDir, "--db", db, "--format", "json", "history", "--limit", "1")
	require.NoError(t, err)

	var runs []*data.Run
	require.NoError(t, json.Unmarshal([]byte(got), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, in, runs[0].Input)
	assert.Equal(t, 4, runs[0].Records)
	assert.Equal(t, 2, runs[0].Positives)
	assert.InDelta(t, 0.75, runs[0].AUROC, 1e-9)

	got, err = runApp(t, "", "--config", cfgDir, "--db", db, "history")
	require.NoError(t, err)
	assert.Contains(t, got, "AUROC")
	assert.Contains(t, got, in)
}

func TestScore_NoHistoryByDefault(t *testing.T) {
	cfgDir := t.TempDir()
	in := writeResults(t, testResults)

	_, err := runApp(t, "", "--config", cfgDir, "--fpath", in, "--out", filepath.Join(t.TempDir(), "run"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(cfgDir, data.DataFileName))
	assert.True(t, os.IsNotExist(err))
}
