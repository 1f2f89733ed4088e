package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SCMGuru254/tenderbridge-sub003/internal/ats"
)

const cvText = `Amina Hassan
amina@example.com | +254 711 111111

Experience
- Fleet management supervisor, 2018 - 2022
- Cut freight cost by renegotiating supplier contracts

Skills
Inventory, customs clearing, ERP`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("KEYWORDS_FILE", "")

	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScore_JSONOutputInArgumentOrder(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.txt", cvText)
	second := writeFile(t, dir, "b.txt", "")
	jd := writeFile(t, dir, "jd.txt", "Fleet manager with ERP and customs experience")

	out, err := execute(t, "score", "--format", "json", "--concurrency", "2", "--job-description-file", jd, first, second)
	require.NoError(t, err)

	var got []scoredFile
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)

	scorer := ats.NewScorer(ats.DefaultDictionary())
	assert.Equal(t, first, got[0].File)
	assert.Equal(t, second, got[1].File)
	require.NotNil(t, got[0].Result)
	assert.Equal(t, scorer.Analyze(cvText, "Fleet manager with ERP and customs experience"), *got[0].Result)
	assert.Equal(t, 12, got[1].Result.Score.Overall)
}

func TestScore_TextOutput(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "cv.txt", cvText)

	out, err := execute(t, "score", file)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, file+" (text)\n"))
	assert.Contains(t, out, "  overall ")
	assert.Contains(t, out, "missing keywords: ")
}

func TestScore_FailingFileExitsNonZero(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "cv.txt", cvText)
	missing := filepath.Join(dir, "missing.pdf")

	out, err := execute(t, "score", good, missing)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files")
	assert.Contains(t, out, good+" (text)")
	assert.Contains(t, out, missing+": error:")
}

func TestScore_RejectsBadFlags(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "cv.txt", cvText)

	_, err := execute(t, "score", "--format", "xml", file)
	assert.ErrorContains(t, err, "unknown format")

	_, err = execute(t, "score", "--concurrency", "0", file)
	assert.ErrorContains(t, err, "concurrency")

	_, err = execute(t, "score")
	assert.Error(t, err)
}

func TestKeywords(t *testing.T) {
	out, err := execute(t, "keywords")
	require.NoError(t, err)
	assert.Equal(t, strings.Join(ats.DefaultDictionary().Terms(), "\n")+"\n", out)
}

func TestKeywords_FromConfigFile(t *testing.T) {
	dir := t.TempDir()
	dict := writeFile(t, dir, "keywords.yaml", "keywords:\n  - Tender\n  - Bid Bond\n  - tender\n")
	cfg := writeFile(t, dir, "atsctl.yaml", "keywords-file: "+dict+"\n")

	out, err := execute(t, "--config", cfg, "keywords")
	require.NoError(t, err)
	assert.Equal(t, "tender\nbid bond\n", out)
}

func TestKeywords_FlagOverridesEnvironment(t *testing.T) {
	dir := t.TempDir()
	dict := writeFile(t, dir, "keywords.yaml", "keywords: [cold chain]\n")

	out, err := execute(t, "--keywords-file", dict, "keywords")
	require.NoError(t, err)
	assert.Equal(t, "cold chain\n", out)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "atsctl version: unknown\n", out)
}
