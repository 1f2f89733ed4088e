package ats

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDictionary(t *testing.T) {
	d, err := NewDictionary([]string{"  Supply Chain ", "LOGISTICS", "supply chain", ""})
	require.NoError(t, err)
	assert.Equal(t, []string{"supply chain", "logistics"}, d.Terms())
	assert.Equal(t, 2, d.Len())

	_, err = NewDictionary([]string{" ", ""})
	assert.Error(t, err)
}

func TestDictionary_TermsIsACopy(t *testing.T) {
	d := DefaultDictionary()
	terms := d.Terms()
	terms[0] = "mutated"

	assert.Equal(t, "supply chain", d.Terms()[0])
}

func TestLoadDictionary(t *testing.T) {
	dir := t.TempDir()

	valid := filepath.Join(dir, "keywords.yaml")
	require.NoError(t, os.WriteFile(valid, []byte("keywords:\n  - Tender\n  - Cold Chain\n"), 0o644))

	d, err := LoadDictionary(valid)
	require.NoError(t, err)
	assert.Equal(t, []string{"tender", "cold chain"}, d.Terms())

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("keywords: []\n"), 0o644))
	_, err = LoadDictionary(empty)
	assert.Error(t, err)

	_, err = LoadDictionary(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
