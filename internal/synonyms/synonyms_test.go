package synonyms

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "synonyms.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileIsEmptyTable(t *testing.T) {
	table, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestLoad_BasicTable(t *testing.T) {
	path := writeTable(t, "canonical,synonyms\nfever,high temperature;pyrexia\ncough,hacking cough\n")

	table, err := Load(path)
	require.NoError(t, err)
	require.Len(t, table, 2)

	assert.Equal(t, "fever", table[0].Canonical)
	assert.Equal(t, []string{"high temperature", "pyrexia"}, table[0].Variants)
	assert.Equal(t, "cough", table[1].Canonical)
	assert.Equal(t, []string{"hacking cough"}, table[1].Variants)
}

func TestLoad_LowercasesAndTrims(t *testing.T) {
	path := writeTable(t, "canonical,synonyms\n Fever , High Temperature ; PYREXIA \n")

	table, err := Load(path)
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, "fever", table[0].Canonical)
	assert.Equal(t, []string{"high temperature", "pyrexia"}, table[0].Variants)
}

func TestLoad_SkipsEmptyCanonicalAndEmptyVariants(t *testing.T) {
	path := writeTable(t, "canonical,synonyms\n   ,orphan variant\nfever,;; pyrexia ;\n")

	table, err := Load(path)
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, "fever", table[0].Canonical)
	assert.Equal(t, []string{"pyrexia"}, table[0].Variants)
}

func TestLoad_DuplicateCanonicalOverwritesInPlace(t *testing.T) {
	path := writeTable(t, "canonical,synonyms\nfever,pyrexia\ncough,hack\nfever,high temperature\n")

	table, err := Load(path)
	require.NoError(t, err)
	require.Len(t, table, 2)

	// Later row wins, but the entry keeps its original position.
	assert.Equal(t, "fever", table[0].Canonical)
	assert.Equal(t, []string{"high temperature"}, table[0].Variants)
	assert.Equal(t, "cough", table[1].Canonical)
}

func TestLoad_PreservesRowOrder(t *testing.T) {
	path := writeTable(t, "canonical,synonyms\nzebra,z\nalpha,a\nmike,m\n")

	table, err := Load(path)
	require.NoError(t, err)
	require.Len(t, table, 3)
	assert.Equal(t, "zebra", table[0].Canonical)
	assert.Equal(t, "alpha", table[1].Canonical)
	assert.Equal(t, "mike", table[2].Canonical)
}

func TestLoad_HeaderOnlyAndMissingColumns(t *testing.T) {
	t.Run("header only", func(t *testing.T) {
		table, err := Load(writeTable(t, "canonical,synonyms\n"))
		require.NoError(t, err)
		assert.Empty(t, table)
	})

	t.Run("no canonical column", func(t *testing.T) {
		table, err := Load(writeTable(t, "name,stuff\nfever,pyrexia\n"))
		require.NoError(t, err)
		assert.Empty(t, table)
	})

	t.Run("empty file", func(t *testing.T) {
		table, err := Load(writeTable(t, ""))
		require.NoError(t, err)
		assert.Empty(t, table)
	})
}

func TestTable_Lookup(t *testing.T) {
	table := Table{
		{Canonical: "fever", Variants: []string{"pyrexia"}},
	}

	variants, ok := table.Lookup("fever")
	assert.True(t, ok)
	assert.Equal(t, []string{"pyrexia"}, variants)

	_, ok = table.Lookup("cough")
	assert.False(t, ok)
}
