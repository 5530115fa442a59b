// Package synonyms loads the canonical-term synonym table used for
// query and corpus expansion.
//
// The table is kept as an ordered slice rather than a map: substring
// replacement during expansion is order-sensitive, and results must be
// deterministic across runs. Entries keep the row order of the source
// file; a duplicate canonical updates the earlier entry in place.
package synonyms

import (
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	symerrors "github.com/sympmatch/sympmatch/internal/errors"
)

// Entry maps one canonical term to its variant spellings.
// Canonical and variants are lowercase and trimmed.
type Entry struct {
	Canonical string
	Variants  []string
}

// Table is an ordered synonym table.
type Table []Entry

// variantSeparator joins variants inside the synonyms column.
const variantSeparator = ";"

// Load reads a synonym table from a CSV file with header
// "canonical,synonyms". A missing file is not an error: synonym
// expansion is optional, so Load returns an empty table.
//
// Rows with an empty or whitespace-only canonical are skipped. Variants
// are split on ";", lowercased and trimmed; empty variants are dropped.
func Load(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, symerrors.Newf(symerrors.ErrCodeSynonymsParse, err, "open synonym table %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, symerrors.Newf(symerrors.ErrCodeSynonymsParse, err, "read synonym table header %s", path)
	}

	canonCol, synCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "canonical":
			canonCol = i
		case "synonyms":
			synCol = i
		}
	}
	if canonCol < 0 {
		// No canonical column means no usable rows.
		return nil, nil
	}

	var table Table
	position := make(map[string]int)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, symerrors.Newf(symerrors.ErrCodeSynonymsParse, err, "read synonym table row %s", path)
		}

		canonical := strings.ToLower(strings.TrimSpace(field(row, canonCol)))
		if canonical == "" {
			continue
		}

		var variants []string
		for _, v := range strings.Split(field(row, synCol), variantSeparator) {
			v = strings.ToLower(strings.TrimSpace(v))
			if v != "" {
				variants = append(variants, v)
			}
		}

		if at, ok := position[canonical]; ok {
			table[at].Variants = variants
			continue
		}
		position[canonical] = len(table)
		table = append(table, Entry{Canonical: canonical, Variants: variants})
	}
	return table, nil
}

// Lookup returns the variants for a canonical term and whether the
// term is present.
func (t Table) Lookup(canonical string) ([]string, bool) {
	for _, e := range t {
		if e.Canonical == canonical {
			return e.Variants, true
		}
	}
	return nil, false
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
