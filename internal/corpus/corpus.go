// Package corpus loads the disease table and fits the TF-IDF index
// that queries are matched against.
package corpus

import (
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	symerrors "github.com/sympmatch/sympmatch/internal/errors"
)

// Record is one raw corpus row. Identity is the row position at fit
// time; rows are recreated in full on every fit.
type Record struct {
	Disease  string
	Symptoms string
	Tips     string
}

// Load parses the disease table from a CSV file with header
// "disease,symptoms,tips". The symptoms column is mandatory; disease
// and tips are read permissively, missing values become empty strings.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, symerrors.Newf(symerrors.ErrCodeCorpusNotFound, err, "corpus file %s not found", path)
		}
		return nil, symerrors.Newf(symerrors.ErrCodeCorpusParse, err, "open corpus %s", path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, symerrors.Newf(symerrors.ErrCodeCorpusParse, nil, "corpus %s is empty", path)
	}
	if err != nil {
		return nil, symerrors.Newf(symerrors.ErrCodeCorpusParse, err, "read corpus header %s", path)
	}

	diseaseCol, symptomsCol, tipsCol := -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "disease":
			diseaseCol = i
		case "symptoms":
			symptomsCol = i
		case "tips":
			tipsCol = i
		}
	}
	if symptomsCol < 0 {
		return nil, symerrors.Newf(symerrors.ErrCodeSymptomsColumn, nil,
			"corpus %s must contain a 'symptoms' column", path)
	}

	var records []Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, symerrors.Newf(symerrors.ErrCodeCorpusParse, err, "read corpus row %s", path)
		}
		records = append(records, Record{
			Disease:  field(row, diseaseCol),
			Symptoms: field(row, symptomsCol),
			Tips:     field(row, tipsCol),
		})
	}
	return records, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
