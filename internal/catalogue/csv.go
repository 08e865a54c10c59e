// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalogue

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"
)

// DefaultColumn is the CSV header holding bibcodes.
const DefaultColumn = "bibcode"

// ReadIdentifiers returns the values of column from the CSV file at path,
// in file order, trimmed, with blank cells dropped. Duplicates are kept;
// callers dedupe. The header is matched case-insensitively, so both
// "bibcode" and "Bibcode" work.
func ReadIdentifiers(path, column string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &FileFormatError{Path: path, Reason: "cannot open file", Err: err}
	}
	defer f.Close()
	return readIdentifiers(f, path, column)
}

func readIdentifiers(r io.Reader, path, column string) ([]string, error) {
	if column = strings.TrimSpace(column); column == "" {
		column = DefaultColumn
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &FileFormatError{Path: path, Reason: "file is empty"}
	}
	if err != nil {
		return nil, &FileFormatError{Path: path, Reason: "invalid CSV header", Err: err}
	}

	idx := -1
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if strings.EqualFold(h, column) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &FileFormatError{Path: path, Reason: "no " + column + " column in header"}
	}

	var ids []string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &FileFormatError{Path: path, Reason: "invalid CSV row", Err: err}
		}
		if idx >= len(rec) {
			continue
		}
		if v := strings.TrimSpace(rec[idx]); v != "" {
			ids = append(ids, v)
		}
	}
	return ids, nil
}
