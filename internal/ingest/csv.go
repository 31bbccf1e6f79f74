package ingest

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"

	errorutil "github.com/projectdiscovery/utils/errors"

	"github.com/atanasormanow/min-subseq-transducer"
)

// ReadAdditions parses a CSV stream with a word,output header (column names
// configurable) into entries sorted ascending by word, ready to hand to
// transducer.FromDictionary. Repeated words are deduped, last write wins —
// consistent with AddEntryInOrder's treat-as-update policy for repeats.
func ReadAdditions(r io.Reader, wordColumn, outputColumn string) ([]transducer.Entry, error) {
	rows, header, err := readRows(r)
	if err != nil {
		return nil, err
	}
	wi, oi, err := columnIndices(header, wordColumn, outputColumn)
	if err != nil {
		return nil, err
	}

	byWord := map[string]uint64{}
	var order []string
	for lineNo, row := range rows {
		if wi >= len(row) || oi >= len(row) {
			return nil, errorutil.NewWithTag("ingest", "row %d: missing word/output column", lineNo+1)
		}
		word := row[wi]
		if word == "" {
			return nil, errorutil.NewWithTag("ingest", "row %d: empty word", lineNo+1)
		}
		output, err := strconv.ParseUint(strings.TrimSpace(row[oi]), 10, 64)
		if err != nil {
			return nil, errorutil.NewWithTag("ingest", "row %d: invalid output %q: %v", lineNo+1, row[oi], err)
		}
		if _, seen := byWord[word]; !seen {
			order = append(order, word)
		}
		byWord[word] = output
	}

	sortStrings(order)
	entries := make([]transducer.Entry, len(order))
	for i, w := range order {
		entries[i] = transducer.NewEntry(w, byWord[w])
	}
	return entries, nil
}

// ReadDeletions parses a CSV stream with a content header (column name
// configurable) into a deduped, sorted list of words to remove.
func ReadDeletions(r io.Reader, contentColumn string) ([]string, error) {
	rows, header, err := readRows(r)
	if err != nil {
		return nil, err
	}
	ci, err := columnIndex(header, contentColumn)
	if err != nil {
		return nil, err
	}

	dedupe := NewDedupe()
	for lineNo, row := range rows {
		if ci >= len(row) {
			return nil, errorutil.NewWithTag("ingest", "row %d: missing %s column", lineNo+1, contentColumn)
		}
		if row[ci] == "" {
			return nil, errorutil.NewWithTag("ingest", "row %d: empty %s", lineNo+1, contentColumn)
		}
		dedupe.Upsert(row[ci])
	}
	words := dedupe.Words()
	sortStrings(words)
	return words, nil
}

func readRows(r io.Reader) (rows [][]string, header []string, err error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, errorutil.NewWithTag("ingest", "failed to parse CSV: %v", err)
	}
	if len(all) == 0 {
		return nil, nil, errorutil.NewWithTag("ingest", "CSV has no header row")
	}
	return all[1:], all[0], nil
}

func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, nil
		}
	}
	return 0, errorutil.NewWithTag("ingest", "CSV header missing %q column", name)
}

func columnIndices(header []string, wordColumn, outputColumn string) (wi, oi int, err error) {
	wi, err = columnIndex(header, wordColumn)
	if err != nil {
		return 0, 0, err
	}
	oi, err = columnIndex(header, outputColumn)
	if err != nil {
		return 0, 0, err
	}
	return wi, oi, nil
}

func sortStrings(s []string) {
	sort.Strings(s)
}
