package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// readCSV reads a title/artist/lyrics dataset. Column order is taken from
// the header row, matched case-insensitively.
func readCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("catalog: read csv header: %w", err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	titleIdx, ok := cols["title"]
	if !ok {
		return nil, fmt.Errorf("catalog: csv header missing %q column", "title")
	}
	artistIdx, ok := cols["artist"]
	if !ok {
		return nil, fmt.Errorf("catalog: csv header missing %q column", "artist")
	}
	lyricsIdx, ok := cols["lyrics"]
	if !ok {
		return nil, fmt.Errorf("catalog: csv header missing %q column", "lyrics")
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: read csv row: %w", err)
		}
		if len(record) <= titleIdx || len(record) <= artistIdx || len(record) <= lyricsIdx {
			continue
		}
		rows = append(rows, Row{
			Title:  strings.TrimSpace(record[titleIdx]),
			Artist: strings.TrimSpace(record[artistIdx]),
			Lyrics: record[lyricsIdx],
		})
	}

	return rows, nil
}
