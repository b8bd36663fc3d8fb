package db

import (
	"context"
	"encoding/csv"
	"os"
	"strings"
	"time"
)

type sketchRecord struct {
	Name    string
	Drawing string
}

// LoadSketches reads name,drawing rows from a CSV and appends them to store.
// The header row and rows with an empty field are skipped; ids are store-assigned.
func LoadSketches(ctx context.Context, store *SketchStore, path string) (int, error) {
	if store == nil {
		return 0, nil
	}
	records, err := readSketches(path)
	if err != nil {
		return 0, err
	}
	inserted := 0
	for _, record := range records {
		entry := Sketch{
			Name:    record.Name,
			Drawing: record.Drawing,
			Created: time.Now().UTC(),
		}
		if err := store.Insert(ctx, &entry); err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func readSketches(path string) ([]sketchRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var records []sketchRecord
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) < 2 {
			continue
		}
		name := strings.TrimSpace(row[0])
		drawing := strings.TrimSpace(row[1])
		if name == "" || drawing == "" {
			continue
		}
		records = append(records, sketchRecord{Name: name, Drawing: drawing})
	}
	return records, nil
}
