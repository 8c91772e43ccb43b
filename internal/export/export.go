// Package export writes vehicle records as CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"carvaluator/internal/models"
)

// WriteCSV writes a header row followed by one row per record
func WriteCSV(w io.Writer, records []models.VehicleRecord, withLocation bool) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.CSVHeader(withLocation)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.CSVRow(withLocation)); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes records as an indented JSON array
func WriteJSON(w io.Writer, records []models.VehicleRecord) error {
	if records == nil {
		records = []models.VehicleRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// FileExporter writes records to Path, choosing the format from its extension
type FileExporter struct {
	Path         string
	WithLocation bool
}

// Export replaces the file at Path with records
func (e FileExporter) Export(records []models.VehicleRecord) error {
	if e.Path == "" {
		return nil
	}
	if dir := filepath.Dir(e.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	file, err := os.Create(e.Path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", e.Path, err)
	}

	write := func(w io.Writer) error { return WriteCSV(w, records, e.WithLocation) }
	if strings.EqualFold(filepath.Ext(e.Path), ".json") {
		write = func(w io.Writer) error { return WriteJSON(w, records) }
	}
	if err := writeAndClose(file, write); err != nil {
		return fmt.Errorf("failed to export %s: %w", e.Path, err)
	}

	fmt.Printf("💾 Exported %d records to %s\n", len(records), e.Path)
	return nil
}

// writeAndClose always closes wc. A close failure is reported only when the write succeeded,
// since buffered data may not have reached disk.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) error {
	if err := write(wc); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close: %w", err)
	}
	return nil
}
