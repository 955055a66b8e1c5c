package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

type RunRecord struct {
	ID       int
	TreeSize int
	RunMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates root/name/<timestamp> for one experiment's records.
func NewWriter(root, name string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405.000Z")
	baseDir := filepath.Join(root, name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) WriteRunRecords(records []RunRecord) error {
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.Itoa(record.Goroutines),
			record.Scheme,
			record.StartTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.Hands),
			strconv.Itoa(record.Events),
			strconv.Itoa(record.Faults),
			strconv.Itoa(record.NodesCreated),
			strconv.Itoa(record.TreeSize),
			strconv.FormatFloat(record.HandsPerSecond(), 'f', 2, 64),
		})
	}

	header := []string{"id", "goroutines", "scheme", "start_time", "duration", "hands", "events", "faults", "nodes_created", "tree_size", "hands_per_second"}
	return w.write("run_records.csv", header, rows)
}

// WriteCensus stores the node count per kind of finished trees, one tree per
// seat.
func (w *Writer) WriteCensus(censuses []map[string]int) error {
	rows := [][]string{}
	for seat, census := range censuses {
		kinds := make([]string, 0, len(census))
		for kind := range census {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)

		for _, kind := range kinds {
			rows = append(rows, []string{strconv.Itoa(seat), kind, strconv.Itoa(census[kind])})
		}
	}
	return w.write("census.csv", []string{"seat", "kind", "nodes"}, rows)
}

func (w *Writer) write(file string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, file)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", file, err)
	}

	for _, row := range rows {
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write %s row: %w", file, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
