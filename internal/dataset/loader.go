package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Обязательные колонки CSV.
const (
	columnTask   = "task"
	columnStart  = "start_date"
	columnEnd    = "end_date"
	columnStatus = "status"
)

// dateLayouts: поддерживаемые форматы дат, проверяются по порядку.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
}

// Loader читает датасеты из файловой системы.
type Loader struct{}

// NewLoader создаёт Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load читает CSV по пути ref.
func (l *Loader) Load(ctx context.Context, ref string) (*Data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataLoad, err)
	}
	defer f.Close()

	data, err := Parse(f)
	if err != nil {
		return nil, err
	}
	data.Source = ref
	return data, nil
}

// Parse разбирает CSV из r.
func Parse(r io.Reader) (*Data, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrDataLoad)
		}
		return nil, fmt.Errorf("%w: read header: %v", ErrDataLoad, err)
	}

	columns, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	data := &Data{}
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrDataLoad, line, err)
		}

		record, err := parseRecord(row, columns)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrDataLoad, line, err)
		}
		data.Records = append(data.Records, record)
	}

	return data, nil
}

// indexColumns возвращает позиции обязательных колонок.
func indexColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, required := range []string{columnTask, columnStart, columnEnd, columnStatus} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrDataLoad, required)
		}
	}
	return columns, nil
}

func parseRecord(row []string, columns map[string]int) (Record, error) {
	start, err := parseDate(row[columns[columnStart]])
	if err != nil {
		return Record{}, fmt.Errorf("start_date: %w", err)
	}

	end, err := parseDate(row[columns[columnEnd]])
	if err != nil {
		return Record{}, fmt.Errorf("end_date: %w", err)
	}

	return Record{
		Task:   row[columns[columnTask]],
		Start:  start,
		End:    end,
		Status: Status(row[columns[columnStatus]]),
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
