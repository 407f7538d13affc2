package data

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Frame is a raw tabular dataset: a header row plus string cells.
// Every row has exactly len(Header) cells.
type Frame struct {
	Header []string
	Rows   [][]string
}

// Column returns the index of the named column, or -1.
func (f *Frame) Column(name string) int {
	for i, h := range f.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Values copies out column c across all rows.
func (f *Frame) Values(c int) []string {
	out := make([]string, len(f.Rows))
	for i, row := range f.Rows {
		out[i] = row[c]
	}
	return out
}

// Select returns a new frame holding only the given columns, in the given order.
func (f *Frame) Select(cols []int) *Frame {
	out := &Frame{Header: make([]string, len(cols)), Rows: make([][]string, len(f.Rows))}
	for j, c := range cols {
		out.Header[j] = f.Header[c]
	}
	for i, row := range f.Rows {
		r := make([]string, len(cols))
		for j, c := range cols {
			r[j] = row[c]
		}
		out.Rows[i] = r
	}
	return out
}

// LoadCSV reads a whole CSV file with a header row into a Frame.
func LoadCSV(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("data: open %q: %w", path, err)
	}
	defer file.Close()

	f, err := ReadCSV(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("data: read %q: %w", path, err)
	}
	return f, nil
}

// ReadCSV parses CSV from r. The first record is the header.
// Cells are trimmed of surrounding whitespace.
func ReadCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty file: no header row")
	}
	if err != nil {
		return nil, err
	}

	f := &Frame{Header: trimAll(header)}
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		// csv.Reader already rejects rows with a different field count
		if err != nil {
			return nil, err
		}
		f.Rows = append(f.Rows, trimAll(rec))
	}
	return f, nil
}

func trimAll(rec []string) []string {
	out := make([]string, len(rec))
	for i, s := range rec {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
