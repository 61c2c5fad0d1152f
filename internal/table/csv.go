package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ReadCSV 从 reader 读取带表头的 CSV，第一行作为列名。
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("csv input is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header failed: %w", err)
	}
	tbl, err := New(header)
	if err != nil {
		return nil, err
	}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row failed: %w", err)
		}
		if err := tbl.AppendRow(record); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

// LoadCSV 读取 CSV 文件。
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tbl, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s failed: %w", path, err)
	}
	return tbl, nil
}
