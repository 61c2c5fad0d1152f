package table

import (
	"fmt"
	"strings"
)

// Table 是一个有序的行集合：一个表头加若干行，单元格以原始文本保存，
// 数值解析交给使用方。行与列的顺序都保持载入时的顺序。
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// New 根据表头构建空表。列名不允许为空或重复。
func New(columns []string) (*Table, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("table requires at least one column")
	}
	index := make(map[string]int, len(columns))
	names := make([]string, len(columns))
	for i, col := range columns {
		name := strings.TrimSpace(col)
		if name == "" {
			return nil, fmt.Errorf("column %d has an empty name", i)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		index[name] = i
		names[i] = name
	}
	return &Table{columns: names, index: index}, nil
}

// AppendRow 追加一行，单元格数量必须与表头一致。
func (t *Table) AppendRow(cells []string) error {
	if len(cells) != len(t.columns) {
		return fmt.Errorf("row %d has %d cells, expected %d", len(t.rows), len(cells), len(t.columns))
	}
	row := make([]string, len(cells))
	copy(row, cells)
	t.rows = append(t.rows, row)
	return nil
}

// Columns 返回表头的拷贝。
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn 判断列是否存在。
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len 返回行数。
func (t *Table) Len() int {
	return len(t.rows)
}

// Cell 返回指定行列的单元格文本。
func (t *Table) Cell(row int, column string) (string, bool) {
	if row < 0 || row >= len(t.rows) {
		return "", false
	}
	idx, ok := t.index[column]
	if !ok {
		return "", false
	}
	return t.rows[row][idx], true
}

// Column 按行顺序返回整列。列不存在时返回 false。
func (t *Table) Column(name string) ([]string, bool) {
	idx, ok := t.index[name]
	if !ok {
		return nil, false
	}
	out := make([]string, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[idx]
	}
	return out, true
}
