package table

import (
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

// ParseJSON 解析 JSON 行数组（形如 [{"var":"price",...},...]）。
// 表头取第一个对象的字段顺序；后续行必须包含全部表头字段，多余字段忽略。
func ParseJSON(raw []byte) (*Table, error) {
	doc := strings.TrimSpace(string(raw))
	if doc == "" {
		return nil, fmt.Errorf("json input is empty")
	}
	if !gjson.Valid(doc) {
		return nil, fmt.Errorf("json input is not valid json")
	}
	parsed := gjson.Parse(doc)
	if !parsed.IsArray() {
		return nil, fmt.Errorf("json input must be an array of row objects")
	}
	var (
		tbl    *Table
		rowErr error
		rowNum int
	)
	parsed.ForEach(func(_, row gjson.Result) bool {
		rowNum++
		if !row.IsObject() {
			rowErr = fmt.Errorf("row %d is not an object", rowNum)
			return false
		}
		if tbl == nil {
			var columns []string
			row.ForEach(func(key, _ gjson.Result) bool {
				columns = append(columns, key.String())
				return true
			})
			tbl, rowErr = New(columns)
			if rowErr != nil {
				return false
			}
		}
		cells := make([]string, 0, len(tbl.columns))
		for _, col := range tbl.columns {
			field := row.Get(col)
			if !field.Exists() {
				rowErr = fmt.Errorf("row %d is missing field %q", rowNum, col)
				return false
			}
			cells = append(cells, field.String())
		}
		rowErr = tbl.AppendRow(cells)
		return rowErr == nil
	})
	if rowErr != nil {
		return nil, rowErr
	}
	if tbl == nil {
		return nil, fmt.Errorf("json input has no rows")
	}
	return tbl, nil
}

// LoadJSON 读取 JSON 文件，schemaPath 非空时先做 schema 校验。
func LoadJSON(path, schemaPath string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if schemaPath != "" {
		if err := ValidateJSON(schemaPath, raw); err != nil {
			return nil, fmt.Errorf("schema validation failed for %s: %w", path, err)
		}
	}
	tbl, err := ParseJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("loading %s failed: %w", path, err)
	}
	return tbl, nil
}
