package table

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidateJSON 用给定的 JSON Schema 校验输入文档。
// 校验发生在任何表格解析之前，schema 不合法与文档不合规都直接报错。
func ValidateJSON(schemaPath string, doc []byte) error {
	schema, err := jsonschema.Compile(schemaPath)
	if err != nil {
		return fmt.Errorf("compiling schema failed: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return fmt.Errorf("decoding input failed: %w", err)
	}
	return schema.Validate(value)
}
