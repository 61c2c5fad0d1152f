package tornado

import (
	"errors"
	"fmt"
)

// SchemaError 表示输入表缺少某个必需列。在任何数值计算之前抛出。
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("input table is missing column %q", e.Column)
}

// ErrEmptyInput 表示输入表没有数据行，min/max 无定义。
var ErrEmptyInput = errors.New("input table has no rows")
