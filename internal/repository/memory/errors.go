package memory

import "fmt"

// errDuplicate 模拟唯一索引冲突
func errDuplicate(index string) error {
	return fmt.Errorf("duplicate key violates unique constraint %s", index)
}
