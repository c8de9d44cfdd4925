package mysql

import (
	"errors"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// mysqlErrDuplicateEntry MySQL错误码: Duplicate entry 'xxx' for key 'yyy'
const mysqlErrDuplicateEntry = 1062

// isDuplicateError 判断是否为唯一索引冲突
// 1. TranslateError开启时GORM返回ErrDuplicatedKey
// 2. 否则直接检查驱动错误码
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var myErr *gomysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlErrDuplicateEntry
}
