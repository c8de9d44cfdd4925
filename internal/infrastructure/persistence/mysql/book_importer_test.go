package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// dryRunDB 只生成SQL，不连接数据库
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "root:pw@tcp(127.0.0.1:3306)/bookcatalog",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestStaleRows_RemovesBooksMissingFromImport(t *testing.T) {
	db := dryRunDB(t)
	isbns := []string{"1", "2"}

	books := db.ToSQL(func(tx *gorm.DB) *gorm.DB { return staleBooks(tx, isbns) })
	assert.Equal(t, "DELETE FROM `books` WHERE isbn NOT IN ('1','2')", books)

	reviews := db.ToSQL(func(tx *gorm.DB) *gorm.DB { return staleReviews(tx, isbns) })
	assert.Equal(t, "DELETE FROM `reviews` WHERE book_isbn NOT IN ('1','2')", reviews)
}

func TestStaleRows_EmptyImportClearsCatalog(t *testing.T) {
	db := dryRunDB(t)

	books := db.ToSQL(func(tx *gorm.DB) *gorm.DB { return staleBooks(tx, nil) })
	assert.Equal(t, "DELETE FROM `books`", books)

	reviews := db.ToSQL(func(tx *gorm.DB) *gorm.DB { return staleReviews(tx, []string{}) })
	assert.Equal(t, "DELETE FROM `reviews`", reviews)

	// 没有AllowGlobalUpdate时GORM会拒绝无条件删除
	assert.NoError(t, staleBooks(db.Session(&gorm.Session{DryRun: true}), nil).Error)
}
