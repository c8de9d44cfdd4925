package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// BookImporter 目录导入器(外部加载器)
// 说明:
// 1. 目录对查询服务是只读的,写入只发生在cmd/seed导入阶段
// 2. 重复导入同一份数据是幂等的: ISBN冲突时更新书名/作者/顺序
// 3. 导入文件就是完整目录: 文件中不存在的图书及其书评会被删除
// 4. 整个导入在一个事务中完成
type BookImporter struct {
	db *gorm.DB
	tx *TxManager
}

// NewBookImporter 创建导入器
func NewBookImporter(db *gorm.DB) *BookImporter {
	return &BookImporter{db: db, tx: NewTxManager(db)}
}

// Import 导入图书,返回导入条数
func (i *BookImporter) Import(ctx context.Context, books []*book.Book) (int, error) {
	err := i.tx.Transaction(ctx, func(ctx context.Context) error {
		db := dbFromContext(ctx, i.db)

		isbns := make([]string, len(books))
		for idx, b := range books {
			isbns[idx] = b.ISBN
		}
		// 先删书评再删图书(外键)
		if err := staleReviews(db, isbns).Error; err != nil {
			return apperrors.Wrap(err, "清理过期书评失败")
		}
		if err := staleBooks(db, isbns).Error; err != nil {
			return apperrors.Wrap(err, "清理过期图书失败")
		}

		for seq, b := range books {
			model := BookModel{
				ISBN:   b.ISBN,
				Seq:    seq,
				Title:  b.Title,
				Author: b.Author,
			}
			err := db.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "isbn"}},
				DoUpdates: clause.AssignmentColumns([]string{"seq", "title", "author"}),
			}).Omit("Reviews").Create(&model).Error
			if err != nil {
				return apperrors.Wrapf(err, "导入图书失败: %s", b.ISBN)
			}

			if err := db.Where("book_isbn = ?", b.ISBN).Delete(&ReviewModel{}).Error; err != nil {
				return apperrors.Wrapf(err, "清理书评失败: %s", b.ISBN)
			}
			for reviewer, content := range b.Reviews {
				review := ReviewModel{BookISBN: b.ISBN, Reviewer: reviewer, Content: content}
				if err := db.Create(&review).Error; err != nil {
					return apperrors.Wrapf(err, "导入书评失败: %s", b.ISBN)
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(books), nil
}

// staleBooks 删除不在导入列表中的图书
// 列表为空时清空整张表(NOT IN空集合在GORM中不匹配任何行)
func staleBooks(db *gorm.DB, isbns []string) *gorm.DB {
	if len(isbns) == 0 {
		return db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&BookModel{})
	}
	return db.Where("isbn NOT IN ?", isbns).Delete(&BookModel{})
}

// staleReviews 删除不在导入列表中的图书的书评
func staleReviews(db *gorm.DB, isbns []string) *gorm.DB {
	if len(isbns) == 0 {
		return db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&ReviewModel{})
	}
	return db.Where("book_isbn NOT IN ?", isbns).Delete(&ReviewModel{})
}
