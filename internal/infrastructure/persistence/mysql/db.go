package mysql

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true, // 唯一索引冲突转换为gorm.ErrDuplicatedKey
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	// 连接最大存活时间（防止数据库主动断开连接）
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Info("数据库连接成功",
		zap.String("host", cfg.Database.Host),
		zap.String("db", cfg.Database.DBName),
	)

	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&BookModel{},
		&ReviewModel{},
		&UserModel{},
	)
}

// BookModel GORM图书模型
// 设计说明:
// 1. ISBN有唯一索引,是目录的查找键,使用utf8mb4_bin排序规则区分大小写
// 2. Seq记录导入顺序,List按Seq升序返回(插入顺序)
// 3. Title/Author建普通索引,等值查询在应用层转小写比较
type BookModel struct {
	ID        uint          `gorm:"primaryKey"`
	ISBN      string        `gorm:"type:varchar(32) COLLATE utf8mb4_bin;uniqueIndex;not null;comment:ISBN号"`
	Seq       int           `gorm:"index;not null;comment:导入顺序"`
	Title     string        `gorm:"index;size:255;not null;comment:书名"`
	Author    string        `gorm:"index;size:255;not null;comment:作者"`
	Reviews   []ReviewModel `gorm:"foreignKey:BookISBN;references:ISBN"` // 一对多关联
	CreatedAt time.Time     `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// ReviewModel GORM书评模型
// (book_isbn, reviewer) 联合唯一: 同一评论者对同一本书只有一条书评
// BookISBN的排序规则必须与books.isbn一致(外键要求)
type ReviewModel struct {
	ID       uint   `gorm:"primaryKey"`
	BookISBN string `gorm:"type:varchar(32) COLLATE utf8mb4_bin;uniqueIndex:uk_book_reviewer;not null;comment:图书ISBN"`
	Reviewer string `gorm:"type:varchar(100) COLLATE utf8mb4_bin;uniqueIndex:uk_book_reviewer;not null;comment:评论者"`
	Content  string `gorm:"type:text;comment:书评内容"`
}

// TableName 指定表名
func (ReviewModel) TableName() string {
	return "reviews"
}

// UserModel GORM用户模型
// Username唯一索引: 跨进程部署时保证用户名唯一
// 默认的_ci排序规则会把Alice和alice视为同一个用户名,这里用utf8mb4_bin精确匹配
type UserModel struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"type:varchar(100) COLLATE utf8mb4_bin;uniqueIndex;not null;comment:用户名"`
	Password  string    `gorm:"size:255;not null;comment:密码"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}
