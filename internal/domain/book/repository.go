package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现(memory / mysql)
// 2. 目录是只读的,接口不包含任何写方法(数据由外部加载器导入)
// 3. 便于在测试中注入独立的目录实例
type Repository interface {
	// List 按插入顺序返回全部图书,空目录返回空切片
	List(ctx context.Context) ([]*Book, error)

	// FindByISBN 根据ISBN查找图书
	// 如果不存在,返回ErrBookNotFound
	FindByISBN(ctx context.Context, isbn string) (*Book, error)
}

// Source 间接数据源(异步查询路径的"一跳")
// 设计说明:
// 1. 异步路径先通过Source拉取完整目录,再在本地用同一个谓词过滤
// 2. 实现可以是进程内委托(LocalSource),也可以是真实的HTTP调用
// 3. 测试可以注入一个总是失败的Source来验证INTERNAL_ERROR
type Source interface {
	// FetchAll 拉取完整目录(按插入顺序)
	FetchAll(ctx context.Context) ([]*Book, error)
}

// SourceFunc 函数适配器,方便测试
type SourceFunc func(ctx context.Context) ([]*Book, error)

// FetchAll 实现Source
func (f SourceFunc) FetchAll(ctx context.Context) ([]*Book, error) {
	return f(ctx)
}
