package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CatalogKey 完整目录快照的缓存key
const CatalogKey = "catalog:all"

// cachedBook 缓存中的单条记录
// 目录以数组形式缓存，反序列化后顺序不变
type cachedBook struct {
	ISBN    string            `json:"isbn"`
	Author  string            `json:"author"`
	Title   string            `json:"title"`
	Reviews map[string]string `json:"reviews"`
}

// CatalogCache 完整目录的旁路缓存（Cache-Aside）
// 目录只读，不存在更新后失效的问题，只靠TTL过期
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache 创建目录缓存
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

// Get 读取缓存
// 未命中返回(nil, false, nil)，调用方回源
func (c *CatalogCache) Get(ctx context.Context) ([]*book.Book, bool, error) {
	val, err := c.client.Get(ctx, CatalogKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("获取缓存失败: %w", err)
	}

	var records []cachedBook
	if err := json.Unmarshal(val, &records); err != nil {
		return nil, false, fmt.Errorf("反序列化失败: %w", err)
	}

	books := make([]*book.Book, len(records))
	for i, r := range records {
		books[i] = book.NewBook(r.ISBN, r.Author, r.Title, r.Reviews)
	}
	return books, true, nil
}

// Set 写入缓存
func (c *CatalogCache) Set(ctx context.Context, books []*book.Book) error {
	records := make([]cachedBook, len(books))
	for i, b := range books {
		records[i] = cachedBook{ISBN: b.ISBN, Author: b.Author, Title: b.Title, Reviews: b.Reviews}
	}

	val, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}

	if err := c.client.Set(ctx, CatalogKey, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("设置缓存失败: %w", err)
	}
	return nil
}

// Invalidate 删除缓存（seed导入后调用）
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, CatalogKey).Err(); err != nil {
		return fmt.Errorf("删除缓存失败: %w", err)
	}
	return nil
}
