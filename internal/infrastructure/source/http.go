package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/sync/singleflight"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// HTTPSource 通过HTTP拉取完整目录
//
// 远端返回统一响应结构，data是 ISBN → 图书 的对象：
//
//	{"code":0,"message":"success","data":{"1":{"author":"...","title":"...","reviews":{}}}}
//
// 1. 用jsoniter的流式API逐个读取key，保留远端的插入顺序
// 2. 并发的FetchAll用singleflight合并成一次请求
// 3. 单个调用方取消只影响它自己，共享的请求由client超时兜底
type HTTPSource struct {
	client *http.Client
	url    string
	group  singleflight.Group
}

// NewHTTPSource 创建HTTP数据源
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		client: &http.Client{Timeout: timeout},
		url:    url,
	}
}

// FetchAll 实现book.Source
func (s *HTTPSource) FetchAll(ctx context.Context) ([]*book.Book, error) {
	ch := s.group.DoChan(s.url, func() (interface{}, error) {
		return s.fetch(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]*book.Book), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *HTTPSource) fetch(ctx context.Context) ([]*book.Book, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("构造请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("请求远端目录失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// 读掉body以便连接复用
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("远端目录返回状态码%d", resp.StatusCode)
	}

	return decodeCatalog(resp.Body)
}

type remoteRecord struct {
	Author  string            `json:"author"`
	Title   string            `json:"title"`
	Reviews map[string]string `json:"reviews"`
}

// decodeCatalog 解析统一响应结构，按出现顺序返回data中的图书
// 顶层和data都必须是对象，缺少data或data为null都视为拉取失败
func decodeCatalog(r io.Reader) ([]*book.Book, error) {
	iter := jsoniter.Parse(jsoniter.ConfigCompatibleWithStandardLibrary, r, 4096)

	if next := iter.WhatIsNext(); next != jsoniter.ObjectValue {
		if iter.Error != nil {
			return nil, fmt.Errorf("解析远端目录失败: %w", iter.Error)
		}
		return nil, fmt.Errorf("远端目录响应不是JSON对象")
	}

	var (
		code    int
		message string
		hasData bool
		books   = make([]*book.Book, 0)
		seen    = make(map[string]struct{})
		dataErr error
	)

	iter.ReadObjectCB(func(it *jsoniter.Iterator, field string) bool {
		switch field {
		case "code":
			code = it.ReadInt()
		case "message":
			message = it.ReadString()
		case "data":
			if it.WhatIsNext() != jsoniter.ObjectValue {
				it.Skip()
				if code == 0 {
					dataErr = fmt.Errorf("远端目录data不是对象")
				}
				return it.Error == nil
			}
			hasData = true
			it.ReadObjectCB(func(it *jsoniter.Iterator, isbn string) bool {
				if _, dup := seen[isbn]; dup {
					dataErr = fmt.Errorf("远端目录ISBN重复: %s", isbn)
					return false
				}
				seen[isbn] = struct{}{}

				var rec remoteRecord
				it.ReadVal(&rec)
				books = append(books, book.NewBook(isbn, rec.Author, rec.Title, rec.Reviews))
				return it.Error == nil
			})
		default:
			it.Skip()
		}
		return it.Error == nil && dataErr == nil
	})

	if iter.Error != nil {
		return nil, fmt.Errorf("解析远端目录失败: %w", iter.Error)
	}
	if code != 0 {
		return nil, fmt.Errorf("远端目录返回错误[%d]: %s", code, message)
	}
	if dataErr != nil {
		return nil, dataErr
	}
	if !hasData {
		return nil, fmt.Errorf("远端目录响应缺少data")
	}
	return books, nil
}
