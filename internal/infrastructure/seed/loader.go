package seed

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// record 数据文件中单条图书记录
// ISBN不在记录内部，而是作为外层mapping的key
type record struct {
	Author  string            `yaml:"author"`
	Title   string            `yaml:"title"`
	Reviews map[string]string `yaml:"reviews"`
}

// LoadBooksFile 从YAML（或JSON）文件加载目录
func LoadBooksFile(path string) ([]*book.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取目录文件失败: %w", err)
	}
	return LoadBooks(bytes.NewReader(data))
}

// LoadBooks 解析目录数据
// 格式：
//
//	"1":
//	  author: Chinua Achebe
//	  title: Things Fall Apart
//	  reviews: {}
//
// 学习要点：
// 1. 直接Unmarshal到map会丢失key顺序，这里用yaml.Node逐个读取，保留插入顺序
// 2. JSON是YAML的子集，booksdb.json也可以直接加载
// 3. 重复的ISBN视为数据错误
func LoadBooks(r io.Reader) ([]*book.Book, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return []*book.Book{}, nil
		}
		return nil, fmt.Errorf("解析目录文件失败: %w", err)
	}

	if len(doc.Content) == 0 {
		return []*book.Book{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("目录文件第%d行: 顶层必须是 ISBN → 图书 的映射", root.Line)
	}

	books := make([]*book.Book, 0, len(root.Content)/2)
	seen := make(map[string]struct{}, len(root.Content)/2)

	// MappingNode的Content按 key, value, key, value... 排列
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]

		isbn := keyNode.Value
		if isbn == "" {
			return nil, fmt.Errorf("目录文件第%d行: ISBN不能为空", keyNode.Line)
		}
		if _, dup := seen[isbn]; dup {
			return nil, fmt.Errorf("目录文件第%d行: ISBN重复: %s", keyNode.Line, isbn)
		}
		seen[isbn] = struct{}{}

		var rec record
		if err := valueNode.Decode(&rec); err != nil {
			return nil, fmt.Errorf("目录文件第%d行: %w", valueNode.Line, err)
		}

		books = append(books, book.NewBook(isbn, rec.Author, rec.Title, rec.Reviews))
	}

	return books, nil
}
