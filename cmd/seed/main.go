// seed 目录导入工具
// 把YAML/JSON目录文件导入MySQL，供storage.driver=mysql的服务使用
//
// 用法：
//
//	go run ./cmd/seed --file config/books.yaml
//	go run ./cmd/seed --config config/config.prod.yaml --file booksdb.json
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
