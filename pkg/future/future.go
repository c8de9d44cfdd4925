// Package future 提供一个最小的泛型Future（延迟执行 + 结果等待）
//
// 设计要点：
// 1. Go启动一个goroutine执行fn，fn的结果只写入一次
// 2. 失败通过error返回（rejected），与"成功但结果为空"严格区分
// 3. Await可以被ctx取消；fn本身也拿到同一个ctx，保证goroutine最终退出
//
// 示例：
//
//	f := future.Go(ctx, func(ctx context.Context) (*book.Book, error) {
//	    return source.Find(ctx, isbn)
//	})
//	b, err := f.Await(ctx)
package future

import (
	"context"
	"fmt"
)

// Future 异步计算结果
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Go 异步执行fn
// fn中的panic会被转换为error，避免拖垮整个进程
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				f.err = fmt.Errorf("future panic: %v", r)
			}
		}()
		f.value, f.err = fn(ctx)
	}()

	return f
}

// Resolved 返回一个已经完成的Future
func Resolved[T any](value T) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), value: value}
	close(f.done)
	return f
}

// Rejected 返回一个已经失败的Future
func Rejected[T any](err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), err: err}
	close(f.done)
	return f
}

// Then 在f成功后继续执行next；f失败时直接传递错误
func Then[T, U any](ctx context.Context, f *Future[T], next func(ctx context.Context, v T) (U, error)) *Future[U] {
	return Go(ctx, func(ctx context.Context) (U, error) {
		v, err := f.Await(ctx)
		if err != nil {
			var zero U
			return zero, err
		}
		return next(ctx, v)
	})
}

// Done 完成信号
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await 等待结果
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
