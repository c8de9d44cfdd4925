package book

import (
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrAuthorNotFound 没有该作者的图书
	ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeAuthorNotFound, "没有找到该作者的图书")

	// ErrTitleNotFound 没有该书名的图书
	ErrTitleNotFound = apperrors.New(apperrors.ErrCodeTitleNotFound, "没有找到该书名的图书")

	// ErrReviewsNotFound 图书不存在或没有书评(两种情况不做区分)
	ErrReviewsNotFound = apperrors.New(apperrors.ErrCodeReviewsNotFound, "没有找到该图书的书评")

	// ErrSourceUnavailable 间接数据源调用失败
	ErrSourceUnavailable = apperrors.ErrSourceUnavailable
)
