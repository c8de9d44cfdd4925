package dispatch

import (
	"errors"
	"net/http"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Kind 调度结果分类
type Kind int

const (
	KindSuccess Kind = iota
	KindValidationError
	KindNotFound
	KindConflict
	KindInternalError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "SUCCESS"
	case KindValidationError:
		return "VALIDATION_ERROR"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	case KindInternalError:
		return "INTERNAL_ERROR"
	default:
		return "UNKNOWN"
	}
}

// HTTPStatus 对应的HTTP状态码
func (k Kind) HTTPStatus() int {
	switch k {
	case KindSuccess:
		return http.StatusOK
	case KindValidationError:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Outcome 调度结果
// 失败时Payload恒为nil，Message是简短的用户提示
type Outcome struct {
	Kind    Kind
	Code    int
	Message string
	Payload interface{}
}

// Success 成功结果
func Success(message string, payload interface{}) Outcome {
	return Outcome{Kind: KindSuccess, Code: 0, Message: message, Payload: payload}
}

// Failure 由错误构造失败结果
func Failure(err error) Outcome {
	appErr := apperrors.GetAppError(err)
	return Outcome{Kind: Classify(err), Code: appErr.Code, Message: appErr.Message}
}

// Classify 错误 → 结果分类
//
//	404xx          → NOT_FOUND
//	409xx          → VALIDATION_ERROR
//	40003 / 40009  → CONFLICT
//	其他（含非AppError） → INTERNAL_ERROR
func Classify(err error) Kind {
	if err == nil {
		return KindSuccess
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return KindInternalError
	}

	switch code := appErr.Code; {
	case code >= 40400 && code < 40500:
		return KindNotFound
	case code >= 40900 && code < 41000:
		return KindValidationError
	case code == apperrors.ErrCodeUsernameDuplicate, code == apperrors.ErrCodeDuplicateEntry:
		return KindConflict
	default:
		return KindInternalError
	}
}
