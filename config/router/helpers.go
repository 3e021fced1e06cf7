package router

import (
	"net/http"

	"github.com/oneapp-labs/waitlist-api/internal/log"
)

func GetLogger(ctx *RequestContext) *log.Logger {
	if logger := ctx.Request.Context().Value(log.LoggerKeyForContext); logger != nil {
		if l, ok := logger.(*log.Logger); ok {
			return l
		}
	}

	baseLogger := log.NewLoggerWithJSONOutput()
	return baseLogger.WithCorrelationID(ctx.Request.Context())
}

func OKResult(data any, message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusOK,
		Data:       data,
		Message:    message,
	}
}

func CreatedResult(data any, message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusCreated,
		Data:       data,
		Message:    message,
	}
}

func TooManyRequestsResult(message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusTooManyRequests,
		Message:    message,
	}
}

func BadRequestResult(message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusBadRequest,
		Message:    message,
	}
}

// ValidationErrorResult reports every field violation at once in the errors
// array of the envelope.
func ValidationErrorResult(violations any) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusBadRequest,
		Errors:     violations,
	}
}

func UnauthorizedResult(message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusUnauthorized,
		Message:    message,
	}
}

func NotFoundResult(message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusNotFound,
		Message:    message,
	}
}

func InternalServerErrorResult(message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusInternalServerError,
		Message:    message,
	}
}

func ErrorResult(statusCode int, message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: statusCode,
		Message:    message,
	}
}
