package router

import (
	"github.com/gin-gonic/gin"
)

type RequestContext = gin.Context

type MiddlewareFunc = gin.HandlerFunc

// ServiceResult is the canonical outcome of a handler. It serializes to the
// public API envelope: {"success": bool, "message": ..., "data": ...} on
// success, and {"success": false, "message": ...} or
// {"success": false, "errors": [...]} on failure.
type ServiceResult struct {
	StatusCode int    `json:"-"`
	Data       any    `json:"data,omitempty"`
	Message    string `json:"message,omitempty"`
	Errors     any    `json:"errors,omitempty"`
}

type HandlerFunction func(*RequestContext) *ServiceResult

type RESTController struct {
	name         string
	mountPoint   string
	version      string
	handlerCount int
	prepare      func(*RouterService, *RESTController)
}

func (result *ServiceResult) ToJSON() gin.H {
	body := gin.H{"success": result.IsSuccess()}

	if result.Message != "" {
		body["message"] = result.Message
	}
	if result.Errors != nil {
		body["errors"] = result.Errors
		return body
	}
	if result.Data != nil {
		body["data"] = result.Data
	}
	return body
}

func (result *ServiceResult) IsSuccess() bool {
	return result.StatusCode >= 200 && result.StatusCode < 300
}

func (result *ServiceResult) IsError() bool {
	return result.StatusCode >= 400
}
