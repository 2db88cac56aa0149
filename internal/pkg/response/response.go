// Package response defines the JSON envelope every API handler emits:
// {"data": ...} on success, {"error": {"code", "message"}} on failure.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type successBody struct {
	Data interface{} `json:"data"`
}

type errorBody struct {
	Error APIError `json:"error"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, successBody{Data: data})
}

func Error(c *gin.Context, status int, code, message string) {
	c.JSON(status, errorBody{Error: APIError{Code: code, Message: message}})
}
