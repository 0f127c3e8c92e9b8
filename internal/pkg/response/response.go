// Package response renders the API's JSON envelope. Every endpoint answers
// either {"success": true, "data": ...} or {"success": false, "error": ...};
// handlers never write raw bodies.
package response

import "github.com/gin-gonic/gin"

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError is the machine-readable error body. Code is a stable identifier
// clients switch on; Message is for display.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, envelope{Success: true, Data: data})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, envelope{
		Success: false,
		Error:   &APIError{Code: code, Message: message},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, envelope{
		Success: false,
		Error:   &APIError{Code: code, Message: message, Details: details},
	})
}
