package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/andesedu/eventos-api/pkg/errors"
)

// Envelope is the response contract shared with the legacy front-end:
// {success, message, data, total} on success and
// {success:false, message, errorType, details} on failure.
type Envelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Total     *int        `json:"total,omitempty"`
	ErrorType string      `json:"errorType,omitempty"`
	Details   string      `json:"details,omitempty"`
}

// OK sends a success response carrying the result list and total count.
func OK(c *gin.Context, message string, data interface{}, total int) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data, Total: &total})
}

// Data sends a success response without a total count, for single-resource
// payloads.
func Data(c *gin.Context, message string, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

// Created sends a 201 response for newly persisted resources.
func Created(c *gin.Context, message string, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

// Empty signals a well-formed query with no matching records. The legacy
// contract keeps success:true while returning 404 and an empty list.
func Empty(c *gin.Context, message string) {
	total := 0
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusNotFound, Envelope{Success: true, Message: message, Data: []interface{}{}, Total: &total})
}

// Error converts any error into the failure shape, surfacing the typed code
// as errorType and the wrapped cause as details.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	envelope := Envelope{Success: false, Message: appErr.Message, ErrorType: appErr.Code}
	if appErr.Err != nil {
		envelope.Details = appErr.Err.Error()
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, envelope)
}
