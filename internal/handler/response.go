package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform JSON body every endpoint returns.
type Envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Meta    any    `json:"meta,omitempty"`
}

func Ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Code: 0, Message: "ok", Data: data})
}

func OkWithMeta(c *gin.Context, data any, meta any) {
	c.JSON(http.StatusOK, Envelope{Code: 0, Message: "ok", Data: data, Meta: meta})
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Code: status, Message: message})
}
