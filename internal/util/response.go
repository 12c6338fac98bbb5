package util

import (
	"net/http"

	"treasure_hunt_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// All endpoints answer with a flat envelope the hunt client switches on:
// {"success": true, ...payload} or {"success": false, "message": "..."}.

func Success(c *gin.Context, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["success"] = true
	c.JSON(http.StatusOK, payload)
}

func Created(c *gin.Context, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["success"] = true
	c.JSON(http.StatusCreated, payload)
}

func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"success": false,
		"message": message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	Fail(c, http.StatusUnauthorized, message)
}

func Forbidden(c *gin.Context) {
	Fail(c, http.StatusForbidden, "forbidden")
}

func InternalServerError(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, "internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("internal server error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	InternalServerError(c)
}

// DomainError writes a mapped status for known domain errors and a logged
// 500 for everything else.
func DomainError(c *gin.Context, err error) {
	if status, ok := HTTPStatus(err); ok {
		Fail(c, status, err.Error())
		return
	}
	LogInternalError(c, err)
}
