package utils

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskflow-dev/taskflow/internal/models"
)

func GetResourceID(ctx *gin.Context) (string, error) {
	id := strings.TrimSpace(ctx.Param("id"))

	if id == "" {
		return "", errors.New("Resource ID not found")
	}

	return id, nil
}

// GetEmailParam returns the normalized :email path segment.
func GetEmailParam(ctx *gin.Context) (string, error) {
	email := models.NormalizeEmail(ctx.Param("email"))

	if email == "" {
		return "", errors.New("Email not found")
	}

	return email, nil
}
