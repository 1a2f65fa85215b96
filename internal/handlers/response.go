package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondError writes the failure envelope {error, details?}. msg is the
// operator-facing message; err, when present, carries the underlying cause.
func RespondError(c *gin.Context, status int, msg string, err error) {
	body := gin.H{"error": msg}
	if err != nil {
		body["details"] = err.Error()
	}
	c.JSON(status, body)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
