package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/filmvault/theater-backend/internal/platform/apierr"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondAPIError maps an error chain onto the wire: apierr statuses pass
// through, anything else becomes a 500 with a generic message so internal
// detail never leaks.
func RespondAPIError(c *gin.Context, err error) {
	apiErr := apierr.From(err)
	if apiErr.Status == http.StatusInternalServerError {
		c.JSON(http.StatusInternalServerError, ErrorEnvelope{
			Error: APIError{
				Message: "internal server error",
				Code:    apiErr.Code,
			},
		})
		return
	}
	RespondError(c, apiErr.Status, apiErr.Code, apiErr)
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
