package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/janhavi-28/SEO-Agent/internal/common/errors"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
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

// RespondStandardError maps err to its HTTP status and writes the envelope.
// Details are only exposed for caller mistakes.
func RespondStandardError(c *gin.Context, err error) {
	stdErr := apperrors.Normalize(err)
	apiErr := APIError{
		Message: stdErr.Message,
		Code:    string(stdErr.Code),
	}
	if stdErr.Code == apperrors.ErrCodeInvalidInput {
		apiErr.Details = stdErr.Details
	}
	_ = c.Error(err)
	c.JSON(apperrors.HTTPStatus(stdErr.Code), ErrorEnvelope{Error: apiErr})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
