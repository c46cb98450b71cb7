package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/groceryhub/grocery-api/pkg/apperr"
	"github.com/groceryhub/grocery-api/pkg/response"
)

// authToken returns the session token the auth middleware validated.
func authToken(c *gin.Context) string {
	return c.GetString("authToken")
}

// writeError maps a typed error to its transport status. Internal faults
// never leak their message.
func writeError(c *gin.Context, err error) {
	msg := "internal error"
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Code != apperr.CodeInternal {
		msg = ae.Msg
	}
	response.Error[any](c, apperr.HTTPStatus(err), msg, string(apperr.CodeOf(err)))
}
