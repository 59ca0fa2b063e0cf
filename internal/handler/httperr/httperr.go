package httperr

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// Response is the body of every failed request: {"error":{"message":...}}.
type Response struct {
	Status int     `json:"-"`
	Error  Message `json:"error"`
}

type Message struct {
	Message string `json:"message"`
}

func New(status int, msg string) Response {
	return Response{Status: status, Error: Message{Message: msg}}
}

// Abort writes the response and records cause on the context for the request logger.
// A nil cause is recorded as the message itself.
func Abort(c *gin.Context, status int, cause error, msg string) {
	if cause == nil {
		cause = errors.New(msg)
	}
	resp := New(status, msg)

	_ = c.Error(&gin.Error{
		Err:  cause,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

// Cause returns the error recorded by the last Abort, or nil.
func Cause(c *gin.Context) error {
	last := c.Errors.Last()
	if last == nil {
		return nil
	}
	return last.Err
}
