package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// ErrServer is the message sent for failures that are not request errors.
const ErrServer = "Server error"

// Context carries the gin context together with a context.Context that
// middleware may enrich (claims, the current user).
type Context struct {
	*gin.Context
	Ctx context.Context
	log *slog.Logger
}

func NewContext(gc *gin.Context, log *slog.Logger) *Context {
	return &Context{
		Context: gc,
		Ctx:     gc.Request.Context(),
		log:     log,
	}
}

// Respond writes data as JSON with the given status.
func (c *Context) Respond(data any, status int) error {
	c.JSON(status, data)
	return nil
}

// RespondError turns err into the error envelope. Request errors keep their
// status and message; anything else is logged and reported as a 500.
func (c *Context) RespondError(err error) error {
	if webErr, ok := IsRequestError(err); ok {
		if webErr.Status >= http.StatusInternalServerError {
			c.log.Error("request failed",
				slog.String("path", c.Request.URL.Path),
				slog.Int("status", webErr.Status),
				slog.Any("error", webErr.Err))
		}
		c.AbortWithStatusJSON(webErr.Status, ErrorResponse{Error: webErr.Error()})
		return nil
	}

	c.log.Error("request failed",
		slog.String("path", c.Request.URL.Path),
		slog.Int("status", http.StatusInternalServerError),
		slog.Any("error", err))
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: ErrServer})

	return nil
}

// BindFunc decodes the JSON body into data and, when fields are given,
// validates just those fields against their `validate` tags.
func (c *Context) BindFunc(data any, fields ...string) error {
	if err := c.ShouldBindJSON(data); err != nil {
		return NewRequestError(errors.Wrap(err, "invalid request body"), http.StatusBadRequest)
	}

	if len(fields) > 0 {
		return ValidateStruct(data, fields...)
	}

	return nil
}

// BindOptional is BindFunc for partial updates: a request without a body
// leaves data untouched.
func (c *Context) BindOptional(data any) error {
	if err := c.ShouldBindJSON(data); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return NewRequestError(errors.Wrap(err, "invalid request body"), http.StatusBadRequest)
	}

	return nil
}

// Param returns a path parameter with surrounding blanks removed.
func (c *Context) Param(key string) string {
	return trimSpace(c.Context.Param(key))
}

// GetQueryFunc returns a pointer to the query value for key, or nil if the
// key is missing or empty. The value is passed through as sent.
func (c *Context) GetQueryFunc(key string) *string {
	v, ok := c.GetQuery(key)
	if !ok || v == "" {
		return nil
	}
	return &v
}
