// Package web is a thin layer over gin that lets handlers return errors and
// share one request context across the middleware chain.
package web

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler handles a single request. Returning an error means the handler
// could not even write an error response.
type Handler func(c *Context) error

// Middleware wraps a Handler to run code before or after it.
type Middleware func(Handler) Handler

// App is the entrypoint into the HTTP layer. Routes registered through Get,
// Post, Put, Patch and Delete run through the app middleware first and then
// through the route middleware.
type App struct {
	*gin.Engine
	log *slog.Logger
	mw  []Middleware
}

func NewApp(log *slog.Logger, mw ...Middleware) *App {
	engine := gin.New()
	engine.Use(gin.Recovery())

	return &App{
		Engine: engine,
		log:    log,
		mw:     mw,
	}
}

// Log returns the logger the app hands to every Context.
func (a *App) Log() *slog.Logger {
	return a.log
}

func (a *App) Handle(method, path string, handler Handler, mw ...Middleware) {
	handler = wrapMiddleware(mw, handler)
	handler = wrapMiddleware(a.mw, handler)

	a.Engine.Handle(method, path, func(gc *gin.Context) {
		c := NewContext(gc, a.log)
		if err := handler(c); err != nil {
			a.log.Error("unhandled error",
				slog.String("method", gc.Request.Method),
				slog.String("path", gc.Request.URL.Path),
				slog.Any("error", err))
		}
	})
}

func (a *App) Get(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodGet, path, handler, mw...)
}

func (a *App) Post(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodPost, path, handler, mw...)
}

func (a *App) Put(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodPut, path, handler, mw...)
}

func (a *App) Patch(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodPatch, path, handler, mw...)
}

func (a *App) Delete(path string, handler Handler, mw ...Middleware) {
	a.Handle(http.MethodDelete, path, handler, mw...)
}

// wrapMiddleware applies mw so that the first entry is the outermost one.
func wrapMiddleware(mw []Middleware, handler Handler) Handler {
	for i := len(mw) - 1; i >= 0; i-- {
		if h := mw[i]; h != nil {
			handler = h(handler)
		}
	}

	return handler
}
