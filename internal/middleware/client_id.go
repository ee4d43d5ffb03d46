package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ClientIDHeader carries the caller's opaque client identity. There is no
// authentication on the wall; the id only scopes reaction records to one
// browser, the way the original app used local storage.
const ClientIDHeader = "X-Client-ID"

// ContextKeyClientID is the echo context key the client id is stored under.
const ContextKeyClientID = "clientID"

// ClientIDMiddleware reads the client id from the request header, minting a
// fresh one when the caller has none yet. The id is echoed back on the
// response so the client can persist it.
func ClientIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			clientID := c.Request().Header.Get(ClientIDHeader)
			if clientID == "" {
				clientID = uuid.NewString()
			}
			c.Set(ContextKeyClientID, clientID)
			c.Response().Header().Set(ClientIDHeader, clientID)
			return next(c)
		}
	}
}

// GetClientID returns the client id stored by ClientIDMiddleware.
func GetClientID(c echo.Context) string {
	if id, ok := c.Get(ContextKeyClientID).(string); ok {
		return id
	}
	return ""
}
