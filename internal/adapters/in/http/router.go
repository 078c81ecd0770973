package http

import (
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type RouterConfig struct {
	Spec           *openapi3.T
	AllowedOrigins []string
	// Middleware runs before validation, for example request metrics.
	Middleware []echo.MiddlewareFunc
}

// NewRouter builds the echo instance serving the order API.
func NewRouter(si ServerInterface, cfg RouterConfig) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(Tracing())
	e.Use(cfg.Middleware...)
	e.Use(CORS(cfg.AllowedOrigins))

	if cfg.Spec != nil {
		validator, err := RequestValidator(cfg.Spec)
		if err != nil {
			return nil, err
		}
		e.Use(validator)
	}

	RegisterHandlers(e, si, ActorMiddleware())
	return e, nil
}
