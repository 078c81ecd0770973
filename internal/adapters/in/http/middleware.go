package http

import (
	"errors"
	"net/http"

	"eatify/internal/core/domain/model/kernel"
	"eatify/internal/pkg/tracing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	HeaderActorRole  = "X-Actor-Role"
	HeaderActorEmail = "X-Actor-Email"

	actorKey = "actor"
)

// ActorMiddleware turns the identity headers forwarded by the gateway into a kernel.Actor.
// The headers are trusted as-is.
func ActorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header
			if header.Get(HeaderActorRole) == "" {
				return writeError(ctx, http.StatusUnauthorized, kindUnauthenticated, "missing "+HeaderActorRole)
			}

			role, err := kernel.ParseRole(header.Get(HeaderActorRole))
			if err != nil {
				return writeError(ctx, http.StatusUnauthorized, kindUnauthenticated, err.Error())
			}
			actor, err := kernel.NewActor(role, header.Get(HeaderActorEmail))
			if err != nil {
				return writeError(ctx, http.StatusUnauthorized, kindUnauthenticated, err.Error())
			}

			ctx.Set(actorKey, actor)
			return next(ctx)
		}
	}
}

func actorFrom(ctx echo.Context) kernel.Actor {
	actor, _ := ctx.Get(actorKey).(kernel.Actor)
	return actor
}

// RequestValidator checks requests against doc. Routes the document does not describe,
// such as /health, pass through untouched.
func RequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()

			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				var routeErr *routers.RouteError
				if errors.As(findErr, &routeErr) {
					return next(ctx)
				}
				return respondError(ctx, findErr)
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return writeError(ctx, http.StatusBadRequest, "validation", validationMessage(err))
			}

			return next(ctx)
		}
	}, nil
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.Parameter != nil {
			return "parameter " + reqErr.Parameter.Name + ": " + reqErr.Reason + reasonSuffix(reqErr.Err)
		}
		if reqErr.RequestBody != nil {
			return "request body: " + reqErr.Reason + reasonSuffix(reqErr.Err)
		}
	}
	return err.Error()
}

func reasonSuffix(err error) string {
	if err == nil {
		return ""
	}
	return ": " + err.Error()
}

// Tracing opens one span per request, named after the route template.
func Tracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()
			spanCtx, span := tracing.Start(req.Context(), req.Method+" "+ctx.Path())
			defer span.End()

			ctx.SetRequest(req.WithContext(spanCtx))
			err := next(ctx)

			status := ctx.Response().Status
			span.SetAttributes(
				attribute.String("http.method", req.Method),
				attribute.String("http.route", ctx.Path()),
				attribute.Int("http.status_code", status),
			)
			if err != nil || status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
			return err
		}
	}
}

// CORS allows the web clients listed in origins. An empty list allows any origin.
func CORS(origins []string) echo.MiddlewareFunc {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			HeaderActorRole,
			HeaderActorEmail,
		},
	})
}
