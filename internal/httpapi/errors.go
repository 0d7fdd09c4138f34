package httpapi

import (
	"errors"
	"net/http"

	"github.com/ashlinalex1/mindstride/internal/app"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// newHTTPErrorHandler maps domain and validation errors onto JSON responses.
// Anything unrecognized is a 500 and is passed to onServerError.
func newHTTPErrorHandler(v *requestValidator, onServerError func(error, echo.Context)) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var (
			code    int
			message interface{}
			httpErr *echo.HTTPError
			reqErr  *app.RequestError
			valErrs validator.ValidationErrors
		)

		switch {
		case errors.As(err, &valErrs):
			code = http.StatusBadRequest
			message = echo.Map{"error": "validation failed", "fields": v.fieldErrors(valErrs)}
		case errors.As(err, &reqErr):
			code = http.StatusBadRequest
			message = echo.Map{"error": reqErr.Message, "code": reqErr.Code}
		case errors.As(err, &httpErr):
			if herr, ok := httpErr.Internal.(*echo.HTTPError); ok {
				httpErr = herr
			}
			code = httpErr.Code
			message = httpErr.Message
			if m, ok := message.(string); ok {
				message = echo.Map{"error": m}
			}
		default:
			code = http.StatusInternalServerError
			message = echo.Map{"error": http.StatusText(code)}
			if onServerError != nil {
				onServerError(err, ctx)
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = echo.Map{"error": err.Error()}
		}

		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
