package fibergql

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql/gqlerrors"
)

// Fixed client-facing messages for the non-execution failure modes.
const (
	msgMustProvideQuery  = "Must provide query string."
	msgInvalidJSON       = "POST body sent invalid JSON."
	msgInvalidVariables  = "Variables are invalid JSON."
	msgMethodNotAllowed  = "GraphQL only supports GET and POST requests."
	msgOptionsNeedSchema = "GraphQL middleware options must contain a schema."
)

// httpError is a request-pipeline failure carrying its HTTP status.
type httpError struct {
	Status  int
	Message string
}

func (e *httpError) Error() string { return e.Message }

var (
	errInvalidJSON      = &httpError{Status: http.StatusBadRequest, Message: msgInvalidJSON}
	errInvalidVariables = &httpError{Status: http.StatusBadRequest, Message: msgInvalidVariables}
)

// errorResponse is the body shape for every failed request: an errors
// array and no data key.
type errorResponse struct {
	Errors []gqlerrors.FormattedError `json:"errors"`
}

// formatErrors maps pipeline or engine errors through the configured
// formatter, falling back to the engine's own formatting.
func formatErrors(cfg *Config, errs ...error) []gqlerrors.FormattedError {
	formatted := make([]gqlerrors.FormattedError, len(errs))
	for i, err := range errs {
		if cfg != nil && cfg.FormatErrorFn != nil {
			formatted[i] = cfg.FormatErrorFn(err)
			continue
		}
		formatted[i] = gqlerrors.FormatError(err)
	}
	return formatted
}

// reformat re-runs already-formatted engine errors through the
// configured formatter, if any.
func reformat(cfg *Config, errs []gqlerrors.FormattedError) []gqlerrors.FormattedError {
	if cfg == nil || cfg.FormatErrorFn == nil || len(errs) == 0 {
		return errs
	}
	formatted := make([]gqlerrors.FormattedError, len(errs))
	for i, fe := range errs {
		formatted[i] = cfg.FormatErrorFn(fe)
	}
	return formatted
}

// writeErrors sends an errors-only JSON body with the given status.
func writeErrors(c *fiber.Ctx, cfg *Config, status int, errs ...error) error {
	return writeFormattedErrors(c, cfg, status, formatErrors(cfg, errs...))
}

func writeFormattedErrors(c *fiber.Ctx, cfg *Config, status int, errs []gqlerrors.FormattedError) error {
	pretty := cfg != nil && cfg.Pretty
	body, err := encodeJSON(errorResponse{Errors: errs}, pretty)
	if err != nil {
		return fiber.ErrInternalServerError
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	return c.Status(status).Send(body)
}
