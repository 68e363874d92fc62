package fibergql

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/graphql-go/graphql/language/source"
	"github.com/jensneuse/abstractlogger"
)

// New returns a Fiber handler serving GraphQL requests against a fixed
// configuration. It panics on a nil config or a config without a schema;
// use NewFunc when the configuration must be resolved per request.
//
// Mount it on both GET and POST:
//
//	app.All("/graphql", fibergql.New(&fibergql.Config{Schema: &schema}))
func New(config *Config) fiber.Handler {
	if config == nil {
		panic("fibergql: nil config")
	}
	if config.Schema == nil {
		panic("fibergql: " + msgOptionsNeedSchema)
	}
	return NewFunc(func(*fiber.Ctx) (*Config, error) {
		return config, nil
	})
}

// NewFunc returns a Fiber handler whose configuration is resolved for
// every request. Resolution errors, a nil config, and a missing schema
// all map to HTTP 500.
func NewFunc(fn ConfigFunc) fiber.Handler {
	if fn == nil {
		panic("fibergql: nil config func")
	}

	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodGet && c.Method() != fiber.MethodPost {
			c.Set(fiber.HeaderAllow, "GET, POST")
			return writeErrors(c, nil, http.StatusMethodNotAllowed,
				&httpError{Status: http.StatusMethodNotAllowed, Message: msgMethodNotAllowed})
		}

		params, perr := parseParams(c)
		if perr != nil {
			return writeErrors(c, nil, http.StatusBadRequest, perr)
		}

		cfg, err := fn(c)
		if err != nil {
			return writeErrors(c, cfg, http.StatusInternalServerError, err)
		}
		if cfg == nil || cfg.Schema == nil {
			return writeErrors(c, cfg, http.StatusInternalServerError,
				&httpError{Status: http.StatusInternalServerError, Message: msgOptionsNeedSchema})
		}

		logger := cfg.log()
		showIDE := cfg.ideEnabled() && !params.Raw && acceptsHTML(c)

		if params.Query == "" {
			// An HTML-accepting request without a query gets the IDE so
			// the user can type one.
			if showIDE {
				return renderIDE(c, cfg, &params, nil)
			}
			return writeErrors(c, cfg, http.StatusBadRequest,
				&httpError{Status: http.StatusBadRequest, Message: msgMustProvideQuery})
		}

		src := source.NewSource(&source.Source{
			Body: []byte(params.Query),
			Name: "GraphQL request",
		})
		doc, err := parser.Parse(parser.ParseParams{Source: src})
		if err != nil {
			logger.Debug("fibergql: query parse failed", abstractlogger.Error(err))
			return writeErrors(c, cfg, http.StatusBadRequest, err)
		}

		if c.Method() == fiber.MethodGet {
			if op := operationType(doc, params.OperationName); op != "" && op != "query" {
				// Hand the operation to the IDE instead of performing a
				// side effect over GET.
				if showIDE {
					return renderIDE(c, cfg, &params, nil)
				}
				c.Set(fiber.HeaderAllow, fiber.MethodPost)
				return writeErrors(c, cfg, http.StatusMethodNotAllowed, &httpError{
					Status:  http.StatusMethodNotAllowed,
					Message: fmt.Sprintf("Can only perform a %s operation from a POST request.", op),
				})
			}
		}

		if cfg.Security != nil {
			if err := cfg.Security.Check(doc); err != nil {
				logger.Debug("fibergql: security limit rejected query", abstractlogger.Error(err))
				return writeErrors(c, cfg, http.StatusBadRequest, err)
			}
		}

		if vr := graphql.ValidateDocument(cfg.Schema, doc, cfg.validationRules()); !vr.IsValid {
			logger.Debug("fibergql: validation failed",
				abstractlogger.Int("errors", len(vr.Errors)))
			return writeFormattedErrors(c, cfg, http.StatusBadRequest, reformat(cfg, vr.Errors))
		}

		ctx := cfg.executionContext(c)
		result := graphql.Execute(graphql.ExecuteParams{
			Schema:        *cfg.Schema,
			Root:          cfg.rootObject(c),
			AST:           doc,
			OperationName: params.OperationName,
			Args:          params.Variables,
			Context:       ctx,
		})
		result.Errors = reformat(cfg, result.Errors)
		if result.HasErrors() {
			logger.Debug("fibergql: execution completed with errors",
				abstractlogger.Int("errors", len(result.Errors)))
		}

		body, err := encodeJSON(result, cfg.Pretty)
		if err != nil {
			logger.Error("fibergql: response encoding failed", abstractlogger.Error(err))
			return writeErrors(c, cfg, http.StatusInternalServerError, err)
		}

		if cfg.ResultCallbackFn != nil {
			cfg.ResultCallbackFn(ctx, &params, result, body)
		}

		if showIDE {
			return renderIDE(c, cfg, &params, result)
		}

		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.Status(http.StatusOK).Send(body)
	}
}

// operationType returns the operation kind the request would run, or ""
// when the document does not name one unambiguously (the executor then
// reports its own error).
func operationType(doc *ast.Document, operationName string) string {
	var found string
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if operationName != "" {
			if op.Name != nil && op.Name.Value == operationName {
				return op.Operation
			}
			continue
		}
		if found != "" {
			// More than one candidate operation, ambiguous.
			return ""
		}
		found = op.Operation
	}
	return found
}

// acceptsHTML reports whether the client prefers HTML over JSON.
func acceptsHTML(c *fiber.Ctx) bool {
	return c.Accepts(fiber.MIMEApplicationJSON, fiber.MIMETextHTML) == fiber.MIMETextHTML
}

// renderIDE serves GraphiQL when enabled, Playground otherwise.
func renderIDE(c *fiber.Ctx, cfg *Config, params *RequestParams, result *graphql.Result) error {
	if cfg.graphiqlEnabled() {
		return renderGraphiQL(c, cfg.GraphiQLConfig, params, result, cfg.Pretty)
	}
	return renderPlayground(c)
}

func encodeJSON(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
