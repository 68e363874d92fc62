package fibergql

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
	"github.com/jensneuse/abstractlogger"
)

// Config configures a GraphQL handler instance.
//
// Only Schema is required; every other field has a working zero value.
//
// Schema & per-request values:
//   - Schema: the graphql-go schema executed for every request
//   - RootValue / RootValueFn: root object passed to resolvers (the
//     function form wins when both are set)
//   - ContextFn: context handed to the engine (defaults to c.UserContext())
//
// Response shaping:
//   - Pretty: indent the JSON response
//   - FormatErrorFn: rewrite each error before it is serialized
//   - ResultCallbackFn: observe the final result and rendered body
//
// In-browser IDE:
//   - GraphiQL / GraphiQLConfig: serve GraphiQL to HTML-accepting requests
//   - Playground: serve GraphQL Playground instead (GraphiQL wins if both
//     are enabled)
//
// Validation:
//   - ValidationRules: extra engine validation rules appended to
//     graphql.SpecifiedRules
//   - Security: AST-level depth/alias/complexity/introspection limits
//
// Example:
//
//	app.All("/graphql", fibergql.New(&fibergql.Config{
//	    Schema:   &schema,
//	    Pretty:   true,
//	    GraphiQL: true,
//	}))
type Config struct {
	// Schema is executed for every request. Required.
	Schema *graphql.Schema

	// RootValue is passed to resolvers as the root object.
	RootValue interface{}

	// RootValueFn derives the root object per request. Takes precedence
	// over RootValue when set.
	RootValueFn func(c *fiber.Ctx) interface{}

	// ContextFn derives the execution context per request.
	// Defaults to c.UserContext().
	ContextFn func(c *fiber.Ctx) context.Context

	// Pretty indents the JSON response body.
	Pretty bool

	// GraphiQL serves the GraphiQL IDE to HTML-accepting requests that
	// did not pass a raw parameter.
	GraphiQL bool

	// GraphiQLConfig customizes the GraphiQL page. Setting it implies
	// GraphiQL.
	GraphiQLConfig *GraphiQLConfig

	// Playground serves the GraphQL Playground IDE. Ignored when
	// GraphiQL is also enabled.
	Playground bool

	// ValidationRules are appended to graphql.SpecifiedRules when the
	// request document is validated against the schema.
	ValidationRules []graphql.ValidationRuleFn

	// Security applies AST-level limits before validation. Nil disables
	// all limit checks.
	Security *SecurityConfig

	// FormatErrorFn rewrites each error before serialization. The input
	// is either a gqlerrors.FormattedError or a plain error from the
	// request pipeline.
	FormatErrorFn func(err error) gqlerrors.FormattedError

	// ResultCallbackFn is invoked after execution with the request
	// parameters, the engine result, and the serialized response body.
	ResultCallbackFn func(ctx context.Context, params *RequestParams, result *graphql.Result, responseBody []byte)

	// Logger receives debug/error events. Defaults to a noop logger.
	Logger abstractlogger.Logger
}

// ConfigFunc resolves the handler configuration per request, letting the
// schema, root value, or IDE flags depend on the incoming request. A nil
// config, a config without a schema, or an error all surface as HTTP 500.
type ConfigFunc func(c *fiber.Ctx) (*Config, error)

func (cfg *Config) log() abstractlogger.Logger {
	if cfg != nil && cfg.Logger != nil {
		return cfg.Logger
	}
	return abstractlogger.NoopLogger
}

func (cfg *Config) graphiqlEnabled() bool {
	return cfg.GraphiQL || cfg.GraphiQLConfig != nil
}

func (cfg *Config) ideEnabled() bool {
	return cfg.graphiqlEnabled() || cfg.Playground
}

// rootObject resolves the root value for the current request.
func (cfg *Config) rootObject(c *fiber.Ctx) interface{} {
	if cfg.RootValueFn != nil {
		return cfg.RootValueFn(c)
	}
	return cfg.RootValue
}

// executionContext resolves the context handed to the engine.
func (cfg *Config) executionContext(c *fiber.Ctx) context.Context {
	if cfg.ContextFn != nil {
		if ctx := cfg.ContextFn(c); ctx != nil {
			return ctx
		}
	}
	return c.UserContext()
}

// validationRules returns graphql.SpecifiedRules with any configured
// extras appended. The specified set is copied so appends never alias
// the package-level slice.
func (cfg *Config) validationRules() []graphql.ValidationRuleFn {
	if len(cfg.ValidationRules) == 0 {
		return nil // ValidateDocument falls back to SpecifiedRules
	}
	rules := make([]graphql.ValidationRuleFn, 0, len(graphql.SpecifiedRules)+len(cfg.ValidationRules))
	rules = append(rules, graphql.SpecifiedRules...)
	rules = append(rules, cfg.ValidationRules...)
	return rules
}
