// Package fibergql is a GraphQL middleware for Fiber, binding the
// graphql-go execution engine to Fiber's request/response lifecycle.
//
// The package stays deliberately thin: query parsing, schema validation,
// and execution all belong to graphql-go. What lives here is the HTTP
// glue — extracting query/variables/operationName from the query string
// or body, resolving per-request configuration, mapping failures to
// status codes, and rendering JSON or an in-browser IDE page.
//
// # Features
//
//   - Parameters from GET query strings and JSON, graphql, url-encoded,
//     and multipart POST bodies
//   - Static configuration or a per-request config factory
//   - GraphiQL and GraphQL Playground pages for HTML-accepting requests
//   - Pluggable error formatting and a result callback hook
//   - Optional depth/alias/complexity/introspection limits
//   - Structured logging through abstractlogger (noop by default)
//
// # Quick Start
//
//	import (
//	    "github.com/fibergql/fibergql"
//	    "github.com/gofiber/fiber/v2"
//	)
//
//	func main() {
//	    app := fiber.New()
//	    app.All("/graphql", fibergql.New(&fibergql.Config{
//	        Schema:   &schema,
//	        GraphiQL: true,
//	    }))
//	    app.Listen(":8080")
//	}
//
// # Per-Request Configuration
//
// Use NewFunc when the schema, root value, or flags depend on the
// request:
//
//	app.All("/graphql", fibergql.NewFunc(func(c *fiber.Ctx) (*fibergql.Config, error) {
//	    return &fibergql.Config{
//	        Schema:    &schema,
//	        RootValue: map[string]interface{}{"token": bearerToken(c)},
//	        GraphiQL:  true,
//	    }, nil
//	}))
//
// # Status Codes
//
//   - 200: execution completed, including partial field errors
//   - 400: missing query, invalid JSON or variables, syntax or
//     validation failure, security-limit violation
//   - 405: non-GET/POST method, or a mutation/subscription over GET
//   - 500: config resolution failure or a config without a schema
package fibergql
