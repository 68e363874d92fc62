package fibergql

import (
	"encoding/json"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

const graphiqlVersion = "1.5.16"

// GraphiQLConfig customizes the GraphiQL page served to HTML-accepting
// requests.
type GraphiQLConfig struct {
	// DefaultQuery seeds the editor when the request carried no query.
	DefaultQuery string

	// HeaderEditorEnabled shows the request-header editor tab.
	HeaderEditorEnabled bool

	// ShouldPersistHeaders keeps edited headers in browser storage.
	ShouldPersistHeaders bool
}

type graphiqlData struct {
	GraphiQLVersion      string
	QueryString          template.JS
	VariablesString      template.JS
	OperationName        template.JS
	ResultString         template.JS
	DefaultQuery         template.JS
	HeaderEditorEnabled  template.JS
	ShouldPersistHeaders template.JS
}

// renderGraphiQL serves the GraphiQL page with the request's parameters
// and, when the query already executed, its result embedded so the page
// opens showing the response.
func renderGraphiQL(c *fiber.Ctx, config *GraphiQLConfig, params *RequestParams, result *graphql.Result, pretty bool) error {
	if config == nil {
		config = &GraphiQLConfig{}
	}

	data := graphiqlData{
		GraphiQLVersion:      graphiqlVersion,
		QueryString:          jsValue(orNil(params.Query)),
		OperationName:        jsValue(orNil(params.OperationName)),
		VariablesString:      template.JS("null"),
		ResultString:         template.JS("null"),
		DefaultQuery:         jsValue(orNil(config.DefaultQuery)),
		HeaderEditorEnabled:  jsValue(config.HeaderEditorEnabled),
		ShouldPersistHeaders: jsValue(config.ShouldPersistHeaders),
	}
	if params.Variables != nil {
		if vars, err := json.MarshalIndent(params.Variables, "", "  "); err == nil {
			data.VariablesString = jsValue(string(vars))
		}
	}
	if result != nil {
		if res, err := encodeJSON(result, true); err == nil {
			data.ResultString = jsValue(string(res))
		}
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return graphiqlTemplate.Execute(c.Response().BodyWriter(), data)
}

// orNil maps the empty string to nil so the page renders a JSON null
// instead of an empty editor value.
func orNil(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// jsValue JSON-encodes v for safe embedding in a script block.
// encoding/json escapes angle brackets, so a query containing
// "</script>" cannot break out of the page.
func jsValue(v interface{}) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return template.JS("null")
	}
	return template.JS(b)
}

var graphiqlTemplate = template.Must(template.New("graphiql").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>GraphiQL</title>
  <style>
    html, body, #graphiql { height: 100%; margin: 0; width: 100%; overflow: hidden; }
  </style>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/graphiql@{{.GraphiQLVersion}}/graphiql.min.css" />
</head>
<body>
  <div id="graphiql">Loading...</div>
  <script src="https://cdn.jsdelivr.net/npm/react@17/umd/react.production.min.js"></script>
  <script src="https://cdn.jsdelivr.net/npm/react-dom@17/umd/react-dom.production.min.js"></script>
  <script src="https://cdn.jsdelivr.net/npm/graphiql@{{.GraphiQLVersion}}/graphiql.min.js"></script>
  <script>
    // Parameters from the request that produced this page.
    var parameters = {
      query: {{.QueryString}},
      variables: {{.VariablesString}},
      operationName: {{.OperationName}}
    };

    function graphQLFetcher(graphQLParams, opts) {
      var headers = (opts && opts.headers) || {};
      headers['Accept'] = 'application/json';
      headers['Content-Type'] = 'application/json';
      return fetch(window.location.pathname, {
        method: 'post',
        headers: headers,
        body: JSON.stringify(graphQLParams),
        credentials: 'same-origin'
      }).then(function (response) {
        return response.json();
      });
    }

    function updateURL() {
      var search = '?' + Object.keys(parameters).filter(function (key) {
        return Boolean(parameters[key]);
      }).map(function (key) {
        return encodeURIComponent(key) + '=' + encodeURIComponent(
          typeof parameters[key] === 'string' ? parameters[key] : JSON.stringify(parameters[key]));
      }).join('&');
      history.replaceState(null, null, search);
    }

    ReactDOM.render(
      React.createElement(GraphiQL, {
        fetcher: graphQLFetcher,
        query: parameters.query,
        variables: parameters.variables,
        operationName: parameters.operationName,
        response: {{.ResultString}},
        defaultQuery: {{.DefaultQuery}},
        headerEditorEnabled: {{.HeaderEditorEnabled}},
        shouldPersistHeaders: {{.ShouldPersistHeaders}},
        onEditQuery: function (value) { parameters.query = value; updateURL(); },
        onEditVariables: function (value) { parameters.variables = value; updateURL(); },
        onEditOperationName: function (value) { parameters.operationName = value; updateURL(); }
      }),
      document.getElementById('graphiql')
    );
  </script>
</body>
</html>
`))
