package fibergql

import (
	"html/template"

	"github.com/gofiber/fiber/v2"
)

const playgroundVersion = "1.7.28"

type playgroundData struct {
	PlaygroundVersion string
	Endpoint          string
}

// renderPlayground serves the GraphQL Playground page pointed at the
// handler's own mount path.
func renderPlayground(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return playgroundTemplate.Execute(c.Response().BodyWriter(), playgroundData{
		PlaygroundVersion: playgroundVersion,
		Endpoint:          c.Path(),
	})
}

var playgroundTemplate = template.Must(template.New("playground").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>GraphQL Playground</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/graphql-playground-react@{{.PlaygroundVersion}}/build/static/css/index.css" />
  <link rel="shortcut icon" href="https://cdn.jsdelivr.net/npm/graphql-playground-react@{{.PlaygroundVersion}}/build/favicon.png" />
  <script src="https://cdn.jsdelivr.net/npm/graphql-playground-react@{{.PlaygroundVersion}}/build/static/js/middleware.js"></script>
</head>
<body>
  <div id="root">
    <style>
      body { background-color: rgb(23, 42, 58); font-family: Open Sans, sans-serif; height: 90vh; }
      #root { height: 100%; width: 100%; display: flex; align-items: center; justify-content: center; }
      .loading { font-size: 32px; font-weight: 200; color: rgba(255, 255, 255, .6); margin-left: 20px; }
      img { width: 78px; height: 78px; }
      .title { font-weight: 400; }
    </style>
    <img src="https://cdn.jsdelivr.net/npm/graphql-playground-react@{{.PlaygroundVersion}}/build/logo.png" alt="" />
    <div class="loading"> Loading
      <span class="title">GraphQL Playground</span>
    </div>
  </div>
  <script>
    window.addEventListener('load', function (event) {
      GraphQLPlayground.init(document.getElementById('root'), {
        endpoint: {{.Endpoint}}
      });
    });
  </script>
</body>
</html>
`))
