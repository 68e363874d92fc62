package fibergql

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tidwall/gjson"
)

// RequestParams carries the GraphQL parameters extracted from a request.
// Values from the URL query string take precedence over body values; the
// body is consulted according to its Content-Type.
type RequestParams struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
	OperationName string                 `json:"operationName,omitempty"`

	// Raw reports whether the request opted out of the IDE fallback by
	// passing a raw parameter.
	Raw bool `json:"-"`
}

// parseParams extracts GraphQL parameters from the request. Body parsing
// for url-encoded and multipart payloads is delegated to Fiber; JSON
// bodies are read with gjson so a variables object never round-trips
// through an intermediate string.
func parseParams(c *fiber.Ctx) (RequestParams, error) {
	var p RequestParams

	switch mediaType(c.Get(fiber.HeaderContentType)) {
	case fiber.MIMEApplicationJSON:
		if err := parseJSONBody(c.Body(), &p); err != nil {
			return p, err
		}
	case "application/graphql":
		p.Query = string(c.Body())
	case fiber.MIMEApplicationForm, fiber.MIMEMultipartForm:
		// FormValue covers both encodings via the body-parsing
		// collaborator.
		p.Query = c.FormValue("query")
		p.OperationName = c.FormValue("operationName")
		if v := c.FormValue("variables"); v != "" {
			if err := json.Unmarshal([]byte(v), &p.Variables); err != nil {
				return p, errInvalidVariables
			}
		}
		p.Raw = c.FormValue("raw") != ""
	}

	// URL query string wins per key, for GET and POST alike.
	if q := c.Query("query"); q != "" {
		p.Query = q
	}
	if on := c.Query("operationName"); on != "" {
		p.OperationName = on
	}
	if v := c.Query("variables"); v != "" {
		if err := json.Unmarshal([]byte(v), &p.Variables); err != nil {
			return p, errInvalidVariables
		}
	}
	if c.Context().QueryArgs().Has("raw") {
		p.Raw = true
	}

	return p, nil
}

func parseJSONBody(body []byte, p *RequestParams) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if !gjson.ValidBytes(body) {
		return errInvalidJSON
	}
	if q := gjson.GetBytes(body, "query"); q.Type == gjson.String {
		p.Query = q.Str
	}
	if on := gjson.GetBytes(body, "operationName"); on.Type == gjson.String {
		p.OperationName = on.Str
	}
	switch vars := gjson.GetBytes(body, "variables"); {
	case vars.IsObject():
		p.Variables, _ = vars.Value().(map[string]interface{})
	case vars.Type == gjson.String:
		// Clients sometimes double-encode variables.
		if err := json.Unmarshal([]byte(vars.Str), &p.Variables); err != nil {
			return errInvalidVariables
		}
	}
	p.Raw = gjson.GetBytes(body, "raw").Exists()
	return nil
}

// mediaType strips any parameters (charset, boundary) from a
// Content-Type header value.
func mediaType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}
