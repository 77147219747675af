package api

import (
	_ "embed"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var openapiYAML []byte

var specJSON = struct {
	once sync.Once
	data []byte
	err  error
}{}

// SpecJSON returns the embedded OpenAPI document rendered as JSON.
func SpecJSON() ([]byte, error) {
	specJSON.once.Do(func() {
		loader := &openapi3.Loader{}
		doc, err := loader.LoadFromData(openapiYAML)
		if err != nil {
			specJSON.err = fmt.Errorf("load openapi spec: %w", err)
			return
		}
		specJSON.data, specJSON.err = doc.MarshalJSON()
	})
	return specJSON.data, specJSON.err
}

func (h *Handler) OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	data, err := SpecJSON()
	if err != nil {
		writeErrorCode(w, http.StatusInternalServerError, codeInternal, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

const docsHTML = `<!DOCTYPE html>
<html>
<head>
    <title>Sheetdesk API</title>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/@scalar/api-reference@1.44.16/dist/style.min.css" />
</head>
<body>
    <script id="api-reference" data-url="/openapi.json"></script>
    <script src="https://cdn.jsdelivr.net/npm/@scalar/api-reference@1.44.16/dist/browser/standalone.min.js"></script>
</body>
</html>`

// Docs serves an HTML reference page that renders /openapi.json.
func (h *Handler) Docs(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(docsHTML))
}
