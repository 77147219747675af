// Package docsgen renders a single-page markdown reference for the sheetdesk
// HTTP API from its OpenAPI specification.
package docsgen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

type endpointDoc struct {
	Method      string
	Path        string
	OperationID string
	Summary     string
	Description string
	Params      []paramDoc
	RequestBody string
	Responses   []responseDoc
}

type paramDoc struct {
	Name        string
	In          string
	Required    bool
	Type        string
	Description string
}

type responseDoc struct {
	Code        string
	Description string
	Schema      string
}

// Generate renders the API reference for the spec at specPath into a single
// markdown file at outPath.
func Generate(specPath, outPath string) error {
	loader := &openapi3.Loader{}
	spec, err := loader.LoadFromFile(specPath)
	if err != nil {
		return fmt.Errorf("load spec: %w", err)
	}

	tagEndpoints := map[string][]endpointDoc{}
	for path, pathItem := range spec.Paths.Map() {
		for method, op := range pathItem.Operations() {
			tag := "Untagged"
			if len(op.Tags) > 0 {
				tag = op.Tags[0]
			}
			tagEndpoints[tag] = append(tagEndpoints[tag], buildEndpointDoc(path, method, pathItem, op))
		}
	}

	// Tags render in spec declaration order; anything untagged goes last.
	var tags []string
	for _, tag := range spec.Tags {
		if len(tagEndpoints[tag.Name]) > 0 {
			tags = append(tags, tag.Name)
		}
	}
	for _, tag := range sortedKeys(tagEndpoints) {
		if !contains(tags, tag) {
			tags = append(tags, tag)
		}
	}

	var b strings.Builder
	b.WriteString(generatedHeader())
	writeIntro(&b, spec)

	for _, tag := range tags {
		endpoints := tagEndpoints[tag]
		sortEndpoints(endpoints)
		writeTagSection(&b, spec, tag, endpoints)
	}

	writeSchemas(&b, spec)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o750); err != nil {
		return fmt.Errorf("create directory %q: %w", filepath.Dir(outPath), err)
	}
	if err := os.WriteFile(outPath, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("write %q: %w", outPath, err)
	}
	return nil
}

func buildEndpointDoc(path, method string, pathItem *openapi3.PathItem, op *openapi3.Operation) endpointDoc {
	params := append([]*openapi3.ParameterRef{}, pathItem.Parameters...)
	params = append(params, op.Parameters...)

	endpoint := endpointDoc{
		Method:      strings.ToUpper(method),
		Path:        path,
		OperationID: strings.TrimSpace(op.OperationID),
		Summary:     strings.TrimSpace(op.Summary),
		Description: strings.TrimSpace(op.Description),
	}

	for _, p := range params {
		if p == nil || p.Value == nil {
			continue
		}
		endpoint.Params = append(endpoint.Params, paramDoc{
			Name:        p.Value.Name,
			In:          p.Value.In,
			Required:    p.Value.Required,
			Type:        schemaTypeFromRef(p.Value.Schema),
			Description: cleanInline(p.Value.Description),
		})
	}
	sort.Slice(endpoint.Params, func(i, j int) bool {
		if endpoint.Params[i].In != endpoint.Params[j].In {
			return endpoint.Params[i].In < endpoint.Params[j].In
		}
		return endpoint.Params[i].Name < endpoint.Params[j].Name
	})

	if op.RequestBody != nil && op.RequestBody.Value != nil {
		if media := op.RequestBody.Value.Content.Get("application/json"); media != nil {
			endpoint.RequestBody = schemaTypeFromRef(media.Schema)
		}
	}

	for code, response := range op.Responses.Map() {
		rd := responseDoc{Code: code}
		if response != nil && response.Value != nil {
			if response.Value.Description != nil {
				rd.Description = cleanInline(*response.Value.Description)
			}
			if media := response.Value.Content.Get("application/json"); media != nil {
				rd.Schema = schemaTypeFromRef(media.Schema)
			}
		}
		endpoint.Responses = append(endpoint.Responses, rd)
	}
	sort.Slice(endpoint.Responses, func(i, j int) bool {
		return endpoint.Responses[i].Code < endpoint.Responses[j].Code
	})

	return endpoint
}

func writeIntro(b *strings.Builder, spec *openapi3.T) {
	title := "API Reference"
	if spec.Info != nil && spec.Info.Title != "" {
		title = spec.Info.Title
	}
	fmt.Fprintf(b, "# %s\n\n", title)
	if spec.Info != nil && spec.Info.Description != "" {
		b.WriteString(strings.TrimSpace(spec.Info.Description))
		b.WriteString("\n\n")
	}
	if len(spec.Servers) > 0 && spec.Servers[0].URL != "" {
		fmt.Fprintf(b, "All paths below are relative to `%s`.\n\n", spec.Servers[0].URL)
	}
}

func writeTagSection(b *strings.Builder, spec *openapi3.T, tag string, endpoints []endpointDoc) {
	fmt.Fprintf(b, "## %s\n\n", tag)
	for _, t := range spec.Tags {
		if t.Name == tag && t.Description != "" {
			b.WriteString(cleanInline(t.Description))
			b.WriteString("\n\n")
		}
	}

	for _, endpoint := range endpoints {
		fmt.Fprintf(b, "### `%s %s`\n\n", endpoint.Method, endpoint.Path)
		if endpoint.Summary != "" {
			b.WriteString(endpoint.Summary)
			b.WriteString("\n\n")
		}
		if endpoint.Description != "" {
			b.WriteString(endpoint.Description)
			b.WriteString("\n\n")
		}
		if endpoint.OperationID != "" {
			fmt.Fprintf(b, "Operation: `%s`\n\n", endpoint.OperationID)
		}

		if len(endpoint.Params) > 0 {
			b.WriteString("| Parameter | In | Type | Required | Description |\n")
			b.WriteString("| --- | --- | --- | --- | --- |\n")
			for _, p := range endpoint.Params {
				fmt.Fprintf(b, "| `%s` | %s | `%s` | %t | %s |\n", p.Name, p.In, p.Type, p.Required, tableSafe(p.Description))
			}
			b.WriteString("\n")
		}

		if endpoint.RequestBody != "" {
			fmt.Fprintf(b, "Request body: [`%s`](#schema-%s)\n\n", endpoint.RequestBody, anchorSlug(endpoint.RequestBody))
		}

		if len(endpoint.Responses) > 0 {
			b.WriteString("| Status | Body | Description |\n")
			b.WriteString("| --- | --- | --- |\n")
			for _, r := range endpoint.Responses {
				body := "-"
				if r.Schema != "" {
					body = fmt.Sprintf("[`%s`](#schema-%s)", r.Schema, anchorSlug(r.Schema))
				}
				fmt.Fprintf(b, "| `%s` | %s | %s |\n", r.Code, body, tableSafe(r.Description))
			}
			b.WriteString("\n")
		}
	}
}

func writeSchemas(b *strings.Builder, spec *openapi3.T) {
	if spec.Components == nil || len(spec.Components.Schemas) == 0 {
		return
	}
	b.WriteString("## Schemas\n\n")
	for _, name := range sortedKeys(spec.Components.Schemas) {
		ref := spec.Components.Schemas[name]
		fmt.Fprintf(b, "<a id=\"schema-%s\"></a>\n\n### `%s`\n\n", anchorSlug(name), name)
		if ref == nil || ref.Value == nil {
			b.WriteString("Schema body is empty.\n\n")
			continue
		}
		schema := ref.Value
		if schema.Description != "" {
			b.WriteString(cleanInline(schema.Description))
			b.WriteString("\n\n")
		}
		if len(schema.Properties) == 0 {
			fmt.Fprintf(b, "Type: `%s`\n\n", schemaType(schema))
			continue
		}

		reqSet := make(map[string]struct{}, len(schema.Required))
		for _, field := range schema.Required {
			reqSet[field] = struct{}{}
		}
		b.WriteString("| Field | Type | Required | Description |\n")
		b.WriteString("| --- | --- | --- | --- |\n")
		for _, propName := range sortedKeys(schema.Properties) {
			propRef := schema.Properties[propName]
			_, required := reqSet[propName]
			desc := ""
			if propRef != nil && propRef.Value != nil {
				desc = cleanInline(propRef.Value.Description)
				if vals := enumValues(propRef.Value); vals != "" {
					if desc != "" {
						desc += " "
					}
					desc += "One of: " + vals + "."
				}
			}
			fmt.Fprintf(b, "| `%s` | `%s` | %t | %s |\n", propName, schemaTypeFromRef(propRef), required, tableSafe(desc))
		}
		b.WriteString("\n")
	}
}

// enumValues renders a schema's enum as backticked literals. The error code
// enum is the API's whole error vocabulary, so it belongs in the reference.
func enumValues(schema *openapi3.Schema) string {
	if len(schema.Enum) == 0 {
		return ""
	}
	parts := make([]string, 0, len(schema.Enum))
	for _, v := range schema.Enum {
		parts = append(parts, fmt.Sprintf("`%v`", v))
	}
	return strings.Join(parts, ", ")
}

func sortEndpoints(endpoints []endpointDoc) {
	methodOrder := map[string]int{
		"GET":    0,
		"POST":   1,
		"PUT":    2,
		"PATCH":  3,
		"DELETE": 4,
	}
	sort.Slice(endpoints, func(i, j int) bool {
		if endpoints[i].Path != endpoints[j].Path {
			return endpoints[i].Path < endpoints[j].Path
		}
		return methodOrder[endpoints[i].Method] < methodOrder[endpoints[j].Method]
	})
}

func schemaTypeFromRef(ref *openapi3.SchemaRef) string {
	if ref == nil {
		return "unknown"
	}
	if ref.Ref != "" {
		parts := strings.Split(ref.Ref, "/")
		return parts[len(parts)-1]
	}
	if ref.Value == nil {
		return "unknown"
	}
	return schemaType(ref.Value)
}

func schemaType(schema *openapi3.Schema) string {
	if schema == nil || schema.Type == nil || len(*schema.Type) == 0 {
		return "object"
	}
	if (*schema.Type)[0] == "array" {
		if schema.Items != nil {
			return "array[" + schemaTypeFromRef(schema.Items) + "]"
		}
		return "array"
	}
	return (*schema.Type)[0]
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func anchorSlug(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func generatedHeader() string {
	return "<!-- Code generated by cmd/docsgen. DO NOT EDIT. -->\n\n"
}

func cleanInline(value string) string {
	value = strings.TrimSpace(value)
	value = strings.ReplaceAll(value, "\n", " ")
	for strings.Contains(value, "  ") {
		value = strings.ReplaceAll(value, "  ", " ")
	}
	return value
}

func tableSafe(value string) string {
	value = cleanInline(value)
	value = strings.ReplaceAll(value, "|", "\\|")
	if value == "" {
		return "-"
	}
	return value
}
