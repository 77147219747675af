package apilint

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/daveshanley/vacuum/model"
	"go.yaml.in/yaml/v4"
)

// === YAML helpers ===

func yGet(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i < len(m.Content)-1; i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func yOpID(op *yaml.Node) string {
	n := yGet(op, "operationId")
	if n != nil {
		return n.Value
	}
	return ""
}

var httpMethodSet = map[string]bool{
	"get": true, "put": true, "post": true, "delete": true,
	"options": true, "head": true, "patch": true, "trace": true,
}

var camelRe = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)
var snakeRe = regexp.MustCompile(`^[a-z][a-z0-9]*(_[a-z0-9]+)*$`)
var kebabRe = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

type opVisitor = func(path, method string, op *yaml.Node)

func forEachOp(root *yaml.Node, fn opVisitor) {
	paths := yGet(root, "paths")
	if paths == nil {
		return
	}
	for i := 0; i < len(paths.Content)-1; i += 2 {
		pathKey := paths.Content[i].Value
		pathItem := paths.Content[i+1]
		if pathItem.Kind != yaml.MappingNode {
			continue
		}
		for j := 0; j < len(pathItem.Content)-1; j += 2 {
			method := pathItem.Content[j].Value
			if httpMethodSet[method] {
				fn(pathKey, method, pathItem.Content[j+1])
			}
		}
	}
}

func rootNode(nodes []*yaml.Node) *yaml.Node {
	if len(nodes) == 0 {
		return nil
	}
	n := nodes[0]
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		return n.Content[0]
	}
	return n
}

func makeResult(msg, path, ruleID string, node *yaml.Node, ctx model.RuleFunctionContext) model.RuleFunctionResult {
	return model.RuleFunctionResult{
		Message:   msg,
		Path:      path,
		RuleId:    ruleID,
		StartNode: node,
		EndNode:   node,
		Rule:      ctx.Rule,
	}
}

// ================================================================
// check-operation-id: operationId present, unique, lowerCamelCase
// ================================================================

type fnCheckOperationID struct{}

func (f *fnCheckOperationID) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkOperationId"}
}
func (f *fnCheckOperationID) GetCategory() string { return model.CategoryOperations }

func (f *fnCheckOperationID) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	var results []model.RuleFunctionResult
	seen := map[string]int{} // operationId: first line
	forEachOp(root, func(path, method string, op *yaml.Node) {
		idNode := yGet(op, "operationId")
		if idNode == nil {
			results = append(results, makeResult(
				fmt.Sprintf("operation %s %s is missing 'operationId'", method, path),
				fmt.Sprintf("$.paths.%s.%s", path, method),
				"check-operation-id", op, ctx))
			return
		}
		if prev, ok := seen[idNode.Value]; ok {
			results = append(results, makeResult(
				fmt.Sprintf("duplicate operationId %q (first seen at line %d)", idNode.Value, prev),
				fmt.Sprintf("$.paths.%s.%s.operationId", path, method),
				"check-operation-id", idNode, ctx))
			return
		}
		seen[idNode.Value] = idNode.Line
		if !camelRe.MatchString(idNode.Value) {
			results = append(results, makeResult(
				fmt.Sprintf("operationId %q is not lowerCamelCase", idNode.Value),
				fmt.Sprintf("$.paths.%s.%s.operationId", path, method),
				"check-operation-id", idNode, ctx))
		}
	})
	return results
}

// ================================================================
// check-operation-tags: every operation must carry a tags field
// ================================================================

type fnCheckOperationTags struct{}

func (f *fnCheckOperationTags) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkOperationTags"}
}
func (f *fnCheckOperationTags) GetCategory() string { return model.CategoryOperations }

func (f *fnCheckOperationTags) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	var results []model.RuleFunctionResult
	forEachOp(root, func(path, method string, op *yaml.Node) {
		if yGet(op, "tags") != nil {
			return
		}
		opID := yOpID(op)
		if opID == "" {
			opID = method + " " + path
		}
		results = append(results, makeResult(
			fmt.Sprintf("operation %q is missing 'tags' field", opID),
			fmt.Sprintf("$.paths.%s.%s", path, method),
			"check-operation-tags", op, ctx))
	})
	return results
}

// ================================================================
// check-schema-ref: response + request schemas must use $ref
// ================================================================

type fnCheckSchemaRef struct{}

func (f *fnCheckSchemaRef) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkSchemaRef"}
}
func (f *fnCheckSchemaRef) GetCategory() string { return model.CategoryOperations }

func (f *fnCheckSchemaRef) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	var results []model.RuleFunctionResult
	forEachOp(root, func(path, method string, op *yaml.Node) {
		opID := yOpID(op)
		if opID == "" {
			opID = method + " " + path
		}
		responses := yGet(op, "responses")
		if responses != nil {
			for i := 0; i < len(responses.Content)-1; i += 2 {
				statusCode := responses.Content[i].Value
				responseObj := responses.Content[i+1]
				if n := findInlineSchema(responseObj); n != nil {
					results = append(results, makeResult(
						fmt.Sprintf("operation %q response %s uses inline schema instead of $ref", opID, statusCode),
						fmt.Sprintf("$.paths.%s.%s.responses.%s", path, method, statusCode),
						"check-schema-ref", n, ctx))
				}
			}
		}
		reqBody := yGet(op, "requestBody")
		if reqBody != nil {
			if n := findInlineSchema(reqBody); n != nil {
				results = append(results, makeResult(
					fmt.Sprintf("operation %q requestBody uses inline schema instead of $ref", opID),
					fmt.Sprintf("$.paths.%s.%s.requestBody", path, method),
					"check-schema-ref", n, ctx))
			}
		}
	})
	return results
}

func findInlineSchema(obj *yaml.Node) *yaml.Node {
	content := yGet(obj, "content")
	if content == nil {
		return nil
	}
	appJSON := yGet(content, "application/json")
	if appJSON == nil {
		return nil
	}
	schema := yGet(appJSON, "schema")
	if schema == nil {
		return nil
	}
	if yGet(schema, "$ref") == nil {
		return schema
	}
	return nil
}

// ================================================================
// check-error-schema-ref: non-2xx responses must use ErrorEnvelope
// ================================================================

type fnCheckErrorSchemaRef struct{}

func (f *fnCheckErrorSchemaRef) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkErrorSchemaRef"}
}
func (f *fnCheckErrorSchemaRef) GetCategory() string { return model.CategoryOperations }

func (f *fnCheckErrorSchemaRef) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	var results []model.RuleFunctionResult
	forEachOp(root, func(path, method string, op *yaml.Node) {
		responses := yGet(op, "responses")
		if responses == nil {
			return
		}
		opID := yOpID(op)
		if opID == "" {
			opID = method + " " + path
		}
		for i := 0; i < len(responses.Content)-1; i += 2 {
			statusCode := responses.Content[i].Value
			if strings.HasPrefix(statusCode, "2") {
				continue
			}
			responseObj := responses.Content[i+1]
			content := yGet(responseObj, "content")
			if content == nil {
				continue
			}
			appJSON := yGet(content, "application/json")
			if appJSON == nil {
				continue
			}
			schema := yGet(appJSON, "schema")
			if schema == nil {
				continue
			}
			ref := yGet(schema, "$ref")
			if ref == nil || !strings.HasSuffix(ref.Value, "/ErrorEnvelope") {
				results = append(results, makeResult(
					fmt.Sprintf("operation %q response %s should reference ErrorEnvelope schema", opID, statusCode),
					fmt.Sprintf("$.paths.%s.%s.responses.%s", path, method, statusCode),
					"check-error-schema-ref", schema, ctx))
			}
		}
	})
	return results
}

// ================================================================
// check-refs-resolve: every local $ref must resolve to a component
// ================================================================

type fnCheckRefsResolve struct{}

func (f *fnCheckRefsResolve) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkRefsResolve"}
}
func (f *fnCheckRefsResolve) GetCategory() string { return model.CategorySchemas }

func (f *fnCheckRefsResolve) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	var results []model.RuleFunctionResult

	var walk func(n *yaml.Node)
	walk = func(n *yaml.Node) {
		if n == nil {
			return
		}
		if n.Kind == yaml.MappingNode {
			ref := yGet(n, "$ref")
			if ref != nil && !resolveRef(root, ref.Value) {
				results = append(results, makeResult(
					fmt.Sprintf("unresolved $ref %q", ref.Value),
					"$",
					"check-refs-resolve", ref, ctx))
			}
		}
		for _, c := range n.Content {
			walk(c)
		}
	}
	walk(root)
	return results
}

// resolveRef follows a local "#/..." pointer through the document. External
// refs are not checked.
func resolveRef(root *yaml.Node, ref string) bool {
	if !strings.HasPrefix(ref, "#/") {
		return true
	}
	node := root
	for _, p := range strings.Split(strings.TrimPrefix(ref, "#/"), "/") {
		node = yGet(node, p)
		if node == nil {
			return false
		}
	}
	return true
}

// ================================================================
// check-snake-case-properties: schema property names are snake_case
// ================================================================

type fnCheckSnakeCaseProperties struct{}

func (f *fnCheckSnakeCaseProperties) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkSnakeCaseProperties"}
}
func (f *fnCheckSnakeCaseProperties) GetCategory() string { return model.CategorySchemas }

func (f *fnCheckSnakeCaseProperties) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	schemas := yGet(yGet(root, "components"), "schemas")
	if schemas == nil {
		return nil
	}
	var results []model.RuleFunctionResult

	var walk func(n *yaml.Node, schemaName string)
	walk = func(n *yaml.Node, schemaName string) {
		if n == nil {
			return
		}
		if n.Kind == yaml.MappingNode {
			props := yGet(n, "properties")
			if props != nil && props.Kind == yaml.MappingNode {
				for i := 0; i < len(props.Content)-1; i += 2 {
					propName := props.Content[i].Value
					if !snakeRe.MatchString(propName) {
						results = append(results, makeResult(
							fmt.Sprintf("schema %q property %q is not snake_case", schemaName, propName),
							fmt.Sprintf("$.components.schemas.%s.properties.%s", schemaName, propName),
							"check-snake-case-properties", props.Content[i], ctx))
					}
				}
			}
		}
		for _, c := range n.Content {
			walk(c, schemaName)
		}
	}

	for i := 0; i < len(schemas.Content)-1; i += 2 {
		walk(schemas.Content[i+1], schemas.Content[i].Value)
	}
	return results
}

// ================================================================
// check-query-param-snake-case: query parameter names are snake_case
// ================================================================

type fnCheckQueryParamSnakeCase struct{}

func (f *fnCheckQueryParamSnakeCase) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkQueryParamSnakeCase"}
}
func (f *fnCheckQueryParamSnakeCase) GetCategory() string { return model.CategoryOperations }

func (f *fnCheckQueryParamSnakeCase) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	var results []model.RuleFunctionResult
	forEachParam(root, func(p *yaml.Node) {
		inNode := yGet(p, "in")
		if inNode == nil || inNode.Value != "query" {
			return
		}
		nameNode := yGet(p, "name")
		if nameNode == nil {
			return
		}
		if !snakeRe.MatchString(nameNode.Value) {
			results = append(results, makeResult(
				fmt.Sprintf("query parameter %q is not snake_case", nameNode.Value),
				"$",
				"check-query-param-snake-case", nameNode, ctx))
		}
	})
	return results
}

// ================================================================
// check-path-param-camel-case: path parameter names are camelCase
// ================================================================

type fnCheckPathParamCamelCase struct{}

func (f *fnCheckPathParamCamelCase) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkPathParamCamelCase"}
}
func (f *fnCheckPathParamCamelCase) GetCategory() string { return model.CategoryOperations }

func (f *fnCheckPathParamCamelCase) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	var results []model.RuleFunctionResult
	forEachParam(root, func(p *yaml.Node) {
		inNode := yGet(p, "in")
		if inNode == nil || inNode.Value != "path" {
			return
		}
		nameNode := yGet(p, "name")
		if nameNode == nil {
			return
		}
		if !camelRe.MatchString(nameNode.Value) {
			results = append(results, makeResult(
				fmt.Sprintf("path parameter %q is not camelCase", nameNode.Value),
				"$",
				"check-path-param-camel-case", nameNode, ctx))
		}
	})
	return results
}

// forEachParam visits every parameter object: component parameters, path-level
// parameters, and operation-level parameters. $ref-only entries are skipped;
// they are covered where the component is declared.
func forEachParam(root *yaml.Node, fn func(p *yaml.Node)) {
	visit := func(params *yaml.Node) {
		if params == nil {
			return
		}
		for _, p := range params.Content {
			if p.Kind == yaml.MappingNode && yGet(p, "$ref") == nil {
				fn(p)
			}
		}
	}

	compParams := yGet(yGet(root, "components"), "parameters")
	if compParams != nil {
		for i := 0; i < len(compParams.Content)-1; i += 2 {
			p := compParams.Content[i+1]
			if p.Kind == yaml.MappingNode {
				fn(p)
			}
		}
	}

	paths := yGet(root, "paths")
	if paths == nil {
		return
	}
	for i := 0; i < len(paths.Content)-1; i += 2 {
		pathItem := paths.Content[i+1]
		if pathItem.Kind != yaml.MappingNode {
			continue
		}
		visit(yGet(pathItem, "parameters"))
		for j := 0; j < len(pathItem.Content)-1; j += 2 {
			method := pathItem.Content[j].Value
			if httpMethodSet[method] {
				visit(yGet(pathItem.Content[j+1], "parameters"))
			}
		}
	}
}

// ================================================================
// check-path-case: literal path segments are kebab-case
// ================================================================

type fnCheckPathCase struct{}

func (f *fnCheckPathCase) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkPathCase"}
}
func (f *fnCheckPathCase) GetCategory() string { return model.CategoryOperations }

func (f *fnCheckPathCase) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	paths := yGet(root, "paths")
	if paths == nil {
		return nil
	}
	var results []model.RuleFunctionResult
	for i := 0; i < len(paths.Content)-1; i += 2 {
		pathKey := paths.Content[i]
		for _, seg := range strings.Split(pathKey.Value, "/") {
			if seg == "" || strings.HasPrefix(seg, "{") {
				continue
			}
			if !kebabRe.MatchString(seg) {
				results = append(results, makeResult(
					fmt.Sprintf("path %q segment %q is not kebab-case", pathKey.Value, seg),
					fmt.Sprintf("$.paths.%s", pathKey.Value),
					"check-path-case", pathKey, ctx))
			}
		}
	}
	return results
}

// ================================================================
// check-post-create-status: POST-create should return 201
// ================================================================

type fnCheckPostCreateStatus struct{}

func (f *fnCheckPostCreateStatus) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkPostCreateStatus"}
}
func (f *fnCheckPostCreateStatus) GetCategory() string { return model.CategoryOperations }

func (f *fnCheckPostCreateStatus) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	var results []model.RuleFunctionResult
	forEachOp(root, func(path, method string, op *yaml.Node) {
		if method != "post" {
			return
		}
		responses := yGet(op, "responses")
		if responses == nil {
			return
		}
		has200 := yGet(responses, "200") != nil
		has201 := yGet(responses, "201") != nil
		if has200 && !has201 {
			opID := yOpID(op)
			if opID == "" {
				opID = method + " " + path
			}
			results = append(results, makeResult(
				fmt.Sprintf("POST operation %q returns 200 instead of 201", opID),
				fmt.Sprintf("$.paths.%s.post.responses", path),
				"check-post-create-status", responses, ctx))
		}
	})
	return results
}

// ================================================================
// check-get-resource-404: GET resource paths should include 404
// ================================================================

type fnCheckGetResource404 struct{}

func (f *fnCheckGetResource404) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkGetResource404"}
}
func (f *fnCheckGetResource404) GetCategory() string { return model.CategoryOperations }

func (f *fnCheckGetResource404) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	var results []model.RuleFunctionResult
	forEachOp(root, func(path, method string, op *yaml.Node) {
		if method != "get" {
			return
		}
		if !strings.Contains(path, "{") {
			return
		}
		responses := yGet(op, "responses")
		if responses == nil {
			return
		}
		if yGet(responses, "404") != nil {
			return
		}
		opID := yOpID(op)
		if opID == "" {
			opID = method + " " + path
		}
		results = append(results, makeResult(
			fmt.Sprintf("GET operation %q on resource path should include 404 response", opID),
			fmt.Sprintf("$.paths.%s.get.responses", path),
			"check-get-resource-404", responses, ctx))
	})
	return results
}

// ================================================================
// check-request-required: *Request schemas should declare required
// ================================================================

type fnCheckRequestRequired struct{}

func (f *fnCheckRequestRequired) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkRequestRequired"}
}
func (f *fnCheckRequestRequired) GetCategory() string { return model.CategorySchemas }

func (f *fnCheckRequestRequired) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	schemas := yGet(yGet(root, "components"), "schemas")
	if schemas == nil {
		return nil
	}
	var results []model.RuleFunctionResult
	for i := 0; i < len(schemas.Content)-1; i += 2 {
		name := schemas.Content[i].Value
		if !strings.HasSuffix(name, "Request") {
			continue
		}
		schema := schemas.Content[i+1]
		if yGet(schema, "required") == nil {
			results = append(results, makeResult(
				fmt.Sprintf("schema %q should have a 'required' array", name),
				fmt.Sprintf("$.components.schemas.%s", name),
				"check-request-required", schema, ctx))
		}
	}
	return results
}

// ================================================================
// check-collection-ordering: GET before POST on collection paths
// ================================================================

type fnCheckCollectionOrdering struct{}

func (f *fnCheckCollectionOrdering) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkCollectionOrdering"}
}
func (f *fnCheckCollectionOrdering) GetCategory() string { return model.CategoryOperations }

func (f *fnCheckCollectionOrdering) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	paths := yGet(root, "paths")
	if paths == nil {
		return nil
	}
	var results []model.RuleFunctionResult
	for i := 0; i < len(paths.Content)-1; i += 2 {
		pathKey := paths.Content[i].Value
		pathItem := paths.Content[i+1]
		if pathItem.Kind != yaml.MappingNode {
			continue
		}
		getLine, postLine := 0, 0
		var postNode *yaml.Node
		for j := 0; j < len(pathItem.Content)-1; j += 2 {
			m := pathItem.Content[j].Value
			l := pathItem.Content[j].Line
			if m == "get" {
				getLine = l
			}
			if m == "post" {
				postLine = l
				postNode = pathItem.Content[j]
			}
		}
		if getLine > 0 && postLine > 0 && postLine < getLine && postNode != nil {
			results = append(results, makeResult(
				fmt.Sprintf("on %q, POST (line %d) is declared before GET (line %d)", pathKey, postLine, getLine),
				fmt.Sprintf("$.paths.%s", pathKey),
				"check-collection-ordering", postNode, ctx))
		}
	}
	return results
}

// ================================================================
// check-enum-min-values: enums should have at least 2 values
// ================================================================

type fnCheckEnumMinValues struct{}

func (f *fnCheckEnumMinValues) GetSchema() model.RuleFunctionSchema {
	return model.RuleFunctionSchema{Name: "checkEnumMinValues"}
}
func (f *fnCheckEnumMinValues) GetCategory() string { return model.CategorySchemas }

func (f *fnCheckEnumMinValues) RunRule(nodes []*yaml.Node, ctx model.RuleFunctionContext) []model.RuleFunctionResult {
	root := rootNode(nodes)
	if root == nil {
		return nil
	}
	var results []model.RuleFunctionResult

	var walk func(n *yaml.Node, context string)
	walk = func(n *yaml.Node, context string) {
		if n == nil {
			return
		}
		if n.Kind == yaml.MappingNode {
			enumNode := yGet(n, "enum")
			if enumNode != nil && enumNode.Kind == yaml.SequenceNode && len(enumNode.Content) < 2 {
				results = append(results, makeResult(
					fmt.Sprintf("enum%s has only %d value(s)", context, len(enumNode.Content)),
					"$",
					"check-enum-min-values", enumNode, ctx))
			}
		}
		for _, c := range n.Content {
			walk(c, context)
		}
	}

	schemas := yGet(yGet(root, "components"), "schemas")
	if schemas != nil {
		for i := 0; i < len(schemas.Content)-1; i += 2 {
			schemaName := schemas.Content[i].Value
			walk(schemas.Content[i+1], fmt.Sprintf(" in schema %q", schemaName))
		}
	}

	paths := yGet(root, "paths")
	if paths != nil {
		walk(paths, "")
	}
	return results
}
