package apilint

import "github.com/daveshanley/vacuum/model"

// RegisteredRule pairs a vacuum rule function with its identity and default
// severity. The ID is what config overrides and suppression comments refer to.
type RegisteredRule struct {
	ID              string
	Description     string
	DefaultSeverity Severity
	Function        model.RuleFunction
}

// ruleTable lists every rule in the order violations are evaluated.
var ruleTable = []RegisteredRule{
	{
		ID:              "check-operation-id",
		Description:     "operationId must be present, unique, and lowerCamelCase",
		DefaultSeverity: SeverityError,
		Function:        &fnCheckOperationID{},
	},
	{
		ID:              "check-operation-tags",
		Description:     "every operation must have a tags field",
		DefaultSeverity: SeverityError,
		Function:        &fnCheckOperationTags{},
	},
	{
		ID:              "check-refs-resolve",
		Description:     "every local $ref must resolve to a defined component",
		DefaultSeverity: SeverityError,
		Function:        &fnCheckRefsResolve{},
	},
	{
		ID:              "check-error-schema-ref",
		Description:     "non-2xx JSON responses must reference the ErrorEnvelope schema",
		DefaultSeverity: SeverityError,
		Function:        &fnCheckErrorSchemaRef{},
	},
	{
		ID:              "check-snake-case-properties",
		Description:     "schema property names must be snake_case",
		DefaultSeverity: SeverityError,
		Function:        &fnCheckSnakeCaseProperties{},
	},
	{
		ID:              "check-query-param-snake-case",
		Description:     "query parameter names must be snake_case",
		DefaultSeverity: SeverityError,
		Function:        &fnCheckQueryParamSnakeCase{},
	},
	{
		ID:              "check-path-param-camel-case",
		Description:     "path parameter names must be camelCase",
		DefaultSeverity: SeverityError,
		Function:        &fnCheckPathParamCamelCase{},
	},
	{
		ID:              "check-path-case",
		Description:     "literal path segments must be kebab-case",
		DefaultSeverity: SeverityError,
		Function:        &fnCheckPathCase{},
	},
	{
		ID:              "check-schema-ref",
		Description:     "response and request schemas should use $ref, not inline objects",
		DefaultSeverity: SeverityWarning,
		Function:        &fnCheckSchemaRef{},
	},
	{
		ID:              "check-post-create-status",
		Description:     "POST endpoints that create resources should return 201",
		DefaultSeverity: SeverityWarning,
		Function:        &fnCheckPostCreateStatus{},
	},
	{
		ID:              "check-get-resource-404",
		Description:     "GET operations on parameterised paths should document 404",
		DefaultSeverity: SeverityWarning,
		Function:        &fnCheckGetResource404{},
	},
	{
		ID:              "check-request-required",
		Description:     "request body schemas should declare a required array",
		DefaultSeverity: SeverityWarning,
		Function:        &fnCheckRequestRequired{},
	},
	{
		ID:              "check-enum-min-values",
		Description:     "enums should have at least two values",
		DefaultSeverity: SeverityWarning,
		Function:        &fnCheckEnumMinValues{},
	},
	{
		ID:              "check-collection-ordering",
		Description:     "GET should be declared before POST on a path",
		DefaultSeverity: SeverityInfo,
		Function:        &fnCheckCollectionOrdering{},
	},
}

// RegisteredRules returns a copy of the rule table for introspection.
func RegisteredRules() []RegisteredRule {
	out := make([]RegisteredRule, len(ruleTable))
	copy(out, ruleTable)
	return out
}
