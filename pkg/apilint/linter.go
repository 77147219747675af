// Package apilint provides an OpenAPI 3.x linter that enforces sheetdesk API
// conventions. Rules are written as vacuum rule functions over raw YAML nodes,
// so line numbers survive into the findings.
package apilint

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/daveshanley/vacuum/model"
	"go.yaml.in/yaml/v4"
)

// Severity levels for lint violations.
type Severity string

// Severity constants.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// sevRank maps severity to a numeric rank for comparison.
var sevRank = map[Severity]int{SeverityInfo: 0, SeverityWarning: 1, SeverityError: 2}

// Violation represents a single lint finding.
type Violation struct {
	File     string
	Line     int
	RuleID   string
	Severity Severity
	Message  string
}

// String formats a violation in golangci-lint style.
func (v Violation) String() string {
	return fmt.Sprintf("%s:%d: %s %s: %s", v.File, v.Line, v.RuleID, v.Severity, v.Message)
}

// === Linter ===

// Linter holds the parsed OpenAPI document and runs rules against it.
type Linter struct {
	file string
	doc  *yaml.Node
	root *yaml.Node
}

// New parses the given YAML file and returns a Linter.
func New(path string) (*Linter, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the caller
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%s: empty or invalid YAML document", path)
	}
	return &Linter{file: path, doc: &doc, root: doc.Content[0]}, nil
}

// Run executes all lint rules with default severity and returns violations
// sorted by line number.
func (l *Linter) Run() []Violation {
	return l.RunWithConfig(nil)
}

// RunWithConfig executes all lint rules using the given configuration (may be
// nil for defaults). Rules with severity overridden to "off" are skipped.
// Inline suppression comments are honoured.
func (l *Linter) RunWithConfig(cfg *Config) []Violation {
	var vs []Violation
	for _, r := range ruleTable {
		sev := effectiveSeverity(cfg, r)
		if sev == "" { // "off"
			continue
		}
		ctx := model.RuleFunctionContext{
			Rule: &model.Rule{
				Id:          r.ID,
				Description: r.Description,
				Severity:    string(sev),
			},
		}
		for _, res := range r.Function.RunRule([]*yaml.Node{l.doc}, ctx) {
			line := 0
			if res.StartNode != nil {
				line = res.StartNode.Line
			}
			if isSuppressed(l.root, line, r.ID) {
				continue
			}
			vs = append(vs, Violation{
				File:     l.file,
				Line:     line,
				RuleID:   r.ID,
				Severity: sev,
				Message:  res.Message,
			})
		}
	}
	sort.Slice(vs, func(i, j int) bool { return vs[i].Line < vs[j].Line })
	return vs
}

// HasErrors returns true if any violation has error severity.
func HasErrors(vs []Violation) bool {
	for _, v := range vs {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Filter returns violations at or above the given severity.
func Filter(vs []Violation, minSev Severity) []Violation {
	minRank := sevRank[minSev]
	var out []Violation
	for _, v := range vs {
		if sevRank[v.Severity] >= minRank {
			out = append(out, v)
		}
	}
	return out
}

// === Inline suppression ===

// suppressRe matches YAML comments like "apilint:ignore check-schema-ref".
var suppressRe = regexp.MustCompile(`apilint:ignore\s+([a-z][a-z0-9-]*(?:\s+[a-z][a-z0-9-]*)*)`)

// isSuppressed returns true if the given rule is suppressed at the given line
// via a YAML comment containing "apilint:ignore <rule-id>".
// It checks the node at the violation line, the node one line above (for parent
// key comments), and walks up through parent nodes that contain the violation line.
func isSuppressed(root *yaml.Node, line int, ruleID string) bool {
	// Check the exact line.
	if node := findNodeAtLine(root, line); node != nil {
		if commentSuppresses(node.LineComment, ruleID) ||
			commentSuppresses(node.HeadComment, ruleID) {
			return true
		}
	}
	// Check the line above (parent key nodes often have the comment).
	if node := findNodeAtLine(root, line-1); node != nil {
		if commentSuppresses(node.LineComment, ruleID) ||
			commentSuppresses(node.HeadComment, ruleID) {
			return true
		}
	}
	// Walk up the tree: any ancestor mapping key that contains this line range.
	return ancestorSuppresses(root, line, ruleID)
}

// ancestorSuppresses checks if any ancestor node has a suppression comment for the given rule.
func ancestorSuppresses(n *yaml.Node, line int, ruleID string) bool {
	if n == nil {
		return false
	}
	if n.Kind == yaml.MappingNode {
		for i := 0; i < len(n.Content)-1; i += 2 {
			keyNode := n.Content[i]
			valNode := n.Content[i+1]
			// Check if this key-value pair "contains" the target line.
			if keyNode.Line <= line && containsLine(valNode, line) {
				if commentSuppresses(keyNode.LineComment, ruleID) ||
					commentSuppresses(keyNode.HeadComment, ruleID) {
					return true
				}
				// Recurse into the value.
				return ancestorSuppresses(valNode, line, ruleID)
			}
		}
	}
	for _, c := range n.Content {
		if containsLine(c, line) {
			if ancestorSuppresses(c, line, ruleID) {
				return true
			}
		}
	}
	return false
}

// containsLine returns true if the node or any descendant is on the given line.
func containsLine(n *yaml.Node, line int) bool {
	if n == nil {
		return false
	}
	if n.Line == line {
		return true
	}
	for _, c := range n.Content {
		if containsLine(c, line) {
			return true
		}
	}
	return false
}

// findNodeAtLine walks the YAML tree and returns the first node at the given line.
func findNodeAtLine(n *yaml.Node, line int) *yaml.Node {
	if n == nil {
		return nil
	}
	if n.Line == line {
		return n
	}
	for _, c := range n.Content {
		if found := findNodeAtLine(c, line); found != nil {
			return found
		}
	}
	return nil
}

// commentSuppresses checks if a YAML comment suppresses the given rule ID.
func commentSuppresses(comment, ruleID string) bool {
	if comment == "" {
		return false
	}
	ms := suppressRe.FindAllStringSubmatch(comment, -1)
	for _, m := range ms {
		for _, id := range strings.Fields(m[1]) {
			if id == ruleID {
				return true
			}
		}
	}
	return false
}
