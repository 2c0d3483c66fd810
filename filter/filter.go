// Package filter evaluates expr expressions against annotation records,
// for client-side narrowing of the lists the annotation service returns.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/m3client/annosaurus"
)

// Filter is a compiled annotation filter expression.
type Filter struct {
	program    *vm.Program
	expression string
}

// Compile compiles a filter expression. The expression sees the annotation
// under "Annotation" plus the helper functions documented on Evaluate.
func Compile(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	program, err := expr.Compile(expression,
		expr.Env(buildEnv(annosaurus.Observation{})),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter expression: %w", err)
	}

	return &Filter{program: program, expression: expression}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	return f.expression
}

// Evaluate runs the filter against one annotation. Available helpers:
//
//	hasAssociation("identity-reference")   annotation carries the link
//	linkValue("identity-reference")        first matching link value, or ""
//	hasImage()                             at least one image reference
//	contains(s, sub)                       case-insensitive substring
//	daysSince(parseTime(ts))               age helpers on RFC 3339 stamps
func (f *Filter) Evaluate(obs annosaurus.Observation) (bool, error) {
	result, err := expr.Run(f.program, buildEnv(obs))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filter: %w", err)
	}

	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter expression must evaluate to a boolean, got %T", result)
	}
	return matched, nil
}

// Apply returns the annotations matching the filter, in input order. The
// first evaluation error aborts.
func (f *Filter) Apply(annotations []*annosaurus.Observation) ([]*annosaurus.Observation, error) {
	var matched []*annosaurus.Observation
	for _, obs := range annotations {
		ok, err := f.Evaluate(*obs)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, obs)
		}
	}
	return matched, nil
}

func buildEnv(obs annosaurus.Observation) map[string]any {
	return map[string]any{
		"Annotation": obs,

		"hasAssociation": func(linkName string) bool {
			for _, assoc := range obs.Associations {
				if strings.EqualFold(assoc.LinkName, linkName) {
					return true
				}
			}
			return false
		},
		"linkValue": func(linkName string) string {
			for _, assoc := range obs.Associations {
				if strings.EqualFold(assoc.LinkName, linkName) {
					return assoc.LinkValue
				}
			}
			return ""
		},
		"hasImage": func() bool {
			return len(obs.ImageReferences) > 0
		},

		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,

		"parseTime": func(timestamp string) time.Time {
			t, _ := time.Parse(time.RFC3339, timestamp)
			return t
		},
		"daysSince": func(t time.Time) int {
			return int(time.Since(t).Hours() / 24)
		},
		"now": time.Now,
	}
}
