// Package filter compiles boolean expressions over document records
// for client-side narrowing of listings and the review queue.
package filter

import (
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/audittrack/audittrack/audit"
)

// DocumentFilter represents a compiled filter expression
type DocumentFilter struct {
	program    *vm.Program
	expression string
}

// Compile compiles a filter expression. Expressions evaluate against
// the fields of a document record plus a set of helper functions, e.g.
//
//	Status == "Flagged" && Issues > 2
//	contains(Vendor, "caribbean") || amount(Amount) > 10000
func Compile(expression string) (*DocumentFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(helperFunctions()),
		expr.AllowUndefinedVariables(), // document fields resolve at runtime
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &DocumentFilter{program: program, expression: expression}, nil
}

// Expression returns the source text of the filter
func (f *DocumentFilter) Expression() string {
	return f.expression
}

// Match evaluates the filter against a single document
func (f *DocumentFilter) Match(doc audit.DocumentRecord) (bool, error) {
	env := helperFunctions()
	env["ID"] = doc.ID
	env["Name"] = doc.Name
	env["Size"] = doc.Size
	env["Status"] = doc.Status.String()
	env["Issues"] = doc.Issues
	env["Vendor"] = doc.Vendor
	env["UploadedAt"] = doc.UploadedAt
	env["Amount"] = doc.Amount

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, &EvaluationError{
			Expression:   f.expression,
			DocumentName: doc.Name,
			Reason:       "failed to evaluate expression",
			Err:          err,
		}
	}

	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression:   f.expression,
			DocumentName: doc.Name,
			Reason:       "expression did not produce a boolean",
		}
	}
	return matched, nil
}

// Apply returns the documents matching the filter, preserving order
func Apply(docs []audit.DocumentRecord, f *DocumentFilter) ([]audit.DocumentRecord, error) {
	var matched []audit.DocumentRecord
	for _, doc := range docs {
		ok, err := f.Match(doc)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, doc)
		}
	}
	return matched, nil
}

// helperFunctions defines the helpers available inside expressions
func helperFunctions() map[string]any {
	return map[string]any{
		// String helpers
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		// amount parses a display money string like "$15,240.00"
		"amount": parseAmount,
	}
}

// parseAmount converts a display money string to a float. Unparseable
// input yields 0 so filters degrade instead of erroring per record.
func parseAmount(display string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, display)
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}
