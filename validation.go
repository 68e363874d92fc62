package fibergql

import (
	"fmt"

	"github.com/graphql-go/graphql/language/ast"
)

// SecurityConfig applies AST-level limits to incoming queries before they
// are validated against the schema. A zero value for any limit disables
// that check, so &SecurityConfig{MaxDepth: 10} only bounds nesting.
//
// These limits guard against abusive queries that are otherwise valid:
//
//   - MaxDepth bounds selection-set nesting
//   - MaxAliases bounds the total alias count (alias-based amplification)
//   - MaxComplexity bounds a field-count score that doubles per nesting
//     level
//   - DisableIntrospection rejects queries touching __schema or __type
//
// Violations surface as HTTP 400 with a single descriptive error.
type SecurityConfig struct {
	MaxDepth             int
	MaxAliases           int
	MaxComplexity        int
	DisableIntrospection bool
}

// Check walks the parsed document and returns the first limit violation.
func (s *SecurityConfig) Check(doc *ast.Document) error {
	if s.DisableIntrospection && queryHasIntrospection(doc) {
		return fmt.Errorf("GraphQL introspection is disabled")
	}
	if s.MaxDepth > 0 {
		if depth := queryDepth(doc); depth > s.MaxDepth {
			return fmt.Errorf("query depth %d exceeds maximum allowed depth of %d", depth, s.MaxDepth)
		}
	}
	if s.MaxAliases > 0 {
		if aliases := queryAliases(doc); aliases > s.MaxAliases {
			return fmt.Errorf("query contains %d aliases, maximum allowed is %d", aliases, s.MaxAliases)
		}
	}
	if s.MaxComplexity > 0 {
		if complexity := queryComplexity(doc); complexity > s.MaxComplexity {
			return fmt.Errorf("query complexity %d exceeds maximum allowed complexity of %d", complexity, s.MaxComplexity)
		}
	}
	return nil
}

// forEachSelectionSet visits the top-level selection set of every
// operation and fragment definition in the document.
func forEachSelectionSet(doc *ast.Document, visit func(*ast.SelectionSet)) {
	for _, def := range doc.Definitions {
		switch d := def.(type) {
		case *ast.OperationDefinition:
			if d.SelectionSet != nil {
				visit(d.SelectionSet)
			}
		case *ast.FragmentDefinition:
			if d.SelectionSet != nil {
				visit(d.SelectionSet)
			}
		}
	}
}

func queryDepth(doc *ast.Document) int {
	max := 0
	forEachSelectionSet(doc, func(set *ast.SelectionSet) {
		if d := selectionSetDepth(set, 0); d > max {
			max = d
		}
	})
	return max
}

func selectionSetDepth(set *ast.SelectionSet, depth int) int {
	max := depth
	for _, sel := range set.Selections {
		d := depth
		switch s := sel.(type) {
		case *ast.Field:
			d = depth + 1
			if s.SelectionSet != nil {
				d = selectionSetDepth(s.SelectionSet, depth+1)
			}
		case *ast.InlineFragment:
			// Fragments select on the same level, no extra depth.
			if s.SelectionSet != nil {
				d = selectionSetDepth(s.SelectionSet, depth)
			}
		}
		if d > max {
			max = d
		}
	}
	return max
}

func queryAliases(doc *ast.Document) int {
	total := 0
	forEachSelectionSet(doc, func(set *ast.SelectionSet) {
		total += selectionSetAliases(set)
	})
	return total
}

func selectionSetAliases(set *ast.SelectionSet) int {
	count := 0
	for _, sel := range set.Selections {
		switch s := sel.(type) {
		case *ast.Field:
			if s.Alias != nil && s.Alias.Value != "" {
				count++
			}
			if s.SelectionSet != nil {
				count += selectionSetAliases(s.SelectionSet)
			}
		case *ast.InlineFragment:
			if s.SelectionSet != nil {
				count += selectionSetAliases(s.SelectionSet)
			}
		}
	}
	return count
}

func queryComplexity(doc *ast.Document) int {
	total := 0
	forEachSelectionSet(doc, func(set *ast.SelectionSet) {
		total += selectionSetComplexity(set, 1)
	})
	return total
}

// selectionSetComplexity scores one point per field at the current
// multiplier; nested selections double the multiplier so deep queries
// cost disproportionately more than wide ones.
func selectionSetComplexity(set *ast.SelectionSet, multiplier int) int {
	score := 0
	for _, sel := range set.Selections {
		switch s := sel.(type) {
		case *ast.Field:
			score += multiplier
			if s.SelectionSet != nil {
				score += selectionSetComplexity(s.SelectionSet, multiplier*2)
			}
		case *ast.InlineFragment:
			if s.SelectionSet != nil {
				score += selectionSetComplexity(s.SelectionSet, multiplier)
			}
		case *ast.FragmentSpread:
			score += multiplier
		}
	}
	return score
}

func queryHasIntrospection(doc *ast.Document) bool {
	found := false
	forEachSelectionSet(doc, func(set *ast.SelectionSet) {
		if selectionSetHasIntrospection(set) {
			found = true
		}
	})
	return found
}

func selectionSetHasIntrospection(set *ast.SelectionSet) bool {
	for _, sel := range set.Selections {
		switch s := sel.(type) {
		case *ast.Field:
			if s.Name != nil && (s.Name.Value == "__schema" || s.Name.Value == "__type") {
				return true
			}
			if s.SelectionSet != nil && selectionSetHasIntrospection(s.SelectionSet) {
				return true
			}
		case *ast.InlineFragment:
			if s.SelectionSet != nil && selectionSetHasIntrospection(s.SelectionSet) {
				return true
			}
		}
	}
	return false
}
