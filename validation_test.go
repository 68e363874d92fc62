package fibergql

import (
	"testing"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/graphql-go/graphql/language/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t testing.TB, query string) *ast.Document {
	t.Helper()
	doc, err := parser.Parse(parser.ParseParams{
		Source: source.NewSource(&source.Source{Body: []byte(query)}),
	})
	require.NoError(t, err)
	return doc
}

func TestSecurityCheck(t *testing.T) {
	t.Run("depth limit", func(t *testing.T) {
		doc := parseDoc(t, `{ a { b { c { d } } } }`)
		assert.NoError(t, (&SecurityConfig{MaxDepth: 4}).Check(doc))
		assert.Error(t, (&SecurityConfig{MaxDepth: 3}).Check(doc))
	})

	t.Run("inline fragments add no depth", func(t *testing.T) {
		doc := parseDoc(t, `{ a { ... on T { b } } }`)
		assert.NoError(t, (&SecurityConfig{MaxDepth: 2}).Check(doc))
	})

	t.Run("alias limit", func(t *testing.T) {
		doc := parseDoc(t, `{ a: test b: test c: test { d: nested } }`)
		assert.NoError(t, (&SecurityConfig{MaxAliases: 4}).Check(doc))
		assert.Error(t, (&SecurityConfig{MaxAliases: 3}).Check(doc))
	})

	t.Run("complexity limit", func(t *testing.T) {
		// Three flat fields: score 3. Nesting doubles the multiplier.
		flat := parseDoc(t, `{ a b c }`)
		assert.NoError(t, (&SecurityConfig{MaxComplexity: 3}).Check(flat))
		assert.Error(t, (&SecurityConfig{MaxComplexity: 2}).Check(flat))

		nested := parseDoc(t, `{ a { b } }`)
		// a costs 1, b costs 2.
		assert.NoError(t, (&SecurityConfig{MaxComplexity: 3}).Check(nested))
		assert.Error(t, (&SecurityConfig{MaxComplexity: 2}).Check(nested))
	})

	t.Run("introspection", func(t *testing.T) {
		schemaQuery := parseDoc(t, `{ __schema { types { name } } }`)
		typeQuery := parseDoc(t, `{ __type(name: "Query") { name } }`)
		plain := parseDoc(t, `{ test }`)

		blocked := &SecurityConfig{DisableIntrospection: true}
		assert.Error(t, blocked.Check(schemaQuery))
		assert.Error(t, blocked.Check(typeQuery))
		assert.NoError(t, blocked.Check(plain))

		open := &SecurityConfig{}
		assert.NoError(t, open.Check(schemaQuery))
	})

	t.Run("fragment definitions are counted", func(t *testing.T) {
		doc := parseDoc(t, `
			query { ...f }
			fragment f on Query { a: test b: test }
		`)
		assert.Error(t, (&SecurityConfig{MaxAliases: 1}).Check(doc))
	})

	t.Run("zero config allows everything", func(t *testing.T) {
		doc := parseDoc(t, `{ a { b { c { d { e { f { g } } } } } } }`)
		assert.NoError(t, (&SecurityConfig{}).Check(doc))
	})
}

func BenchmarkSecurityCheck_Simple(b *testing.B) {
	doc := parseDoc(b, `{ test }`)
	cfg := &SecurityConfig{MaxDepth: 10, MaxAliases: 4, MaxComplexity: 200, DisableIntrospection: true}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cfg.Check(doc)
	}
}

func BenchmarkSecurityCheck_Nested(b *testing.B) {
	doc := parseDoc(b, `{
		user(id: 1) {
			id
			name
			posts {
				id
				title
				comments {
					id
					text
					author { id name }
				}
			}
		}
	}`)
	cfg := &SecurityConfig{MaxDepth: 10, MaxAliases: 4, MaxComplexity: 200, DisableIntrospection: true}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cfg.Check(doc)
	}
}
