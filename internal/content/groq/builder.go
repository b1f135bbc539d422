// Package groq builds GROQ queries for the content repository.
package groq

import "strings"

// Builder is a fluent builder for a filtered, ordered and projected document query.
type Builder struct {
	filters    []string
	order      []string
	slice      string
	projection []string
}

// Documents starts a query over every document (*[...]).
func Documents() *Builder {
	return &Builder{}
}

// Where adds predicates, AND-combined with the existing ones.
func (b *Builder) Where(exprs ...string) *Builder {
	for _, e := range exprs {
		if e != "" {
			b.filters = append(b.filters, e)
		}
	}
	return b
}

// Optional adds a predicate that is bypassed when $param is null.
func (b *Builder) Optional(param, expr string) *Builder {
	return b.Where(Param(param) + " == null || " + expr)
}

// Order appends sort expressions, e.g. "_updatedAt desc".
func (b *Builder) Order(exprs ...string) *Builder {
	b.order = append(b.order, exprs...)
	return b
}

// First selects the first matching document instead of the array.
func (b *Builder) First() *Builder {
	b.slice = "[0]"
	return b
}

// Project sets the output projection fields.
func (b *Builder) Project(fields ...string) *Builder {
	b.projection = append(b.projection, fields...)
	return b
}

// Build renders the query.
func (b *Builder) Build() string {
	var sb strings.Builder
	sb.WriteString("*[")
	for i, f := range b.filters {
		if i > 0 {
			sb.WriteString(" && ")
		}
		if len(b.filters) > 1 {
			sb.WriteString("(" + f + ")")
		} else {
			sb.WriteString(f)
		}
	}
	sb.WriteString("]")
	if len(b.order) > 0 {
		sb.WriteString(" | order(" + strings.Join(b.order, ", ") + ")")
	}
	sb.WriteString(b.slice)
	if len(b.projection) > 0 {
		sb.WriteString(" ")
		sb.WriteString(Object(b.projection...))
	}
	return sb.String()
}

// Param references a query parameter.
func Param(name string) string { return "$" + name }

// String renders a GROQ string literal.
func String(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// AnyOf OR-combines expressions.
func AnyOf(exprs ...string) string {
	return "(" + strings.Join(exprs, " || ") + ")"
}

// AllOf AND-combines expressions.
func AllOf(exprs ...string) string {
	return "(" + strings.Join(exprs, " && ") + ")"
}

// Field renders a named projection field.
func Field(name, expr string) string {
	return String(name) + ": " + expr
}

// Object renders a projection object.
func Object(fields ...string) string {
	return "{" + strings.Join(fields, ", ") + "}"
}

// Coalesce renders coalesce(...).
func Coalesce(exprs ...string) string {
	return "coalesce(" + strings.Join(exprs, ", ") + ")"
}

// Case is one branch of a select().
type Case struct {
	When string
	Then string
}

// Select renders select(cond => value, ..., fallback). An empty fallback is omitted.
func Select(fallback string, cases ...Case) string {
	parts := make([]string, 0, len(cases)+1)
	for _, c := range cases {
		parts = append(parts, c.When+" => "+c.Then)
	}
	if fallback != "" {
		parts = append(parts, fallback)
	}
	return "select(" + strings.Join(parts, ", ") + ")"
}

// FirstDefined renders a select() returning the first defined expression.
func FirstDefined(exprs ...string) string {
	cases := make([]Case, len(exprs))
	for i, e := range exprs {
		cases[i] = Case{When: "defined(" + e + ")", Then: e}
	}
	return Select("", cases...)
}
