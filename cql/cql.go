// Package cql implements a small textual query language over component
// type sets. A query like
//
//	CONTAINS(Position, Velocity) & !CONTAINS(Frozen)
//
// parses into a filter.ComponentFilter that a registry can materialize into
// a view. Component names are the bare Go type names of registered
// components.
package cql

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/rotisserie/eris"

	"github.com/MissaelAnda/necs/filter"
	"github.com/MissaelAnda/necs/types"
)

// Lookup resolves a component name from a query into its reference.
type Lookup func(name string) (types.ComponentRef, bool)

type operator int

const (
	opAnd operator = iota
	opOr
)

var operators = map[string]operator{"&": opAnd, "|": opOr}

func (o *operator) Capture(tokens []string) error {
	if len(tokens) == 0 {
		return eris.New("invalid operator")
	}
	op, ok := operators[tokens[0]]
	if !ok {
		return eris.New("invalid operator")
	}
	*o = op
	return nil
}

type componentName struct {
	Name string `@Ident`
}

type allExpr struct{}

func (a *allExpr) Capture([]string) error {
	*a = allExpr{}
	return nil
}

type notExpr struct {
	Sub *value `"!" @@`
}

type exactExpr struct {
	Components []*componentName `"EXACT" "(" (@@ ",")* @@ ")"`
}

type containsExpr struct {
	Components []*componentName `"CONTAINS" "(" (@@ ",")* @@ ")"`
}

type value struct {
	All      *allExpr      `@("ALL" "(" ")")`
	Exact    *exactExpr    `| @@`
	Contains *containsExpr `| @@`
	Not      *notExpr      `| @@`
	Sub      *term         `| "(" @@ ")"`
}

type opValue struct {
	Operator operator `@("&" | "|")`
	Value    *value   `@@`
}

type term struct {
	Left  *value     `@@`
	Right []*opValue `@@*`
}

var parser = participle.MustBuild[term]()

func resolveNames(names []*componentName, lookup Lookup) ([]types.ComponentRef, error) {
	refs := make([]types.ComponentRef, 0, len(names))
	var unknown []string
	for _, n := range names {
		ref, ok := lookup(n.Name)
		if !ok {
			unknown = append(unknown, n.Name)
			continue
		}
		refs = append(refs, ref)
	}
	if len(unknown) > 0 {
		return nil, &filter.UnknownComponentsError{Names: unknown}
	}
	return refs, nil
}

func lowerValue(v *value, lookup Lookup) (filter.ComponentFilter, error) {
	switch {
	case v.All != nil:
		return filter.All(), nil
	case v.Exact != nil:
		if len(v.Exact.Components) == 0 {
			return nil, eris.New("EXACT requires at least one component")
		}
		refs, err := resolveNames(v.Exact.Components, lookup)
		if err != nil {
			return nil, err
		}
		return filter.Exact(refs...), nil
	case v.Contains != nil:
		if len(v.Contains.Components) == 0 {
			return nil, eris.New("CONTAINS requires at least one component")
		}
		refs, err := resolveNames(v.Contains.Components, lookup)
		if err != nil {
			return nil, err
		}
		return filter.Contains(refs...), nil
	case v.Not != nil:
		sub, err := lowerValue(v.Not.Sub, lookup)
		if err != nil {
			return nil, err
		}
		return filter.Not(sub), nil
	case v.Sub != nil:
		return lowerTerm(v.Sub, lookup)
	}
	return nil, eris.New("malformed query expression")
}

func lowerTerm(t *term, lookup Lookup) (filter.ComponentFilter, error) {
	if t.Left == nil {
		return nil, eris.New("not enough values in expression")
	}
	acc, err := lowerValue(t.Left, lookup)
	if err != nil {
		return nil, err
	}
	for _, r := range t.Right {
		rhs, err := lowerValue(r.Value, lookup)
		if err != nil {
			return nil, err
		}
		switch r.Operator {
		case opAnd:
			acc = filter.And(acc, rhs)
		case opOr:
			acc = filter.Or(acc, rhs)
		}
	}
	return acc, nil
}

// Parse compiles a query string into a component filter. Unregistered
// component names surface as *filter.UnknownComponentsError.
func Parse(query string, lookup Lookup) (filter.ComponentFilter, error) {
	if strings.TrimSpace(query) == "" {
		return nil, eris.New("empty query")
	}
	t, err := parser.ParseString("", query)
	if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return lowerTerm(t, lookup)
}
