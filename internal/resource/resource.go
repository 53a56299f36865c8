// Package resource defines resource types and the recipes buildings run.
package resource

import (
	"fmt"
	"strings"
)

// Type enumerates tradeable resources.
type Type uint8

const (
	Wood  Type = iota // Felled from forests
	Plank             // Sawn from wood
	Stone             // Quarried
	Grain             // Farmed on fertile land
	Flour             // Milled grain
	Bread             // Baked flour
	Fish              // Caught offshore
	Water             // Drawn from wells
	Tools             // Crafted from wood and stone
)

var typeNames = [...]string{
	Wood:  "Wood",
	Plank: "Plank",
	Stone: "Stone",
	Grain: "Grain",
	Flour: "Flour",
	Bread: "Bread",
	Fish:  "Fish",
	Water: "Water",
	Tools: "Tools",
}

// Types lists every resource type in declaration order.
func Types() []Type {
	out := make([]Type, len(typeNames))
	for i := range typeNames {
		out[i] = Type(i)
	}
	return out
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// ParseType resolves a case-insensitive resource name.
func ParseType(s string) (Type, error) {
	for i, name := range typeNames {
		if strings.EqualFold(name, s) {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("unknown resource type %q", s)
}

// Amount is a quantity of one resource.
type Amount struct {
	Type   Type    `json:"type"`
	Amount float64 `json:"amount"`
}

// Recipe lists what a building consumes and produces per tick.
// The slices are private so a recipe cannot change once assigned.
type Recipe struct {
	input  []Amount
	output []Amount
}

// NewRecipe copies in and out into a new recipe. Either may be nil.
func NewRecipe(in, out []Amount) Recipe {
	return Recipe{
		input:  append([]Amount(nil), in...),
		output: append([]Amount(nil), out...),
	}
}

// Inputs returns a copy of the consumed amounts.
func (r Recipe) Inputs() []Amount {
	return append([]Amount(nil), r.input...)
}

// Outputs returns a copy of the produced amounts.
func (r Recipe) Outputs() []Amount {
	return append([]Amount(nil), r.output...)
}

// Net returns the per-tick change the recipe applies to each resource type.
func (r Recipe) Net() map[Type]float64 {
	net := make(map[Type]float64, len(r.input)+len(r.output))
	for _, a := range r.input {
		net[a.Type] -= a.Amount
	}
	for _, a := range r.output {
		net[a.Type] += a.Amount
	}
	return net
}

func (r Recipe) String() string {
	var b strings.Builder
	writeAmounts(&b, r.input)
	b.WriteString(" -> ")
	writeAmounts(&b, r.output)
	return b.String()
}

func writeAmounts(b *strings.Builder, list []Amount) {
	if len(list) == 0 {
		b.WriteString("nothing")
		return
	}
	for i, a := range list {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%g %s", a.Amount, a.Type)
	}
}
