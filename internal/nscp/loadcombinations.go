package nscp

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/cbeam/internal/load"
)

// Case is the load case a distributed load belongs to
type Case string

const (
	Dead       Case = "D"
	Live       Case = "L"
	Roof       Case = "Lr"
	Wind       Case = "W"
	Earthquake Case = "E"
	Rain       Case = "R"
)

// Cases lists every load case in table order
var Cases = []Case{Dead, Live, Roof, Wind, Earthquake, Rain}

// ParseCase accepts a case symbol in any letter case. An empty string is dead load.
func ParseCase(s string) (Case, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Dead, nil
	}
	for _, c := range Cases {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown load case %q (want one of D, L, Lr, W, E, R)", s)
}

// LoadCombination represents an NSCP load combination
// Based on NSCP 2015 Section 203.3 - Load Combinations Using Strength Design
type LoadCombination struct {
	ID          string
	Description string
	// Load factors for each load case
	Dead       float64 // D - Dead load
	Live       float64 // L - Live load
	Roof       float64 // Lr - Roof live load
	Wind       float64 // W - Wind load
	Earthquake float64 // E - Earthquake load
	Rain       float64 // R - Rain load
}

// NSCP 2015 Section 203.3.1 - Basic Load Combinations
var LoadCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.6,
		Roof:        0.5,
		Rain:        0.5,
	},
	{
		ID:          "3",
		Description: "1.2D + 1.6(Lr or R) + (1.0L or 0.5W)",
		Dead:        1.2,
		Live:        1.0,
		Roof:        1.6,
		Rain:        1.6,
		Wind:        0.5,
	},
	{
		ID:          "4",
		Description: "1.2D + 1.0W + 1.0L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.0,
		Wind:        1.0,
		Roof:        0.5,
		Rain:        0.5,
	},
	{
		ID:          "5",
		Description: "1.2D + 1.0E + 1.0L",
		Dead:        1.2,
		Live:        1.0,
		Earthquake:  1.0,
	},
	{
		ID:          "6",
		Description: "0.9D + 1.0W",
		Dead:        0.9,
		Wind:        1.0,
	},
	{
		ID:          "7",
		Description: "0.9D + 1.0E",
		Dead:        0.9,
		Earthquake:  1.0,
	},
}

// SimplifiedCombinations covers gravity-only beams
var SimplifiedCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L",
		Dead:        1.2,
		Live:        1.6,
	},
}

// Factor returns the load factor the combination applies to case c
func (lc LoadCombination) Factor(c Case) float64 {
	switch c {
	case Dead:
		return lc.Dead
	case Live:
		return lc.Live
	case Roof:
		return lc.Roof
	case Wind:
		return lc.Wind
	case Earthquake:
		return lc.Earthquake
	case Rain:
		return lc.Rain
	}
	return 0
}

func (lc LoadCombination) String() string {
	return fmt.Sprintf("LC%s: %s", lc.ID, lc.Description)
}

// CaseLoad is a service load tagged with its case
type CaseLoad struct {
	Case Case
	Load load.Load
}

// Apply scales every load by the factor of its case. Loads whose case the
// combination does not include are left out.
func (lc LoadCombination) Apply(loads []CaseLoad) []load.Load {
	out := make([]load.Load, 0, len(loads))
	for _, cl := range loads {
		f := lc.Factor(cl.Case)
		if f == 0 {
			continue
		}
		out = append(out, cl.Load.Scale(f))
	}
	return out
}

// Present returns the cases that at least one load belongs to, in table order
func Present(loads []CaseLoad) []Case {
	seen := make(map[Case]bool, len(Cases))
	for _, cl := range loads {
		seen[cl.Case] = true
	}
	var out []Case
	for _, c := range Cases {
		if seen[c] {
			out = append(out, c)
		}
	}
	return out
}
