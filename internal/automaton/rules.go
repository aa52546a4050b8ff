// Package automaton generates elementary (one-dimensional, binary,
// nearest-neighbour) cellular automata for the 256 Wolfram rules.
package automaton

import (
	"context"
	"errors"
	"fmt"
	"iter"
)

// Rule indices accepted by DeriveRuleset.
const (
	MinRule = 0
	MaxRule = 255
)

// ErrInvalidRule matches every *InvalidRuleError.
var ErrInvalidRule = errors.New("invalid rule")

// InvalidRuleError reports a rule index outside [MinRule, MaxRule].
type InvalidRuleError struct {
	Rule int
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("Ruleset must be between %d and %d! (got %d)", MinRule, MaxRule, e.Rule)
}

// Is makes errors.Is(err, ErrInvalidRule) hold.
func (e *InvalidRuleError) Is(target error) bool { return target == ErrInvalidRule }

// Ruleset maps a neighbourhood code (left<<2 | mid<<1 | right) to the next
// cell state.
type Ruleset [8]uint8

// Generation is one row of binary cell states.
type Generation []uint8

// DeriveRuleset expands rule into its transition table: bit i of the rule
// becomes entry i, least significant bit first.
func DeriveRuleset(rule int) (Ruleset, error) {
	if rule < MinRule || rule > MaxRule {
		return Ruleset{}, &InvalidRuleError{Rule: rule}
	}
	var rs Ruleset
	for i, num := 0, rule; i < len(rs); i, num = i+1, num>>1 {
		rs[i] = uint8(num & 1)
	}
	return rs, nil
}

// Code returns the neighbourhood code of three cells, left as the most
// significant bit.
func Code(left, mid, right uint8) int {
	return int(left&1)<<2 | int(mid&1)<<1 | int(right&1)
}

// Next returns the state a cell takes given its neighbourhood.
func (rs Ruleset) Next(left, mid, right uint8) uint8 {
	return rs[Code(left, mid, right)]
}

// Rule folds the table back into its rule index.
func (rs Ruleset) Rule() int {
	rule := 0
	for i := len(rs) - 1; i >= 0; i-- {
		rule = rule<<1 | int(rs[i]&1)
	}
	return rule
}

// Seed returns the canonical first generation: all zero except the middle
// cell.
func Seed(width int) Generation {
	if width <= 0 {
		return Generation{}
	}
	row := make(Generation, width)
	row[width/2] = 1
	return row
}

// NextGeneration computes the successor of row. Only interior cells are
// computed; the two boundary cells lack a neighbour and stay 0.
func NextGeneration(row Generation, rs Ruleset) Generation {
	next := make(Generation, len(row))
	for x := 1; x < len(row)-1; x++ {
		next[x] = rs.Next(row[x-1], row[x], row[x+1])
	}
	return next
}

// Run returns the first generations rows of rule on a row of the given
// width, starting from Seed. The sequence is lazy and restartable: every
// range over it starts again from the seed. ctx is checked between
// generations; when it is done the sequence ends early and the rows already
// produced must be discarded.
func Run(ctx context.Context, rule, width, generations int) (iter.Seq2[int, Generation], error) {
	rs, err := DeriveRuleset(rule)
	if err != nil {
		return nil, err
	}
	if width < 1 {
		return nil, fmt.Errorf("automaton: width must be positive, got %d", width)
	}
	return func(yield func(int, Generation) bool) {
		row := Seed(width)
		for gen := 0; gen < generations; gen++ {
			if ctx.Err() != nil {
				return
			}
			if gen > 0 {
				row = NextGeneration(row, rs)
			}
			if !yield(gen, row) {
				return
			}
		}
	}, nil
}
