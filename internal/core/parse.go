package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedInput reports text that could not be parsed into a number.
var ErrMalformedInput = errors.New("malformed input")

// ParseRule converts free-form rule text into an integer. Range checks are
// left to the automaton so its error message reaches the user unchanged.
func ParseRule(text string) (int, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0, fmt.Errorf("%w: rule is empty", ErrMalformedInput)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: rule %q is not an integer", ErrMalformedInput, s)
	}
	return v, nil
}
