// Package validation holds the pure field rules applied at the request
// boundary. Rules never consult the store or the caller's identity.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Rule checks and optionally cleans a single value.
type Rule[T any] func(T) (T, error)

// Chain applies rules in order, feeding each the previous output. The first
// failure stops the chain.
func Chain[T any](rules ...Rule[T]) Rule[T] {
	return func(v T) (T, error) {
		var err error
		for _, rule := range rules {
			if v, err = rule(v); err != nil {
				return v, err
			}
		}
		return v, nil
	}
}

// Trim strips surrounding whitespace.
func Trim() Rule[string] {
	return func(s string) (string, error) {
		return strings.TrimSpace(s), nil
	}
}

// Lower lowercases the value.
func Lower() Rule[string] {
	return func(s string) (string, error) {
		return strings.ToLower(s), nil
	}
}

// NotBlank rejects values that are empty after trimming.
func NotBlank(msg string) Rule[string] {
	return func(s string) (string, error) {
		if strings.TrimSpace(s) == "" {
			return s, errors.New(msg)
		}
		return s, nil
	}
}

// Length bounds the rune count of the value. A negative max means unbounded.
func Length(min, max int) Rule[string] {
	return func(s string) (string, error) {
		n := utf8.RuneCountInString(s)
		if n < min {
			if min == 1 {
				return s, errors.New("must not be empty")
			}
			return s, fmt.Errorf("must be at least %d characters", min)
		}
		if max >= 0 && n > max {
			return s, fmt.Errorf("must be at most %d characters", max)
		}
		return s, nil
	}
}

// Matches requires the whole value to match re.
func Matches(re *regexp.Regexp, msg string) Rule[string] {
	return func(s string) (string, error) {
		if !re.MatchString(s) {
			return s, errors.New(msg)
		}
		return s, nil
	}
}

// Contains requires re to match somewhere in the value.
func Contains(re *regexp.Regexp, msg string) Rule[string] {
	return func(s string) (string, error) {
		if !re.MatchString(s) {
			return s, errors.New(msg)
		}
		return s, nil
	}
}
