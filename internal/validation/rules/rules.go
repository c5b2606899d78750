// Package rules provides concrete validators for the validation middleware
// and a catalog that builds them by name from configuration.
package rules

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/yanizio/paramguard/internal/validation"
)

// tagValidator backs Tag.  validator.Validate is safe for concurrent use.
var tagValidator = validator.New()

// IsNumber accepts values that parse as a signed 64-bit integer.
func IsNumber(value string) error {
	if _, err := strconv.ParseInt(value, 10, 64); err != nil {
		return validation.Errorf("'%s' is not a valid number", value)
	}
	return nil
}

// IsBool accepts exactly "true" or "false".
func IsBool(value string) error {
	switch value {
	case "true", "false":
		return nil
	}
	return validation.Errorf("'%s' is not a valid boolean", value)
}

// MinLength rejects values shorter than n characters.  Length is counted
// in runes (characters), not bytes, so "héé" has length 3.
func MinLength(n int) validation.ValidatorFunc {
	return func(value string) error {
		if utf8.RuneCountInString(value) < n {
			return validation.Errorf("'%s' does not have the minimal length of %d", value, n)
		}
		return nil
	}
}

// MaxLength rejects values longer than n characters (runes, not bytes).
func MaxLength(n int) validation.ValidatorFunc {
	return func(value string) error {
		if utf8.RuneCountInString(value) > n {
			return validation.Errorf("'%s' exceeds the maximal length of %d", value, n)
		}
		return nil
	}
}

// Tag runs a go-playground/validator tag (e.g. "email", "uuid4",
// "oneof=a b") against the value.  An unknown tag is reported as
// ErrBadArgument instead of panicking on the first request.
func Tag(tag string) (validation.ValidatorFunc, error) {
	if err := probeTag(tag); err != nil {
		return nil, err
	}
	return func(value string) error {
		if err := tagValidator.Var(value, tag); err != nil {
			return validation.Errorf("'%s' failed the '%s' check", value, tag)
		}
		return nil
	}, nil
}

// probeTag evaluates tag once; validator panics on undefined tags.
func probeTag(tag string) (err error) {
	if tag == "" {
		return fmt.Errorf("%w: empty validator tag", ErrBadArgument)
	}
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: tag %q: %v", ErrBadArgument, tag, p)
		}
	}()
	_ = tagValidator.Var("", tag)
	return nil
}
