package domain

import (
	"fmt"
	"strings"
)

// Document is a validated national ID number (CPF). Only the eleven digits
// are kept; formatting characters are stripped on construction.
type Document string

// NewDocument validates and normalizes a CPF string. Accepted inputs may
// contain dots and a dash ("529.982.247-25"). The two check digits are
// verified with the modulo-11 algorithm, and sequences of a single repeated
// digit are rejected even though their check digits are formally valid.
func NewDocument(s string) (Document, error) {
	var digits strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == '.' || r == '-' || r == ' ':
			// formatting characters are ignored
		default:
			return "", fmt.Errorf("%w: document contains invalid character %q", ErrValidation, r)
		}
	}
	d := digits.String()
	if len(d) != 11 {
		return "", fmt.Errorf("%w: document must have 11 digits", ErrValidation)
	}
	repeated := true
	for i := 1; i < 11; i++ {
		if d[i] != d[0] {
			repeated = false
			break
		}
	}
	if repeated {
		return "", fmt.Errorf("%w: document is a repeated digit sequence", ErrValidation)
	}
	if int(d[9]-'0') != checkDigit(d, 9) || int(d[10]-'0') != checkDigit(d, 10) {
		return "", fmt.Errorf("%w: document check digits do not match", ErrValidation)
	}
	return Document(d), nil
}

// checkDigit computes the verification digit over the first n digits of d
// using descending weights starting at n+1.
func checkDigit(d string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(d[i]-'0') * (n + 1 - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		return 0
	}
	return rest
}

// Formatted returns the CPF in its conventional XXX.XXX.XXX-XX layout.
func (d Document) Formatted() string {
	s := string(d)
	if len(s) != 11 {
		return s
	}
	return s[0:3] + "." + s[3:6] + "." + s[6:9] + "-" + s[9:11]
}
