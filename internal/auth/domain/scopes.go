package domain

import (
	"slices"
	"strings"
)

// Scopes is an immutable set of permission tokens. Tokens are trimmed,
// non-blank and unique, and always kept sorted so the canonical string
// form ("a b c") and equality do not depend on how the set was built.
//
// The zero value is the empty set.
type Scopes struct {
	tokens []string
}

// NewScopes builds a set from any number of tokens. Each argument may itself
// hold several whitespace-delimited tokens; blanks are dropped.
func NewScopes(tokens ...string) Scopes {
	var out []string
	for _, t := range tokens {
		out = append(out, strings.Fields(t)...)
	}
	if len(out) == 0 {
		return Scopes{}
	}
	slices.Sort(out)
	return Scopes{tokens: slices.Compact(out)}
}

// ParseScopes parses a space-delimited scope string such as the OAuth2
// "scope" parameter.
func ParseScopes(s string) Scopes {
	return NewScopes(s)
}

// String is the canonical form: tokens sorted ascending, single-space joined.
func (s Scopes) String() string {
	return strings.Join(s.tokens, " ")
}

// Slice returns a copy of the sorted tokens, or nil for the empty set.
func (s Scopes) Slice() []string {
	return slices.Clone(s.tokens)
}

func (s Scopes) Len() int { return len(s.tokens) }

func (s Scopes) IsEmpty() bool { return len(s.tokens) == 0 }

// Contains reports whether token is in the set.
func (s Scopes) Contains(token string) bool {
	_, ok := slices.BinarySearch(s.tokens, token)
	return ok
}

// Equal is set equality.
func (s Scopes) Equal(other Scopes) bool {
	return slices.Equal(s.tokens, other.tokens)
}

// Intersect returns the tokens present in both sets.
func (s Scopes) Intersect(other Scopes) Scopes {
	var out []string
	for _, t := range s.tokens {
		if other.Contains(t) {
			out = append(out, t)
		}
	}
	return Scopes{tokens: out}
}
