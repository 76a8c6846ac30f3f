// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: lock/token.go
// Summary: Lock tokens and the set of outstanding tokens.

package lock

import (
	"github.com/google/uuid"
)

// Token is one requester's claim to suspend scrolling. Tokens are comparable;
// each NewToken call yields a distinct identity even for the same owner name.
type Token struct {
	id    uuid.UUID
	owner string
}

// NewToken mints a token for owner (used only for logging).
func NewToken(owner string) Token {
	return Token{id: uuid.New(), owner: owner}
}

// Owner returns the name the token was minted for.
func (t Token) Owner() string { return t.owner }

// IsZero reports whether t is the zero Token.
func (t Token) IsZero() bool { return t.id == uuid.Nil }

func (t Token) String() string {
	return t.owner + "/" + t.id.String()[:8]
}

// Set is a set of unique tokens.
type Set struct {
	tokens map[Token]struct{}
}

// Add inserts tok and reports whether it was newly added.
func (s *Set) Add(tok Token) bool {
	if s.tokens == nil {
		s.tokens = make(map[Token]struct{})
	}
	if _, ok := s.tokens[tok]; ok {
		return false
	}
	s.tokens[tok] = struct{}{}
	return true
}

// Remove deletes tok and reports whether it was present.
func (s *Set) Remove(tok Token) bool {
	if _, ok := s.tokens[tok]; !ok {
		return false
	}
	delete(s.tokens, tok)
	return true
}

// Has reports whether tok is in the set.
func (s *Set) Has(tok Token) bool {
	_, ok := s.tokens[tok]
	return ok
}

// Len returns the number of outstanding tokens.
func (s *Set) Len() int { return len(s.tokens) }

// Empty reports whether no token is outstanding.
func (s *Set) Empty() bool { return len(s.tokens) == 0 }
