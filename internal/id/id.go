// Package id generates prefixed entity identifiers.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Entity prefixes.
const (
	PrefixUser         = "user"
	PrefixQuote        = "quote"
	PrefixCategory     = "cat"
	PrefixLike         = "like"
	PrefixSave         = "save"
	PrefixFollow       = "follow"
	PrefixMessage      = "msg"
	PrefixNotification = "notif"
	PrefixBackground   = "bg"
	PrefixBlog         = "blog"
	PrefixToken        = "token"
)

// Generate creates a prefixed unique ID using NanoID.
// Format: prefix-nanoid (e.g., "quote-V1StGXR8_Z5jdHi6B-myT").
// Identifiers are never reused.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}
