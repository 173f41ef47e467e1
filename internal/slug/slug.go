// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives the URL path segment for articles and categories
// from their human-written titles. Slugs are lowercase ASCII with hyphens
// and must stay stable once an article is published, so Generate is pure
// and deterministic.
package slug

import (
	"regexp"
	"strings"
)

var (
	// Anything outside lowercase letters, digits, whitespace, and hyphens
	// is dropped rather than transliterated.
	dropped = regexp.MustCompile(`[^a-z0-9\s-]`)
	// Runs of hyphens left behind by stripped punctuation.
	hyphenRuns = regexp.MustCompile(`-{2,}`)
)

// Generate turns a title into a URL slug.
// "Shipping My Blog, Finally!" becomes "shipping-my-blog-finally".
// Titles with no usable characters produce an empty slug; callers
// reject those before storing.
func Generate(title string) string {
	s := dropped.ReplaceAllString(strings.ToLower(title), "")
	s = strings.Join(strings.Fields(s), "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
