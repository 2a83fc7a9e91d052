// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/srl

package srl

import (
	"fmt"
	"strings"

	"github.com/woozymasta/pathrules"
)

// entryMatcher holds compiled visibility rules for container entries.
type entryMatcher struct {
	matcher *pathrules.Matcher
}

// newEntryMatcher compiles entry visibility rules. An empty rule set yields
// a nil matcher, which keeps every entry visible.
func newEntryMatcher(rules []pathrules.Rule, opts pathrules.MatcherOptions) (*entryMatcher, error) {
	rules = normalizeEntryRules(rules)
	if len(rules) == 0 {
		return nil, nil
	}

	matcher, err := pathrules.NewMatcher(rules, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: compile rules: %w", ErrInvalidEntryRules, err)
	}

	return &entryMatcher{matcher: matcher}, nil
}

// normalizeEntryRules normalizes rule patterns and drops empty patterns.
func normalizeEntryRules(rules []pathrules.Rule) []pathrules.Rule {
	normalized := make([]pathrules.Rule, 0, len(rules))
	for _, rule := range rules {
		pattern := NormalizeEntryPath(rule.Pattern)
		if pattern == "" {
			continue
		}

		normalized = append(normalized, pathrules.Rule{
			Action:  rule.Action,
			Pattern: pattern,
		})
	}

	return normalized
}

// Match reports whether path is visible under the compiled rules.
func (m *entryMatcher) Match(path string) bool {
	if m == nil || m.matcher == nil {
		return true
	}

	candidate := NormalizeEntryPath(path)
	if candidate == "" {
		return false
	}

	return m.matcher.Included(candidate, false)
}

// filterEntriesByRules keeps entries visible under the compiled rule set.
func filterEntriesByRules(entries []Entry, matcher *entryMatcher) []Entry {
	if matcher == nil || matcher.matcher == nil {
		return entries
	}

	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if !matcher.Match(entry.Path) {
			continue
		}

		out = append(out, entry)
	}

	return out
}

// filterEntriesByPrefix keeps entries under prefix (or exact match if it
// points to a single entry).
func filterEntriesByPrefix(entries []Entry, prefix string) []Entry {
	prefix = NormalizeEntryPath(prefix)
	if prefix == "" {
		return entries
	}

	prefixWithSlash := prefix + "/"
	out := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		entryPath := NormalizeEntryPath(entry.Path)
		if entryPath == prefix || strings.HasPrefix(entryPath, prefixWithSlash) {
			out = append(out, entry)
		}
	}

	return out
}
