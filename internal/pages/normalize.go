// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pages extracts and normalizes page ranges for resolved papers.
// A cascade of strategies is tried in order until one produces a value;
// a strategy never overwrites pages that are already set.
package pages

import (
	"regexp"
	"strings"
)

var (
	pagePrefix = regexp.MustCompile(`(?i)^(pages?|pp?\.?)\s*`)
	digitRun   = regexp.MustCompile(`\d+`)
)

// Normalize reduces a raw page string to the canonical "start-end" form,
// or a single number when only one is present. Publisher prefixes
// ("pp.", "pages") and exotic dashes are discarded along the way. The
// function is idempotent: normalizing an already-normal value returns it
// unchanged. An input with no digits normalizes to "".
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = pagePrefix.ReplaceAllString(s, "")

	nums := digitRun.FindAllString(s, -1)
	switch {
	case len(nums) >= 2:
		return nums[0] + "-" + nums[1]
	case len(nums) == 1:
		return nums[0]
	default:
		return ""
	}
}
