package pipeline

import "github.com/microcosm-cc/bluemonday"

// policy is the shared bluemonday UGC policy: common formatting tags stay,
// scripts, event handlers and embedded objects are stripped. Policies are
// safe for concurrent use once built.
var policy = bluemonday.UGCPolicy()

// Sanitize strips disallowed HTML markup from the working body. It runs
// before rendering so the renderer can pass surviving inline HTML through
// unescaped.
func Sanitize(res Result) (Result, error) {
	res.Body = policy.Sanitize(res.Body)
	return res, nil
}
