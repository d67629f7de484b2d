package demo

import _ "embed"

// PageHTML is the browser side of Page: the same element ids, plus a
// script that forwards clicks and key presses over the bridge and renders
// the "view" messages it receives.
//
//go:embed page.html
var PageHTML []byte
