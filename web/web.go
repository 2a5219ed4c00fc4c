// Package web embeds the page templates and static assets into the binary,
// so the server runs from any working directory.
package web

import "embed"

// FS holds templates/ and static/.
//
//go:embed templates static
var FS embed.FS
