// Package templates embeds the HTML templates rendered by the site.
package templates

import "embed"

// FS holds layouts/, partials/ and pages/.
//
//go:embed layouts/*.tmpl partials/*.tmpl pages/*.tmpl
var FS embed.FS
