// Package web carries the embedded HTML templates.
package web

import "embed"

//go:embed templates/*.tmpl
var Templates embed.FS
