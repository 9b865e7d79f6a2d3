// Package web holds the embedded HTML templates for joe-advisor.
package web

import "embed"

// TemplateFS contains all HTML templates.
//
//go:embed templates
var TemplateFS embed.FS
