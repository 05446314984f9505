package models

import "embed"

// Locales holds one YAML table per locale, named after the locale.
//
//go:embed locales/*.yaml
var Locales embed.FS
