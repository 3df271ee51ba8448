package jesssits

import "embed"

// EmbeddedAssets contains static assets shipped with the site: site.css
//
//go:embed static/*
var EmbeddedAssets embed.FS
