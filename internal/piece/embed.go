package piece

import "embed"

// dataFS embeds the piece definition file at build time.
//
//go:embed pieces.json
var dataFS embed.FS
