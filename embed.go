package folio

import "embed"

// EmbeddedPages contains the informational pages shipped with the site:
// the about page and the entries of the Misc menu.
//
//go:embed embedded/pages/*.md
var EmbeddedPages embed.FS
