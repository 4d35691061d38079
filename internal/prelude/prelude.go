// Package prelude embeds the bootstrap definitions (APPEND, REVERSE,
// EQUAL, APPLY, INTO, ONTO, NOT, ASSOC, NPROP, PUTPROP, GETPROP, REMPROP)
// that are loaded, as plain govol source, before the first prompt.
package prelude

import _ "embed"

//go:embed lispinit
var Source string
