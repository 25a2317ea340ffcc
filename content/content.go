// Package content embeds the game data shipped with the binary.
package content

import _ "embed"

// Dungeon is the default world definition: the six-room prison escape.
//
//go:embed dungeon.yaml
var Dungeon []byte
