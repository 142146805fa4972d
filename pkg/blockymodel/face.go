package blockymodel

import (
	"fmt"
	"strings"
)

// Face names one side of a box. The order matches the box face table.
type Face uint8

const (
	North Face = iota // -Z
	East              // +X
	South             // +Z
	West              // -X
	Down              // -Y
	Up                // +Y
)

// Faces lists every box face in table order.
var Faces = [...]Face{North, East, South, West, Down, Up}

var faceNames = [...]string{"north", "east", "south", "west", "down", "up"}

// Aliases used by files written with normal-derived face names.
var faceAliases = [...]string{"front", "right", "back", "left", "bottom", "top"}

// String returns the canonical face name.
func (f Face) String() string {
	if int(f) < len(faceNames) {
		return faceNames[f]
	}
	return fmt.Sprintf("Face(%d)", f)
}

// Alias returns the alternate name of the face.
func (f Face) Alias() string {
	if int(f) < len(faceAliases) {
		return faceAliases[f]
	}
	return ""
}

// Opposite returns the face on the other side of the box.
func (f Face) Opposite() Face {
	switch f {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	case Down:
		return Up
	default:
		return Down
	}
}

// ParseFace resolves a canonical name or alias, ignoring case.
func ParseFace(name string) (Face, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i := range faceNames {
		if faceNames[i] == name || faceAliases[i] == name {
			return Face(i), true
		}
	}
	return 0, false
}
