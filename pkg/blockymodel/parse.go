package blockymodel

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/segmentio/encoding/json"
)

// Blockymodel errors.
var (
	ErrFileNotFound     = errors.New("model file not found")
	ErrIO               = errors.New("reading model file")
	ErrMalformedJSON    = errors.New("malformed model JSON")
	ErrMissingField     = errors.New("missing required field")
	ErrUnknownShapeType = errors.New("unknown shape type")
)

// document mirrors Model but keeps nodes as a pointer so an absent key can be
// told apart from an empty array.
type document struct {
	Nodes *[]Node `json:"nodes"`
	LOD   string  `json:"lod"`
}

// Load reads and parses a blockymodel file.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w %s: %w", ErrIO, path, err)
	}

	model, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return model, nil
}

// Parse decodes a blockymodel document and checks the fields the importer
// cannot default.
func Parse(data []byte) (*Model, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}
	if doc.Nodes == nil {
		return nil, fmt.Errorf("%w: nodes", ErrMissingField)
	}

	model := &Model{Nodes: *doc.Nodes, LOD: doc.LOD}
	for i := range model.Nodes {
		if err := checkNode(&model.Nodes[i], model.Nodes[i].DisplayName()); err != nil {
			return nil, err
		}
	}
	return model, nil
}

func checkNode(n *Node, path string) error {
	if s := n.Shape; s != nil {
		if s.Type == "" {
			return fmt.Errorf("%w: %s: shape.type", ErrMissingField, path)
		}
		if (s.Type == ShapeBox || s.Type == ShapeQuad) && s.Settings.Size == nil {
			return fmt.Errorf("%w: %s: shape.settings.size", ErrMissingField, path)
		}
	}
	for i := range n.Children {
		child := &n.Children[i]
		if err := checkNode(child, path+"/"+child.DisplayName()); err != nil {
			return err
		}
	}
	return nil
}
