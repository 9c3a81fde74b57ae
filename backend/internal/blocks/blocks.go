// Package blocks models free-form note content: an ordered list of typed
// blocks persisted as a JSON string in a single text column.
package blocks

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofrs/uuid"
)

type BlockType string

const (
	TypeText  BlockType = "text"
	TypeTodo  BlockType = "todo"
	TypeImage BlockType = "image"
)

func (t BlockType) Valid() bool {
	switch t {
	case TypeText, TypeTodo, TypeImage:
		return true
	}
	return false
}

// Block is one unit of note content. Content is plain text for text and
// todo blocks and a data URI for image blocks. Completed is only
// meaningful for todo blocks.
type Block struct {
	ID        string    `json:"id"`
	Type      BlockType `json:"type"`
	Content   string    `json:"content"`
	Completed bool      `json:"completed,omitempty"`
}

// Decode parses a note's content column. An empty column decodes to a
// single empty text block. Unknown block types are an error, not a silent
// drop.
func Decode(raw string) ([]Block, error) {
	if strings.TrimSpace(raw) == "" {
		return Normalize(nil), nil
	}

	var bs []Block
	if err := json.Unmarshal([]byte(raw), &bs); err != nil {
		return nil, fmt.Errorf("invalid note content: %w", err)
	}

	for i, b := range bs {
		if !b.Type.Valid() {
			return nil, fmt.Errorf("invalid note content: unknown block type %q at index %d", b.Type, i)
		}
	}

	return bs, nil
}

// Encode serializes blocks back into the content column.
func Encode(bs []Block) (string, error) {
	data, err := json.Marshal(bs)
	if err != nil {
		return "", fmt.Errorf("encode note content: %w", err)
	}
	return string(data), nil
}

// Normalize returns the canonical form of a block list:
//
//   - adjacent text blocks are merged into one, joined by a blank line
//   - an empty list becomes a single empty text block
//   - blocks without an ID get one assigned
//
// The canonical form is what every save path persists, so readers never
// see two consecutive text blocks or a bodiless note.
func Normalize(bs []Block) []Block {
	out := make([]Block, 0, len(bs))

	for _, b := range bs {
		if b.ID == "" {
			b.ID = uuid.Must(uuid.NewV4()).String()
		}

		if b.Type == TypeText && len(out) > 0 && out[len(out)-1].Type == TypeText {
			prev := &out[len(out)-1]
			switch {
			case prev.Content == "":
				prev.Content = b.Content
			case b.Content == "":
			default:
				prev.Content += "\n\n" + b.Content
			}
			continue
		}

		out = append(out, b)
	}

	if len(out) == 0 {
		out = append(out, Block{
			ID:   uuid.Must(uuid.NewV4()).String(),
			Type: TypeText,
		})
	}

	return out
}
