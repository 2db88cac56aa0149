package document

import "github.com/google/uuid"

// Type enumerates the closed set of block variants the editor supports.
type Type string

const (
	TypeParagraph    Type = "paragraph"
	TypeHeading1     Type = "heading-1"
	TypeHeading2     Type = "heading-2"
	TypeHeading3     Type = "heading-3"
	TypeCaption      Type = "caption"
	TypeBulletedList Type = "bulleted-list"
	TypeTodo         Type = "todo"
	TypeCode         Type = "code"
)

func ValidType(t Type) bool {
	switch t {
	case TypeParagraph, TypeHeading1, TypeHeading2, TypeHeading3,
		TypeCaption, TypeBulletedList, TypeTodo, TypeCode:
		return true
	}
	return false
}

// Block is the atomic unit of document content. The id is assigned at
// creation and never changes; order within the store defines reading order.
type Block struct {
	ID      string `json:"id"`
	Type    Type   `json:"type"`
	Content string `json:"content"`
	Checked bool   `json:"checked,omitempty"`
}

// HeadingLevel returns 1..3 for heading blocks and 0 for everything else.
func HeadingLevel(t Type) int {
	switch t {
	case TypeHeading1:
		return 1
	case TypeHeading2:
		return 2
	case TypeHeading3:
		return 3
	}
	return 0
}

func IsHeading(t Type) bool {
	return HeadingLevel(t) != 0
}

func NewBlock(t Type) Block {
	return Block{ID: uuid.NewString(), Type: t}
}
