package osmschema

import "fmt"

type ObjectType int

const (
	ObjectTypeUnknown  ObjectType = 0
	ObjectTypeNode     ObjectType = 1
	ObjectTypeWay      ObjectType = 2
	ObjectTypeRelation ObjectType = 3
)

func (t ObjectType) String() string {
	switch t {
	case ObjectTypeNode:
		return "node"
	case ObjectTypeWay:
		return "way"
	case ObjectTypeRelation:
		return "relation"
	}
	return "unknown"
}

// ObjectRef identifies the raw object a tag set came from. It is only used
// to attribute data-quality warnings to their source.
type ObjectRef struct {
	Type ObjectType
	ID   int64
}

func (o ObjectRef) String() string {
	return fmt.Sprintf("%s %d", o.Type, o.ID)
}
