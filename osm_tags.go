package osmschema

import (
	"github.com/paulmach/osm"
)

// TagMapFromOSMTags converts raw OSM tags into a TagMap, dropping tags whose
// key is not registered. Unknown keys cannot influence classification, so
// there is no point carrying them around.
func TagMapFromOSMTags(registry *TagRegistry, tags osm.Tags) TagMap {
	tagMap := make(TagMap, len(tags))
	for _, tag := range tags {
		id := registry.TagID(tag.Key)
		if id == TagIgnore {
			continue
		}

		tagMap[id] = tag.Value
	}
	return tagMap
}

// ObjectRefFromOSM builds an ObjectRef for an object coming out of a PBF scan.
func ObjectRefFromOSM(object osm.Object) ObjectRef {
	objectID := object.ObjectID()

	var objectType ObjectType
	switch objectID.Type() {
	case osm.TypeNode:
		objectType = ObjectTypeNode
	case osm.TypeWay:
		objectType = ObjectTypeWay
	case osm.TypeRelation:
		objectType = ObjectTypeRelation
	default:
		objectType = ObjectTypeUnknown
	}

	return ObjectRef{
		Type: objectType,
		ID:   objectID.Ref(),
	}
}
