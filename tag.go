package osmschema

// TagID is the interned id of a tag key. Id 0 is permanently reserved for
// "no such tag" and is what lookups of unknown keys resolve to.
type TagID uint16

const TagIgnore TagID = 0

// TagInfo describes one interned tag key.
type TagInfo struct {
	ID           TagID
	Name         string
	InternalOnly bool
}

// Tag is a resolved key/value pair, with the key interned.
type Tag struct {
	Key   TagID
	Value string
}

// TagMap is the tag set of one object, keyed by interned tag id.
type TagMap map[TagID]string
