package osmschema

import (
	"github.com/jamesrr39/goutil/errorsx"
)

// TypeID is the id of a declared entity type. Id 0 is permanently reserved
// for the universal "ignore" type.
type TypeID uint16

const TypeIgnore TypeID = 0

// EntityKind is a bitmask of the raw object kinds a condition or type
// applies to.
type EntityKind uint8

const (
	EntityNode EntityKind = 1 << iota
	EntityWay
	EntityArea
	EntityRelation
)

// TypeCondition scopes one classification condition to one or more entity
// kinds.
type TypeCondition struct {
	Kinds     EntityKind
	Condition TagCondition
}

const (
	// featureValueAlignment is the alignment feature payload offsets are
	// rounded up to. It is fixed rather than platform-derived so that a
	// schema lays out identically everywhere.
	featureValueAlignment = 8

	// stringValueSize is the nominal layout size of one string payload.
	stringValueSize = 16
)

// TypeInfo declares one entity type: the kinds of object it may represent,
// its routing and indexing properties, its ordered feature list and its
// classification conditions. The feature list is append-only once built.
type TypeInfo struct {
	id   TypeID
	name string

	CanBeNode     bool
	CanBeWay      bool
	CanBeArea     bool
	CanBeRelation bool

	CanRouteFoot    bool
	CanRouteBicycle bool
	CanRouteCar     bool

	IndexAsLocation bool
	IndexAsRegion   bool
	IndexAsPOI      bool

	OptimizeLowZoom bool
	Multipolygon    bool
	PinWay          bool
	IgnoreSeaLand   bool
	Ignore          bool

	features        []FeatureInstance
	featureNames    map[string]bool
	featureBitCount int
	conditions      []TypeCondition
}

func NewTypeInfo(name string) *TypeInfo {
	return &TypeInfo{
		name:         name,
		featureNames: make(map[string]bool),
	}
}

func (t *TypeInfo) ID() TypeID {
	return t.id
}

func (t *TypeInfo) Name() string {
	return t.name
}

// AddCondition records a classification rule scoped to the given entity
// kinds and flips the matching can-be flags as a side effect.
func (t *TypeInfo) AddCondition(kinds EntityKind, condition TagCondition) *TypeInfo {
	if kinds&EntityNode != 0 {
		t.CanBeNode = true
	}
	if kinds&EntityWay != 0 {
		t.CanBeWay = true
	}
	if kinds&EntityArea != 0 {
		t.CanBeArea = true
	}
	if kinds&EntityRelation != 0 {
		t.CanBeRelation = true
	}

	t.conditions = append(t.conditions, TypeCondition{
		Kinds:     kinds,
		Condition: condition,
	})

	return t
}

// AddFeature appends a FeatureInstance for the given feature, computing its
// presence bit index and payload offset. A feature name may appear at most
// once per type.
func (t *TypeInfo) AddFeature(feature Feature) errorsx.Error {
	if t.featureNames[feature.Name()] {
		return errorsx.Errorf("feature %q already added to type %q", feature.Name(), t.name)
	}

	offset := 0
	if len(t.features) != 0 {
		last := t.features[len(t.features)-1]

		// a marker feature still advances the layout by one byte, so
		// offsets stay strictly increasing across the feature list
		lastSize := last.feature.ValueSize()
		if lastSize == 0 {
			lastSize = 1
		}

		offset = last.offset + lastSize
		if offset%featureValueAlignment != 0 {
			offset = (offset/featureValueAlignment + 1) * featureValueAlignment
		}
	}

	t.features = append(t.features, FeatureInstance{
		feature:    feature,
		typeInfo:   t,
		featureBit: t.featureBitCount,
		index:      len(t.features),
		offset:     offset,
	})
	t.featureNames[feature.Name()] = true
	t.featureBitCount += 1 + feature.FeatureBitCount()

	return nil
}

func (t *TypeInfo) HasFeature(featureName string) bool {
	return t.featureNames[featureName]
}

func (t *TypeInfo) FeatureCount() int {
	return len(t.features)
}

func (t *TypeInfo) Feature(idx int) FeatureInstance {
	return t.features[idx]
}

func (t *TypeInfo) Features() []FeatureInstance {
	return t.features
}

// FeatureBytes is the size of the presence bitset for this type, in bytes.
func (t *TypeInfo) FeatureBytes() int {
	return (t.featureBitCount + 7) / 8
}

// FeatureValueBufferSize is the total payload layout span of the type's
// feature list.
func (t *TypeInfo) FeatureValueBufferSize() int {
	if len(t.features) == 0 {
		return 0
	}

	last := t.features[len(t.features)-1]
	return last.offset + last.feature.ValueSize()
}

func (t *TypeInfo) Conditions() []TypeCondition {
	return t.conditions
}

func (t *TypeInfo) HasConditions() bool {
	return len(t.conditions) != 0
}
