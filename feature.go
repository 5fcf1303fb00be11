package osmschema

import (
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/osmschema/binaryio"
)

// FeatureValue is the runtime payload of one feature on one object. A value
// only exists while the owning presence bit in a FeatureValueBuffer is set.
type FeatureValue interface {
	Read(reader *binaryio.Reader) errorsx.Error
	Write(writer *binaryio.Writer) errorsx.Error
	Equals(other FeatureValue) bool
}

// Feature is a named optional attribute kind. A feature combines one or
// multiple tags to build an information attribute for a type: it can be an
// alias for a single tag (like "name") or combine a whole family of tags
// (like "access" and all its variants).
type Feature interface {
	// Initialize registers whatever tags the feature needs with the config
	// and caches their ids. It is called exactly once per feature, when the
	// feature is registered during TypeConfig construction.
	Initialize(config *TypeConfig)

	// Name returns the globally unique name of the feature.
	Name() string

	// ValueSize is the nominal payload size used for value buffer offset
	// layout. A size of 0 means the feature is a pure presence marker and
	// carries no payload beyond its presence bit.
	ValueSize() int

	// FeatureBitCount returns the number of additional presence-only bits
	// this feature reserves on top of its own presence bit.
	FeatureBitCount() int

	// NewValue returns a fresh zero payload ready to be read into, or nil
	// for marker features.
	NewValue() FeatureValue

	// Parse inspects the relevant tags and either yields no value (feature
	// absent for this object) or a fully formed one. Marker features report
	// presence with a nil value.
	Parse(reporter ProblemReporter, config *TypeConfig, instance FeatureInstance, object ObjectRef, tags TagMap) (FeatureValue, bool)
}

// featureHasValue reports whether a feature carries a payload beyond its
// presence bit.
func featureHasValue(feature Feature) bool {
	return feature.ValueSize() > 0
}

// FeatureInstance binds one Feature to one TypeInfo. The back-reference to
// the type is a plain pointer, not an owning handle, to avoid a cycle with
// the type's feature list.
type FeatureInstance struct {
	feature    Feature
	typeInfo   *TypeInfo
	featureBit int
	index      int
	offset     int
}

func (i FeatureInstance) Feature() Feature {
	return i.feature
}

func (i FeatureInstance) Type() *TypeInfo {
	return i.typeInfo
}

// FeatureBit is the index of the presence bit for this instance within the
// owning type's bitset.
func (i FeatureInstance) FeatureBit() int {
	return i.featureBit
}

// Index is the position of this instance in the owning type's feature list.
func (i FeatureInstance) Index() int {
	return i.index
}

// Offset is the byte offset of this instance's payload in the type's value
// buffer layout. Offsets are strictly increasing across the feature list
// and aligned to the buffer alignment.
func (i FeatureInstance) Offset() int {
	return i.offset
}
