package osmschema

import (
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/osmschema/binaryio"
)

// FeatureValueBuffer holds the feature values of one object, bound to one
// TypeInfo: a presence bitset with one bit per feature instance, and a
// value slot per feature index. The serialized form is the bitset verbatim
// followed by the payloads of the set features in schema order, so a
// reader always knows exactly which slots to expect.
//
// A buffer belongs to one logical worker at a time; it has no internal
// locking.
type FeatureValueBuffer struct {
	typeInfo    *TypeInfo
	featureBits []byte
	values      []FeatureValue
}

func NewFeatureValueBuffer(typeInfo *TypeInfo) *FeatureValueBuffer {
	buffer := new(FeatureValueBuffer)
	buffer.SetType(typeInfo)
	return buffer
}

// SetType binds the buffer to a type, releasing any previously held values.
func (b *FeatureValueBuffer) SetType(typeInfo *TypeInfo) {
	b.typeInfo = typeInfo
	b.featureBits = make([]byte, typeInfo.FeatureBytes())
	b.values = make([]FeatureValue, typeInfo.FeatureCount())
}

func (b *FeatureValueBuffer) Type() *TypeInfo {
	return b.typeInfo
}

func (b *FeatureValueBuffer) HasValue(idx int) bool {
	bit := b.typeInfo.Feature(idx).FeatureBit()
	return b.featureBits[bit/8]&(1<<(bit%8)) != 0
}

// GetValue returns the live value at idx, or nil if the feature is absent
// or a pure marker.
func (b *FeatureValueBuffer) GetValue(idx int) FeatureValue {
	return b.values[idx]
}

func (b *FeatureValueBuffer) setPresenceBit(idx int) {
	bit := b.typeInfo.Feature(idx).FeatureBit()
	b.featureBits[bit/8] |= 1 << (bit % 8)
}

// AllocateValue marks the feature at idx present and constructs its
// default value in place. It fails if the feature is already present.
func (b *FeatureValueBuffer) AllocateValue(idx int) (FeatureValue, errorsx.Error) {
	if b.HasValue(idx) {
		return nil, errorsx.Errorf("feature %q already present", b.typeInfo.Feature(idx).Feature().Name())
	}

	b.setPresenceBit(idx)

	feature := b.typeInfo.Feature(idx).Feature()
	if featureHasValue(feature) {
		b.values[idx] = feature.NewValue()
	}

	return b.values[idx], nil
}

// SetValue marks the feature at idx present with the given parsed value
// (nil for marker features). It fails if the feature is already present.
func (b *FeatureValueBuffer) SetValue(idx int, value FeatureValue) errorsx.Error {
	if b.HasValue(idx) {
		return errorsx.Errorf("feature %q already present", b.typeInfo.Feature(idx).Feature().Name())
	}

	b.setPresenceBit(idx)
	b.values[idx] = value

	return nil
}

// FreeValue destroys the value at idx (if any) and clears its presence bit.
func (b *FeatureValueBuffer) FreeValue(idx int) {
	bit := b.typeInfo.Feature(idx).FeatureBit()
	b.featureBits[bit/8] &= ^(byte(1) << (bit % 8))
	b.values[idx] = nil
}

// Parse runs every feature of the bound type against the tag set and
// stores the values of those that yield one.
func (b *FeatureValueBuffer) Parse(reporter ProblemReporter, config *TypeConfig, object ObjectRef, tags TagMap) errorsx.Error {
	for idx, instance := range b.typeInfo.Features() {
		value, present := instance.Feature().Parse(reporter, config, instance, object, tags)
		if !present {
			continue
		}

		err := b.SetValue(idx, value)
		if err != nil {
			return err
		}
	}

	return nil
}

func (b *FeatureValueBuffer) Read(reader *binaryio.Reader) errorsx.Error {
	// drop any previously held values, so slots whose bit is clear in the
	// incoming bitset do not keep serving stale values
	for idx := range b.values {
		b.values[idx] = nil
	}

	err := reader.ReadFull(b.featureBits)
	if err != nil {
		return err
	}

	for idx, instance := range b.typeInfo.Features() {
		feature := instance.Feature()
		if !b.HasValue(idx) || !featureHasValue(feature) {
			continue
		}

		value := feature.NewValue()
		err = value.Read(reader)
		if err != nil {
			return err
		}

		b.values[idx] = value
	}

	return nil
}

func (b *FeatureValueBuffer) Write(writer *binaryio.Writer) errorsx.Error {
	err := writer.Write(b.featureBits)
	if err != nil {
		return err
	}

	for idx, instance := range b.typeInfo.Features() {
		if !b.HasValue(idx) || !featureHasValue(instance.Feature()) {
			continue
		}

		err = b.values[idx].Write(writer)
		if err != nil {
			return err
		}
	}

	return nil
}
