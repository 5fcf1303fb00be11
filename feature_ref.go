package osmschema

import (
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/osmschema/binaryio"
)

const RefFeatureName = "Ref"

type RefFeatureValue struct {
	Ref string
}

func (v *RefFeatureValue) Read(reader *binaryio.Reader) errorsx.Error {
	ref, err := reader.ReadString()
	if err != nil {
		return err
	}
	v.Ref = ref
	return nil
}

func (v *RefFeatureValue) Write(writer *binaryio.Writer) errorsx.Error {
	return writer.WriteString(v.Ref)
}

func (v *RefFeatureValue) Equals(other FeatureValue) bool {
	otherValue, ok := other.(*RefFeatureValue)
	return ok && v.Ref == otherValue.Ref
}

// RefFeature copies the "ref" tag verbatim, if non-empty.
type RefFeature struct {
	tagRef TagID
}

func (f *RefFeature) Initialize(config *TypeConfig) {
	f.tagRef = config.RegisterInternal("ref")
}

func (f *RefFeature) Name() string {
	return RefFeatureName
}

func (f *RefFeature) ValueSize() int {
	return stringValueSize
}

func (f *RefFeature) FeatureBitCount() int {
	return 0
}

func (f *RefFeature) NewValue() FeatureValue {
	return &RefFeatureValue{}
}

func (f *RefFeature) Parse(reporter ProblemReporter, config *TypeConfig, instance FeatureInstance, object ObjectRef, tags TagMap) (FeatureValue, bool) {
	ref, ok := tags[f.tagRef]
	if !ok || ref == "" {
		return nil, false
	}

	return &RefFeatureValue{Ref: ref}, true
}
