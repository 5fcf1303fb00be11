package osmschema

import (
	"strconv"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/osmschema/binaryio"
)

const LayerFeatureName = "Layer"

type LayerFeatureValue struct {
	Layer int8
}

func (v *LayerFeatureValue) Read(reader *binaryio.Reader) errorsx.Error {
	b, err := reader.ReadByte()
	if err != nil {
		return err
	}
	v.Layer = int8(b)
	return nil
}

func (v *LayerFeatureValue) Write(writer *binaryio.Writer) errorsx.Error {
	return writer.WriteByte(byte(v.Layer))
}

func (v *LayerFeatureValue) Equals(other FeatureValue) bool {
	otherValue, ok := other.(*LayerFeatureValue)
	return ok && v.Layer == otherValue.Layer
}

// LayerFeature parses the "layer" tag as a small signed integer. Layer 0 is
// the default and produces no value.
type LayerFeature struct {
	tagLayer TagID
}

func (f *LayerFeature) Initialize(config *TypeConfig) {
	f.tagLayer = config.RegisterInternal("layer")
}

func (f *LayerFeature) Name() string {
	return LayerFeatureName
}

func (f *LayerFeature) ValueSize() int {
	return 1
}

func (f *LayerFeature) FeatureBitCount() int {
	return 0
}

func (f *LayerFeature) NewValue() FeatureValue {
	return &LayerFeatureValue{}
}

func (f *LayerFeature) Parse(reporter ProblemReporter, config *TypeConfig, instance FeatureInstance, object ObjectRef, tags TagMap) (FeatureValue, bool) {
	layer, ok := tags[f.tagLayer]
	if !ok {
		return nil, false
	}

	layerValue, err := strconv.ParseInt(layer, 10, 8)
	if err != nil {
		reporter.Warn(object, "layer tag value %q is not numeric", layer)
		return nil, false
	}

	if layerValue == 0 {
		return nil, false
	}

	return &LayerFeatureValue{Layer: int8(layerValue)}, true
}
