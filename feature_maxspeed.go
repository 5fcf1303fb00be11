package osmschema

import (
	"math"
	"strconv"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/osmschema/binaryio"
)

const MaxSpeedFeatureName = "MaxSpeed"

const mphToKmh = 1.609

type MaxSpeedFeatureValue struct {
	MaxSpeed uint8
}

func (v *MaxSpeedFeatureValue) Read(reader *binaryio.Reader) errorsx.Error {
	maxSpeed, err := reader.ReadByte()
	if err != nil {
		return err
	}
	v.MaxSpeed = maxSpeed
	return nil
}

func (v *MaxSpeedFeatureValue) Write(writer *binaryio.Writer) errorsx.Error {
	return writer.WriteByte(v.MaxSpeed)
}

func (v *MaxSpeedFeatureValue) Equals(other FeatureValue) bool {
	otherValue, ok := other.(*MaxSpeedFeatureValue)
	return ok && v.MaxSpeed == otherValue.MaxSpeed
}

// MaxSpeedFeature parses the "maxspeed" tag into km/h, converting mph
// values and clamping to the representable maximum of 255.
type MaxSpeedFeature struct {
	tagMaxSpeed TagID
}

func (f *MaxSpeedFeature) Initialize(config *TypeConfig) {
	f.tagMaxSpeed = config.RegisterInternal("maxspeed")
}

func (f *MaxSpeedFeature) Name() string {
	return MaxSpeedFeatureName
}

func (f *MaxSpeedFeature) ValueSize() int {
	return 1
}

func (f *MaxSpeedFeature) FeatureBitCount() int {
	return 0
}

func (f *MaxSpeedFeature) NewValue() FeatureValue {
	return &MaxSpeedFeatureValue{}
}

func (f *MaxSpeedFeature) Parse(reporter ProblemReporter, config *TypeConfig, instance FeatureInstance, object ObjectRef, tags TagMap) (FeatureValue, bool) {
	maxSpeed, ok := tags[f.tagMaxSpeed]
	if !ok {
		return nil, false
	}

	switch maxSpeed {
	case "signals", "none":
		return nil, false
	case "walk":
		// "walk" should not be used, but an estimate is still better than
		// the default
		return &MaxSpeedFeatureValue{MaxSpeed: 10}, true
	}

	valueString := maxSpeed
	isMph := false

	if idx := strings.LastIndex(valueString, "mph"); idx != -1 {
		valueString = valueString[:idx]
		isMph = true
	}
	valueString = strings.TrimRight(valueString, " ")

	valueNumeric, err := strconv.ParseUint(valueString, 10, 64)
	if err != nil {
		reporter.Warn(object, "max speed tag value %q is not numeric", maxSpeed)
		return nil, false
	}

	if isMph {
		if float64(valueNumeric) > math.MaxUint8/mphToKmh+0.5 {
			return &MaxSpeedFeatureValue{MaxSpeed: math.MaxUint8}, true
		}
		return &MaxSpeedFeatureValue{MaxSpeed: uint8(float64(valueNumeric)*mphToKmh + 0.5)}, true
	}

	if valueNumeric > math.MaxUint8 {
		return &MaxSpeedFeatureValue{MaxSpeed: math.MaxUint8}, true
	}
	return &MaxSpeedFeatureValue{MaxSpeed: uint8(valueNumeric)}, true
}
