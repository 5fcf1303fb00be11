package osmschema

import (
	"math"
	"strconv"
	"strings"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/osmschema/binaryio"
)

const WidthFeatureName = "Width"

type WidthFeatureValue struct {
	Width uint8
}

func (v *WidthFeatureValue) Read(reader *binaryio.Reader) errorsx.Error {
	width, err := reader.ReadByte()
	if err != nil {
		return err
	}
	v.Width = width
	return nil
}

func (v *WidthFeatureValue) Write(writer *binaryio.Writer) errorsx.Error {
	return writer.WriteByte(v.Width)
}

func (v *WidthFeatureValue) Equals(other FeatureValue) bool {
	otherValue, ok := other.(*WidthFeatureValue)
	return ok && v.Width == otherValue.Width
}

// WidthFeature parses the "width" tag into whole meters in [0,255].
// Real-world values use a decimal comma and an "m" unit suffix often
// enough that both are normalized away before parsing.
type WidthFeature struct {
	tagWidth TagID
}

func (f *WidthFeature) Initialize(config *TypeConfig) {
	f.tagWidth = config.RegisterInternal("width")
}

func (f *WidthFeature) Name() string {
	return WidthFeatureName
}

func (f *WidthFeature) ValueSize() int {
	return 1
}

func (f *WidthFeature) FeatureBitCount() int {
	return 0
}

func (f *WidthFeature) NewValue() FeatureValue {
	return &WidthFeatureValue{}
}

func (f *WidthFeature) Parse(reporter ProblemReporter, config *TypeConfig, instance FeatureInstance, object ObjectRef, tags TagMap) (FeatureValue, bool) {
	width, ok := tags[f.tagWidth]
	if !ok {
		return nil, false
	}

	widthString := width

	// a single decimal comma is assumed to mean a decimal point
	if strings.Count(widthString, ",") == 1 {
		widthString = strings.Replace(widthString, ",", ".", 1)
	}

	// strip a trailing unit "m", but only when preceded by a digit or space
	if len(widthString) >= 2 && widthString[len(widthString)-1] == 'm' {
		beforeSuffix := widthString[len(widthString)-2]
		if (beforeSuffix >= '0' && beforeSuffix <= '9') || beforeSuffix <= ' ' {
			widthString = widthString[:len(widthString)-1]
		}
	}
	widthString = strings.TrimRight(widthString, " ")

	w, err := strconv.ParseFloat(widthString, 64)
	if err != nil {
		reporter.Warn(object, "width tag value %q is not numeric", width)
		return nil, false
	}

	if w < 0 || w >= 255.5 {
		reporter.Warn(object, "width tag value %q is out of range", width)
		return nil, false
	}

	return &WidthFeatureValue{Width: uint8(math.Floor(w + 0.5))}, true
}
