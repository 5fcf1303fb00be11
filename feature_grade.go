package osmschema

import (
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/osmschema/binaryio"
)

const GradeFeatureName = "Grade"

type GradeFeatureValue struct {
	Grade uint8
}

func (v *GradeFeatureValue) Read(reader *binaryio.Reader) errorsx.Error {
	grade, err := reader.ReadByte()
	if err != nil {
		return err
	}
	v.Grade = grade
	return nil
}

func (v *GradeFeatureValue) Write(writer *binaryio.Writer) errorsx.Error {
	return writer.WriteByte(v.Grade)
}

func (v *GradeFeatureValue) Equals(other FeatureValue) bool {
	otherValue, ok := other.(*GradeFeatureValue)
	return ok && v.Grade == otherValue.Grade
}

// GradeFeature derives a surface-quality grade (1..5) from the "tracktype"
// tag, falling back to the configured surface-to-grade table for the
// "surface" tag.
type GradeFeature struct {
	tagSurface   TagID
	tagTrackType TagID
}

func (f *GradeFeature) Initialize(config *TypeConfig) {
	f.tagSurface = config.RegisterInternal("surface")
	f.tagTrackType = config.RegisterInternal("tracktype")
}

func (f *GradeFeature) Name() string {
	return GradeFeatureName
}

func (f *GradeFeature) ValueSize() int {
	return 1
}

func (f *GradeFeature) FeatureBitCount() int {
	return 0
}

func (f *GradeFeature) NewValue() FeatureValue {
	return &GradeFeatureValue{}
}

func (f *GradeFeature) Parse(reporter ProblemReporter, config *TypeConfig, instance FeatureInstance, object ObjectRef, tags TagMap) (FeatureValue, bool) {
	if trackType, ok := tags[f.tagTrackType]; ok {
		switch trackType {
		case "grade1":
			return &GradeFeatureValue{Grade: 1}, true
		case "grade2":
			return &GradeFeatureValue{Grade: 2}, true
		case "grade3":
			return &GradeFeatureValue{Grade: 3}, true
		case "grade4":
			return &GradeFeatureValue{Grade: 4}, true
		case "grade5":
			return &GradeFeatureValue{Grade: 5}, true
		default:
			reporter.Warn(object, "unsupported tracktype value %q", trackType)
		}
	}

	if surface, ok := tags[f.tagSurface]; ok {
		grade, found := config.GradeForSurface(surface)
		if !found {
			reporter.Warn(object, "unknown surface type %q", surface)
			return nil, false
		}

		return &GradeFeatureValue{Grade: grade}, true
	}

	return nil, false
}
