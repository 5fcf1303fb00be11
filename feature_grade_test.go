package osmschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeFeature_Parse(t *testing.T) {
	config := NewTypeConfig()
	config.RegisterSurfaceToGradeMapping("asphalt", 1)
	config.RegisterSurfaceToGradeMapping("gravel", 3)

	feature := config.GetFeature(GradeFeatureName)
	require.NotNil(t, feature)

	tagSurface := config.TagID("surface")
	tagTrackType := config.TagID("tracktype")
	object := ObjectRef{Type: ObjectTypeWay, ID: 1}

	tests := []struct {
		name        string
		tags        TagMap
		wantValue   bool
		wantGrade   uint8
		wantWarning bool
	}{
		{
			name:      "tracktype",
			tags:      TagMap{tagTrackType: "grade3"},
			wantValue: true,
			wantGrade: 3,
		},
		{
			name:      "tracktype wins over surface",
			tags:      TagMap{tagTrackType: "grade5", tagSurface: "asphalt"},
			wantValue: true,
			wantGrade: 5,
		},
		{
			name:      "surface fallback",
			tags:      TagMap{tagSurface: "gravel"},
			wantValue: true,
			wantGrade: 3,
		},
		{
			name:        "bad tracktype falls back to surface",
			tags:        TagMap{tagTrackType: "grade9", tagSurface: "asphalt"},
			wantValue:   true,
			wantGrade:   1,
			wantWarning: true,
		},
		{
			name:        "unknown surface",
			tags:        TagMap{tagSurface: "lava"},
			wantWarning: true,
		},
		{
			name: "no grade tags",
			tags: TagMap{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			reporter := &capturingProblemReporter{}

			value, ok := feature.Parse(reporter, config, FeatureInstance{}, object, test.tags)
			require.Equal(t, test.wantValue, ok)

			if test.wantWarning {
				assert.Len(t, reporter.warnings, 1)
			} else {
				assert.Empty(t, reporter.warnings)
			}

			if !ok {
				return
			}
			assert.Equal(t, test.wantGrade, value.(*GradeFeatureValue).Grade)
		})
	}
}
