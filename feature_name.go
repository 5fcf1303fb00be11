package osmschema

import (
	"sort"

	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/osmschema/binaryio"
)

const (
	NameFeatureName    = "Name"
	NameAltFeatureName = "NameAlt"
)

type NameFeatureValue struct {
	Name string
}

func (v *NameFeatureValue) Read(reader *binaryio.Reader) errorsx.Error {
	name, err := reader.ReadString()
	if err != nil {
		return err
	}
	v.Name = name
	return nil
}

func (v *NameFeatureValue) Write(writer *binaryio.Writer) errorsx.Error {
	return writer.WriteString(v.Name)
}

func (v *NameFeatureValue) Equals(other FeatureValue) bool {
	otherValue, ok := other.(*NameFeatureValue)
	return ok && v.Name == otherValue.Name
}

// NameFeature picks the best name for an object: among all tags registered
// as name tags, the one with the highest configured priority wins. Ties
// keep the first non-empty value in tag id order.
type NameFeature struct{}

func (f *NameFeature) Initialize(config *TypeConfig) {
}

func (f *NameFeature) Name() string {
	return NameFeatureName
}

func (f *NameFeature) ValueSize() int {
	return stringValueSize
}

func (f *NameFeature) FeatureBitCount() int {
	return 0
}

func (f *NameFeature) NewValue() FeatureValue {
	return &NameFeatureValue{}
}

func (f *NameFeature) Parse(reporter ProblemReporter, config *TypeConfig, instance FeatureInstance, object ObjectRef, tags TagMap) (FeatureValue, bool) {
	name := pickPrioritisedName(tags, config.IsNameTag)
	if name == "" {
		return nil, false
	}

	return &NameFeatureValue{Name: name}, true
}

type NameAltFeatureValue struct {
	NameAlt string
}

func (v *NameAltFeatureValue) Read(reader *binaryio.Reader) errorsx.Error {
	nameAlt, err := reader.ReadString()
	if err != nil {
		return err
	}
	v.NameAlt = nameAlt
	return nil
}

func (v *NameAltFeatureValue) Write(writer *binaryio.Writer) errorsx.Error {
	return writer.WriteString(v.NameAlt)
}

func (v *NameAltFeatureValue) Equals(other FeatureValue) bool {
	otherValue, ok := other.(*NameAltFeatureValue)
	return ok && v.NameAlt == otherValue.NameAlt
}

// NameAltFeature is NameFeature over the alternative-name tag set.
type NameAltFeature struct{}

func (f *NameAltFeature) Initialize(config *TypeConfig) {
}

func (f *NameAltFeature) Name() string {
	return NameAltFeatureName
}

func (f *NameAltFeature) ValueSize() int {
	return stringValueSize
}

func (f *NameAltFeature) FeatureBitCount() int {
	return 0
}

func (f *NameAltFeature) NewValue() FeatureValue {
	return &NameAltFeatureValue{}
}

func (f *NameAltFeature) Parse(reporter ProblemReporter, config *TypeConfig, instance FeatureInstance, object ObjectRef, tags TagMap) (FeatureValue, bool) {
	nameAlt := pickPrioritisedName(tags, config.IsNameAltTag)
	if nameAlt == "" {
		return nil, false
	}

	return &NameAltFeatureValue{NameAlt: nameAlt}, true
}

// pickPrioritisedName scans tags in ascending tag id order, so that
// priority ties resolve deterministically to the first registered tag.
func pickPrioritisedName(tags TagMap, isNameTag func(TagID) (uint32, bool)) string {
	tagIDs := make([]TagID, 0, len(tags))
	for id := range tags {
		tagIDs = append(tagIDs, id)
	}
	sort.Slice(tagIDs, func(i, j int) bool {
		return tagIDs[i] < tagIDs[j]
	})

	var name string
	var namePriority uint32

	for _, id := range tagIDs {
		priority, isName := isNameTag(id)
		if !isName {
			continue
		}

		if name == "" || priority > namePriority {
			name = tags[id]
			namePriority = priority
		}
	}

	return name
}
