package osmschema

import (
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/osmschema/binaryio"
)

const AddressFeatureName = "Address"

type AddressFeatureValue struct {
	Location string
	Address  string
}

func (v *AddressFeatureValue) Read(reader *binaryio.Reader) errorsx.Error {
	location, err := reader.ReadString()
	if err != nil {
		return err
	}

	address, err := reader.ReadString()
	if err != nil {
		return err
	}

	v.Location = location
	v.Address = address
	return nil
}

func (v *AddressFeatureValue) Write(writer *binaryio.Writer) errorsx.Error {
	err := writer.WriteString(v.Location)
	if err != nil {
		return err
	}
	return writer.WriteString(v.Address)
}

func (v *AddressFeatureValue) Equals(other FeatureValue) bool {
	otherValue, ok := other.(*AddressFeatureValue)
	return ok && v.Location == otherValue.Location && v.Address == otherValue.Address
}

// AddressFeature yields a value only when both a street and a house number
// are tagged.
type AddressFeature struct {
	tagAddrHouseNr TagID
	tagAddrStreet  TagID
}

func (f *AddressFeature) Initialize(config *TypeConfig) {
	f.tagAddrHouseNr = config.RegisterInternal("addr:housenumber")
	f.tagAddrStreet = config.RegisterInternal("addr:street")
}

func (f *AddressFeature) Name() string {
	return AddressFeatureName
}

func (f *AddressFeature) ValueSize() int {
	return 2 * stringValueSize
}

func (f *AddressFeature) FeatureBitCount() int {
	return 0
}

func (f *AddressFeature) NewValue() FeatureValue {
	return &AddressFeatureValue{}
}

func (f *AddressFeature) Parse(reporter ProblemReporter, config *TypeConfig, instance FeatureInstance, object ObjectRef, tags TagMap) (FeatureValue, bool) {
	street, hasStreet := tags[f.tagAddrStreet]
	houseNr, hasHouseNr := tags[f.tagAddrHouseNr]

	if !hasStreet || street == "" || !hasHouseNr || houseNr == "" {
		return nil, false
	}

	return &AddressFeatureValue{
		Location: street,
		Address:  houseNr,
	}, true
}
