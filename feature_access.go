package osmschema

import (
	"github.com/jamesrr39/goutil/errorsx"
	"github.com/jamesrr39/osmschema/binaryio"
)

const AccessFeatureName = "Access"

// Access permission bits, one per travel mode and direction, plus two
// marker bits recording an explicit oneway direction.
const (
	AccessFootForward uint8 = 1 << iota
	AccessFootBackward
	AccessBicycleForward
	AccessBicycleBackward
	AccessCarForward
	AccessCarBackward
	AccessOnewayForward
	AccessOnewayBackward
)

const accessAllModes = AccessFootForward | AccessFootBackward |
	AccessBicycleForward | AccessBicycleBackward |
	AccessCarForward | AccessCarBackward

type AccessFeatureValue struct {
	Access uint8
}

func (v *AccessFeatureValue) Read(reader *binaryio.Reader) errorsx.Error {
	access, err := reader.ReadByte()
	if err != nil {
		return err
	}
	v.Access = access
	return nil
}

func (v *AccessFeatureValue) Write(writer *binaryio.Writer) errorsx.Error {
	return writer.WriteByte(v.Access)
}

func (v *AccessFeatureValue) Equals(other FeatureValue) bool {
	otherValue, ok := other.(*AccessFeatureValue)
	return ok && v.Access == otherValue.Access
}

func (v *AccessFeatureValue) CanRouteFoot() bool {
	return v.Access&(AccessFootForward|AccessFootBackward) != 0
}

func (v *AccessFeatureValue) CanRouteBicycle() bool {
	return v.Access&(AccessBicycleForward|AccessBicycleBackward) != 0
}

func (v *AccessFeatureValue) CanRouteCar() bool {
	return v.Access&(AccessCarForward|AccessCarBackward) != 0
}

// AccessFeature computes the per-mode, per-direction permission mask for an
// object from the whole access tag family, starting from the routing
// capabilities of the object's type. A value is only emitted when the
// computed mask differs from the type default.
type AccessFeature struct {
	tagOneway   TagID
	tagJunction TagID

	tagAccess         TagID
	tagAccessForward  TagID
	tagAccessBackward TagID

	tagAccessFoot         TagID
	tagAccessFootForward  TagID
	tagAccessFootBackward TagID

	tagAccessBicycle         TagID
	tagAccessBicycleForward  TagID
	tagAccessBicycleBackward TagID

	tagAccessMotorVehicle         TagID
	tagAccessMotorVehicleForward  TagID
	tagAccessMotorVehicleBackward TagID

	tagAccessMotorcar         TagID
	tagAccessMotorcarForward  TagID
	tagAccessMotorcarBackward TagID
}

func (f *AccessFeature) Initialize(config *TypeConfig) {
	f.tagOneway = config.RegisterInternal("oneway")
	f.tagJunction = config.RegisterInternal("junction")

	f.tagAccess = config.RegisterInternal("access")
	f.tagAccessForward = config.RegisterInternal("access:forward")
	f.tagAccessBackward = config.RegisterInternal("access:backward")

	f.tagAccessFoot = config.RegisterInternal("access:foot")
	f.tagAccessFootForward = config.RegisterInternal("access:foot:forward")
	f.tagAccessFootBackward = config.RegisterInternal("access:foot:backward")

	f.tagAccessBicycle = config.RegisterInternal("access:bicycle")
	f.tagAccessBicycleForward = config.RegisterInternal("access:bicycle:forward")
	f.tagAccessBicycleBackward = config.RegisterInternal("access:bicycle:backward")

	f.tagAccessMotorVehicle = config.RegisterInternal("access:motor_vehicle")
	f.tagAccessMotorVehicleForward = config.RegisterInternal("access:motor_vehicle:forward")
	f.tagAccessMotorVehicleBackward = config.RegisterInternal("access:motor_vehicle:backward")

	f.tagAccessMotorcar = config.RegisterInternal("access:motorcar")
	f.tagAccessMotorcarForward = config.RegisterInternal("access:motorcar:forward")
	f.tagAccessMotorcarBackward = config.RegisterInternal("access:motorcar:backward")
}

func (f *AccessFeature) Name() string {
	return AccessFeatureName
}

func (f *AccessFeature) ValueSize() int {
	return 1
}

func (f *AccessFeature) FeatureBitCount() int {
	return 0
}

func (f *AccessFeature) NewValue() FeatureValue {
	return &AccessFeatureValue{}
}

// parseAccessFlag overrides one permission bit from a tag value: cleared
// for "no", set for anything else.
func parseAccessFlag(value string, access *uint8, bit uint8) {
	*access &= ^bit

	if value != "no" {
		*access |= bit
	}
}

func (f *AccessFeature) Parse(reporter ProblemReporter, config *TypeConfig, instance FeatureInstance, object ObjectRef, tags TagMap) (FeatureValue, bool) {
	typeInfo := instance.Type()

	var access uint8
	if typeInfo.CanRouteFoot {
		access |= AccessFootForward | AccessFootBackward
	}
	if typeInfo.CanRouteBicycle {
		access |= AccessBicycleForward | AccessBicycleBackward
	}
	if typeInfo.CanRouteCar {
		access |= AccessCarForward | AccessCarBackward
	}

	defaultAccess := access

	// blanket access flag

	if accessValue, ok := tags[f.tagAccess]; ok {
		access = 0

		if accessValue != "no" {
			access = accessAllModes
		}
	}

	// access:forward / access:backward

	if accessForwardValue, ok := tags[f.tagAccessForward]; ok {
		access &= ^(AccessFootForward | AccessBicycleForward | AccessCarForward)

		if accessForwardValue != "no" {
			access |= AccessFootForward | AccessBicycleForward | AccessCarForward
		}
	} else if accessBackwardValue, ok := tags[f.tagAccessBackward]; ok {
		access &= ^(AccessFootBackward | AccessBicycleBackward | AccessCarBackward)

		if accessBackwardValue != "no" {
			access |= AccessFootBackward | AccessBicycleBackward | AccessCarBackward
		}
	}

	// per-mode blanket flags, first match wins

	if accessFootValue, ok := tags[f.tagAccessFoot]; ok {
		access &= ^(AccessFootForward | AccessFootBackward)

		if accessFootValue != "no" {
			access |= AccessFootForward | AccessFootBackward
		}
	} else if accessBicycleValue, ok := tags[f.tagAccessBicycle]; ok {
		access &= ^(AccessBicycleForward | AccessBicycleBackward)

		if accessBicycleValue != "no" {
			if access&AccessOnewayBackward == 0 {
				access |= AccessBicycleForward
			}
			if access&AccessOnewayForward == 0 {
				access |= AccessBicycleBackward
			}
		}
	} else if accessMotorVehicleValue, ok := tags[f.tagAccessMotorVehicle]; ok {
		access &= ^(AccessCarForward | AccessCarBackward)

		if accessMotorVehicleValue != "no" {
			if access&AccessOnewayBackward == 0 {
				access |= AccessCarForward
			}
			if access&AccessOnewayForward == 0 {
				access |= AccessCarBackward
			}
		}
	} else if accessMotorcarValue, ok := tags[f.tagAccessMotorcar]; ok {
		access &= ^(AccessCarForward | AccessCarBackward)

		if accessMotorcarValue != "no" {
			if access&AccessOnewayBackward == 0 {
				access |= AccessCarForward
			}
			if access&AccessOnewayForward == 0 {
				access |= AccessCarBackward
			}
		}
	}

	// per-mode, per-direction overrides

	if value, ok := tags[f.tagAccessFootForward]; ok {
		parseAccessFlag(value, &access, AccessFootForward)
	}
	if value, ok := tags[f.tagAccessFootBackward]; ok {
		parseAccessFlag(value, &access, AccessFootBackward)
	}
	if value, ok := tags[f.tagAccessBicycleForward]; ok {
		parseAccessFlag(value, &access, AccessBicycleForward)
	}
	if value, ok := tags[f.tagAccessBicycleBackward]; ok {
		parseAccessFlag(value, &access, AccessBicycleBackward)
	}
	if value, ok := tags[f.tagAccessMotorVehicleForward]; ok {
		parseAccessFlag(value, &access, AccessCarForward)
	}
	if value, ok := tags[f.tagAccessMotorVehicleBackward]; ok {
		parseAccessFlag(value, &access, AccessCarBackward)
	}
	if value, ok := tags[f.tagAccessMotorcarForward]; ok {
		parseAccessFlag(value, &access, AccessCarForward)
	}
	if value, ok := tags[f.tagAccessMotorcarBackward]; ok {
		parseAccessFlag(value, &access, AccessCarBackward)
	}

	// oneway / roundabout

	if onewayValue, hasOneway := tags[f.tagOneway]; hasOneway {
		if onewayValue == "-1" {
			access &= ^(AccessBicycleForward | AccessCarForward | AccessOnewayForward)
			access |= AccessOnewayBackward
		} else if !(onewayValue == "no" || onewayValue == "false" || onewayValue == "0") {
			access &= ^(AccessBicycleBackward | AccessCarBackward | AccessOnewayBackward)
			access |= AccessOnewayForward
		}
	} else if junctionValue, hasJunction := tags[f.tagJunction]; hasJunction && junctionValue == "roundabout" {
		access &= ^(AccessBicycleBackward | AccessCarBackward | AccessOnewayBackward)
		access |= AccessBicycleForward | AccessCarForward | AccessOnewayForward
	}

	if access == defaultAccess {
		return nil, false
	}

	return &AccessFeatureValue{Access: access}, true
}
