package osmschema

const (
	BridgeFeatureName     = "Bridge"
	TunnelFeatureName     = "Tunnel"
	RoundaboutFeatureName = "Roundabout"
)

// isTagTruthy reports whether a flag-style tag value should count as set.
func isTagTruthy(value string) bool {
	return !(value == "no" || value == "false" || value == "0")
}

// BridgeFeature is a pure marker: present when the "bridge" tag is set and
// truthy, with no payload beyond its presence bit.
type BridgeFeature struct {
	tagBridge TagID
}

func (f *BridgeFeature) Initialize(config *TypeConfig) {
	f.tagBridge = config.RegisterInternal("bridge")
}

func (f *BridgeFeature) Name() string {
	return BridgeFeatureName
}

func (f *BridgeFeature) ValueSize() int {
	return 0
}

func (f *BridgeFeature) FeatureBitCount() int {
	return 0
}

func (f *BridgeFeature) NewValue() FeatureValue {
	return nil
}

func (f *BridgeFeature) Parse(reporter ProblemReporter, config *TypeConfig, instance FeatureInstance, object ObjectRef, tags TagMap) (FeatureValue, bool) {
	bridge, ok := tags[f.tagBridge]
	return nil, ok && isTagTruthy(bridge)
}

type TunnelFeature struct {
	tagTunnel TagID
}

func (f *TunnelFeature) Initialize(config *TypeConfig) {
	f.tagTunnel = config.RegisterInternal("tunnel")
}

func (f *TunnelFeature) Name() string {
	return TunnelFeatureName
}

func (f *TunnelFeature) ValueSize() int {
	return 0
}

func (f *TunnelFeature) FeatureBitCount() int {
	return 0
}

func (f *TunnelFeature) NewValue() FeatureValue {
	return nil
}

func (f *TunnelFeature) Parse(reporter ProblemReporter, config *TypeConfig, instance FeatureInstance, object ObjectRef, tags TagMap) (FeatureValue, bool) {
	tunnel, ok := tags[f.tagTunnel]
	return nil, ok && isTagTruthy(tunnel)
}

type RoundaboutFeature struct {
	tagJunction TagID
}

func (f *RoundaboutFeature) Initialize(config *TypeConfig) {
	f.tagJunction = config.RegisterInternal("junction")
}

func (f *RoundaboutFeature) Name() string {
	return RoundaboutFeatureName
}

func (f *RoundaboutFeature) ValueSize() int {
	return 0
}

func (f *RoundaboutFeature) FeatureBitCount() int {
	return 0
}

func (f *RoundaboutFeature) NewValue() FeatureValue {
	return nil
}

func (f *RoundaboutFeature) Parse(reporter ProblemReporter, config *TypeConfig, instance FeatureInstance, object ObjectRef, tags TagMap) (FeatureValue, bool) {
	junction, ok := tags[f.tagJunction]
	return nil, ok && junction == "roundabout"
}
