package models

import "encoding/json"

// RouteChoice identifies the uplink path the route planner picked.
type RouteChoice int

const (
	RouteWiFi RouteChoice = iota
	RouteStarlink
	RouteMultipath
	RouteFiveG
)

var routeChoiceNames = map[RouteChoice]string{
	RouteWiFi:      "WiFi",
	RouteStarlink:  "Starlink",
	RouteMultipath: "Multipath",
	RouteFiveG:     "FiveG",
}

var routeChoiceValues = map[string]RouteChoice{
	"WiFi":      RouteWiFi,
	"Starlink":  RouteStarlink,
	"Multipath": RouteMultipath,
	"FiveG":     RouteFiveG,
}

func (r RouteChoice) String() string {
	if name, ok := routeChoiceNames[r]; ok {
		return name
	}
	return routeChoiceNames[RouteWiFi]
}

// ParseRouteChoice maps a wire name back to its RouteChoice.
func ParseRouteChoice(s string) (RouteChoice, bool) {
	v, ok := routeChoiceValues[s]
	return v, ok
}

func (r RouteChoice) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON accepts the wire name. Unknown names fall back to the
// zero value so a newer producer cannot poison a whole snapshot.
func (r *RouteChoice) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if v, ok := ParseRouteChoice(s); ok {
		*r = v
	} else {
		*r = RouteWiFi
	}
	return nil
}

// RouteChoiceNames lists the wire names in a stable order.
func RouteChoiceNames() []string {
	return []string{"WiFi", "Starlink", "Multipath", "FiveG"}
}

// Severity is the traffic classifier's binary priority class.
type Severity int

const (
	SeverityHigh Severity = iota
	SeverityLow
)

var severityNames = map[Severity]string{
	SeverityHigh: "High",
	SeverityLow:  "Low",
}

var severityValues = map[string]Severity{
	"High": SeverityHigh,
	"Low":  SeverityLow,
}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return severityNames[SeverityHigh]
}

func ParseSeverity(s string) (Severity, bool) {
	v, ok := severityValues[s]
	return v, ok
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	if v, ok := ParseSeverity(name); ok {
		*s = v
	} else {
		*s = SeverityHigh
	}
	return nil
}

func SeverityNames() []string {
	return []string{"High", "Low"}
}

// OptimizationHint is the AI layer's suggestion for the next send.
type OptimizationHint int

const (
	HintSendFull OptimizationHint = iota
	HintSendDelta
	HintSkip
	HintCompress
)

var optimizationHintNames = map[OptimizationHint]string{
	HintSendFull:  "SendFull",
	HintSendDelta: "SendDelta",
	HintSkip:      "Skip",
	HintCompress:  "Compress",
}

var optimizationHintValues = map[string]OptimizationHint{
	"SendFull":  HintSendFull,
	"SendDelta": HintSendDelta,
	"Skip":      HintSkip,
	"Compress":  HintCompress,
}

func (h OptimizationHint) String() string {
	if name, ok := optimizationHintNames[h]; ok {
		return name
	}
	return optimizationHintNames[HintSendFull]
}

func ParseOptimizationHint(s string) (OptimizationHint, bool) {
	v, ok := optimizationHintValues[s]
	return v, ok
}

func (h OptimizationHint) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

func (h *OptimizationHint) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if v, ok := ParseOptimizationHint(s); ok {
		*h = v
	} else {
		*h = HintSendFull
	}
	return nil
}

func OptimizationHintNames() []string {
	return []string{"SendFull", "SendDelta", "Skip", "Compress"}
}

// ConnState is the transport connection lifecycle state.
type ConnState int

const (
	StateConnecting ConnState = iota
	StateConnected
	StateDegraded
	StateClosed
)

var connStateNames = map[ConnState]string{
	StateConnecting: "Connecting",
	StateConnected:  "Connected",
	StateDegraded:   "Degraded",
	StateClosed:     "Closed",
}

var connStateValues = map[string]ConnState{
	"Connecting": StateConnecting,
	"Connected":  StateConnected,
	"Degraded":   StateDegraded,
	"Closed":     StateClosed,
}

func (c ConnState) String() string {
	if name, ok := connStateNames[c]; ok {
		return name
	}
	return connStateNames[StateConnecting]
}

func ParseConnState(s string) (ConnState, bool) {
	v, ok := connStateValues[s]
	return v, ok
}

func (c ConnState) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ConnState) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if v, ok := ParseConnState(s); ok {
		*c = v
	} else {
		*c = StateConnecting
	}
	return nil
}

func ConnStateNames() []string {
	return []string{"Connecting", "Connected", "Degraded", "Closed"}
}

// FecAlgorithm selects the erasure coding scheme the transport runs.
type FecAlgorithm int

const (
	FecReedSolomon FecAlgorithm = iota
	FecXOR
)

var fecAlgorithmNames = map[FecAlgorithm]string{
	FecReedSolomon: "ReedSolomon",
	FecXOR:         "XOR",
}

var fecAlgorithmValues = map[string]FecAlgorithm{
	"ReedSolomon": FecReedSolomon,
	"XOR":         FecXOR,
}

func (f FecAlgorithm) String() string {
	if name, ok := fecAlgorithmNames[f]; ok {
		return name
	}
	return fecAlgorithmNames[FecReedSolomon]
}

func ParseFecAlgorithm(s string) (FecAlgorithm, bool) {
	v, ok := fecAlgorithmValues[s]
	return v, ok
}

func (f FecAlgorithm) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

func (f *FecAlgorithm) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if v, ok := ParseFecAlgorithm(s); ok {
		*f = v
	} else {
		*f = FecReedSolomon
	}
	return nil
}

func FecAlgorithmNames() []string {
	return []string{"ReedSolomon", "XOR"}
}

// CompressionAlgo is the codec that produced the compression counters.
type CompressionAlgo int

const (
	CompressionNone CompressionAlgo = iota
	CompressionLZ4
	CompressionZstd
)

var compressionAlgoNames = map[CompressionAlgo]string{
	CompressionNone: "None",
	CompressionLZ4:  "LZ4",
	CompressionZstd: "Zstd",
}

var compressionAlgoValues = map[string]CompressionAlgo{
	"None": CompressionNone,
	"LZ4":  CompressionLZ4,
	"Zstd": CompressionZstd,
}

func (c CompressionAlgo) String() string {
	if name, ok := compressionAlgoNames[c]; ok {
		return name
	}
	return compressionAlgoNames[CompressionNone]
}

func ParseCompressionAlgo(s string) (CompressionAlgo, bool) {
	v, ok := compressionAlgoValues[s]
	return v, ok
}

func (c CompressionAlgo) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *CompressionAlgo) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if v, ok := ParseCompressionAlgo(s); ok {
		*c = v
	} else {
		*c = CompressionNone
	}
	return nil
}

func CompressionAlgoNames() []string {
	return []string{"None", "LZ4", "Zstd"}
}
