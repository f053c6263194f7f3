package traits

import "encoding/json"

// Trace captures provenance for one adoption: which trait contributed each
// record replayed onto the adopting entity, in replay order.
type Trace struct {
	Trait  string       `json:"trait"`
	Target string       `json:"target,omitempty"`
	Steps  []Provenance `json:"steps"`
}

// Provenance details how a single record reached the adopting entity.
type Provenance struct {
	Kind      string `json:"kind"`
	Operation string `json:"operation"`
	Trait     string `json:"trait"`
	TraitID   string `json:"trait_id,omitempty"`
	Position  int    `json:"position"`
}

const (
	// ProvenanceInvocation marks a dispatched invocation record.
	ProvenanceInvocation = "invocation"
	// ProvenanceDefinition marks an installed definition record.
	ProvenanceDefinition = "definition"
)

// ToJSON serialises the trace into JSON for logging or transport helpers.
func (t Trace) ToJSON() ([]byte, error) {
	type alias Trace
	return json.Marshal(alias(t))
}

// TraceFromJSON deserialises a JSON payload that was previously generated via
// ToJSON.
func TraceFromJSON(payload []byte) (Trace, error) {
	type alias Trace
	var trace alias
	if err := json.Unmarshal(payload, &trace); err != nil {
		return Trace{}, err
	}
	return Trace(trace), nil
}
