package event

import "encoding/json"

// Envelope is the frame exchanged on the socket in both directions.
type Envelope struct {
	Event Name            `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func ToEnvelope(e DomainEvent) (Envelope, error) {
	data, err := json.Marshal(e.Payload())
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Event: e.Name(), Data: data}, nil
}
