package main

import (
	"encoding/json"
)

// decodePayload re-marshals an envelope payload into its typed form.
func decodePayload(payload interface{}, result interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, result)
}
