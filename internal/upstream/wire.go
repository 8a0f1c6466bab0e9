package upstream

import (
	"bytes"
	"encoding/json"

	"github.com/go-faster/errors"
)

// wireID is an identifier that upstream backends serialize as either a JSON
// number or a string. It always normalizes to its string form.
type wireID string

func (w *wireID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*w = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return errors.Wrap(err, "string id")
		}
		*w = wireID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrap(err, "numeric id")
	}
	*w = wireID(n.String())
	return nil
}
