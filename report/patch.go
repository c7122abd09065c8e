package report

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
)

// MergePatch computes the RFC 7386 merge patch that turns the before
// snapshot into the after snapshot. Applying the result to before's JSON
// rendering yields after's.
func MergePatch(before, after any) ([]byte, error) {
	b, err := json.Marshal(JSONValue(before))
	if err != nil {
		return nil, fmt.Errorf("cannot render before state: %w", err)
	}
	a, err := json.Marshal(JSONValue(after))
	if err != nil {
		return nil, fmt.Errorf("cannot render after state: %w", err)
	}
	return jsonpatch.CreateMergePatch(b, a)
}

// ApplyMergePatch applies an RFC 7386 merge patch to a canonical
// structure's JSON rendering and returns the decoded result.
func ApplyMergePatch(doc any, patch []byte) (any, error) {
	d, err := json.Marshal(JSONValue(doc))
	if err != nil {
		return nil, fmt.Errorf("cannot render document: %w", err)
	}
	out, err := jsonpatch.MergePatch(d, patch)
	if err != nil {
		return nil, err
	}
	var res any
	if err := json.Unmarshal(out, &res); err != nil {
		return nil, err
	}
	return res, nil
}
