package resource

import (
	"encoding/json"
	"fmt"
)

// Fields holds the named values of a Record. Values are whatever the JSON
// decoder produces: string, float64, bool, nil, []any or map[string]any.
type Fields map[string]any

// Clone returns a shallow copy of the field map. Nested values are shared;
// callers that mutate nested structures own that problem, same as the
// corpus apps this mirrors.
func (f Fields) Clone() Fields {
	if f == nil {
		return Fields{}
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Record is a single stored entity: a server-assigned id plus its fields.
// The id is never taken from the client; an "id" key inside Fields is
// discarded on the way in.
type Record struct {
	ID     int64
	Fields Fields
}

// MarshalJSON writes the record as one flat object, id first by contract:
// {"id": 1, "name": "Widget", "stock": 5}.
func (r Record) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Fields)+1)
	for k, v := range r.Fields {
		flat[k] = v
	}
	flat["id"] = r.ID
	return json.Marshal(flat)
}

// UnmarshalJSON reads the flat wire object back into ID + Fields.
func (r *Record) UnmarshalJSON(data []byte) error {
	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	if raw, ok := flat["id"]; ok {
		switch id := raw.(type) {
		case float64:
			r.ID = int64(id)
		case json.Number:
			n, err := id.Int64()
			if err != nil {
				return fmt.Errorf("decode record id: %w", err)
			}
			r.ID = n
		default:
			return fmt.Errorf("decode record: unexpected id type %T", raw)
		}
		delete(flat, "id")
	}
	r.Fields = flat
	return nil
}

// Merge returns a copy of the record with the supplied fields laid over the
// existing ones. Untouched fields survive; an "id" key in the patch is
// ignored, the id is not client-assignable.
func (r Record) Merge(patch Fields) Record {
	merged := r.Fields.Clone()
	for k, v := range patch {
		if k == "id" {
			continue
		}
		merged[k] = v
	}
	return Record{ID: r.ID, Fields: merged}
}
