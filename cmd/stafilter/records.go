package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/nlstn/go-stafilter"
)

const idKey = "@iot.id"

// record is one decoded JSON object. Its time properties are parsed up front
// so evaluation never touches JSON.
type record struct {
	id    string
	raw   map[string]json.RawMessage
	props stafilter.Properties
}

// Property implements stafilter.Candidate.
func (r *record) Property(name string) (stafilter.Value, bool) {
	return r.props.Property(name)
}

// decodeRecords reads a stream of JSON objects or arrays of objects. With a
// schema, only declared properties are parsed and a declared property that
// does not parse is an error; without one, every string that parses as an
// instant or interval becomes a property.
func decodeRecords(r io.Reader, schema stafilter.Schema) ([]*record, error) {
	dec := json.NewDecoder(r)
	var records []*record
	for {
		var msg json.RawMessage
		if err := dec.Decode(&msg); errors.Is(err, io.EOF) {
			return records, nil
		} else if err != nil {
			return nil, fmt.Errorf("decoding records: %w", err)
		}

		var objects []map[string]json.RawMessage
		if trimmed := bytes.TrimSpace(msg); len(trimmed) > 0 && trimmed[0] == '[' {
			if err := json.Unmarshal(msg, &objects); err != nil {
				return nil, fmt.Errorf("decoding records: %w", err)
			}
		} else {
			var obj map[string]json.RawMessage
			if err := json.Unmarshal(msg, &obj); err != nil {
				return nil, fmt.Errorf("decoding records: %w", err)
			}
			objects = append(objects, obj)
		}

		for _, obj := range objects {
			rec, err := newRecord(obj, schema)
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", len(records), err)
			}
			records = append(records, rec)
		}
	}
}

func newRecord(obj map[string]json.RawMessage, schema stafilter.Schema) (*record, error) {
	if obj == nil {
		obj = map[string]json.RawMessage{}
	}
	rec := &record{raw: obj, props: stafilter.Properties{}}

	if raw, ok := obj[idKey]; ok {
		rec.id = string(bytes.Trim(raw, `"`))
	} else {
		rec.id = uuid.NewString()
		quoted, _ := json.Marshal(rec.id)
		obj[idKey] = quoted
	}

	for name, raw := range obj {
		if name == idKey {
			continue
		}
		_, declared := schema[name]
		if schema != nil && !declared {
			continue
		}
		var text *string
		if err := json.Unmarshal(raw, &text); err != nil {
			if declared {
				return nil, fmt.Errorf("%s: expected a string or null", name)
			}
			continue
		}
		if text == nil {
			continue
		}
		op, err := stafilter.ParseOperand(*text)
		if err != nil {
			if declared {
				return nil, fmt.Errorf("%s: %w", name, err)
			}
			continue
		}
		rec.props[name] = op
	}
	return rec, nil
}
