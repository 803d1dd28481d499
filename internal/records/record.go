package records

import (
	"encoding/json"
)

// Optional is a string that may be absent. JSON null and a missing field
// are both absent.
type Optional struct {
	Value string
	Valid bool
}

// Some returns a present value.
func Some(value string) Optional {
	return Optional{Value: value, Valid: true}
}

// None returns an absent value.
func None() Optional {
	return Optional{}
}

// Or returns the value when present and fallback otherwise.
func (o Optional) Or(fallback string) string {
	if o.Valid {
		return o.Value
	}
	return fallback
}

// Schema names the JSON fields that carry the name, id, and label.
type Schema struct {
	NameField  string
	IDField    string
	LabelField string
}

// DefaultSchema matches the sound index layout: file, id, title.
func DefaultSchema() Schema {
	return Schema{NameField: "file", IDField: "id", LabelField: "title"}
}

func (s Schema) withDefaults() Schema {
	def := DefaultSchema()
	if s.NameField == "" {
		s.NameField = def.NameField
	}
	if s.IDField == "" {
		s.IDField = def.IDField
	}
	if s.LabelField == "" {
		s.LabelField = def.LabelField
	}
	return s
}

type field struct {
	key   string
	value json.RawMessage
}

// Record is one element of the collection.
type Record struct {
	Name  Optional
	ID    Optional
	Label Optional

	idField string
	fields  []field
}

// New builds a record outside of a decoded document, mostly for tests and
// programmatic callers.
func New(name, id Optional) *Record {
	r := &Record{Name: name, ID: id, idField: DefaultSchema().IDField}
	if name.Valid {
		r.set(DefaultSchema().NameField, name)
	}
	if id.Valid {
		r.set(r.idField, id)
	}
	return r
}

// Eligible reports whether the record has a usable name.
func (r *Record) Eligible() bool {
	return r.Name.Valid && r.Name.Value != ""
}

// SetID stores id in the typed slot and in the underlying field list. The
// field keeps its position when it already exists and is appended
// otherwise.
func (r *Record) SetID(id string) {
	r.ID = Some(id)
	r.set(r.idField, r.ID)
}

// Field returns the raw JSON of key, if present.
func (r *Record) Field(key string) (json.RawMessage, bool) {
	for _, f := range r.fields {
		if f.key == key {
			return f.value, true
		}
	}
	return nil, false
}

// Keys lists field names in document order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.key
	}
	return keys
}

func (r *Record) set(key string, value Optional) {
	raw := json.RawMessage("null")
	if value.Valid {
		raw = marshalString(value.Value)
	}
	for i := range r.fields {
		if r.fields[i].key == key {
			r.fields[i].value = raw
			return
		}
	}
	r.fields = append(r.fields, field{key: key, value: raw})
}
