package records

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Document is a decoded record collection.
type Document struct {
	Schema  Schema
	Records []*Record
}

// Decode reads a JSON array of objects. Field order is preserved; when a
// key repeats, the last value wins at the first key's position.
func Decode(r io.Reader, schema Schema) (*Document, error) {
	schema = schema.withDefaults()
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ShapeError{Index: -1, Reason: "empty document; expected a JSON array of objects"}
		}
		return nil, fmt.Errorf("parse records: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, &ShapeError{Index: -1, Reason: "top-level JSON must be an array of objects"}
	}

	doc := &Document{Schema: schema}
	for index := 0; dec.More(); index++ {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parse record %d: %w", index, err)
		}
		record, err := decodeRecord(index, raw, schema)
		if err != nil {
			return nil, err
		}
		doc.Records = append(doc.Records, record)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parse records: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ShapeError{Index: -1, Reason: "unexpected data after the top-level array"}
	}
	return doc, nil
}

func decodeRecord(index int, raw json.RawMessage, schema Schema) (*Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parse record %d: %w", index, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, &ShapeError{Index: index, Reason: "expected a JSON object"}
	}

	record := &Record{idField: schema.IDField}
	positions := map[string]int{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parse record %d: %w", index, err)
		}
		key, _ := keyTok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("parse record %d field %q: %w", index, key, err)
		}
		if pos, ok := positions[key]; ok {
			record.fields[pos].value = value
			continue
		}
		positions[key] = len(record.fields)
		record.fields = append(record.fields, field{key: key, value: value})
	}

	if record.Name, err = optionalString(index, schema.NameField, record); err != nil {
		return nil, err
	}
	if record.ID, err = optionalString(index, schema.IDField, record); err != nil {
		return nil, err
	}
	// Labels are display-only; a non-string label is ignored rather than
	// rejected.
	record.Label, _ = optionalString(index, schema.LabelField, record)
	return record, nil
}

func optionalString(index int, key string, record *Record) (Optional, error) {
	raw, ok := record.Field(key)
	if !ok {
		return None(), nil
	}
	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, []byte("null")) {
		return None(), nil
	}
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return None(), &ShapeError{Index: index, Field: key, Reason: "must be a string or null"}
	}
	var value string
	if err := json.Unmarshal(trimmed, &value); err != nil {
		return None(), &ShapeError{Index: index, Field: key, Reason: err.Error()}
	}
	return Some(value), nil
}

// Encode writes the document as a two-space indented JSON array with a
// trailing newline. Non-ASCII text and HTML characters are written
// literally.
func (d *Document) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if len(d.Records) == 0 {
		bw.WriteString("[]\n")
		return bw.Flush()
	}
	bw.WriteString("[\n")
	for i, record := range d.Records {
		if err := encodeRecord(bw, record); err != nil {
			return fmt.Errorf("encode record %d: %w", i, err)
		}
		if i < len(d.Records)-1 {
			bw.WriteByte(',')
		}
		bw.WriteByte('\n')
	}
	bw.WriteString("]\n")
	return bw.Flush()
}

func encodeRecord(w *bufio.Writer, record *Record) error {
	const (
		indent = "  "
		inner  = indent + indent
	)
	if len(record.fields) == 0 {
		w.WriteString(indent + "{}")
		return nil
	}
	w.WriteString(indent + "{\n")
	for i, f := range record.fields {
		var buf bytes.Buffer
		if err := json.Indent(&buf, compact(f.value), inner, indent); err != nil {
			return fmt.Errorf("field %q: %w", f.key, err)
		}
		w.WriteString(inner)
		w.Write(marshalString(f.key))
		w.WriteString(": ")
		w.Write(buf.Bytes())
		if i < len(record.fields)-1 {
			w.WriteByte(',')
		}
		w.WriteByte('\n')
	}
	w.WriteString(indent + "}")
	return nil
}

func compact(raw json.RawMessage) []byte {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return raw
	}
	return buf.Bytes()
}

func marshalString(value string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(value)
	return bytes.TrimRight(buf.Bytes(), "\n")
}

// Encoded renders the document to a string.
func (d *Document) Encoded() (string, error) {
	var sb strings.Builder
	if err := d.Encode(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
