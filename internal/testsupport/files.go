package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Rec is a fixture record using the default schema. Empty fields are omitted.
type Rec struct {
	File  string
	ID    string
	Title string
}

// RecordsJSON renders recs as a JSON array with keys in file, id, title order.
func RecordsJSON(recs ...Rec) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, rec := range recs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('{')
		first := true
		for _, kv := range [][2]string{{"file", rec.File}, {"id", rec.ID}, {"title", rec.Title}} {
			if kv[1] == "" {
				continue
			}
			if !first {
				sb.WriteByte(',')
			}
			first = false
			key, _ := json.Marshal(kv[0])
			value, _ := json.Marshal(kv[1])
			sb.Write(key)
			sb.WriteByte(':')
			sb.Write(value)
		}
		sb.WriteByte('}')
	}
	sb.WriteByte(']')
	return sb.String()
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteRecords writes a fixture document to path.
func WriteRecords(t testing.TB, path string, recs ...Rec) {
	t.Helper()
	WriteFile(t, path, RecordsJSON(recs...))
}

// ReadFile returns the content of path.
func ReadFile(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
