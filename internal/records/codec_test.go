package records_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"ufid/internal/records"
)

func TestDecodePreservesFieldsAndOrder(t *testing.T) {
	input := `[
  {"title": "Intro <live>", "file": "貓/intro.mp3", "tags": ["a", "b"], "meta": {"n": 1.50}},
  {"file": "outro.mp3", "id": "EVcY7A", "title": null}
]`
	doc, err := records.Decode(strings.NewReader(input), records.DefaultSchema())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(doc.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(doc.Records))
	}

	first := doc.Records[0]
	if diff := cmp.Diff([]string{"title", "file", "tags", "meta"}, first.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
	if first.Name != records.Some("貓/intro.mp3") {
		t.Fatalf("unexpected name %#v", first.Name)
	}
	if first.ID.Valid {
		t.Fatalf("expected missing id, got %#v", first.ID)
	}
	if first.Label.Or("") != "Intro <live>" {
		t.Fatalf("unexpected label %#v", first.Label)
	}

	second := doc.Records[1]
	if second.ID != records.Some("EVcY7A") {
		t.Fatalf("unexpected id %#v", second.ID)
	}
	if second.Label.Valid {
		t.Fatal("expected null title to be absent")
	}
}

func TestEncodeMatchesIndentedLayout(t *testing.T) {
	input := `[{"file":"貓/intro.mp3","tags":["a"],"empty":[],"meta":{"n":1.50},"id":null},{"file":"x&y.mp3","id":"old"}]`
	doc, err := records.Decode(strings.NewReader(input), records.DefaultSchema())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	doc.Records[0].SetID("EVcY7A")

	got, err := doc.Encoded()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `[
  {
    "file": "貓/intro.mp3",
    "tags": [
      "a"
    ],
    "empty": [],
    "meta": {
      "n": 1.50
    },
    "id": "EVcY7A"
  },
  {
    "file": "x&y.mp3",
    "id": "old"
  }
]
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("encoded output mismatch (-want +got):\n%s", diff)
	}
}

func TestSetIDAppendsMissingField(t *testing.T) {
	doc, err := records.Decode(strings.NewReader(`[{"file":"a.mp3","title":"A"}]`), records.DefaultSchema())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	doc.Records[0].SetID("abc")
	if diff := cmp.Diff([]string{"file", "title", "id"}, doc.Records[0].Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeCustomSchema(t *testing.T) {
	schema := records.Schema{NameField: "path", IDField: "uid", LabelField: "name"}
	doc, err := records.Decode(strings.NewReader(`[{"path":"a.wav","uid":"x","name":"A"}]`), schema)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	r := doc.Records[0]
	if r.Name.Or("") != "a.wav" || r.ID.Or("") != "x" || r.Label.Or("") != "A" {
		t.Fatalf("unexpected record %#v", r)
	}
	r.SetID("y")
	raw, ok := r.Field("uid")
	if !ok || string(raw) != `"y"` {
		t.Fatalf("uid field not updated: %s", raw)
	}
}

func TestDecodeDuplicateKeyLastWins(t *testing.T) {
	doc, err := records.Decode(strings.NewReader(`[{"file":"a.mp3","title":"x","file":"b.mp3"}]`), records.DefaultSchema())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	r := doc.Records[0]
	if r.Name.Or("") != "b.mp3" {
		t.Fatalf("expected last value, got %#v", r.Name)
	}
	if diff := cmp.Diff([]string{"file", "title"}, r.Keys()); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
}

func TestEligible(t *testing.T) {
	tests := []struct {
		name   string
		record *records.Record
		want   bool
	}{
		{"named", records.New(records.Some("a.mp3"), records.None()), true},
		{"empty name", records.New(records.Some(""), records.None()), false},
		{"missing name", records.New(records.None(), records.Some("x")), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.record.Eligible(); got != tc.want {
				t.Fatalf("Eligible() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDecodeShapeErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantIndex int
		wantField string
	}{
		{"object root", `{"file":"a"}`, -1, ""},
		{"empty", ``, -1, ""},
		{"scalar element", `[{"file":"a"}, 3]`, 1, ""},
		{"array element", `[[1]]`, 0, ""},
		{"numeric name", `[{"file": 12}]`, 0, "file"},
		{"numeric id", `[{"file": "a", "id": 7}]`, 0, "id"},
		{"object id", `[{"file": "a", "id": {}}]`, 0, "id"},
		{"trailing data", `[] []`, -1, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := records.Decode(strings.NewReader(tc.input), records.DefaultSchema())
			var shapeErr *records.ShapeError
			if !errors.As(err, &shapeErr) {
				t.Fatalf("expected ShapeError, got %v", err)
			}
			if shapeErr.Index != tc.wantIndex || shapeErr.Field != tc.wantField {
				t.Fatalf("unexpected error position: %+v", shapeErr)
			}
			if shapeErr.ErrorKind() != "input_shape" {
				t.Fatalf("unexpected kind %q", shapeErr.ErrorKind())
			}
		})
	}
}

func TestDecodeSyntaxError(t *testing.T) {
	_, err := records.Decode(strings.NewReader(`[{"file":`), records.DefaultSchema())
	if err == nil {
		t.Fatal("expected parse error")
	}
	var shapeErr *records.ShapeError
	if errors.As(err, &shapeErr) {
		t.Fatalf("expected a parse error, got shape error %v", err)
	}
}

func TestEncodeEmpty(t *testing.T) {
	doc, err := records.Decode(strings.NewReader(`[]`), records.DefaultSchema())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got, err := doc.Encoded()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got != "[]\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
