package ufid_test

import (
	"errors"
	"strings"
	"testing"

	"ufid/internal/ufid"
)

// Vectors produced by ufid64.py with its
// default NFKC + casefold + strip normalization.
func TestDeriveMatchesReferenceVectors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		namespace string
		k         int
		length    ufid.Length
		want      string
	}{
		{"bare k0", "talk.mp3", "", 0, ufid.Length4, "EVcY7A"},
		{"bare k1", "talk.mp3", "", 1, ufid.Length4, "msjMxA"},
		{"namespaced", "talk.mp3", "my_project", 0, ufid.Length4, "Iik0aQ"},
		{"eight bytes", "talk.mp3", "", 0, ufid.Length8, "Ndcf6I2GQYA"},
		{"sixteen bytes", "talk.mp3", "", 0, ufid.Length16, "-2_kVQbr-_NLijPyd6DaGg"},
		{"cjk namespaced", "貓下去-測試[唱,笑].mp3", "sounds", 0, ufid.Length8, "N_HhCceptJQ"},
		{"fullwidth folds to ascii", "Ａ.mp3", "", 0, ufid.Length4, "RhjvFg"},
		{"ascii", "a.mp3", "", 0, ufid.Length4, "RhjvFg"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ufid.Derive(tc.input, tc.namespace, tc.k, ufid.DefaultNormalization(), tc.length)
			if err != nil {
				t.Fatalf("Derive: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Derive(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestDeriveWithoutNormalization(t *testing.T) {
	raw := ufid.Normalization{Form: ufid.FormNone}
	got, err := ufid.Derive("Talk.MP3", "", 0, raw, ufid.Length4)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if got != "G95KFA" {
		t.Fatalf("unexpected identifier %q", got)
	}
	folded, err := ufid.Derive("Talk.MP3", "", 0, ufid.DefaultNormalization(), ufid.Length4)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if folded == got {
		t.Fatal("expected normalization to change the identifier")
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	p := ufid.Params{Namespace: "ns", Normalization: ufid.DefaultNormalization(), Length: ufid.Length8}
	first, err := p.Derive("clips/intro.mp3", 3)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := p.Derive("clips/intro.mp3", 3)
		if err != nil {
			t.Fatalf("Derive: %v", err)
		}
		if again != first {
			t.Fatalf("run %d produced %q, want %q", i, again, first)
		}
	}
}

func TestDeriveSensitivity(t *testing.T) {
	p := ufid.DefaultParams()
	base, _ := p.Derive("intro.mp3", 0)

	otherName, _ := p.Derive("intro.mp4", 0)
	otherK, _ := p.Derive("intro.mp3", 1)
	p.Namespace = "x"
	otherNS, _ := p.Derive("intro.mp3", 0)

	for label, id := range map[string]string{"name": otherName, "k": otherK, "namespace": otherNS} {
		if id == base {
			t.Errorf("changing %s did not change the identifier", label)
		}
	}
}

func TestDeriveDomainSeparation(t *testing.T) {
	n := ufid.DefaultNormalization()
	for _, length := range ufid.Lengths {
		bare, _ := ufid.Derive("song.mp3", "", 0, n, length)
		a, _ := ufid.Derive("song.mp3", "ns-a", 0, n, length)
		b, _ := ufid.Derive("song.mp3", "ns-b", 0, n, length)
		if a == b {
			t.Fatalf("length %d: namespaces ns-a and ns-b collided", length)
		}
		if bare == a || bare == b {
			t.Fatalf("length %d: bare identifier collided with a namespaced one", length)
		}
	}
}

func TestDeriveLengthContract(t *testing.T) {
	want := map[ufid.Length]int{ufid.Length4: 6, ufid.Length8: 11, ufid.Length16: 22}
	names := []string{"a", "b.mp3", "長い名前.wav", " padded ", "ÅNGSTRÖM.flac"}
	for length, chars := range want {
		if length.EncodedLen() != chars {
			t.Fatalf("EncodedLen(%d) = %d, want %d", length, length.EncodedLen(), chars)
		}
		for k, name := range names {
			id, err := ufid.Derive(name, "ns", k, ufid.DefaultNormalization(), length)
			if err != nil {
				t.Fatalf("Derive: %v", err)
			}
			if len(id) != chars {
				t.Fatalf("len(%q) = %d, want %d", id, len(id), chars)
			}
			if strings.ContainsAny(id, "=+/") {
				t.Fatalf("identifier %q has characters outside the url-safe alphabet", id)
			}
			if !ufid.IsWellFormed(id, length) {
				t.Fatalf("IsWellFormed(%q, %d) = false", id, length)
			}
		}
	}
}

func TestDeriveRejectsInvalidInput(t *testing.T) {
	n := ufid.DefaultNormalization()
	if _, err := ufid.Derive("", "", 0, n, ufid.Length4); !errors.Is(err, ufid.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if _, err := ufid.Derive("a", "", -1, n, ufid.Length4); err == nil {
		t.Fatal("expected error for negative disambiguator")
	}
	if _, err := ufid.Derive("a", "", 0, n, ufid.Length(5)); err == nil {
		t.Fatal("expected error for unsupported length")
	}
	if _, err := ufid.Derive("a", "", 0, ufid.Normalization{Form: "nfx"}, ufid.Length4); err == nil {
		t.Fatal("expected error for unknown form")
	}
}

func TestWhitespaceOnlyNameStillDerives(t *testing.T) {
	id, err := ufid.Derive("   ", "", 0, ufid.DefaultNormalization(), ufid.Length4)
	if err != nil {
		t.Fatalf("Derive: %v", err)
	}
	if len(id) != 6 {
		t.Fatalf("unexpected identifier %q", id)
	}
}

func TestParseLength(t *testing.T) {
	for _, value := range []string{"4", " 8", "16"} {
		if _, err := ufid.ParseLength(value); err != nil {
			t.Fatalf("ParseLength(%q): %v", value, err)
		}
	}
	for _, value := range []string{"", "2", "32", "four"} {
		if _, err := ufid.ParseLength(value); err == nil {
			t.Fatalf("ParseLength(%q) succeeded", value)
		}
	}
}

func TestIsWellFormedRejectsForeignStrings(t *testing.T) {
	cases := []string{"", "abc", "EVcY7A=", "EVc+7A", "EVcY7AB"}
	for _, id := range cases {
		if ufid.IsWellFormed(id, ufid.Length4) {
			t.Fatalf("IsWellFormed(%q) = true", id)
		}
	}
}

func TestCollisionProbability(t *testing.T) {
	p := ufid.CollisionProbability(10000, ufid.Length4)
	if p < 0.009 || p > 0.013 {
		t.Fatalf("10k names at 4 bytes: got %f, want about 1%%", p)
	}
	if ufid.CollisionProbability(10000, ufid.Length16) > 1e-20 {
		t.Fatal("16 byte identifiers should be effectively collision free")
	}
	if ufid.CollisionProbability(1, ufid.Length4) != 0 {
		t.Fatal("a single name cannot collide")
	}
}
