package ufid

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dchest/blake2b"
)

const (
	// Tag prefixes every payload. A future v2 changes the tag so its
	// identifiers can never silently collide with v1 identifiers.
	Tag = "ufid:v1"

	// Version is the human readable algorithm name.
	Version = "UFID v1"

	delimiter = ':'
)

// personalization is the BLAKE2b personalization block, zero padded by the
// primitive to blake2b.PersonSize.
var personalization = []byte("UFIDv1")

// ErrEmptyName is returned when a name is empty before normalization.
var ErrEmptyName = errors.New("name must be a non-empty string")

// Length is the identifier size in raw digest bytes.
type Length int

const (
	Length4  Length = 4
	Length8  Length = 8
	Length16 Length = 16
)

// DefaultLength keeps identifiers at six characters.
const DefaultLength = Length4

// Lengths lists every supported digest size.
var Lengths = []Length{Length4, Length8, Length16}

// ParseLength parses a byte count.
func ParseLength(value string) (Length, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("identifier length %q: %w", value, err)
	}
	l := Length(n)
	if !l.Valid() {
		return 0, fmt.Errorf("identifier length %d: must be one of 4, 8, 16", n)
	}
	return l, nil
}

// Valid reports whether l is a supported digest size.
func (l Length) Valid() bool {
	switch l {
	case Length4, Length8, Length16:
		return true
	}
	return false
}

// EncodedLen is the identifier string length for l.
func (l Length) EncodedLen() int {
	return base64.RawURLEncoding.EncodedLen(int(l))
}

func (l Length) String() string {
	return strconv.Itoa(int(l))
}

// Params bundles everything except the name and disambiguator.
type Params struct {
	Namespace     string
	Normalization Normalization
	Length        Length
}

// DefaultParams uses no namespace, the default normalization, and 4 bytes.
func DefaultParams() Params {
	return Params{Normalization: DefaultNormalization(), Length: DefaultLength}
}

// Validate rejects unsupported lengths and normalization forms.
func (p Params) Validate() error {
	if !p.Length.Valid() {
		return fmt.Errorf("identifier length %d: must be one of 4, 8, 16", int(p.Length))
	}
	return p.Normalization.validate()
}

// Derive computes the identifier of name at disambiguator k.
func (p Params) Derive(name string, k int) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}
	if k < 0 {
		return "", fmt.Errorf("disambiguator %d must not be negative", k)
	}
	if err := p.Validate(); err != nil {
		return "", err
	}

	cfg := &blake2b.Config{
		Size:   uint8(p.Length),
		Person: personalization,
		Salt:   namespaceSalt(p.Namespace),
	}
	h, err := blake2b.New(cfg)
	if err != nil {
		return "", fmt.Errorf("init blake2b: %w", err)
	}
	h.Write(payload(p.Namespace, p.Normalization.Apply(name), k))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil)), nil
}

// Derive is the free-function form of Params.Derive.
func Derive(name, namespace string, k int, n Normalization, length Length) (string, error) {
	return Params{Namespace: namespace, Normalization: n, Length: length}.Derive(name, k)
}

func payload(namespace, normalized string, k int) []byte {
	buf := make([]byte, 0, len(Tag)+len(namespace)+len(normalized)+8)
	buf = append(buf, Tag...)
	buf = append(buf, delimiter)
	buf = append(buf, namespace...)
	buf = append(buf, delimiter)
	buf = append(buf, normalized...)
	buf = append(buf, delimiter)
	buf = strconv.AppendInt(buf, int64(k), 10)
	return buf
}

// namespaceSalt returns nil without a namespace. Salt presence is itself
// part of the domain: namespaced and bare identifiers never share a key
// schedule.
func namespaceSalt(namespace string) []byte {
	if namespace == "" {
		return nil
	}
	sum := sha256.Sum256([]byte(namespace))
	return sum[:blake2b.SaltSize]
}

// IsWellFormed reports whether id has the length and alphabet of an
// identifier of size l.
func IsWellFormed(id string, l Length) bool {
	if len(id) != l.EncodedLen() {
		return false
	}
	raw, err := base64.RawURLEncoding.Strict().DecodeString(id)
	return err == nil && len(raw) == int(l)
}

// CollisionProbability estimates the chance that n distinct names produce
// at least one shared identifier of size l (birthday bound).
func CollisionProbability(n int, l Length) float64 {
	if n < 2 {
		return 0
	}
	space := math.Pow(2, float64(8*int(l)))
	pairs := float64(n) * float64(n-1) / 2
	return -math.Expm1(-pairs / space)
}
