package ufid

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Form names a Unicode normalization form applied before hashing.
type Form string

const (
	FormNone Form = "none"
	FormNFC  Form = "nfc"
	FormNFD  Form = "nfd"
	FormNFKC Form = "nfkc"
	FormNFKD Form = "nfkd"
)

// Forms lists every accepted normalization form.
var Forms = []Form{FormNFC, FormNFD, FormNFKC, FormNFKD, FormNone}

// ParseForm accepts a form name in any case. An empty value means none.
func ParseForm(value string) (Form, error) {
	switch Form(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormNone:
		return FormNone, nil
	case FormNFC:
		return FormNFC, nil
	case FormNFD:
		return FormNFD, nil
	case FormNFKC:
		return FormNFKC, nil
	case FormNFKD:
		return FormNFKD, nil
	default:
		return "", fmt.Errorf("unsupported normalization form %q", value)
	}
}

func (f Form) apply(s string) string {
	switch f {
	case FormNFC:
		return norm.NFC.String(s)
	case FormNFD:
		return norm.NFD.String(s)
	case FormNFKC:
		return norm.NFKC.String(s)
	case FormNFKD:
		return norm.NFKD.String(s)
	default:
		return s
	}
}

// Normalization controls how a name is canonicalized before hashing.
type Normalization struct {
	Form     Form
	CaseFold bool
	Trim     bool
}

// DefaultNormalization is NFKC, case folding, and whitespace trimming.
func DefaultNormalization() Normalization {
	return Normalization{Form: FormNFKC, CaseFold: true, Trim: true}
}

// Apply normalizes, then case-folds, then trims. With every option off the
// name is returned unchanged.
func (n Normalization) Apply(name string) string {
	s := n.Form.apply(name)
	if n.CaseFold {
		s = cases.Fold().String(s)
	}
	if n.Trim {
		s = strings.TrimSpace(s)
	}
	return s
}

func (n Normalization) validate() error {
	if _, err := ParseForm(string(n.Form)); err != nil {
		return err
	}
	return nil
}
