package journal

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// documentKey separates journal digests from any other BLAKE3 use. It is the
// ASCII domain name zero-padded to the 32-byte key size.
var documentKey = [32]byte{
	'u', 'f', 'i', 'd', '.', 'j', 'o', 'u', 'r', 'n', 'a', 'l', '.',
	'd', 'o', 'c', 'u', 'm', 'e', 'n', 't',
}

// Digest returns the hex BLAKE3 keyed digest of a document's bytes.
func Digest(data []byte) string {
	hasher, err := blake3.NewKeyed(documentKey[:])
	if err != nil {
		panic("journal: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	_, _ = hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}
