package crypto

import (
	"sync"

	"github.com/bcs-labs/bcs-go"
	"github.com/bcs-labs/bcs-go/internal/util"
	"golang.org/x/crypto/sha3"
)

// Signature is a raw signature over a signing message
type Signature interface {
	ToHex

	// Bytes the raw bytes of the signature
	Bytes() []byte
}

// VerifyingKey checks signatures produced by the matching MessageSigner
type VerifyingKey interface {
	ToHex
	FromHex

	// Bytes the raw bytes of the public key
	Bytes() []byte

	// Verify reports whether sig is a valid signature of msg
	Verify(msg []byte, sig Signature) bool
}

// MessageSigner signs raw message bytes
type MessageSigner interface {
	// SignMessage signs msg and returns the signature
	SignMessage(msg []byte) (Signature, error)

	// VerifyingKey the public key for signature verification
	VerifyingKey() VerifyingKey
}

type FromHex interface {
	// FromHex loads the key from the hex string
	FromHex(string) error
}

type ToHex interface {
	ToHex() string
}

// Cached domain prehashes; a process signs under a handful of domains
var (
	prehashesMu sync.RWMutex
	prehashes   = map[string][]byte{}
)

// DomainPrehash returns the SHA3-256 prehash of a domain separator string.
// Do not write to the []byte returned
func DomainPrehash(domain string) []byte {
	prehashesMu.RLock()
	cached := prehashes[domain]
	prehashesMu.RUnlock()
	if cached != nil {
		return cached
	}
	b32 := sha3.Sum256([]byte(domain))
	out := make([]byte, len(b32))
	copy(out, b32[:])
	prehashesMu.Lock()
	prehashes[domain] = out
	prehashesMu.Unlock()
	return out
}

// SigningMessage builds the bytes to sign for a value: the domain prehash
// followed by the value's canonical encoding.
func SigningMessage(domain string, value bcs.Marshaler) ([]byte, error) {
	encoded, err := bcs.ToBytes(value)
	if err != nil {
		return nil, err
	}
	prehash := DomainPrehash(domain)
	message := make([]byte, 0, len(prehash)+len(encoded))
	message = append(message, prehash...)
	message = append(message, encoded...)
	return message, nil
}

// Digest returns the SHA3-256 content address of a value's canonical
// encoding.
func Digest(value bcs.Marshaler) ([]byte, error) {
	encoded, err := bcs.ToBytes(value)
	if err != nil {
		return nil, err
	}
	return util.Sha3256Hash([][]byte{encoded}), nil
}

// SignValue signs the domain-separated signing message of a value
func SignValue(signer MessageSigner, domain string, value bcs.Marshaler) (Signature, error) {
	message, err := SigningMessage(domain, value)
	if err != nil {
		return nil, err
	}
	return signer.SignMessage(message)
}

// VerifyValue checks a signature produced by SignValue under the same domain
func VerifyValue(key VerifyingKey, domain string, value bcs.Marshaler, sig Signature) (bool, error) {
	message, err := SigningMessage(domain, value)
	if err != nil {
		return false, err
	}
	return key.Verify(message, sig), nil
}
