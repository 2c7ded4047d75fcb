package crypto

import (
	"crypto/ed25519"
	"fmt"
	"io"

	"github.com/bcs-labs/bcs-go"
	"github.com/bcs-labs/bcs-go/internal/util"
	"github.com/hdevalence/ed25519consensus"
)

// Ed25519PrivateKey an Ed25519 private key for signing canonical messages.
// Implements MessageSigner
type Ed25519PrivateKey struct {
	Inner ed25519.PrivateKey
}

// GenerateEd25519PrivateKey generates a new random Ed25519 key pair.
//
// An optional [io.Reader] can be provided for deterministic key generation.
// The reader must provide exactly 32 bytes.
func GenerateEd25519PrivateKey(rand ...io.Reader) (*Ed25519PrivateKey, error) {
	var priv ed25519.PrivateKey
	var err error
	if len(rand) > 0 {
		_, priv, err = ed25519.GenerateKey(rand[0])
	} else {
		_, priv, err = ed25519.GenerateKey(nil)
	}
	if err != nil {
		return nil, err
	}
	return &Ed25519PrivateKey{Inner: priv}, nil
}

//region Ed25519PrivateKey MessageSigner

func (key *Ed25519PrivateKey) SignMessage(msg []byte) (Signature, error) {
	signature := ed25519.Sign(key.Inner, msg)
	sig := &Ed25519Signature{}
	copy(sig.Inner[:], signature)
	return sig, nil
}

func (key *Ed25519PrivateKey) VerifyingKey() VerifyingKey {
	return &Ed25519PublicKey{
		Inner: key.Inner.Public().(ed25519.PublicKey),
	}
}

//endregion

//region Ed25519PrivateKey CryptoMaterial

// Bytes the 32-byte seed of the private key
func (key *Ed25519PrivateKey) Bytes() []byte {
	return key.Inner.Seed()
}

func (key *Ed25519PrivateKey) FromBytes(bytes []byte) (err error) {
	if len(bytes) != ed25519.SeedSize {
		return fmt.Errorf("invalid ed25519 private key size %d", len(bytes))
	}
	key.Inner = ed25519.NewKeyFromSeed(bytes)
	return nil
}

func (key *Ed25519PrivateKey) ToHex() string {
	return util.BytesToHex(key.Bytes())
}

func (key *Ed25519PrivateKey) FromHex(hexStr string) (err error) {
	bytes, err := util.ParseHex(hexStr)
	if err != nil {
		return err
	}
	return key.FromBytes(bytes)
}

//endregion

// Ed25519PublicKey the verification half of an Ed25519 key pair.
// Implements VerifyingKey
type Ed25519PublicKey struct {
	Inner ed25519.PublicKey
}

//region Ed25519PublicKey VerifyingKey

// Verify checks the signature under ZIP-215 consensus rules, so independent
// verifiers agree on which signatures are valid
func (key *Ed25519PublicKey) Verify(msg []byte, sig Signature) bool {
	switch sig.(type) {
	case *Ed25519Signature:
		return ed25519consensus.Verify(key.Inner, msg, sig.Bytes())
	default:
		return false
	}
}

//endregion

//region Ed25519PublicKey CryptoMaterial

func (key *Ed25519PublicKey) Bytes() []byte {
	return key.Inner[:]
}

func (key *Ed25519PublicKey) FromBytes(bytes []byte) (err error) {
	if len(bytes) != ed25519.PublicKeySize {
		return fmt.Errorf("invalid ed25519 public key size %d", len(bytes))
	}
	key.Inner = make([]byte, ed25519.PublicKeySize)
	copy(key.Inner, bytes)
	return nil
}

func (key *Ed25519PublicKey) ToHex() string {
	return util.BytesToHex(key.Bytes())
}

func (key *Ed25519PublicKey) FromHex(hexStr string) (err error) {
	bytes, err := util.ParseHex(hexStr)
	if err != nil {
		return err
	}
	return key.FromBytes(bytes)
}

//endregion

//region Ed25519PublicKey bcs.Marshaler

func (key *Ed25519PublicKey) MarshalBCS(ser *bcs.Serializer) {
	ser.WriteBytes(key.Bytes())
}

//endregion

// Ed25519SignatureLength the length of a raw Ed25519 signature
const Ed25519SignatureLength = ed25519.SignatureSize

// Ed25519Signature a raw Ed25519 signature
type Ed25519Signature struct {
	Inner [Ed25519SignatureLength]byte
}

//region Ed25519Signature Signature

func (sig *Ed25519Signature) Bytes() []byte {
	return sig.Inner[:]
}

func (sig *Ed25519Signature) ToHex() string {
	return util.BytesToHex(sig.Bytes())
}

func (sig *Ed25519Signature) FromHex(hexStr string) (err error) {
	bytes, err := util.ParseHex(hexStr)
	if err != nil {
		return err
	}
	return sig.FromBytes(bytes)
}

func (sig *Ed25519Signature) FromBytes(bytes []byte) (err error) {
	if len(bytes) != Ed25519SignatureLength {
		return fmt.Errorf("invalid ed25519 signature size %d", len(bytes))
	}
	copy(sig.Inner[:], bytes)
	return nil
}

//endregion

//region Ed25519Signature bcs.Marshaler

func (sig *Ed25519Signature) MarshalBCS(ser *bcs.Serializer) {
	ser.WriteBytes(sig.Bytes())
}

//endregion
