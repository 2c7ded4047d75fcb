package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecp256k1SignAndVerify(t *testing.T) {
	key, err := GenerateSecp256k1Key()
	assert.NoError(t, err)

	msg := []byte("hello world")
	sig, err := key.SignMessage(msg)
	assert.NoError(t, err)
	assert.Len(t, sig.Bytes(), Secp256k1SignatureLength)

	pub := key.VerifyingKey()
	assert.True(t, pub.Verify(msg, sig))
	assert.False(t, pub.Verify([]byte("hello worle"), sig))

	// a signature of the wrong scheme never verifies
	assert.False(t, pub.Verify(msg, &Ed25519Signature{}))
}

func TestSecp256k1MaterialRoundTrips(t *testing.T) {
	key, err := GenerateSecp256k1Key()
	assert.NoError(t, err)
	assert.Len(t, key.Bytes(), Secp256k1PrivateKeyLength)

	restored := &Secp256k1PrivateKey{}
	err = restored.FromHex(key.ToHex())
	assert.NoError(t, err)
	assert.Equal(t, key.Bytes(), restored.Bytes())

	pub := key.VerifyingKey().(*Secp256k1PublicKey)
	assert.Len(t, pub.Bytes(), Secp256k1PublicKeyLength)
	restoredPub := &Secp256k1PublicKey{}
	err = restoredPub.FromHex(pub.ToHex())
	assert.NoError(t, err)
	assert.Equal(t, pub.Bytes(), restoredPub.Bytes())

	assert.Error(t, restored.FromBytes([]byte{0x01}))
	assert.Error(t, restoredPub.FromBytes([]byte{0x01}))
}

func TestSecp256k1SignValue(t *testing.T) {
	key, err := GenerateSecp256k1Key()
	assert.NoError(t, err)

	message := &testMessage{Nonce: 1, Payload: []byte{0xFF}}
	sig, err := SignValue(key, "bcs::testMessage", message)
	assert.NoError(t, err)

	ok, err := VerifyValue(key.VerifyingKey(), "bcs::testMessage", message, sig)
	assert.NoError(t, err)
	assert.True(t, ok)
}
