package crypto

import (
	"testing"

	"github.com/bcs-labs/bcs-go"
	"github.com/stretchr/testify/assert"
)

const testEd25519PrivateKeyHex = "0xc5338cd251c22daa8c9c9cc94f498cc8a5c7e1d2e75287a5dda91096fe64efa5"

// testMessage a small value with a canonical encoding to sign
type testMessage struct {
	Nonce   uint64
	Payload []byte
}

func (m *testMessage) MarshalBCS(ser *bcs.Serializer) {
	ser.Struct("testMessage", func(ser *bcs.Serializer) {
		ser.U64(m.Nonce)
		ser.WriteBytes(m.Payload)
	})
}

func TestEd25519Keys(t *testing.T) {
	key := &Ed25519PrivateKey{}
	err := key.FromHex(testEd25519PrivateKeyHex)
	assert.NoError(t, err)
	assert.Equal(t, testEd25519PrivateKeyHex, key.ToHex())

	// the same seed always derives the same public key
	other := &Ed25519PrivateKey{}
	err = other.FromHex(testEd25519PrivateKeyHex)
	assert.NoError(t, err)
	assert.Equal(t, key.VerifyingKey().Bytes(), other.VerifyingKey().Bytes())
}

func TestEd25519SignAndVerify(t *testing.T) {
	key, err := GenerateEd25519PrivateKey()
	assert.NoError(t, err)

	msg := []byte("hello world")
	sig, err := key.SignMessage(msg)
	assert.NoError(t, err)
	assert.Len(t, sig.Bytes(), Ed25519SignatureLength)

	pub := key.VerifyingKey()
	assert.True(t, pub.Verify(msg, sig))
	assert.False(t, pub.Verify([]byte("hello worle"), sig))

	// a signature of the wrong scheme never verifies
	assert.False(t, pub.Verify(msg, &Secp256k1Signature{}))
}

func TestEd25519MaterialRoundTrips(t *testing.T) {
	key, err := GenerateEd25519PrivateKey()
	assert.NoError(t, err)

	restored := &Ed25519PrivateKey{}
	err = restored.FromHex(key.ToHex())
	assert.NoError(t, err)
	assert.Equal(t, key.Bytes(), restored.Bytes())

	pub := key.VerifyingKey().(*Ed25519PublicKey)
	restoredPub := &Ed25519PublicKey{}
	err = restoredPub.FromHex(pub.ToHex())
	assert.NoError(t, err)
	assert.Equal(t, pub.Bytes(), restoredPub.Bytes())

	sig, err := key.SignMessage([]byte("msg"))
	assert.NoError(t, err)
	restoredSig := &Ed25519Signature{}
	err = restoredSig.FromHex(sig.ToHex())
	assert.NoError(t, err)
	assert.Equal(t, sig.Bytes(), restoredSig.Bytes())

	// invalid sizes are rejected
	assert.Error(t, restored.FromBytes([]byte{0x01}))
	assert.Error(t, restoredPub.FromBytes([]byte{0x01}))
	assert.Error(t, restoredSig.FromBytes([]byte{0x01}))
}

func TestSignValue(t *testing.T) {
	key, err := GenerateEd25519PrivateKey()
	assert.NoError(t, err)

	message := &testMessage{Nonce: 7, Payload: []byte{0x01, 0x02}}
	sig, err := SignValue(key, "bcs::testMessage", message)
	assert.NoError(t, err)

	ok, err := VerifyValue(key.VerifyingKey(), "bcs::testMessage", message, sig)
	assert.NoError(t, err)
	assert.True(t, ok)

	// a different domain never verifies
	ok, err = VerifyValue(key.VerifyingKey(), "bcs::other", message, sig)
	assert.NoError(t, err)
	assert.False(t, ok)

	// neither does a different value
	tampered := &testMessage{Nonce: 8, Payload: []byte{0x01, 0x02}}
	ok, err = VerifyValue(key.VerifyingKey(), "bcs::testMessage", tampered, sig)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestDigest(t *testing.T) {
	message := &testMessage{Nonce: 7, Payload: []byte{0x01}}
	first, err := Digest(message)
	assert.NoError(t, err)
	assert.Len(t, first, 32)

	second, err := Digest(message)
	assert.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := Digest(&testMessage{Nonce: 8, Payload: []byte{0x01}})
	assert.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestDomainPrehash(t *testing.T) {
	first := DomainPrehash("bcs::testMessage")
	second := DomainPrehash("bcs::testMessage")
	assert.Equal(t, first, second)
	assert.Len(t, first, 32)
	assert.NotEqual(t, first, DomainPrehash("bcs::other"))
}
