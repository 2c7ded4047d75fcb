package crypto

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/bcs-labs/bcs-go"
	"github.com/bcs-labs/bcs-go/internal/util"
	ethCrypto "github.com/ethereum/go-ethereum/crypto"
)

//region Secp256k1PrivateKey

const Secp256k1PrivateKeyLength = 32

// Secp256k1PublicKeyLength we use the uncompressed version
const Secp256k1PublicKeyLength = 65

// Secp256k1SignatureLength is the Secp256k1 signature without the recovery bit
const Secp256k1SignatureLength = ethCrypto.SignatureLength - 1

// Secp256k1PrivateKey a Secp256k1 private key for signing canonical messages.
// Implements MessageSigner
type Secp256k1PrivateKey struct {
	Inner *ecdsa.PrivateKey
}

func GenerateSecp256k1Key() (*Secp256k1PrivateKey, error) {
	priv, err := ethCrypto.GenerateKey()
	if err != nil {
		return nil, err
	}

	return &Secp256k1PrivateKey{priv}, nil
}

//region Secp256k1PrivateKey MessageSigner

func (key *Secp256k1PrivateKey) VerifyingKey() VerifyingKey {
	return &Secp256k1PublicKey{
		&key.Inner.PublicKey,
	}
}

// SignMessage hashes msg with SHA3-256 and signs the hash; the recovery bit
// is stripped so the signature is exactly 64 bytes
func (key *Secp256k1PrivateKey) SignMessage(msg []byte) (Signature, error) {
	hash := util.Sha3256Hash([][]byte{msg})
	signature, err := ethCrypto.Sign(hash, key.Inner)
	if err != nil {
		return nil, err
	}

	// Strip the recovery bit
	sig := &Secp256k1Signature{}
	copy(sig.Inner[:], signature[0:Secp256k1SignatureLength])
	return sig, nil
}

//endregion

//region Secp256k1PrivateKey CryptoMaterial

func (key *Secp256k1PrivateKey) Bytes() []byte {
	return ethCrypto.FromECDSA(key.Inner)
}

func (key *Secp256k1PrivateKey) FromBytes(bytes []byte) (err error) {
	if len(bytes) != Secp256k1PrivateKeyLength {
		return fmt.Errorf("invalid secp256k1 private key size %d", len(bytes))
	}
	key.Inner, err = ethCrypto.ToECDSA(bytes)
	return err
}

func (key *Secp256k1PrivateKey) ToHex() string {
	return util.BytesToHex(key.Bytes())
}

func (key *Secp256k1PrivateKey) FromHex(hexStr string) (err error) {
	bytes, err := util.ParseHex(hexStr)
	if err != nil {
		return err
	}
	return key.FromBytes(bytes)
}

//endregion
//endregion

//region Secp256k1PublicKey

// Secp256k1PublicKey the verification half of a Secp256k1 key pair.
// Implements VerifyingKey
type Secp256k1PublicKey struct {
	Inner *ecdsa.PublicKey
}

//region Secp256k1PublicKey VerifyingKey

// Verify hashes msg the same way SignMessage does before checking the
// signature
func (key *Secp256k1PublicKey) Verify(msg []byte, sig Signature) bool {
	switch typedSig := sig.(type) {
	case *Secp256k1Signature:
		hash := util.Sha3256Hash([][]byte{msg})
		return ethCrypto.VerifySignature(key.Bytes(), hash, typedSig.Bytes())
	default:
		return false
	}
}

//endregion

//region Secp256k1PublicKey CryptoMaterial

func (key *Secp256k1PublicKey) Bytes() []byte {
	return ethCrypto.FromECDSAPub(key.Inner)
}

func (key *Secp256k1PublicKey) FromBytes(bytes []byte) (err error) {
	key.Inner, err = ethCrypto.UnmarshalPubkey(bytes)
	return err
}

func (key *Secp256k1PublicKey) ToHex() string {
	return util.BytesToHex(key.Bytes())
}

func (key *Secp256k1PublicKey) FromHex(hexStr string) (err error) {
	bytes, err := util.ParseHex(hexStr)
	if err != nil {
		return err
	}
	return key.FromBytes(bytes)
}

//endregion

//region Secp256k1PublicKey bcs.Marshaler

func (key *Secp256k1PublicKey) MarshalBCS(ser *bcs.Serializer) {
	ser.WriteBytes(key.Bytes())
}

//endregion
//endregion

//region Secp256k1Signature

// Secp256k1Signature a raw Secp256k1 signature without the recovery bit
type Secp256k1Signature struct {
	Inner [Secp256k1SignatureLength]byte
}

//region Secp256k1Signature Signature

func (sig *Secp256k1Signature) Bytes() []byte {
	return sig.Inner[:]
}

func (sig *Secp256k1Signature) ToHex() string {
	return util.BytesToHex(sig.Bytes())
}

func (sig *Secp256k1Signature) FromHex(hexStr string) (err error) {
	bytes, err := util.ParseHex(hexStr)
	if err != nil {
		return err
	}
	return sig.FromBytes(bytes)
}

func (sig *Secp256k1Signature) FromBytes(bytes []byte) (err error) {
	if len(bytes) != Secp256k1SignatureLength {
		return fmt.Errorf("invalid secp256k1 signature size %d", len(bytes))
	}
	copy(sig.Inner[:], bytes)
	return nil
}

//endregion

//region Secp256k1Signature bcs.Marshaler

func (sig *Secp256k1Signature) MarshalBCS(ser *bcs.Serializer) {
	ser.WriteBytes(sig.Bytes())
}

//endregion
//endregion
