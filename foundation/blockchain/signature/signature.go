// Package signature provides helper functions for handling the blockchain
// signature needs.
package signature

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// ZeroHash represents a hash code of zeros. It is also the sentinel merkle
// root for a block that carries no ordinary transactions.
const ZeroHash string = "0x0000000000000000000000000000000000000000000000000000000000000000"

// =============================================================================

// Hash returns a unique string for the value.
func Hash(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return ZeroHash
	}

	hash := sha256.Sum256(data)
	return hexutil.Encode(hash[:])
}

// HashToBig interprets the specified hash as a big-endian unbounded integer.
func HashToBig(hash string) (*big.Int, error) {
	data, err := hexutil.Decode(hash)
	if err != nil {
		return nil, fmt.Errorf("decoding hash: %w", err)
	}

	return new(big.Int).SetBytes(data), nil
}

// =============================================================================

// Sign uses the specified private key to sign the value. The signature is
// returned in the 65 byte [R|S|V] format, hex encoded.
func Sign(value any, privateKey *ecdsa.PrivateKey) (string, error) {

	// Prepare the data for signing.
	data, err := stamp(value)
	if err != nil {
		return "", err
	}

	// Sign the hash with the private key to produce a signature.
	sig, err := crypto.Sign(data, privateKey)
	if err != nil {
		return "", err
	}

	return hexutil.Encode(sig), nil
}

// Verify checks the specified signature was produced over the value by the
// owner of the specified public key.
func Verify(value any, sig string, publicKey string) error {

	// Prepare the data the signature was produced over.
	data, err := stamp(value)
	if err != nil {
		return err
	}

	sigBytes, err := hexutil.Decode(sig)
	if err != nil {
		return fmt.Errorf("decoding signature: %w", err)
	}
	if len(sigBytes) != crypto.SignatureLength {
		return errors.New("invalid signature length")
	}

	pubBytes, err := hexutil.Decode(publicKey)
	if err != nil {
		return fmt.Errorf("decoding public key: %w", err)
	}

	// Drop the recovery id. VerifySignature expects the 64 byte [R|S] form.
	if !crypto.VerifySignature(pubBytes, data, sigBytes[:crypto.RecoveryIDOffset]) {
		return errors.New("invalid signature")
	}

	return nil
}

// PublicKeyString returns the hex encoding of the specified public key in
// its uncompressed form. This is the key format stored in transaction
// outputs.
func PublicKeyString(publicKey *ecdsa.PublicKey) string {
	return hexutil.Encode(crypto.FromECDSAPub(publicKey))
}

// =============================================================================

// stamp returns a hash of 32 bytes that represents this value with the
// Arbor stamp embedded into the final hash.
func stamp(value any) ([]byte, error) {

	// Marshal the value.
	v, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	// Hash the value into a 32 byte array. This will provide a data length
	// consistency with all values being signed.
	txHash := crypto.Keccak256(v)

	// This stamp is used so signatures produced when signing values are
	// always unique to the Arbor blockchain.
	stamp := []byte("\x19Arbor Signed Message:\n32")

	// Hash the stamp and txHash together in a final 32 byte array that
	// represents the value.
	data := crypto.Keccak256(stamp, txHash)

	return data, nil
}
