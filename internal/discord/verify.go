package discord

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
)

var (
	ErrMalformedPublicKey = errors.New("malformed_public_key")
	ErrMalformedSignature = errors.New("malformed_signature")
)

// VerifyInteraction checks the Ed25519 signature Discord attaches to an
// interaction callback. The signed message is the timestamp header
// concatenated with the raw request body, with no separator.
//
// Malformed hex or wrong-length key material is an error, not a failed
// verification. A well-formed signature that does not validate returns
// (false, nil). The raw body is never logged or retained here.
func VerifyInteraction(publicKeyHex, signatureHex, timestamp string, body []byte) (bool, error) {
	publicKey, err := hex.DecodeString(publicKeyHex)
	if err != nil || len(publicKey) != ed25519.PublicKeySize {
		return false, ErrMalformedPublicKey
	}

	signature, err := hex.DecodeString(signatureHex)
	if err != nil || len(signature) != ed25519.SignatureSize {
		return false, ErrMalformedSignature
	}

	message := make([]byte, 0, len(timestamp)+len(body))
	message = append(message, timestamp...)
	message = append(message, body...)

	return ed25519.Verify(ed25519.PublicKey(publicKey), message, signature), nil
}
