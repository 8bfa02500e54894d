package protocol

import (
	"crypto/rand"

	"golang.org/x/crypto/nacl/box"
	"golang.org/x/crypto/nacl/secretbox"

	"github.com/canvasxyz/teekit-sub002/internal/errs"
)

const nonceSize = 24

// SealEnvelope encrypts plaintext under key with an independently random
// nonce, producing the {type:"enc", nonce, ciphertext} wire frame.
func SealEnvelope(key [32]byte, plaintext []byte) (*Envelope, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, errs.Wrap(errs.KindChannel, "nonce_generation_failed", err)
	}
	ciphertext := secretbox.Seal(nil, plaintext, &nonce, &key)
	return &Envelope{Type: TypeEnc, Nonce: nonce[:], Ciphertext: ciphertext}, nil
}

// OpenEnvelope decrypts env under key, failing with a KindChannel error if the
// nonce is malformed or the box does not authenticate — steady-state
// decrypt failure is fatal to the session, never silently dropped.
func OpenEnvelope(key [32]byte, env *Envelope) ([]byte, error) {
	if len(env.Nonce) != nonceSize {
		return nil, errs.New(errs.KindChannel, "invalid_nonce_length", "")
	}
	var nonce [nonceSize]byte
	copy(nonce[:], env.Nonce)
	plaintext, ok := secretbox.Open(nil, env.Ciphertext, &nonce, &key)
	if !ok {
		return nil, errs.New(errs.KindChannel, "decrypt_failed", "")
	}
	return plaintext, nil
}

// SealSymmetricKey seals a freshly generated 32-byte symmetric key to the
// server's X25519 public key using libsodium's crypto_box_seal convention
// (an ephemeral sender keypair discarded after sealing): the Go-ecosystem
// equivalent is nacl/box.SealAnonymous.
func SealSymmetricKey(serverPublicKey [32]byte, key [32]byte) ([]byte, error) {
	sealed, err := box.SealAnonymous(nil, key[:], &serverPublicKey, rand.Reader)
	if err != nil {
		return nil, errs.Wrap(errs.KindHandshake, "seal_failed", err)
	}
	return sealed, nil
}

// OpenSymmetricKey opens a sealed-box ciphertext with the server's static
// X25519 keypair, recovering the client's chosen symmetric key.
func OpenSymmetricKey(serverPublicKey, serverPrivateKey [32]byte, sealed []byte) ([32]byte, error) {
	var key [32]byte
	out, ok := box.OpenAnonymous(nil, sealed, &serverPublicKey, &serverPrivateKey)
	if !ok {
		return key, errs.New(errs.KindHandshake, "sealed_box_open_failed", "")
	}
	if len(out) != 32 {
		return key, errs.New(errs.KindHandshake, "invalid_symmetric_key_length", "")
	}
	copy(key[:], out)
	return key, nil
}
