// Package cryptox derives the credential material a client exchanges with
// the server. The password never leaves the client: the server only stores
// the salt and a verifier of the argon2id master key.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"

	"github.com/dmitrijs2005/petzy/internal/common"
)

const SaltSize = 32

// NewSalt returns a fresh random salt.
func NewSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

func DeriveMasterKey(password []byte, salt []byte) []byte {
	x := argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
	return x
}

// VerifierFor derives the verifier of password under salt. The intermediate
// master key is wiped.
func VerifierFor(password, salt []byte) []byte {
	key := DeriveMasterKey(password, salt)
	defer common.WipeByteArray(key)
	return MakeVerifier(key)
}

// Verify reports whether password matches verifier under salt, in constant
// time.
func Verify(password, salt, verifier []byte) bool {
	candidate := VerifierFor(password, salt)
	return subtle.ConstantTimeCompare(candidate, verifier) == 1
}
