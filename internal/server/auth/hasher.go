// Package auth holds the credential and token primitives of the server:
// salted password hashing and the signed access-token codec.
package auth

import (
	"crypto/rand"
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

const saltSize = 16

// argon2id parameters: passes, memory (KiB), threads, digest length.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// HashPassword derives a fresh random salt and the argon2id digest of the
// password combined with it. The raw password is neither stored nor logged.
func HashPassword(password string) (salt []byte, digest []byte, err error) {
	salt = make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, err
	}
	digest = argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return salt, digest, nil
}

// VerifyPassword recomputes the digest from the supplied password and the
// stored salt and compares it to the stored digest in constant time.
func VerifyPassword(password string, salt []byte, digest []byte) bool {
	candidate := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return subtle.ConstantTimeCompare(digest, candidate) == 1
}
