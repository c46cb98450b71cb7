package helpers

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"strconv"

	"golang.org/x/crypto/argon2"
)

// argon2i parameters for credential and id hashing. These are derivation
// parameters, not a tunable: changing them invalidates every stored hash.
const (
	hashTime    = 3
	hashMemory  = 4096
	hashThreads = 1
	hashLen     = 32
)

// Hash derives a hex-encoded argon2i hash of data under salt. Used for
// password and email hashes (with per-user salts) and for opaque id
// derivation (with per-kind salts).
func Hash(data, salt string) string {
	sum := argon2.Key([]byte(data), []byte(salt), hashTime, hashMemory, hashThreads, hashLen)
	return hex.EncodeToString(sum)
}

// NewSalt returns a random decimal salt string.
func NewSalt() (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return strconv.FormatUint(binary.BigEndian.Uint64(b[:]), 10), nil
}

// NewToken returns a 64-character hex session token (32 bytes of entropy).
func NewToken() (string, error) {
	var b [32]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
