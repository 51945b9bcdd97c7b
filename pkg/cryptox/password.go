package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for newly created hashes. Verification reads the
// parameters back out of the encoded hash so these can be raised later.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
)

const argon2Prefix = "$argon2id$"

var (
	ErrPasswordMismatch = errors.New("password does not match")
	ErrEmptySalt        = errors.New("salt must not be empty")
)

// HashPassword derives a PHC-format Argon2id hash of password keyed by the
// caller supplied salt. The result is deterministic for a given password and
// salt, which lets callers keep the salt alongside the user record.
func HashPassword(password, salt string) (string, error) {
	if salt == "" {
		return "", ErrEmptySalt
	}

	hash := argon2.IDKey([]byte(password), []byte(salt), iterations, memory, parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString([]byte(salt)),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// LegacyHash is the digest stored by accounts created before Argon2id:
// base64(SHA-256(password + salt)).
func LegacyHash(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// VerifyPassword checks password against a stored hash. Both PHC Argon2id
// hashes and legacy SHA-256 digests are accepted; the legacy form needs the
// stored salt.
func VerifyPassword(password, salt, encodedHash string) error {
	if !strings.HasPrefix(encodedHash, argon2Prefix) {
		if encodedHash == "" {
			return errors.New("invalid hash format: empty")
		}
		computed := LegacyHash(password, salt)
		if subtle.ConstantTimeCompare([]byte(computed), []byte(encodedHash)) == 1 {
			return nil
		}
		return ErrPasswordMismatch
	}

	// ["", "argon2id", "v=19", "m=X,t=Y,p=Z", "salt", "hash"]
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return errors.New("invalid hash format: expected 6 parts")
	}
	if parts[2] != "v=19" {
		return errors.New("invalid hash format: wrong version")
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("invalid hash format: failed to parse parameters: %w", err)
	}

	saltBytes, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("invalid hash format: failed to decode salt: %w", err)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("invalid hash format: failed to decode hash: %w", err)
	}

	computed := argon2.IDKey(
		[]byte(password),
		saltBytes,
		iters,
		mem,
		par,
		uint32(len(expected)), // #nosec G115
	)

	if subtle.ConstantTimeCompare(computed, expected) == 1 {
		return nil
	}
	return ErrPasswordMismatch
}
