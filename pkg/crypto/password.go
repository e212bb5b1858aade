package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2 derives and verifies salted Argon2id password hashes encoded as
// PHC-style strings. The cost parameters are embedded in the encoded hash, so
// they can be rotated without invalidating existing hashes: Verify always
// recomputes under the parameters the hash was created with.
type Argon2 struct {
	Memory      uint32 // Memory cost in KiB
	Iterations  uint32 // Number of iterations (time cost)
	Parallelism uint8  // Number of parallel threads
	SaltLength  uint32 // Length of random salt. Ignored during Verify()
	KeyLength   uint32 // Length of generated key
}

// NewArgon2 returns an Argon2 instance with the fixed default cost parameters.
//
// @ref https://cheatsheetseries.owasp.org/cheatsheets/Password_Storage_Cheat_Sheet.html
func NewArgon2() *Argon2 {
	return &Argon2{
		Memory:      64 * 1024, // 64 MB
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Hash derives a hash from password under a fresh random salt and returns the
// PHC-encoded string. Input content never causes failure; empty and
// maximum-length passwords both succeed.
func (a *Argon2) Hash(password string) (string, error) {
	salt := make([]byte, a.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: generating salt: %v", ErrHashingFailure, err)
	}

	hash := argon2.IDKey(
		[]byte(password),
		salt,
		a.Iterations,
		a.Memory,
		a.Parallelism,
		a.KeyLength,
	)

	// WARN: hard-coded argon2id string. Only valid due to using argon2.IDKey()
	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		a.Memory,
		a.Iterations,
		a.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash))

	return encoded, nil
}

// Verify recomputes the hash of password under the parameters embedded in
// encodedHash and compares in constant time. A mismatch returns (false, nil);
// only an unparseable encodedHash returns an error.
func (a *Argon2) Verify(password, encodedHash string) (bool, error) {
	params, salt, hash, err := decodeArgon2Hash(encodedHash)
	if err != nil {
		return false, err
	}

	computedHash := argon2.IDKey(
		[]byte(password),
		salt,
		params.Iterations,
		params.Memory,
		params.Parallelism,
		params.KeyLength,
	)

	return subtle.ConstantTimeCompare(hash, computedHash) == 1, nil
}

func decodeArgon2Hash(encodedHash string) (*Argon2, []byte, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return nil, nil, nil, fmt.Errorf("%w: invalid hash format", ErrHashingFailure)
	}

	if parts[1] != "argon2id" {
		return nil, nil, nil, fmt.Errorf("%w: unsupported algorithm %q", ErrHashingFailure, parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: invalid version: %v", ErrHashingFailure, err)
	}

	params := &Argon2{}
	paramParts := strings.Split(parts[3], ",")
	if len(paramParts) != 3 {
		return nil, nil, nil, fmt.Errorf("%w: invalid parameters format", ErrHashingFailure)
	}

	if _, err := fmt.Sscanf(paramParts[0], "m=%d", &params.Memory); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: invalid memory parameter: %v", ErrHashingFailure, err)
	}

	if _, err := fmt.Sscanf(paramParts[1], "t=%d", &params.Iterations); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: invalid iterations parameter: %v", ErrHashingFailure, err)
	}

	var p int
	if _, err := fmt.Sscanf(paramParts[2], "p=%d", &p); err != nil {
		return nil, nil, nil, fmt.Errorf("%w: invalid parallelism parameter: %v", ErrHashingFailure, err)
	}
	params.Parallelism = uint8(p)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: invalid salt encoding: %v", ErrHashingFailure, err)
	}

	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: invalid hash encoding: %v", ErrHashingFailure, err)
	}

	params.KeyLength = uint32(len(hash))

	return params, salt, hash, nil
}
