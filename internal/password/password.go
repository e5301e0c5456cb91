// Package password hashes and verifies passwords with Argon2id, encoded in
// PHC string format: $argon2id$v=19$m=...,t=...,p=...$<salt>$<digest> with
// base64 (no padding) salt and digest.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Params defines the tuning parameters for Argon2id hashing.
type Params struct {
	Memory     uint32
	Time       uint32
	Threads    uint8
	KeyLength  uint32
	SaltLength uint32
}

// DefaultParams matches the settings used for stored publisher credentials.
var DefaultParams = Params{
	Memory:     15000,
	Time:       2,
	Threads:    1,
	KeyLength:  32,
	SaltLength: 16,
}

// DummyHash is a syntactically valid PHC hash verified in place of the
// stored hash when a username is unknown, so that credential validation
// performs the same amount of work on both paths. It never matches any
// candidate used by this service and a match against it never
// authenticates anyone.
const DummyHash = "$argon2id$v=19$m=15000,t=2,p=1$" +
	"gZiV/M1gPc22ElAH/Jh1Hw$CWOrkoo7oJBQ/iyh7uJ0LO2aLEfrHwTWllSAxT0zRno"

// Hash derives an Argon2id hash of password with DefaultParams and a fresh
// random salt, encoded in PHC string format.
func Hash(password string) (string, error) {
	salt := make([]byte, DefaultParams.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	digest := argon2.IDKey([]byte(password), salt,
		DefaultParams.Time, DefaultParams.Memory, DefaultParams.Threads, DefaultParams.KeyLength)

	b64 := base64.RawStdEncoding
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, DefaultParams.Memory, DefaultParams.Time, DefaultParams.Threads,
		b64.EncodeToString(salt), b64.EncodeToString(digest)), nil
}

// Verify recomputes the Argon2id digest of candidate using the parameters
// and salt carried by the PHC-encoded hash and compares in constant time.
// It returns false with a nil error on mismatch; an error means the stored
// hash could not be parsed.
func Verify(candidate, encoded string) (bool, error) {
	params, salt, digest, err := decode(encoded)
	if err != nil {
		return false, err
	}
	computed := argon2.IDKey([]byte(candidate), salt,
		params.Time, params.Memory, params.Threads, uint32(len(digest)))
	return subtle.ConstantTimeCompare(computed, digest) == 1, nil
}

func decode(encoded string) (Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return Params{}, nil, nil, errors.New("not a PHC string")
	}
	if parts[1] != "argon2id" {
		return Params{}, nil, nil, fmt.Errorf("unsupported algorithm %q", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return Params{}, nil, nil, fmt.Errorf("parse version: %w", err)
	}
	if version != argon2.Version {
		return Params{}, nil, nil, fmt.Errorf("unsupported argon2 version %d", version)
	}

	var params Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Time, &params.Threads); err != nil {
		return Params{}, nil, nil, fmt.Errorf("parse parameters: %w", err)
	}
	if params.Threads == 0 {
		return Params{}, nil, nil, errors.New("invalid thread count")
	}

	b64 := base64.RawStdEncoding
	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return Params{}, nil, nil, fmt.Errorf("decode salt: %w", err)
	}
	digest, err := b64.DecodeString(parts[5])
	if err != nil {
		return Params{}, nil, nil, fmt.Errorf("decode digest: %w", err)
	}
	if len(digest) == 0 {
		return Params{}, nil, nil, errors.New("empty digest")
	}
	return params, salt, digest, nil
}
