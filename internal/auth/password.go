package auth

import "golang.org/x/crypto/bcrypt"

// Hasher hashes and verifies passwords with bcrypt. The salt is embedded in
// the digest, so hashing the same plaintext twice yields different digests.
type Hasher struct {
	cost int
}

func NewHasher() Hasher {
	return Hasher{cost: bcrypt.DefaultCost}
}

func (h Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
