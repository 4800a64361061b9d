package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted, one-way hash. bcrypt embeds its cost and
// format tag in the output, so old hashes keep verifying after a cost bump.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash.
// Malformed or empty hashes verify as false; this never panics.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
