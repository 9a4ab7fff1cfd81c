package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the bcrypt hash of a password. A fresh salt is drawn
// per call, so two hashes of the same password never match byte-for-byte.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
