// Package password wraps bcrypt hashing for stored account credentials.
package password

import "golang.org/x/crypto/bcrypt"

const hashCost = bcrypt.DefaultCost

func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)
	return string(hashed), err
}

// Compare reports nil when plain matches the stored hash.
func Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
