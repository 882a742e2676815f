package bcrypt

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultCost = 10
)

// normalize sınıf şifresi büyük/küçük harf duyarsız
func normalize(passphrase string) []byte {
	return []byte(strings.ToUpper(strings.TrimSpace(passphrase)))
}

// HashPassphrase şifreyi hashler
func HashPassphrase(passphrase string) ([]byte, error) {
	hashed, err := bcrypt.GenerateFromPassword(normalize(passphrase), DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash passphrase: %v", err)
	}
	return hashed, nil
}

// ComparePassphrase hashlenen şifre ile girilen şifreyi karşılaştırır
func ComparePassphrase(hashed []byte, passphrase string) error {
	if err := bcrypt.CompareHashAndPassword(hashed, normalize(passphrase)); err != nil {
		return fmt.Errorf("passphrase comparison failed: %v", err)
	}
	return nil
}
