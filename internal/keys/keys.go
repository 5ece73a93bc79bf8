// keys загружает асимметричный ключевой материал для подписи access-токенов.
//
// Ключ инициализируется один раз на старте процесса из PEM-файла,
// дальше структура Pair неизменяема и безопасна для конкурентного чтения.
package keys

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrInvalidKey — PEM не распарсился или не содержит RSA-ключ.
	ErrInvalidKey = errors.New("invalid signing key")
)

// Pair — пара ключей RSA с идентификатором ключа (kid в заголовке JWT).
type Pair struct {
	Private *rsa.PrivateKey
	Public  *rsa.PublicKey
	KeyID   string
}

// Load читает приватный RSA-ключ из PEM-файла (PKCS#8 или PKCS#1),
// выводит публичный ключ и связывает пару с keyID.
func Load(path, keyID string) (*Pair, error) {
	const op = "keys.Load"

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	priv, err := ParsePrivateKey(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Pair{
		Private: priv,
		Public:  &priv.PublicKey,
		KeyID:   keyID,
	}, nil
}

// ParsePrivateKey разбирает PEM-блок с приватным RSA-ключом.
// Поддерживаются контейнеры PKCS#8 ("PRIVATE KEY") и PKCS#1 ("RSA PRIVATE KEY").
func ParsePrivateKey(pemBytes []byte) (*rsa.PrivateKey, error) {
	const op = "keys.ParsePrivateKey"

	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidKey)
	}

	switch block.Type {
	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidKey)
		}

		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidKey)
		}

		return rsaKey, nil
	case "RSA PRIVATE KEY":
		key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidKey)
		}

		return key, nil
	default:
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidKey)
	}
}
