// crypt шифрует секреты внешних провайдеров перед сохранением в БД (AES-GCM).
package crypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

var (
	// ErrInvalidKey — ключ не декодируется или имеет недопустимую длину.
	ErrInvalidKey = errors.New("invalid cipher key")
	// ErrDecrypt — шифртекст повреждён или зашифрован другим ключом.
	ErrDecrypt = errors.New("cannot decrypt value")
)

// Encryptor — симметричное шифрование отдельных значений: AES-GCM со
// случайным nonce на каждый вызов. Экземпляр неизменяем и безопасен
// для конкурентного использования.
type Encryptor struct {
	aead cipher.AEAD
}

// New создаёт Encryptor на сыром ключе AES (16, 24 или 32 байта).
func New(key []byte) (*Encryptor, error) {
	const op = "crypt.New"

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidKey)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Encryptor{aead: aead}, nil
}

// NewFromBase64 создаёт Encryptor из base64-кодированного ключа (вид,
// в котором ключ живёт в конфигурации).
func NewFromBase64(encoded string) (*Encryptor, error) {
	const op = "crypt.NewFromBase64"

	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidKey)
	}

	return New(key)
}

// EncryptString шифрует строку; результат — base64(nonce || ciphertext).
// Одинаковые значения дают разные шифртексты: nonce случайный.
func (e *Encryptor) EncryptString(plaintext string) (string, error) {
	const op = "crypt.EncryptString"

	nonce := make([]byte, e.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	sealed := e.aead.Seal(nonce, nonce, []byte(plaintext), nil)

	return base64.StdEncoding.EncodeToString(sealed), nil
}

// DecryptString — обратная операция к EncryptString.
func (e *Encryptor) DecryptString(encoded string) (string, error) {
	const op = "crypt.DecryptString"

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrDecrypt)
	}

	if len(raw) < e.aead.NonceSize() {
		return "", fmt.Errorf("%s: %w", op, ErrDecrypt)
	}

	nonce, ciphertext := raw[:e.aead.NonceSize()], raw[e.aead.NonceSize():]
	plaintext, err := e.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrDecrypt)
	}

	return string(plaintext), nil
}
