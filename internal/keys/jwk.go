package keys

import (
	"encoding/base64"
	"math/big"
)

// JWK — публичный ключ в формате JSON Web Key (RFC 7517).
type JWK struct {
	Kty string `json:"kty"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// JWKSet — набор публичных ключей для /.well-known/jwks.json.
type JWKSet struct {
	Keys []JWK `json:"keys"`
}

// PublicJWKSet сериализует публичный ключ пары в JWK Set: смежные сервисы
// забирают его и проверяют RS256-подпись access-токенов сами, без похода
// в auth-сервис на каждый запрос.
func (p *Pair) PublicJWKSet() JWKSet {
	return JWKSet{Keys: []JWK{{
		Kty: "RSA",
		Use: "sig",
		Alg: "RS256",
		Kid: p.KeyID,
		N:   base64.RawURLEncoding.EncodeToString(p.Public.N.Bytes()),
		E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(p.Public.E)).Bytes()),
	}}}
}
