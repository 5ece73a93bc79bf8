// service содержит бизнес-логику auth-сервиса: выпуск и проверку подписанных
// access-токенов, ротацию цепочек refresh-токенов с детекцией повторного
// использования, реестр сессий, журнал отзыва и обмен с внешним
// identity-провайдером (PKCE).
//
// Основные аспекты:
//   - Пакет не хранит состояние запроса внутри Service; экземпляр Service
//     безопасен для конкурентного использования из разных горутин при условии,
//     что переданные хранилища (storage.Storage, cache.StateStore) потокобезопасны.
//   - Атомарность ротации держится на условных одношаговых операциях хранилища
//     (захват головы цепочки через ClaimRefreshToken), а не на блокировках в памяти.
//   - Ошибки возвращаются типизированными sentinel-значениями и далее маппятся
//     транспортом на HTTP-статусы (см. комментарии к переменным ошибок ниже).
package service

import (
	"errors"

	"github.com/nguyenkhoi/auth-service/internal/cache"
	"github.com/nguyenkhoi/auth-service/internal/config"
	"github.com/nguyenkhoi/auth-service/internal/keys"
	"github.com/nguyenkhoi/auth-service/internal/pkg/crypt"
	"github.com/nguyenkhoi/auth-service/internal/storage"
)

var (
	// ErrInvalidCredentials — пара логин/пароль неверна или пользователь не найден.
	// Транспорт: 401.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken — токен (access/refresh) некорректен по формату/подписи,
	// выпущен не нашим издателем/для чужой аудитории или отсутствует в хранилище.
	// Транспорт: 401.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired — срок действия токена истёк. Транспорт: 401.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenReused — предъявлен уже ротированный refresh-токен: признак кражи.
	// Специализация ErrInvalidToken; до возврата ошибки вся цепочка токена
	// обязана быть отозвана. Транспорт: 401 (неотличимо от прочих 401).
	ErrTokenReused = errors.New("token reused")

	// ErrTokenRevoked — токен отозван (logout/rotation/compromise) и недействителен
	// независимо от срока. Транспорт: 401.
	ErrTokenRevoked = errors.New("token revoked")

	// ErrInvalidRequest — некорректный вход внешнего логина: отсутствующий или
	// просроченный state, отсутствующий PKCE-верификатор, провайдер отверг обмен.
	// Транспорт: 400.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInternal — недоступен ключевой материал, провайдер или криптосбой.
	// Транспорт: 500.
	ErrInternal = errors.New("internal error")

	// ErrNotFound — неизвестная сессия/привязка аккаунта. Транспорт: 404.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken — e-mail уже занят другим пользователем. Транспорт: 409.
	ErrEmailTaken = errors.New("email already taken")

	// ErrRefreshTokenCollision — исчерпаны попытки сгенерировать уникальный
	// идентификатор refresh-токена (редкие коллизии после нескольких ретраев).
	// Транспорт: 500.
	ErrRefreshTokenCollision = errors.New("refresh token collision")

	// ErrInvalidEmail — e-mail имеет некорректный формат. Транспорт: 400.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrWeakPassword — пароль не удовлетворяет политикам сложности. Транспорт: 400.
	ErrWeakPassword = errors.New("password is too weak")

	// ErrEmptyPassword — пароль пустой. Транспорт: 400.
	ErrEmptyPassword = errors.New("password is empty")

	// ErrAccountLinked — внешний аккаунт уже привязан к другому пользователю.
	// Транспорт: 409.
	ErrAccountLinked = errors.New("external account already linked")
)

// Service описывает бизнес-логику auth-сервиса.
type Service struct {
	storage  storage.Storage
	states   cache.StateStore
	keys     *keys.Pair
	provider Provider
	cipher   *crypt.Encryptor
	cfg      config.AuthConfig
	oauthCfg config.OAuthConfig
}

// New создаёт новый экземпляр Service.
// provider может быть nil, если внешний логин не сконфигурирован —
// тогда beginExternalLogin/completeExternalLogin возвращают ErrInvalidRequest.
// cipher может быть nil — тогда токены провайдера на привязках не сохраняются.
func New(st storage.Storage, states cache.StateStore, keyPair *keys.Pair, provider Provider, cipher *crypt.Encryptor, cfg config.AuthConfig, oauthCfg config.OAuthConfig) *Service {
	return &Service{
		storage:  st,
		states:   states,
		keys:     keyPair,
		provider: provider,
		cipher:   cipher,
		cfg:      cfg,
		oauthCfg: oauthCfg,
	}
}
