package identity

import "errors"

var (
	// ErrInvalidToken возвращается для токена с неверной подписью, форматом или claims
	ErrInvalidToken = errors.New("identity: invalid token")

	// ErrExpiredToken возвращается для просроченного токена
	ErrExpiredToken = errors.New("identity: token expired")

	// ErrIssueToken возвращается при ошибке подписи токена
	ErrIssueToken = errors.New("identity: failed to issue token")
)
