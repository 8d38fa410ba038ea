package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid session token")

type Claims struct {
	jwt.RegisteredClaims
}

// Issuer hands out anonymous browser identities as signed cookies.
type Issuer struct {
	key        []byte
	cookieName string
	expiration time.Duration
	secure     bool
}

func NewIssuer(key []byte, cookieName string, expiration time.Duration, secure bool) *Issuer {
	return &Issuer{
		key:        key,
		cookieName: cookieName,
		expiration: expiration,
		secure:     secure,
	}
}

func (i *Issuer) Sign(id uuid.UUID, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.expiration)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   id.String(),
		},
	})

	ss, err := token.SignedString(i.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return ss, expiresAt, nil
}

func (i *Issuer) Parse(tokenString string) (uuid.UUID, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return id, nil
}

// Identify returns the identity carried by the request cookie. A missing or
// invalid cookie silently starts a new identity and sets a fresh cookie.
func (i *Issuer) Identify(w http.ResponseWriter, r *http.Request) (uuid.UUID, error) {
	if cookie, err := r.Cookie(i.cookieName); err == nil {
		if id, err := i.Parse(cookie.Value); err == nil {
			return id, nil
		}
	}

	id := uuid.New()
	ss, expiresAt, err := i.Sign(id, time.Now())
	if err != nil {
		return uuid.Nil, err
	}

	cookie := &http.Cookie{
		Name:     i.cookieName,
		Value:    ss,
		Expires:  expiresAt,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if i.secure {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteStrictMode
	}
	http.SetCookie(w, cookie)

	return id, nil
}
