package auth

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrMissingActor = errors.New("token carries no usable actor id")
)

// JWTValidator validates HS256 bearer tokens issued by the host application
type JWTValidator struct {
	secret []byte
}

// NewJWTValidator creates a new JWT validator; an empty secret disables validation
func NewJWTValidator(secret string) *JWTValidator {
	return &JWTValidator{secret: []byte(secret)}
}

// Enabled reports whether a signing secret is configured
func (v *JWTValidator) Enabled() bool {
	return len(v.secret) > 0
}

// ValidateToken checks the signature and expiry of a token and returns the actor it names
func (v *JWTValidator) ValidateToken(tokenString string) (*Actor, error) {
	if !v.Enabled() {
		return nil, fmt.Errorf("%w: no signing secret configured", ErrInvalidToken)
	}

	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !parsedToken.Valid {
		return nil, ErrInvalidToken
	}

	id, ok := ExtractActorID(claims)
	if !ok {
		return nil, ErrMissingActor
	}
	return &Actor{ID: id, Source: SourceJWT}, nil
}

// ExtractActorID reads a positive numeric user id from the "uid" claim, else "sub"
func ExtractActorID(claims jwt.MapClaims) (int64, bool) {
	for _, key := range []string{"uid", "sub"} {
		val, ok := claims[key]
		if !ok {
			continue
		}
		var id int64
		switch v := val.(type) {
		case float64:
			id = int64(v)
		case string:
			parsed, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				continue
			}
			id = parsed
		default:
			continue
		}
		if id > 0 {
			return id, true
		}
	}
	return 0, false
}
