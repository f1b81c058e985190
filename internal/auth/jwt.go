package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Set once from main with the configured secret before the router starts.
var jwtSecretKey []byte

func Init(secret string) {
	jwtSecretKey = []byte(secret)
}

// Token scopes. A "full" token opens the API; an "mfa" token is the
// short-lived pass issued between the password check and the TOTP
// challenge, and is not accepted anywhere else.
const (
	scopeFull = "full"
	scopeMFA  = "mfa"
)

// GenerateToken creates a full-access JWT for a given user ID,
// valid for 72 hours.
func GenerateToken(userID int64) (string, error) {
	return signToken(userID, scopeFull, 72*time.Hour)
}

// GenerateMFAToken creates the interim token returned after a correct
// password when the account has MFA enabled. Five minutes to enter
// the code.
func GenerateMFAToken(userID int64) (string, error) {
	return signToken(userID, scopeMFA, 5*time.Minute)
}

func signToken(userID int64, scope string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"scope": scope,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecretKey)
}

// ValidateToken parses a full-access token and returns the user ID.
// MFA interim tokens are rejected here.
func ValidateToken(tokenString string) (int64, error) {
	return validateScoped(tokenString, scopeFull)
}

// ValidateMFAToken parses an interim MFA token and returns the user ID.
func ValidateMFAToken(tokenString string) (int64, error) {
	return validateScoped(tokenString, scopeMFA)
}

func validateScoped(tokenString, wantScope string) (int64, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return jwtSecretKey, nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid token")
	}

	scope, _ := claims["scope"].(string)
	if scope != wantScope {
		return 0, errors.New("token scope not valid for this operation")
	}

	userIDFloat, ok := claims["sub"].(float64)
	if !ok {
		return 0, errors.New("invalid subject claim")
	}
	return int64(userIDFloat), nil
}
