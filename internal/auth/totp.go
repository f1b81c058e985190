package auth

import (
	"github.com/pquerna/otp/totp"
)

const totpIssuer = "Linesheet"

// GenerateTOTPSecret creates a new TOTP secret for the account and
// returns the base32 secret plus the otpauth:// URL the frontend
// renders as a QR code.
func GenerateTOTPSecret(email string) (secret, url string, err error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: email,
	})
	if err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

// ValidateTOTPCode checks a 6-digit code against the stored secret.
func ValidateTOTPCode(secret, code string) bool {
	return totp.Validate(code, secret)
}
