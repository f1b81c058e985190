package handlers

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/linesheet-app/linesheet-golang/internal/auth"
	"github.com/linesheet-app/linesheet-golang/internal/models"
)

// --- User Registration ---

// RegisterUserInput defines the expected JSON data for registration.
// The 'binding' tags are used by Gin for automatic validation.
type RegisterUserInput struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	CompanyName string `json:"companyName"`
}

// Register is the handler for POST /v1/register. New accounts start
// 'unverified' and move to 'pending' once the email code checks out;
// an administrator approves them to 'active' after that.
func (h *Handlers) Register(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input RegisterUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Generate Verification Code ---
	code, err := generateVerificationCode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate verification code"})
		return
	}
	expiry := time.Now().Add(15 * time.Minute)

	// 3. --- Create User Model ---
	user := &models.User{
		Role:               "member",
		Status:             "unverified",
		Email:              input.Email,
		FullName:           input.FullName,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
		Version:            1,
		VerificationCode:   &code,
		VerificationExpiry: &expiry,
	}
	if input.CompanyName != "" {
		user.CompanyName = &input.CompanyName
	}

	// 4. --- Hash the Password ---
	var password models.Password
	if err := password.Set(input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	user.PasswordHash = password.Hash

	// 5. --- Save to Database ---
	query := `
		INSERT INTO users
		(role, status, email, password_hash, full_name, company_name, created_at, updated_at, version, verification_code, verification_expiry)
		VALUES
		(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := h.DB.Exec(query,
		user.Role, user.Status, user.Email, user.PasswordHash, user.FullName,
		user.CompanyName, user.CreatedAt, user.UpdatedAt, user.Version,
		user.VerificationCode, user.VerificationExpiry,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user (email may already be in use)"})
		return
	}

	id, err := result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get new user ID"})
		return
	}
	user.ID = id

	// 6. --- Send Verification Email ---
	if err := h.Mailer.SendVerificationEmail(user.Email, code); err != nil {
		log.Printf("ERROR: Failed to send verification email to %s: %v", user.Email, err)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful. Please check your email for a verification code.",
		"user":    user,
	})
}

// --- Email Verification ---

type VerifyEmailInput struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// VerifyEmail is the handler for POST /v1/auth/verify-email.
// A correct, unexpired code moves the account to 'pending' (waiting
// for administrator approval).
func (h *Handlers) VerifyEmail(c *gin.Context) {
	var input VerifyEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		userID int64
		status string
		code   sql.NullString
		expiry sql.NullTime
	)
	query := "SELECT id, status, verification_code, verification_expiry FROM users WHERE email = ?"
	err := h.DB.QueryRow(query, input.Email).Scan(&userID, &status, &code, &expiry)
	if err != nil {
		// Same message for a missing account and a wrong code.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid verification code"})
		return
	}

	if status != "unverified" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Account is already verified"})
		return
	}
	if !code.Valid || code.String != input.Code {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid verification code"})
		return
	}
	if !expiry.Valid || time.Now().After(expiry.Time) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Verification code has expired. Please request a new one."})
		return
	}

	update := `
		UPDATE users
		SET status = 'pending', verification_code = NULL, verification_expiry = NULL, updated_at = ?
		WHERE id = ?`
	if _, err := h.DB.Exec(update, time.Now(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Email verified. Your account is now pending administrator approval.",
	})
}

type ResendCodeInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ResendVerificationEmail is the handler for POST /v1/auth/resend-code.
func (h *Handlers) ResendVerificationEmail(c *gin.Context) {
	var input ResendCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		userID int64
		status string
	)
	err := h.DB.QueryRow("SELECT id, status FROM users WHERE email = ?", input.Email).Scan(&userID, &status)
	if err != nil || status != "unverified" {
		// Don't reveal whether the account exists.
		c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a new code has been sent."})
		return
	}

	code, err := generateVerificationCode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate verification code"})
		return
	}
	expiry := time.Now().Add(15 * time.Minute)

	update := "UPDATE users SET verification_code = ?, verification_expiry = ?, updated_at = ? WHERE id = ?"
	if _, err := h.DB.Exec(update, code, expiry, time.Now(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh verification code"})
		return
	}

	if err := h.Mailer.SendVerificationEmail(input.Email, code); err != nil {
		log.Printf("ERROR: Failed to resend verification email to %s: %v", input.Email, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "If the account exists, a new code has been sent."})
}

// --- Login ---

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login is the handler for POST /v1/login. Accounts with MFA enabled
// get a short-lived interim token and must complete the TOTP
// challenge before receiving a real one.
func (h *Handlers) Login(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 2. --- Find User By Email ---
	var user models.User
	query := "SELECT id, password_hash, role, status, mfa_enabled FROM users WHERE email = ?"
	err := h.DB.QueryRow(query, input.Email).Scan(
		&user.ID, &user.PasswordHash, &user.Role, &user.Status, &user.MFAEnabled,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	// 3. --- Check User Status ---
	switch user.Status {
	case "unverified":
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not verified. Please check your email for a verification code."})
		return
	case "pending":
		c.JSON(http.StatusForbidden, gin.H{"error": "Your account is pending approval by an administrator."})
		return
	case "rejected", "suspended":
		c.JSON(http.StatusForbidden, gin.H{"error": "Your account is not active. Please contact support."})
		return
	case "active":
		// Continue to the password check.
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unknown user status"})
		return
	}

	// 4. --- Check Password ---
	var password models.Password
	password.Hash = user.PasswordHash

	match, err := password.Matches(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check password"})
		return
	}
	if !match {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	// 5. --- MFA gate ---
	if user.MFAEnabled {
		interim, err := auth.GenerateMFAToken(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"mfaRequired": true,
			"mfaToken":    interim,
		})
		return
	}

	// 6. --- Generate JWT ---
	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
	})
}

// --- MFA (TOTP) ---

// MFASetup is the handler for POST /v1/auth/mfa/setup (authenticated).
// It creates a fresh TOTP secret; the account stays non-MFA until the
// user confirms a first code via MFAVerify.
func (h *Handlers) MFASetup(c *gin.Context) {
	userID := c.GetInt64("userID")

	var userEmail string
	if err := h.DB.QueryRow("SELECT email FROM users WHERE id = ?", userID).Scan(&userEmail); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	secret, url, err := auth.GenerateTOTPSecret(userEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate MFA secret"})
		return
	}

	update := "UPDATE users SET totp_secret = ?, mfa_enabled = FALSE, updated_at = ? WHERE id = ?"
	if _, err := h.DB.Exec(update, secret, time.Now(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store MFA secret"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"secret":     secret,
		"otpauthUrl": url,
	})
}

type MFACodeInput struct {
	Code string `json:"code" binding:"required,len=6"`
}

// MFAVerify is the handler for POST /v1/auth/mfa/verify (authenticated).
// The first valid code enables MFA on the account.
func (h *Handlers) MFAVerify(c *gin.Context) {
	userID := c.GetInt64("userID")

	var input MFACodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var secret sql.NullString
	if err := h.DB.QueryRow("SELECT totp_secret FROM users WHERE id = ?", userID).Scan(&secret); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !secret.Valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "MFA has not been set up for this account"})
		return
	}
	if !auth.ValidateTOTPCode(secret.String, input.Code) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid MFA code"})
		return
	}

	update := "UPDATE users SET mfa_enabled = TRUE, updated_at = ? WHERE id = ?"
	if _, err := h.DB.Exec(update, time.Now(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enable MFA"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "MFA enabled"})
}

type MFAChallengeInput struct {
	MFAToken string `json:"mfaToken" binding:"required"`
	Code     string `json:"code" binding:"required,len=6"`
}

// MFAChallenge is the handler for POST /v1/auth/mfa/challenge: the
// second half of a login for MFA accounts. Interim token + valid TOTP
// code buys the real JWT.
func (h *Handlers) MFAChallenge(c *gin.Context) {
	var input MFAChallengeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := auth.ValidateMFAToken(input.MFAToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired MFA token"})
		return
	}

	var secret sql.NullString
	if err := h.DB.QueryRow("SELECT totp_secret FROM users WHERE id = ? AND mfa_enabled = TRUE", userID).Scan(&secret); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "MFA is not enabled for this account"})
		return
	}
	if !secret.Valid || !auth.ValidateTOTPCode(secret.String, input.Code) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid MFA code"})
		return
	}

	token, err := auth.GenerateToken(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
	})
}

// GetMyProfile is the handler for GET /v1/profile/me.
func (h *Handlers) GetMyProfile(c *gin.Context) {
	userID := c.GetInt64("userID")

	var user models.User
	query := `
		SELECT id, role, status, email, full_name, company_name, mfa_enabled, created_at
		FROM users
		WHERE id = ?`

	err := h.DB.QueryRow(query, userID).Scan(
		&user.ID, &user.Role, &user.Status, &user.Email,
		&user.FullName, &user.CompanyName, &user.MFAEnabled, &user.CreatedAt,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// generateVerificationCode returns a random 6-digit code.
func generateVerificationCode() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	n := int(b[0])<<16 | int(b[1])<<8 | int(b[2])
	return fmt.Sprintf("%06d", n%1000000), nil
}
