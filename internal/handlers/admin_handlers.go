package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/linesheet-app/linesheet-golang/internal/models"
)

//
// --- Administrator: Account Approval Handlers ---
//

// GetPendingUsers is the handler for GET /v1/admin/users/pending.
// It retrieves all accounts waiting for approval.
func (h *Handlers) GetPendingUsers(c *gin.Context) {
	query := `
		SELECT id, role, status, email, full_name, company_name, created_at, updated_at
		FROM users
		WHERE status = ?
		ORDER BY created_at ASC`

	rows, err := h.DB.Query(query, "pending")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID,
			&user.Role,
			&user.Status,
			&user.Email,
			&user.FullName,
			&user.CompanyName,
			&user.CreatedAt,
			&user.UpdatedAt,
		); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan user row"})
			return
		}
		users = append(users, &user)
	}
	if err = rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating user rows"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
	})
}

// ApproveUser is the handler for PATCH /v1/admin/users/:id/approve.
// It moves an account from "pending" to "active" and emails the user.
func (h *Handlers) ApproveUser(c *gin.Context) {
	userIDStr := c.Param("id")

	var userEmail string
	if err := h.DB.QueryRow("SELECT email FROM users WHERE id = ? AND status = 'pending'", userIDStr).Scan(&userEmail); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found or was not pending approval"})
		return
	}

	query := `
		UPDATE users
		SET status = ?, updated_at = ?
		WHERE id = ? AND status = ?`

	result, err := h.DB.Exec(query, "active", time.Now(), userIDStr, "pending")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve user"})
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check affected rows"})
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found or was not pending approval"})
		return
	}

	if err := h.Mailer.SendApprovalEmail(userEmail); err != nil {
		log.Printf("ERROR: Failed to send approval email to %s: %v", userEmail, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User approved successfully",
	})
}

// RejectUserInput defines the JSON input for rejecting an account.
type RejectUserInput struct {
	Reason string `json:"reason" binding:"required"`
}

// RejectUser is the handler for PATCH /v1/admin/users/:id/reject.
func (h *Handlers) RejectUser(c *gin.Context) {
	userIDStr := c.Param("id")

	var input RejectUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := `
		UPDATE users
		SET status = ?, updated_at = ?
		WHERE id = ? AND status = ?`

	result, err := h.DB.Exec(query, "rejected", time.Now(), userIDStr, "pending")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject user"})
		return
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check affected rows"})
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found or was not pending approval"})
		return
	}

	log.Printf("User %s rejected: %s", userIDStr, input.Reason)

	c.JSON(http.StatusOK, gin.H{
		"message": "User rejected",
	})
}

//
// --- Administrator: Settings ---
//

// GetSettings is the handler for GET /v1/admin/settings.
func (h *Handlers) GetSettings(c *gin.Context) {
	rows, err := h.DB.Query("SELECT setting_key, setting_value FROM settings")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan setting row"})
			return
		}
		settings[key] = value
	}
	if err = rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating setting rows"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings is the handler for PATCH /v1/admin/settings.
// It upserts every key/value pair in the request body.
func (h *Handlers) UpdateSettings(c *gin.Context) {
	var input map[string]string
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(input) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No settings provided"})
		return
	}

	query := `
		INSERT INTO settings (setting_key, setting_value)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE setting_value = VALUES(setting_value)`

	for key, value := range input {
		if _, err := h.DB.Exec(query, key, value); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update setting: " + key})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settings updated"})
}

//
// --- Background Maintenance ---
//

// PurgeExpiredArtifacts runs from the background worker in main. It
// clears verification codes that already expired so stale codes can
// never be replayed.
func (h *Handlers) PurgeExpiredArtifacts() {
	result, err := h.DB.Exec(`
		UPDATE users
		SET verification_code = NULL, verification_expiry = NULL
		WHERE verification_expiry IS NOT NULL AND verification_expiry < ?`, time.Now())
	if err != nil {
		log.Printf("ERROR: Failed to purge expired verification codes: %v", err)
		return
	}
	if n, err := result.RowsAffected(); err == nil && n > 0 {
		log.Printf("Purged %d expired verification code(s)", n)
	}
}
