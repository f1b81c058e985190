package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/linesheet-app/linesheet-golang/internal/models"
)

//
// --- Price Lists ---
//
// A price list maps variant IDs to wholesale prices. Linesheets with
// priceSource = "price_list" resolve against one of these.
//

type CreatePriceListInput struct {
	Name    string `json:"name" binding:"required"`
	Entries []struct {
		VariantID string `json:"variantId" binding:"required"`
		Price     string `json:"price" binding:"required"`
	} `json:"entries" binding:"required,min=1"`
}

// CreatePriceList is the handler for POST /v1/price-lists.
func (h *Handlers) CreatePriceList(c *gin.Context) {
	userID := c.GetInt64("userID")

	var input CreatePriceListInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list := models.PriceList{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      input.Name,
		CreatedAt: time.Now(),
	}

	// The list and its entries land together or not at all.
	tx, err := h.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO price_lists (id, user_id, name, created_at) VALUES (?, ?, ?, ?)",
		list.ID, list.UserID, list.Name, list.CreatedAt,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create price list"})
		return
	}

	for _, entry := range input.Entries {
		_, err = tx.Exec(
			"INSERT INTO price_list_entries (price_list_id, variant_id, price) VALUES (?, ?, ?)",
			list.ID, entry.VariantID, entry.Price,
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save price list entries"})
			return
		}
		list.Entries = append(list.Entries, models.PriceListEntry{
			VariantID: entry.VariantID,
			Price:     entry.Price,
		})
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save price list"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Price list created",
		"priceList": list,
	})
}

// GetMyPriceLists is the handler for GET /v1/price-lists.
func (h *Handlers) GetMyPriceLists(c *gin.Context) {
	userID := c.GetInt64("userID")

	query := `
		SELECT pl.id, pl.name, pl.created_at, COUNT(e.variant_id)
		FROM price_lists pl
		LEFT JOIN price_list_entries e ON e.price_list_id = pl.id
		WHERE pl.user_id = ?
		GROUP BY pl.id, pl.name, pl.created_at
		ORDER BY pl.created_at DESC`

	rows, err := h.DB.Query(query, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	type priceListSummary struct {
		ID         string    `json:"id"`
		Name       string    `json:"name"`
		CreatedAt  time.Time `json:"createdAt"`
		EntryCount int       `json:"entryCount"`
	}

	var lists []priceListSummary
	for rows.Next() {
		var l priceListSummary
		if err := rows.Scan(&l.ID, &l.Name, &l.CreatedAt, &l.EntryCount); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan price list row"})
			return
		}
		lists = append(lists, l)
	}
	if err = rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating price list rows"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"priceLists": lists})
}

// GetPriceList is the handler for GET /v1/price-lists/:id.
func (h *Handlers) GetPriceList(c *gin.Context) {
	userID := c.GetInt64("userID")

	list, err := h.loadPriceList(c.Param("id"), userID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Price list not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"priceList": list})
}

// DeletePriceList is the handler for DELETE /v1/price-lists/:id.
func (h *Handlers) DeletePriceList(c *gin.Context) {
	userID := c.GetInt64("userID")

	result, err := h.DB.Exec("DELETE FROM price_lists WHERE id = ? AND user_id = ?", c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete price list"})
		return
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check affected rows"})
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Price list not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Price list deleted"})
}

// loadPriceList fetches one of the user's price lists with its entries.
func (h *Handlers) loadPriceList(id string, userID int64) (*models.PriceList, error) {
	var list models.PriceList
	err := h.DB.QueryRow(
		"SELECT id, user_id, name, created_at FROM price_lists WHERE id = ? AND user_id = ?",
		id, userID,
	).Scan(&list.ID, &list.UserID, &list.Name, &list.CreatedAt)
	if err != nil {
		return nil, err
	}

	rows, err := h.DB.Query(
		"SELECT variant_id, price FROM price_list_entries WHERE price_list_id = ?",
		list.ID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.PriceListEntry
		if err := rows.Scan(&entry.VariantID, &entry.Price); err != nil {
			return nil, err
		}
		list.Entries = append(list.Entries, entry)
	}
	return &list, rows.Err()
}
