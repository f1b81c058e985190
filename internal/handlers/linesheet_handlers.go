package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/linesheet-app/linesheet-golang/internal/linesheet"
	"github.com/linesheet-app/linesheet-golang/internal/models"
	"github.com/linesheet-app/linesheet-golang/internal/render"
)

//
// --- Saved Linesheets ---
//

// CreateLinesheet is the handler for POST /v1/linesheets.
func (h *Handlers) CreateLinesheet(c *gin.Context) {
	userID := c.GetInt64("userID")

	var cfg models.LinesheetConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(cfg.Products) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A linesheet needs at least one product"})
		return
	}

	configJSON, err := json.Marshal(cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode configuration"})
		return
	}

	now := time.Now()
	query := `
		INSERT INTO linesheets (user_id, title, config_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`

	result, err := h.DB.Exec(query, userID, cfg.HeaderTitle, configJSON, now, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save linesheet"})
		return
	}
	id, err := result.LastInsertId()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get new linesheet ID"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Linesheet saved",
		"linesheet": models.Linesheet{
			ID:        id,
			UserID:    userID,
			Title:     cfg.HeaderTitle,
			Config:    cfg,
			CreatedAt: now,
			UpdatedAt: now,
		},
	})
}

// GetMyLinesheets is the handler for GET /v1/linesheets.
func (h *Handlers) GetMyLinesheets(c *gin.Context) {
	userID := c.GetInt64("userID")

	query := `
		SELECT id, title, share_token, created_at, updated_at
		FROM linesheets
		WHERE user_id = ?
		ORDER BY updated_at DESC`

	rows, err := h.DB.Query(query, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	defer rows.Close()

	type linesheetSummary struct {
		ID         int64     `json:"id"`
		Title      string    `json:"title"`
		ShareToken *string   `json:"shareToken,omitempty"`
		CreatedAt  time.Time `json:"createdAt"`
		UpdatedAt  time.Time `json:"updatedAt"`
	}

	var sheets []linesheetSummary
	for rows.Next() {
		var s linesheetSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.ShareToken, &s.CreatedAt, &s.UpdatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan linesheet row"})
			return
		}
		sheets = append(sheets, s)
	}
	if err = rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating linesheet rows"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"linesheets": sheets})
}

// GetLinesheet is the handler for GET /v1/linesheets/:id.
func (h *Handlers) GetLinesheet(c *gin.Context) {
	userID := c.GetInt64("userID")

	sheet, err := h.loadLinesheet(c.Param("id"), userID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Linesheet not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"linesheet": sheet})
}

// UpdateLinesheet is the handler for PUT /v1/linesheets/:id.
func (h *Handlers) UpdateLinesheet(c *gin.Context) {
	userID := c.GetInt64("userID")

	var cfg models.LinesheetConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(cfg.Products) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A linesheet needs at least one product"})
		return
	}

	configJSON, err := json.Marshal(cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode configuration"})
		return
	}

	query := `
		UPDATE linesheets
		SET title = ?, config_json = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`

	result, err := h.DB.Exec(query, cfg.HeaderTitle, configJSON, time.Now(), c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update linesheet"})
		return
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check affected rows"})
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Linesheet not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Linesheet updated"})
}

// DeleteLinesheet is the handler for DELETE /v1/linesheets/:id.
func (h *Handlers) DeleteLinesheet(c *gin.Context) {
	userID := c.GetInt64("userID")

	result, err := h.DB.Exec("DELETE FROM linesheets WHERE id = ? AND user_id = ?", c.Param("id"), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete linesheet"})
		return
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check affected rows"})
		return
	}
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Linesheet not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Linesheet deleted"})
}

//
// --- Preview & Render ---
//

// PreviewLinesheet is the handler for POST /v1/linesheets/:id/preview.
// It runs the full pipeline and returns the normalized items and the
// composed layout as JSON, without producing a file.
func (h *Handlers) PreviewLinesheet(c *gin.Context) {
	userID := c.GetInt64("userID")

	sheet, err := h.loadLinesheet(c.Param("id"), userID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Linesheet not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	items, layout, err := h.runPipeline(c, sheet)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch products from the catalog"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":  items,
		"layout": layout,
	})
}

// RenderLinesheet is the handler for POST /v1/linesheets/:id/render.
// ?format=pdf (default) or ?format=xlsx.
func (h *Handlers) RenderLinesheet(c *gin.Context) {
	userID := c.GetInt64("userID")

	sheet, err := h.loadLinesheet(c.Param("id"), userID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Linesheet not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	items, layout, err := h.runPipeline(c, sheet)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch products from the catalog"})
		return
	}

	switch format := c.DefaultQuery("format", "pdf"); format {
	case "pdf":
		data, err := render.RenderPDF(layout, sheet.Config)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render PDF"})
			return
		}
		filename := render.DocumentFilename(sheet.Title, "pdf")
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/pdf", data)

	case "xlsx":
		data, err := render.RenderExcel(items, sheet.Config)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render Excel file"})
			return
		}
		filename := render.DocumentFilename(sheet.Title, "xlsx")
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be pdf or xlsx"})
	}
}

//
// --- Sharing ---
//

// ShareLinesheet is the handler for POST /v1/linesheets/:id/share.
// It mints (or returns) the public read-only token for a linesheet.
func (h *Handlers) ShareLinesheet(c *gin.Context) {
	userID := c.GetInt64("userID")

	sheet, err := h.loadLinesheet(c.Param("id"), userID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Linesheet not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}

	if sheet.ShareToken == nil {
		token := uuid.NewString()
		update := "UPDATE linesheets SET share_token = ?, updated_at = ? WHERE id = ?"
		if _, err := h.DB.Exec(update, token, time.Now(), sheet.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create share token"})
			return
		}
		sheet.ShareToken = &token
	}

	c.JSON(http.StatusOK, gin.H{"shareToken": *sheet.ShareToken})
}

// GetSharedLinesheet is the handler for GET /v1/shared/:token — the
// public, read-only preview buyers open from a shared link.
func (h *Handlers) GetSharedLinesheet(c *gin.Context) {
	var (
		sheet      models.Linesheet
		configJSON []byte
	)
	query := "SELECT id, user_id, title, config_json FROM linesheets WHERE share_token = ?"
	err := h.DB.QueryRow(query, c.Param("token")).Scan(&sheet.ID, &sheet.UserID, &sheet.Title, &configJSON)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Linesheet not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database query failed"})
		return
	}
	if err := json.Unmarshal(configJSON, &sheet.Config); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stored configuration is corrupt"})
		return
	}

	items, layout, err := h.runPipeline(c, &sheet)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch products from the catalog"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":  sheet.Title,
		"items":  items,
		"layout": layout,
	})
}

//
// --- Pipeline plumbing ---
//

// loadLinesheet fetches one of the user's linesheets and decodes the
// stored configuration.
func (h *Handlers) loadLinesheet(id string, userID int64) (*models.Linesheet, error) {
	var (
		sheet      models.Linesheet
		configJSON []byte
	)
	query := `
		SELECT id, user_id, title, share_token, config_json, created_at, updated_at
		FROM linesheets
		WHERE id = ? AND user_id = ?`

	err := h.DB.QueryRow(query, id, userID).Scan(
		&sheet.ID, &sheet.UserID, &sheet.Title, &sheet.ShareToken,
		&configJSON, &sheet.CreatedAt, &sheet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(configJSON, &sheet.Config); err != nil {
		return nil, err
	}
	return &sheet, nil
}

// runPipeline fetches the selected products from Shopify and runs the
// normalization pipeline: raw products -> catalog items -> layout.
func (h *Handlers) runPipeline(c *gin.Context, sheet *models.Linesheet) ([]models.NormalizedCatalogItem, models.DocumentLayout, error) {
	cfg := sheet.Config

	ids := make([]string, 0, len(cfg.Products))
	for _, sel := range cfg.Products {
		ids = append(ids, sel.ProductID)
	}

	products, err := h.Shopify.GetProductsByIDs(c.Request.Context(), ids)
	if err != nil {
		return nil, models.DocumentLayout{}, err
	}

	var priceList *models.PriceList
	if cfg.PriceSource == models.PriceSourcePriceList && cfg.PriceListID != "" {
		list, err := h.loadPriceList(cfg.PriceListID, sheet.UserID)
		if err != nil && err != sql.ErrNoRows {
			return nil, models.DocumentLayout{}, err
		}
		priceList = list // nil on ErrNoRows: wholesale comes out absent
	}

	items := linesheet.MapProducts(products, priceList, cfg)
	layout := linesheet.ComposeDocument(items, cfg)
	return items, layout, nil
}
