package handlers

import (
	"database/sql"

	"github.com/linesheet-app/linesheet-golang/internal/email"
	"github.com/linesheet-app/linesheet-golang/internal/shopify"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	DB      *sql.DB
	Shopify *shopify.Client
	Mailer  *email.Service
}
