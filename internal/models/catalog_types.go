package models

import "time"

// RawProduct is a product as returned by the Shopify Admin API.
// It is never persisted; each render/preview fetches fresh copies
// and treats them as read-only for the length of the pipeline run.
type RawProduct struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Handle     string         `json:"handle"`
	Images     []ProductImage `json:"images,omitempty"`
	Variants   []Variant      `json:"variants,omitempty"`
	Metafields []Metafield    `json:"metafields,omitempty"`
}

type ProductImage struct {
	URL     string  `json:"url"`
	AltText *string `json:"altText,omitempty"`
}

// Variant belongs to exactly one product. Prices arrive as decimal
// strings straight off the wire and stay strings until formatting.
type Variant struct {
	ID              string           `json:"id"`
	SKU             *string          `json:"sku,omitempty"`
	Price           string           `json:"price"`
	CompareAtPrice  *string          `json:"compareAtPrice,omitempty"`
	SelectedOptions []SelectedOption `json:"selectedOptions,omitempty"`
}

type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Metafield is a namespaced key/value attribute on a product. Key
// lookups in the pipeline are case-sensitive and ignore the namespace.
type Metafield struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
}

// ProductSummary is the trimmed shape the product picker needs.
type ProductSummary struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Handle       string  `json:"handle"`
	ImageURL     *string `json:"imageUrl,omitempty"`
	VariantCount int     `json:"variantCount"`
}

// PriceList is the model for the 'price_lists' table.
type PriceList struct {
	ID        string    `json:"id" db:"id"`
	UserID    int64     `json:"-" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Joined from 'price_list_entries'
	Entries []PriceListEntry `json:"entries,omitempty" db:"-"`
}

// PriceListEntry maps one variant to its wholesale price under a list.
type PriceListEntry struct {
	VariantID string `json:"variantId" db:"variant_id"`
	Price     string `json:"price" db:"price"`
}
