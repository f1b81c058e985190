package models

import "time"

// Price source values for LinesheetConfig.PriceSource.
const (
	PriceSourcePriceList    = "price_list"
	PriceSourceMetafield    = "metafield"
	PriceSourceVariantPrice = "variant_price"
)

// Layout styles for LinesheetConfig.LayoutStyle.
const (
	LayoutTwoColumnCompact = "two-column-compact"
	LayoutGrid             = "grid"
	LayoutSingleColumn     = "single-column"
)

// Linesheet is the model for the 'linesheets' table. The config
// itself is stored as a JSON column; the scalar columns exist for
// listing without unmarshalling every row.
type Linesheet struct {
	ID         int64           `json:"id" db:"id"`
	UserID     int64           `json:"-" db:"user_id"`
	Title      string          `json:"title" db:"title"`
	ShareToken *string         `json:"shareToken,omitempty" db:"share_token"`
	Config     LinesheetConfig `json:"config" db:"config_json"`
	CreatedAt  time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time       `json:"updatedAt" db:"updated_at"`
}

// LinesheetConfig is everything the user decides per render:
// header, currency, where prices come from, which fields show,
// and the ordered product selection. Immutable per render.
type LinesheetConfig struct {
	HeaderTitle    string             `json:"headerTitle" binding:"required"`
	Subheader      string             `json:"subheader,omitempty"`
	Season         string             `json:"season,omitempty"` // overrides the extracted season when set
	Currency       string             `json:"currency" binding:"required,len=3"`
	PriceSource    string             `json:"priceSource"`
	PriceListID    string             `json:"priceListId,omitempty"`
	FieldToggles   FieldToggles       `json:"fieldToggles"`
	LayoutStyle    string             `json:"layoutStyle"`
	ProductsPerRow int                `json:"productsPerRow,omitempty"`
	Products       []ProductSelection `json:"products" binding:"required"`
}

// FieldToggles switches displayable fields on and off. A toggle
// being true never forces display of an absent value; both the
// toggle and the extracted value must be present for a field to render.
type FieldToggles struct {
	StyleNumber bool `json:"styleNumber"`
	Season      bool `json:"season"`
	Wholesale   bool `json:"wholesale"`
	MSRP        bool `json:"msrp"`
	Sizes       bool `json:"sizes"`
	Color       bool `json:"color"`
	Images      bool `json:"images"`
}

// ProductSelection is one picked product. Order, where present,
// determines item sequence; ties and zero values keep selection order.
type ProductSelection struct {
	ProductID  string   `json:"productId" binding:"required"`
	VariantIDs []string `json:"variantIds,omitempty"`
	Order      int      `json:"order"`
}

// NormalizedCatalogItem is the pipeline's output: one catalog row
// per product, fully formatted and ready for a rendering sink.
// Absent fields are nil, which the sinks read as "do not render".
type NormalizedCatalogItem struct {
	ProductID   string     `json:"productId"`
	Title       string     `json:"title"` // always upper-cased
	StyleNumber *string    `json:"styleNumber,omitempty"`
	Season      *string    `json:"season,omitempty"`
	Wholesale   *string    `json:"wholesale,omitempty"` // formatted currency string
	MSRP        *string    `json:"msrp,omitempty"`      // formatted currency string
	Sizes       *string    `json:"sizes,omitempty"`
	Color       *string    `json:"color,omitempty"`
	Image       *ItemImage `json:"image,omitempty"`
}

type ItemImage struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// DocumentLayout is the composer's output. Exactly one of the
// column pair or Rows is populated, depending on Style.
type DocumentLayout struct {
	Style string                    `json:"style"`
	Left  []NormalizedCatalogItem   `json:"left,omitempty"`
	Right []NormalizedCatalogItem   `json:"right,omitempty"`
	Rows  [][]NormalizedCatalogItem `json:"rows,omitempty"`
}
