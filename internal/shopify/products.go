package shopify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/linesheet-app/linesheet-golang/internal/models"
)

const (
	searchLimitMax = 50
	nodesChunkSize = 25
)

// productFields is the selection shared by every query that returns
// full products for the normalization pipeline.
const productFields = `
	id
	title
	handle
	images(first: 10) {
		nodes { url altText }
	}
	variants(first: 100) {
		nodes {
			id
			sku
			price
			compareAtPrice
			selectedOptions { name value }
		}
	}
	metafields(first: 50) {
		nodes { namespace key value }
	}`

type productSearchData struct {
	Products struct {
		Nodes []productSearchNode `json:"nodes,omitempty"`
	} `json:"products"`
}

type productLookupData struct {
	Product *productNode `json:"product,omitempty"`
}

type nodesLookupData struct {
	Nodes []*productNode `json:"nodes,omitempty"`
}

// SearchProducts runs a title/SKU search for the product picker.
func (c *Client) SearchProducts(ctx context.Context, term string, limit int) ([]models.ProductSummary, error) {
	if limit < 1 || limit > searchLimitMax {
		limit = searchLimitMax
	}

	query := `
query productSearch($first: Int!, $query: String) {
	products(first: $first, query: $query) {
		nodes {
			id
			title
			handle
			featuredImage { url }
			variantsCount { count }
		}
	}
}`

	variables := map[string]any{"first": limit}
	if term = strings.TrimSpace(term); term != "" {
		variables["query"] = term
	}

	var data productSearchData
	if err := c.graphqlRequest(ctx, query, variables, &data); err != nil {
		return nil, err
	}

	summaries := make([]models.ProductSummary, 0, len(data.Products.Nodes))
	for _, n := range data.Products.Nodes {
		summaries = append(summaries, mapSearchNode(n))
	}
	return summaries, nil
}

// GetProduct fetches one product with everything the pipeline reads:
// variants with selected options, metafields, and images.
func (c *Client) GetProduct(ctx context.Context, productGid string) (*models.RawProduct, error) {
	productGid = strings.TrimSpace(productGid)
	if productGid == "" {
		return nil, errors.New("shopify product gid is required")
	}

	query := fmt.Sprintf(`
query product($id: ID!) {
	product(id: $id) {%s
	}
}`, productFields)

	var data productLookupData
	err := c.graphqlRequest(ctx, query, map[string]any{"id": productGid}, &data)
	if err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, nil
	}

	product := mapProductNode(*data.Product)
	return &product, nil
}

// GetProductsByIDs fetches the selected products in chunks via the
// nodes lookup. IDs the shop no longer has simply come back missing;
// the caller decides what a hole in the selection means.
func (c *Client) GetProductsByIDs(ctx context.Context, productGids []string) ([]models.RawProduct, error) {
	query := fmt.Sprintf(`
query productsByIds($ids: [ID!]!) {
	nodes(ids: $ids) {
		... on Product {%s
		}
	}
}`, productFields)

	var products []models.RawProduct
	for start := 0; start < len(productGids); start += nodesChunkSize {
		end := start + nodesChunkSize
		if end > len(productGids) {
			end = len(productGids)
		}

		var data nodesLookupData
		err := c.graphqlRequest(ctx, query, map[string]any{"ids": productGids[start:end]}, &data)
		if err != nil {
			return nil, err
		}

		for _, n := range data.Nodes {
			if n == nil || strings.TrimSpace(n.ID) == "" {
				continue
			}
			products = append(products, mapProductNode(*n))
		}
	}
	return products, nil
}
