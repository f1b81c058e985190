package shopify

import (
	"strings"

	"github.com/linesheet-app/linesheet-golang/internal/models"
)

type productNode struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Handle     string `json:"handle"`
	Images     struct {
		Nodes []imageNode `json:"nodes,omitempty"`
	} `json:"images"`
	Variants struct {
		Nodes []variantNode `json:"nodes,omitempty"`
	} `json:"variants"`
	Metafields struct {
		Nodes []metafieldNode `json:"nodes,omitempty"`
	} `json:"metafields"`
}

type imageNode struct {
	URL     string  `json:"url"`
	AltText *string `json:"altText,omitempty"`
}

type variantNode struct {
	ID              string  `json:"id"`
	SKU             *string `json:"sku,omitempty"`
	Price           string  `json:"price"`
	CompareAtPrice  *string `json:"compareAtPrice,omitempty"`
	SelectedOptions []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"selectedOptions,omitempty"`
}

type metafieldNode struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
}

type productSearchNode struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Handle        string `json:"handle"`
	FeaturedImage *struct {
		URL string `json:"url"`
	} `json:"featuredImage,omitempty"`
	VariantsCount struct {
		Count int `json:"count"`
	} `json:"variantsCount"`
}

func mapProductNode(n productNode) models.RawProduct {
	product := models.RawProduct{
		ID:     n.ID,
		Title:  n.Title,
		Handle: n.Handle,
	}
	for _, img := range n.Images.Nodes {
		product.Images = append(product.Images, models.ProductImage{
			URL:     img.URL,
			AltText: img.AltText,
		})
	}
	for _, v := range n.Variants.Nodes {
		variant := models.Variant{
			ID:             v.ID,
			SKU:            v.SKU,
			Price:          v.Price,
			CompareAtPrice: v.CompareAtPrice,
		}
		for _, opt := range v.SelectedOptions {
			variant.SelectedOptions = append(variant.SelectedOptions, models.SelectedOption{
				Name:  opt.Name,
				Value: opt.Value,
			})
		}
		product.Variants = append(product.Variants, variant)
	}
	for _, mf := range n.Metafields.Nodes {
		if strings.TrimSpace(mf.Key) == "" {
			continue
		}
		product.Metafields = append(product.Metafields, models.Metafield{
			Namespace: mf.Namespace,
			Key:       mf.Key,
			Value:     mf.Value,
		})
	}
	return product
}

func mapSearchNode(n productSearchNode) models.ProductSummary {
	summary := models.ProductSummary{
		ID:           n.ID,
		Title:        n.Title,
		Handle:       n.Handle,
		VariantCount: n.VariantsCount.Count,
	}
	if n.FeaturedImage != nil && n.FeaturedImage.URL != "" {
		url := n.FeaturedImage.URL
		summary.ImageURL = &url
	}
	return summary
}
