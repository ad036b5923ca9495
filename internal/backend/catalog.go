package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/furnimart/storefront/internal/entity"
)

// The two catalog lines live behind differently-shaped endpoints with
// line-specific field names. Older furniture rows carry stock in "quantity"
// instead of "furnitureQuantity"; both are honored, newer field first.

type furnitureDTO struct {
	ID                int             `json:"id"`
	FurnitureName     string          `json:"furnitureName"`
	FurniturePrice    decimal.Decimal `json:"furniturePrice"`
	FurnitureQuantity *int            `json:"furnitureQuantity,omitempty"`
	Quantity          *int            `json:"quantity,omitempty"`
	FurniturePicture  string          `json:"furniturePicture"`
	FurnitureType     string          `json:"furnitureType"`
	FurnitureDetails  string          `json:"furnitureDetails"`
	FurnitureSize     string          `json:"furnitureSize"`
}

func (d furnitureDTO) toProduct() entity.Product {
	stock := 0
	if d.FurnitureQuantity != nil {
		stock = *d.FurnitureQuantity
	} else if d.Quantity != nil {
		stock = *d.Quantity
	}
	return entity.Product{
		ID:        d.ID,
		Name:      d.FurnitureName,
		Type:      entity.ProductFurniture,
		UnitPrice: d.FurniturePrice,
		Stock:     stock,
		ImageURL:  d.FurniturePicture,
		Category:  d.FurnitureType,
		Details:   d.FurnitureDetails,
		Size:      d.FurnitureSize,
	}
}

func furnitureFromProduct(p entity.Product) furnitureDTO {
	stock := p.Stock
	return furnitureDTO{
		ID:                p.ID,
		FurnitureName:     p.Name,
		FurniturePrice:    p.UnitPrice,
		FurnitureQuantity: &stock,
		Quantity:          &stock,
		FurniturePicture:  p.ImageURL,
		FurnitureType:     p.Category,
		FurnitureDetails:  p.Details,
		FurnitureSize:     p.Size,
	}
}

type homeDecoDTO struct {
	ID           int             `json:"id"`
	DecoName     string          `json:"decoName"`
	DecoPrice    decimal.Decimal `json:"decoPrice"`
	DecoQuantity *int            `json:"decoQuantity,omitempty"`
	Quantity     *int            `json:"quantity,omitempty"`
	DecoPicture  string          `json:"decoPicture"`
	DecoType     string          `json:"decoType"`
	DecoDetails  string          `json:"decoDetails"`
}

func (d homeDecoDTO) toProduct() entity.Product {
	stock := 0
	if d.DecoQuantity != nil {
		stock = *d.DecoQuantity
	} else if d.Quantity != nil {
		stock = *d.Quantity
	}
	return entity.Product{
		ID:        d.ID,
		Name:      d.DecoName,
		Type:      entity.ProductHomeDeco,
		UnitPrice: d.DecoPrice,
		Stock:     stock,
		ImageURL:  d.DecoPicture,
		Category:  d.DecoType,
		Details:   d.DecoDetails,
	}
}

func homeDecoFromProduct(p entity.Product) homeDecoDTO {
	stock := p.Stock
	return homeDecoDTO{
		ID:           p.ID,
		DecoName:     p.Name,
		DecoPrice:    p.UnitPrice,
		DecoQuantity: &stock,
		Quantity:     &stock,
		DecoPicture:  p.ImageURL,
		DecoType:     p.Category,
		DecoDetails:  p.Details,
	}
}

// ListFurniture returns all furniture products.
func (c *Client) ListFurniture(ctx context.Context) ([]entity.Product, error) {
	var dtos []furnitureDTO
	if err := c.call(ctx, http.MethodGet, "/furniture/getAllfurnitures", "list_furniture", nil, nil, &dtos); err != nil {
		return nil, err
	}
	products := make([]entity.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, d.toProduct())
	}
	return products, nil
}

// GetFurniture returns one furniture product by id.
func (c *Client) GetFurniture(ctx context.Context, id int) (*entity.Product, error) {
	var dto furnitureDTO
	path := fmt.Sprintf("/furniture/getFurnitureById?id=%d", id)
	if err := c.call(ctx, http.MethodGet, path, "get_furniture", nil, nil, &dto); err != nil {
		return nil, err
	}
	p := dto.toProduct()
	return &p, nil
}

// UpdateFurniture writes a full furniture record back, typically after an
// admin stock edit.
func (c *Client) UpdateFurniture(ctx context.Context, p entity.Product) error {
	return c.call(ctx, http.MethodPut, "/furniture/updateFurniture", "update_furniture", nil, furnitureFromProduct(p), nil)
}

// DeleteFurniture removes a furniture record.
func (c *Client) DeleteFurniture(ctx context.Context, id int) error {
	path := fmt.Sprintf("/furniture/deleteFurniture?id=%d", id)
	return c.call(ctx, http.MethodDelete, path, "delete_furniture", nil, nil, nil)
}

// ListHomeDeco returns all home-decor products.
func (c *Client) ListHomeDeco(ctx context.Context) ([]entity.Product, error) {
	var dtos []homeDecoDTO
	if err := c.call(ctx, http.MethodGet, "/homedeco/getAllHomedeco", "list_homedeco", nil, nil, &dtos); err != nil {
		return nil, err
	}
	products := make([]entity.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, d.toProduct())
	}
	return products, nil
}

// GetHomeDeco returns one home-decor product by id.
func (c *Client) GetHomeDeco(ctx context.Context, id int) (*entity.Product, error) {
	var dto homeDecoDTO
	path := fmt.Sprintf("/homedeco/getHomedecoById?id=%d", id)
	if err := c.call(ctx, http.MethodGet, path, "get_homedeco", nil, nil, &dto); err != nil {
		return nil, err
	}
	p := dto.toProduct()
	return &p, nil
}

// UpdateHomeDeco writes a full home-decor record back.
func (c *Client) UpdateHomeDeco(ctx context.Context, p entity.Product) error {
	return c.call(ctx, http.MethodPut, "/homedeco/updateDeco", "update_homedeco", nil, homeDecoFromProduct(p), nil)
}

// DeleteHomeDeco removes a home-decor record.
func (c *Client) DeleteHomeDeco(ctx context.Context, id int) error {
	path := fmt.Sprintf("/homedeco/deleteHomedeco?id=%d", id)
	return c.call(ctx, http.MethodDelete, path, "delete_homedeco", nil, nil, nil)
}

// GetProduct fetches a fresh snapshot of either product line.
func (c *Client) GetProduct(ctx context.Context, id int, productType entity.ProductType) (*entity.Product, error) {
	switch productType {
	case entity.ProductFurniture:
		return c.GetFurniture(ctx, id)
	case entity.ProductHomeDeco:
		return c.GetHomeDeco(ctx, id)
	default:
		return nil, fmt.Errorf("unknown product type %q", productType)
	}
}

// UpdateProduct writes a snapshot of either product line back.
func (c *Client) UpdateProduct(ctx context.Context, p entity.Product) error {
	switch p.Type {
	case entity.ProductFurniture:
		return c.UpdateFurniture(ctx, p)
	case entity.ProductHomeDeco:
		return c.UpdateHomeDeco(ctx, p)
	default:
		return fmt.Errorf("unknown product type %q", p.Type)
	}
}
