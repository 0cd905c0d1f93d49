package service

import (
	"context"
	"fmt"

	"github.com/mvps-print/printshop-backend/internal/stationery/domain"
	"github.com/mvps-print/printshop-backend/internal/stationery/repository"
)

// ImageStore uploads one product image and returns its public URL.
type ImageStore interface {
	UploadProductImage(ctx context.Context, data []byte, filename string) (string, error)
}

type ImageUpload struct {
	Name string
	Data []byte
}

type ProductInput struct {
	Name        string
	Description string
	Price       float64
	Discount    float64
	SKU         string
	Quantity    int
}

type ProductService struct {
	repo   *repository.ProductRepository
	images ImageStore
}

func NewProductService(repo *repository.ProductRepository, images ImageStore) *ProductService {
	return &ProductService{repo: repo, images: images}
}

func (s *ProductService) uploadAll(ctx context.Context, uploads []ImageUpload) ([]string, error) {
	urls := make([]string, 0, len(uploads))
	for _, up := range uploads {
		url, err := s.images.UploadProductImage(ctx, up.Data, up.Name)
		if err != nil {
			return nil, fmt.Errorf("upload image %s: %w", up.Name, err)
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *ProductService) Add(ctx context.Context, in ProductInput, images []ImageUpload) error {
	urls, err := s.uploadAll(ctx, images)
	if err != nil {
		return err
	}
	return s.repo.Insert(ctx, domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Discount:    in.Discount,
		Images:      urls,
		SKU:         in.SKU,
		Quantity:    in.Quantity,
	})
}

// Update merges the client's "existing URLs to keep" list with freshly
// uploaded images, kept images first, new ones appended in upload order.
func (s *ProductService) Update(ctx context.Context, id int64, in ProductInput, keep []string, images []ImageUpload) error {
	urls, err := s.uploadAll(ctx, images)
	if err != nil {
		return err
	}
	merged := make([]string, 0, len(keep)+len(urls))
	merged = append(merged, keep...)
	merged = append(merged, urls...)

	return s.repo.Update(ctx, domain.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Discount:    in.Discount,
		Images:      merged,
	})
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *ProductService) SetSKU(ctx context.Context, id int64, sku string) error {
	return s.repo.SetSKU(ctx, id, sku)
}

func (s *ProductService) SetQuantity(ctx context.Context, id int64, quantity int) error {
	return s.repo.SetQuantity(ctx, id, quantity)
}
