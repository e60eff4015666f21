package repository

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"autoparts/internal/domain"
)

// CatalogFile формат YAML-файла с товарами для in-memory каталога
type CatalogFile struct {
	Products []domain.RawProduct `yaml:"products"`
}

// ParseCatalog разбирает YAML каталога
func ParseCatalog(data []byte) (*CatalogFile, error) {
	var cf CatalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	return &cf, nil
}

// LoadCatalogYAML читает файл каталога и загружает товары в repo.
// Возвращает число загруженных товаров.
func LoadCatalogYAML(ctx context.Context, repo CatalogRepository, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}
	cf, err := ParseCatalog(data)
	if err != nil {
		return 0, err
	}
	for i := range cf.Products {
		if err := repo.Upsert(ctx, &cf.Products[i]); err != nil {
			return i, fmt.Errorf("product %d (%s %s): %w", i, cf.Products[i].Brand, cf.Products[i].ArticleNumber, err)
		}
	}
	return len(cf.Products), nil
}
