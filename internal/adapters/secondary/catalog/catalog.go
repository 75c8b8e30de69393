package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"sigs.k8s.io/yaml"

	"akiya-analysis-service/internal/core/domain"
)

// The built-in catalog: the Kamakura and Hayama pilot areas with the three
// reuse businesses surveyed for them.
//
//go:embed defaults.yaml
var defaultCatalog []byte

// File is the on-disk catalog document.
type File struct {
	Areas      []*domain.Area     `json:"areas"`
	Businesses []*domain.Business `json:"businesses"`
}

// Repository serves areas and businesses from a catalog loaded once at
// startup. It is read-only and safe for concurrent use.
type Repository struct {
	areas            []*domain.Area
	businesses       []*domain.Business
	areasByCode      map[string]*domain.Area
	businessesByCode map[string]*domain.Business
}

// NewRepository loads the catalog at path, or the built-in catalog when path
// is empty.
func NewRepository(path string) (*Repository, error) {
	data := defaultCatalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog file: %w", err)
		}
	}
	return Parse(data)
}

// Parse builds a Repository from raw catalog YAML.
func Parse(data []byte) (*Repository, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCatalog, err)
	}
	if err := file.validate(); err != nil {
		return nil, err
	}

	repo := &Repository{
		areas:            file.Areas,
		businesses:       file.Businesses,
		areasByCode:      make(map[string]*domain.Area, len(file.Areas)),
		businessesByCode: make(map[string]*domain.Business, len(file.Businesses)),
	}
	for _, area := range file.Areas {
		repo.areasByCode[area.Code] = area
	}
	for _, business := range file.Businesses {
		repo.businessesByCode[business.Code] = business
	}
	return repo, nil
}

func (r *Repository) ListAreas(ctx context.Context) ([]*domain.Area, error) {
	return r.areas, nil
}

func (r *Repository) GetAreaByCode(ctx context.Context, code string) (*domain.Area, error) {
	area, ok := r.areasByCode[code]
	if !ok {
		return nil, domain.ErrAreaNotFound
	}
	return area, nil
}

func (r *Repository) ListBusinesses(ctx context.Context) ([]*domain.Business, error) {
	return r.businesses, nil
}

func (r *Repository) GetBusinessByCode(ctx context.Context, code string) (*domain.Business, error) {
	business, ok := r.businessesByCode[code]
	if !ok {
		return nil, domain.ErrBusinessNotFound
	}
	return business, nil
}

func (f *File) validate() error {
	if len(f.Areas) == 0 {
		return fmt.Errorf("%w: no areas defined", domain.ErrInvalidCatalog)
	}
	if len(f.Businesses) == 0 {
		return fmt.Errorf("%w: no businesses defined", domain.ErrInvalidCatalog)
	}

	businessCodes := make(map[string]bool, len(f.Businesses))
	for _, b := range f.Businesses {
		if b.Code == "" || b.Name == "" {
			return fmt.Errorf("%w: business code and name are required", domain.ErrInvalidCatalog)
		}
		if businessCodes[b.Code] {
			return fmt.Errorf("%w: duplicate business code %q", domain.ErrInvalidCatalog, b.Code)
		}
		businessCodes[b.Code] = true

		if b.InitialInvestment < 0 || b.MonthlyUsers < 0 || b.UnitPrice < 0 || b.OtherRevenue < 0 {
			return fmt.Errorf("%w: business %q has negative money fields", domain.ErrInvalidCatalog, b.Code)
		}
		for _, c := range b.Costs {
			if c.Label == "" {
				return fmt.Errorf("%w: business %q has an unlabeled cost item", domain.ErrInvalidCatalog, b.Code)
			}
			if c.Amount < 0 {
				return fmt.Errorf("%w: business %q cost %q is negative", domain.ErrInvalidCatalog, b.Code, c.Label)
			}
		}
	}

	areaCodes := make(map[string]bool, len(f.Areas))
	for _, a := range f.Areas {
		if a.Code == "" || a.Name == "" {
			return fmt.Errorf("%w: area code and name are required", domain.ErrInvalidCatalog)
		}
		if areaCodes[a.Code] {
			return fmt.Errorf("%w: duplicate area code %q", domain.ErrInvalidCatalog, a.Code)
		}
		areaCodes[a.Code] = true

		r := a.Ranges
		if r.Population <= 0 || r.DistanceFromStation <= 0 || r.Tourist <= 0 || r.HouseholdIncome <= 0 {
			return fmt.Errorf("%w: area %q factor ranges must be positive", domain.ErrInvalidCatalog, a.Code)
		}
		if err := a.DefaultFactors.Validate(); err != nil {
			return fmt.Errorf("%w: area %q default factors: %v", domain.ErrInvalidCatalog, a.Code, err)
		}
		if a.Epsilon < 0 {
			return fmt.Errorf("%w: area %q epsilon is negative", domain.ErrInvalidCatalog, a.Code)
		}

		for code := range businessCodes {
			if _, ok := a.Weights[code]; !ok {
				return fmt.Errorf("%w: area %q has no weights for business %q", domain.ErrInvalidCatalog, a.Code, code)
			}
		}
		for code, w := range a.Weights {
			if w.Population < 0 || w.DistanceFromStation < 0 || w.Tourist < 0 || w.HouseholdIncome < 0 {
				return fmt.Errorf("%w: area %q weights for %q are negative", domain.ErrInvalidCatalog, a.Code, code)
			}
		}
	}

	return nil
}
