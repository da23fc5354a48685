package usecase

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fpcgarcias/site-ticketwise-sub000/internal/domain/entity"
	"gopkg.in/yaml.v3"
)

type plansFile struct {
	Plans []entity.Plan `yaml:"plans"`
}

// Catalog is the read-only plan list loaded from configs/plans.yaml
type Catalog struct {
	plans   []entity.Plan
	byPrice map[string]*entity.Plan
	bySlug  map[string]*entity.Plan
}

// LoadCatalog reads the plan file. A missing or empty file yields an empty catalog.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewCatalog(nil)
		}
		return nil, fmt.Errorf("read plans file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return NewCatalog(nil)
	}

	var file plansFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal plans yaml: %w", err)
	}
	return NewCatalog(file.Plans)
}

func NewCatalog(plans []entity.Plan) (*Catalog, error) {
	c := &Catalog{
		plans:   make([]entity.Plan, 0, len(plans)),
		byPrice: make(map[string]*entity.Plan, len(plans)),
		bySlug:  make(map[string]*entity.Plan, len(plans)),
	}
	seenPrice := make(map[string]bool, len(plans))
	seenSlug := make(map[string]bool, len(plans))
	for i, p := range plans {
		p.Slug = strings.TrimSpace(p.Slug)
		p.PriceID = strings.TrimSpace(p.PriceID)
		if p.Slug == "" {
			return nil, fmt.Errorf("plans[%d]: slug is required", i)
		}
		if p.PriceID == "" {
			return nil, fmt.Errorf("plans[%d]: price_id is required", i)
		}
		if seenPrice[p.PriceID] {
			return nil, fmt.Errorf("plans[%d]: duplicate price_id %q", i, p.PriceID)
		}
		if seenSlug[p.Slug] {
			return nil, fmt.Errorf("plans[%d]: duplicate slug %q", i, p.Slug)
		}
		seenPrice[p.PriceID] = true
		seenSlug[p.Slug] = true
		if p.Name == "" {
			p.Name = p.Slug
		}
		c.plans = append(c.plans, p)
	}
	for i := range c.plans {
		p := &c.plans[i]
		c.byPrice[p.PriceID] = p
		c.bySlug[p.Slug] = p
	}
	return c, nil
}

func (c *Catalog) Plans() []entity.Plan {
	out := make([]entity.Plan, len(c.plans))
	copy(out, c.plans)
	return out
}

func (c *Catalog) PlanByPrice(priceID string) *entity.Plan {
	if c == nil {
		return nil
	}
	return c.byPrice[priceID]
}

func (c *Catalog) PlanBySlug(slug string) *entity.Plan {
	if c == nil {
		return nil
	}
	return c.bySlug[slug]
}

// AllowsPrice reports whether priceID may be used for checkout or plan changes.
// An empty catalog allows every price.
func (c *Catalog) AllowsPrice(priceID string) bool {
	if c == nil || len(c.plans) == 0 {
		return true
	}
	_, ok := c.byPrice[priceID]
	return ok
}
