package service

import (
	"context"
	"fmt"

	"github.com/andresvaldez/despacho/internal/domain"
	"github.com/andresvaldez/despacho/internal/repository"
	"go.uber.org/zap"
)

// catalogService dispatches typeahead searches to the catalog queries.
// Lookup failures degrade to zero results; the error goes to the log so
// the field controls never have to surface a hard error.
type catalogService struct {
	catalogs repository.CatalogRepo
	log      *zap.Logger
}

func NewCatalogService(catalogs repository.CatalogRepo, log *zap.Logger) CatalogService {
	if log == nil {
		log = zap.NewNop()
	}
	return &catalogService{catalogs: catalogs, log: log}
}

func (s *catalogService) Search(ctx context.Context, kind domain.CatalogType, term string) []domain.Catalog {
	var (
		results []domain.Catalog
		err     error
	)

	switch kind {
	case domain.CatalogSupplier:
		results, err = s.catalogs.Suppliers(ctx, term)
	case domain.CatalogProject:
		results, err = s.catalogs.Projects(ctx, term)
	case domain.CatalogClient:
		results, err = s.catalogs.Clients(ctx, term)
	case domain.CatalogResponsible:
		results, err = s.catalogs.Responsibles(ctx)
	case domain.CatalogArea:
		results, err = s.catalogs.Areas(ctx)
	default:
		s.log.Warn("unknown catalog type", zap.String("kind", string(kind)))
		return nil
	}

	if err != nil {
		s.log.Error("catalog lookup failed",
			zap.String("kind", string(kind)),
			zap.String("term", term),
			zap.Error(err))
		return nil
	}
	return results
}

// UpsertArea registers a supplier area so it shows up in area lookups.
func (s *catalogService) UpsertArea(ctx context.Context, c domain.Catalog) error {
	if c.ID == "" || c.Name == "" {
		return fmt.Errorf("area id and name are required")
	}
	return s.catalogs.UpsertArea(ctx, c)
}
