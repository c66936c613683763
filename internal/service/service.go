package service

import (
	"link-catalog/internal/biz"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// ProviderSet is service providers.
var ProviderSet = wire.NewSet(NewCatalogService, NewRateLimiterFromConf, NewRouter)

// maxBodyBytes caps admin request bodies.
const maxBodyBytes = 10 << 20

// CatalogService serves the catalog over HTTP.
type CatalogService struct {
	catalog   *biz.CatalogUsecase
	selection *biz.SelectionUsecase
	sweep     *biz.SweepUsecase
	auth      *biz.AuthUsecase
	log       *log.Helper
}

func NewCatalogService(
	catalog *biz.CatalogUsecase,
	selection *biz.SelectionUsecase,
	sweep *biz.SweepUsecase,
	auth *biz.AuthUsecase,
	logger log.Logger,
) *CatalogService {
	return &CatalogService{
		catalog:   catalog,
		selection: selection,
		sweep:     sweep,
		auth:      auth,
		log:       log.NewHelper(log.With(logger, "module", "service")),
	}
}
