//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	pacttest "github.com/sportsstore/go-gin-store-server/test/pact"

	storeserver "github.com/sportsstore/go-gin-store-server/go"
	cartcatalog "github.com/sportsstore/go-gin-store-server/internal/domains/cart/adapters/catalog"
	cartmemory "github.com/sportsstore/go-gin-store-server/internal/domains/cart/adapters/memory"
	cartapp "github.com/sportsstore/go-gin-store-server/internal/domains/cart/application"
	catalogmemory "github.com/sportsstore/go-gin-store-server/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/sportsstore/go-gin-store-server/internal/domains/catalog/application"
	catalogdomain "github.com/sportsstore/go-gin-store-server/internal/domains/catalog/domain"
	orderscartstore "github.com/sportsstore/go-gin-store-server/internal/domains/orders/adapters/cartstore"
	orderscatalog "github.com/sportsstore/go-gin-store-server/internal/domains/orders/adapters/catalog"
	ordersmemory "github.com/sportsstore/go-gin-store-server/internal/domains/orders/adapters/memory"
	ordersworkflows "github.com/sportsstore/go-gin-store-server/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/sportsstore/go-gin-store-server/internal/domains/orders/application"
	usermemory "github.com/sportsstore/go-gin-store-server/internal/domains/users/adapters/memory"
	userapp "github.com/sportsstore/go-gin-store-server/internal/domains/users/application"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestStorefrontProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetCatalog(t)
			return nil, nil
		},
		pacttest.StateProductExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetCatalog(t)
			if setup {
				app.seedProduct(t, pacttest.ExistingProductID)
			}
			return nil, nil
		},
		pacttest.StateProductMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.resetCatalog(t)
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.resetCatalog(t)
			return nil
		},
	})
	require.NoError(t, err)
}

type contractProviderApp struct {
	catalogRepo *catalogmemory.Repository
	server      *httptest.Server
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	catalogRepo := catalogmemory.NewRepository()
	catalogService := catalogapp.NewService(catalogRepo, catalogRepo)
	cartService := cartapp.NewService(cartmemory.NewRepository(), cartcatalog.New(catalogService))
	userService := userapp.NewService(usermemory.NewRepository(), usermemory.NewSessionStore(0))
	bridge := orderscatalog.New(catalogService)
	ordersService := ordersapp.NewService(ordersmemory.NewRepository(), bridge, bridge, orderscartstore.New(cartService))
	workflows := ordersworkflows.NewInlineOrderWorkflows(ordersService)

	handlers := storeserver.ApiHandleFunctions{
		ProductAPI:  storeserver.NewProductAPI(catalogService, userService),
		CartAPI:     storeserver.NewCartAPI(cartService, userService),
		CheckoutAPI: storeserver.NewCheckoutAPI(ordersService, workflows, userService),
		UserAPI:     storeserver.NewUserAPI(userService, cartService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = storeserver.NewRouterWithGinEngine(router, handlers)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &contractProviderApp{
		catalogRepo: catalogRepo,
		server:      server,
	}
}

func (a *contractProviderApp) resetCatalog(t testing.TB) {
	t.Helper()
	products, err := a.catalogRepo.List(context.Background())
	require.NoError(t, err)
	for _, product := range products {
		_ = a.catalogRepo.Delete(context.Background(), product.ID)
	}
}

func (a *contractProviderApp) seedProduct(t testing.TB, id int64) {
	t.Helper()
	product, err := catalogdomain.NewProduct(id, "Kayak", decimal.NewFromFloat(275.00), 10)
	require.NoError(t, err)
	_, err = a.catalogRepo.Save(context.Background(), product)
	require.NoError(t, err)
}
