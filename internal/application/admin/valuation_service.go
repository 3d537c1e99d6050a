package admin

import (
	"context"
	"sort"
	"strings"

	"github.com/aaushop/storefront/internal/domain/cart"
	"github.com/aaushop/storefront/internal/domain/catalog"
	"github.com/aaushop/storefront/internal/domain/session"
	"github.com/aaushop/storefront/internal/domain/shared"
	"github.com/aaushop/storefront/internal/infrastructure/cache"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// UserValuation is one row of the administrative valuation view: an account
// and the display value of the cart it holds remotely.
type UserValuation struct {
	Identity  session.Identity `json:"identity"`
	ItemCount int              `json:"itemCount"`
	CartValue string           `json:"cartValue"`
}

// ValuationService builds the administrative view over every account's
// remote cart. All operations require an administrator identity.
type ValuationService struct {
	gateway session.Gateway
	cache   cache.CatalogCache
	logger  *zap.Logger
	printer *message.Printer
}

// NewValuationService creates a new ValuationService
func NewValuationService(gateway session.Gateway, catalogCache cache.CatalogCache, logger *zap.Logger) *ValuationService {
	return &ValuationService{
		gateway: gateway,
		cache:   catalogCache,
		logger:  logger,
		printer: message.NewPrinter(language.English),
	}
}

// ListValuations returns every account with its cart valuation, newest
// account first. The search term narrows by username or email substring,
// case-insensitive.
func (s *ValuationService) ListValuations(ctx context.Context, actor *session.Identity, search string) ([]UserValuation, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	users := s.gateway.ListUsers(ctx)

	term := strings.ToLower(strings.TrimSpace(search))
	rows := make([]UserValuation, 0, len(users))
	for _, u := range users {
		if term != "" &&
			!strings.Contains(strings.ToLower(u.Username), term) &&
			!strings.Contains(strings.ToLower(u.Email), term) {
			continue
		}
		rows = append(rows, UserValuation{
			Identity:  u.Identity,
			ItemCount: cart.ItemCount(u.Cart),
			CartValue: s.formatCartValue(u.Cart),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Identity.CreatedAt.After(rows[j].Identity.CreatedAt)
	})

	return rows, nil
}

// SeedCatalog pushes the built-in catalog to the backend and invalidates the
// catalog cache so the next browse sees the seeded products. Returns the
// number of products the backend accepted.
func (s *ValuationService) SeedCatalog(ctx context.Context, actor *session.Identity) (int, error) {
	if !actor.IsAdmin() {
		return 0, shared.ErrForbidden
	}

	products := catalog.SeedProducts()
	accepted := s.gateway.SeedProducts(ctx, products)
	if accepted > 0 {
		s.cache.Invalidate(ctx)
	}

	s.logger.Info("Catalog seeded",
		zap.String("admin_id", actor.UserID),
		zap.Int("accepted", accepted),
		zap.Int("total", len(products)),
	)
	return accepted, nil
}

// formatCartValue renders per-currency totals as a display string, e.g.
// "1,234.50 ብር + 59.98 USD". Currencies appear in the order they first
// occur in the cart; a cart with no items reads "Empty".
func (s *ValuationService) formatCartValue(c cart.Cart) string {
	if len(c) == 0 {
		return "Empty"
	}

	totals := cart.CurrencyTotals(c)
	parts := make([]string, 0, len(totals))
	for _, currency := range cart.Currencies(c) {
		parts = append(parts, s.printer.Sprintf("%v %s",
			number.Decimal(totals[currency].Float64(),
				number.MinFractionDigits(2),
				number.MaxFractionDigits(2),
			),
			currency.Symbol(),
		))
	}
	return strings.Join(parts, " + ")
}
