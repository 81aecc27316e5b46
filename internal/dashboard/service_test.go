package dashboard

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lucasmoreno/pharmadash-backend/pkg/config"
	"github.com/lucasmoreno/pharmadash-backend/pkg/enums"
	"github.com/lucasmoreno/pharmadash-backend/pkg/logger"
	"github.com/lucasmoreno/pharmadash-backend/pkg/redis"
	"github.com/lucasmoreno/pharmadash-backend/pkg/types"
)

type fakeContent struct {
	orders     []types.Order
	products   []types.Product
	promotions []types.Promotion

	orderCalls int
	err        error
}

func (f *fakeContent) ListOrders(context.Context) ([]types.Order, error) {
	f.orderCalls++
	return f.orders, f.err
}

func (f *fakeContent) ListProducts(context.Context) ([]types.Product, error) {
	return f.products, f.err
}

func (f *fakeContent) ListPromotions(context.Context) ([]types.Promotion, error) {
	return f.promotions, f.err
}

type fakeCache struct {
	entries map[string]string
	getErr  error
	sets    int
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	if f.getErr != nil {
		return "", f.getErr
	}
	val, ok := f.entries[key]
	if !ok {
		return "", redis.ErrCacheMiss
	}
	return val, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	if f.entries == nil {
		f.entries = make(map[string]string)
	}
	f.entries[key] = value.(string)
	f.sets++
	return nil
}

func (f *fakeCache) CacheKey(scope, id string) string {
	return "test:" + scope + ":" + id
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func testTTL() config.CacheConfig {
	return config.CacheConfig{
		OrdersTTL:     time.Minute,
		ProductsTTL:   time.Minute,
		PromotionsTTL: time.Minute,
	}
}

func fixtureOrder(id int64, customer types.Customer, date time.Time, productID int64, title, price string, qty int) types.Order {
	return types.Order{
		ID:       id,
		Date:     date,
		Customer: customer,
		Purchase: []types.PurchaseItem{{
			Quantity: qty,
			Product: types.ProductSnapshot{
				ID:      productID,
				Title:   title,
				Pricing: decimal.RequireFromString(price),
			},
		}},
	}
}

func TestMetricsBuildsReportAndTopCustomers(t *testing.T) {
	t.Parallel()
	now := time.Now()
	customer := types.Customer{ID: 1, Username: "alice", Email: "alice@lab.fr"}
	content := &fakeContent{
		orders:   []types.Order{fixtureOrder(1, customer, now, 10, "Paracetamol", "10", 2)},
		products: []types.Product{{ID: 10, Title: "Paracetamol", Pricing: decimal.RequireFromString("10"), Stock: "20"}},
	}

	svc, err := NewService(content, nil, testTTL(), testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	dto, err := svc.Metrics(context.Background(), enums.RangeKeyToday)
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if dto.Range != enums.RangeKeyToday {
		t.Fatalf("expected range today, got %s", dto.Range)
	}
	if !dto.Report.Turnover.Equal(decimal.RequireFromString("20")) {
		t.Fatalf("expected turnover 20, got %s", dto.Report.Turnover)
	}
	if len(dto.TopCustomers) != 1 || dto.TopCustomers[0].Username != "alice" {
		t.Fatalf("expected alice in top customers, got %+v", dto.TopCustomers)
	}
}

func TestMetricsRanksCustomersWithinSelectedRange(t *testing.T) {
	t.Parallel()
	now := time.Now()
	alice := types.Customer{ID: 1, Username: "alice"}
	bob := types.Customer{ID: 2, Username: "bob"}
	content := &fakeContent{
		orders: []types.Order{
			// Bob spent more overall, but only outside today's window.
			fixtureOrder(1, bob, now.AddDate(0, 0, -30), 10, "Paracetamol", "10", 9),
			fixtureOrder(2, alice, now, 10, "Paracetamol", "10", 1),
		},
	}

	svc, err := NewService(content, nil, testTTL(), testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	dto, err := svc.Metrics(context.Background(), enums.RangeKeyToday)
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if len(dto.TopCustomers) != 1 || dto.TopCustomers[0].Username != "alice" {
		t.Fatalf("expected only alice ranked for today, got %+v", dto.TopCustomers)
	}
}

func TestMetricsNormalizesUnknownRange(t *testing.T) {
	t.Parallel()
	svc, err := NewService(&fakeContent{}, nil, testTTL(), testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	dto, err := svc.Metrics(context.Background(), enums.RangeKey("lastDecade"))
	if err != nil {
		t.Fatalf("Metrics: %v", err)
	}
	if dto.Range != enums.RangeKeyFromBeginning {
		t.Fatalf("expected fromBeginning, got %s", dto.Range)
	}
}

func TestMetricsServesContentFromCache(t *testing.T) {
	t.Parallel()
	now := time.Now()
	customer := types.Customer{ID: 1, Username: "alice"}
	content := &fakeContent{
		orders: []types.Order{fixtureOrder(1, customer, now, 10, "Paracetamol", "10", 1)},
	}
	cache := &fakeCache{}

	svc, err := NewService(content, cache, testTTL(), testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	ctx := context.Background()
	if _, err := svc.Metrics(ctx, enums.RangeKeyFromBeginning); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if cache.sets != 3 {
		t.Fatalf("expected 3 cache writes, got %d", cache.sets)
	}
	if _, err := svc.Metrics(ctx, enums.RangeKeyFromBeginning); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if content.orderCalls != 1 {
		t.Fatalf("expected orders fetched once, got %d calls", content.orderCalls)
	}
}

func TestMetricsAbsorbsCacheFailures(t *testing.T) {
	t.Parallel()
	now := time.Now()
	content := &fakeContent{
		orders: []types.Order{fixtureOrder(1, types.Customer{ID: 1, Username: "alice"}, now, 10, "A", "5", 1)},
	}
	cache := &fakeCache{getErr: context.DeadlineExceeded}

	svc, err := NewService(content, cache, testTTL(), testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	dto, err := svc.Metrics(context.Background(), enums.RangeKeyFromBeginning)
	if err != nil {
		t.Fatalf("cache failure must not fail the request: %v", err)
	}
	if dto.Report.NumberOfSales != 1 {
		t.Fatalf("expected 1 sale, got %d", dto.Report.NumberOfSales)
	}
}

func TestCatalogProjectsStock(t *testing.T) {
	t.Parallel()
	content := &fakeContent{
		products: []types.Product{
			{ID: 10, Title: "Paracetamol", Pricing: decimal.RequireFromString("4"), Stock: "5", Active: true},
		},
	}

	svc, err := NewService(content, nil, testTTL(), testLogger())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	projection, err := svc.Catalog(context.Background())
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	if len(projection.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(projection.Rows))
	}
	if projection.Rows[0].Severity != enums.StockSeverityCritical {
		t.Fatalf("expected critical severity, got %s", projection.Rows[0].Severity)
	}
}

func TestWarnDuplicateTitlesLogsCollision(t *testing.T) {
	t.Parallel()
	var buf strings.Builder
	log := logger.New(logger.Options{ServiceName: "test", Output: &buf})

	svc := &service{log: log}
	svc.warnDuplicateTitles(context.Background(), []types.Product{
		{ID: 10, Title: "Paracetamol"},
		{ID: 11, Title: "Paracetamol"},
	})

	if !strings.Contains(buf.String(), "share a title") {
		t.Fatalf("expected duplicate-title warning, got %q", buf.String())
	}
}
