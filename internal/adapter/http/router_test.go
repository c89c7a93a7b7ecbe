package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	adaptercompetitor "grynvault-backend/internal/adapter/competitor"
	"grynvault-backend/internal/adapter/middleware"
	"grynvault-backend/internal/adapter/repository/mysql"
	"grynvault-backend/internal/infrastructure/metrics"
	"grynvault-backend/internal/testutil/notifiermock"
	uc "grynvault-backend/internal/usecase/loan"
	"grynvault-backend/internal/usecase/orderbook"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newAPI wires the real usecases over sqlite and miniredis.
func newAPI(t *testing.T) (*echo.Echo, *notifiermock.Notifier) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	repo := mysql.NewOrderRepository(db)
	if err := repo.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	log := zap.NewNop()
	m := metrics.New()
	n := &notifiermock.Notifier{}
	src := adaptercompetitor.NewDefault()
	store := orderbook.NewStore()
	loans := uc.NewUsecase(repo, store, src, log, m)
	book := orderbook.NewUsecase(repo, store, n, "tpl", log, m)

	e := newEchoWithValidator()
	Register(e, Handlers{
		Health:      NewHandler("grynvault-api", func() int { return len(store.Snapshot()) }),
		Loans:       NewLoanHandler(loans),
		Orderbook:   NewOrderbookHandler(book),
		Competitors: NewCompetitorHandler(src),
	}, middleware.Idempotency(rdb, time.Minute, log))
	return e, n
}

func serve(e *echo.Echo, method, path string, body any, hdr map[string]string) *httptest.ResponseRecorder {
	var req *stdhttp.Request
	if body != nil {
		req = httptest.NewRequest(method, path, mustJSON(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAPI_SubmitListAcceptFlow(t *testing.T) {
	e, n := newAPI(t)
	hdr := map[string]string{
		middleware.HeaderRequestID: uuid.NewString(),
		middleware.HeaderRequestAt: time.Now().UTC().Format(time.RFC3339),
	}

	rec := serve(e, stdhttp.MethodPost, "/api/v1/loan-requests", validBody(), hdr)
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("submit status = %d body=%s", rec.Code, rec.Body.String())
	}
	var created uc.SubmitDTO
	_ = json.Unmarshal(rec.Body.Bytes(), &created)

	// a double click replays the first response instead of storing twice
	rec = serve(e, stdhttp.MethodPost, "/api/v1/loan-requests", validBody(), hdr)
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("replay status = %d", rec.Code)
	}

	rec = serve(e, stdhttp.MethodPost, "/api/v1/orderbook/refresh", nil, nil)
	if rec.Code != stdhttp.StatusOK || !strings.Contains(rec.Body.String(), `"demand":1`) {
		t.Fatalf("refresh status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = serve(e, stdhttp.MethodGet, "/api/v1/orderbook?tab=demand&status=open", nil, nil)
	var list listResp
	_ = json.Unmarshal(rec.Body.Bytes(), &list)
	if rec.Code != stdhttp.StatusOK || list.Count != 1 || list.Orders[0].OrderID != created.Order.OrderID {
		t.Fatalf("list status=%d resp=%+v", rec.Code, list)
	}

	rec = serve(e, stdhttp.MethodPost, "/api/v1/orderbook/"+created.Order.OrderID+"/accept",
		map[string]any{"name": "Ada", "email": "ada@example.com"}, nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("accept status=%d body=%s", rec.Code, rec.Body.String())
	}
	if len(n.Sent()) != 1 {
		t.Fatalf("sent = %d", len(n.Sent()))
	}

	rec = serve(e, stdhttp.MethodGet, "/health", nil, nil)
	if rec.Code != stdhttp.StatusOK || !strings.Contains(rec.Body.String(), `"orders":1`) {
		t.Fatalf("health body=%s", rec.Body.String())
	}
}

func TestAPI_SubmitRequiresRequestID(t *testing.T) {
	e, _ := newAPI(t)
	rec := serve(e, stdhttp.MethodPost, "/api/v1/loan-requests", validBody(), nil)
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	// preview is not guarded
	rec = serve(e, stdhttp.MethodPost, "/api/v1/preferences/preview", validBody(), nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("preview status = %d", rec.Code)
	}
}

func TestAPI_Competitors(t *testing.T) {
	e, _ := newAPI(t)
	rec := serve(e, stdhttp.MethodGet, "/api/v1/competitors", nil, nil)
	var body struct {
		Competitors []json.RawMessage `json:"competitors"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if rec.Code != stdhttp.StatusOK || len(body.Competitors) != 3 {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}
