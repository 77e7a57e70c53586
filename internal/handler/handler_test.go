package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/installment-console/internal/config"
	"github.com/maxviazov/installment-console/internal/dashboard"
	"github.com/maxviazov/installment-console/internal/handler"
	"github.com/maxviazov/installment-console/internal/listing"
	"github.com/maxviazov/installment-console/internal/metrics"
	"github.com/maxviazov/installment-console/internal/render"
	"github.com/maxviazov/installment-console/internal/repository/contract"
	"github.com/maxviazov/installment-console/internal/repository/rest"
	"github.com/maxviazov/installment-console/internal/service"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type console struct {
	fake    *contract.FakeBackend
	backend *httptest.Server
	router  *gin.Engine
	metrics *metrics.Registry
}

func newConsole(t *testing.T) *console {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fake := contract.NewFakeBackend()
	srv := fake.Start()
	t.Cleanup(srv.Close)

	reg := metrics.New(false)
	client, err := rest.New(config.BackendConfig{BaseURL: srv.URL, Timeout: 2 * time.Second}, zerolog.Nop(), rest.WithObserver(reg))
	require.NoError(t, err)
	customers := rest.NewCustomerRepository(client)
	ledger := rest.NewLedgerRepository(client)

	f, err := dashboard.NewFormatter("en", "IQD")
	require.NoError(t, err)
	tmpl, err := render.New(f)
	require.NoError(t, err)

	router := handler.NewRouter(handler.Deps{
		Backend:     rest.NewPinger(client),
		Views:       service.NewViewService(customers, ledger, rest.NewReportRepository(client), f, 7, zerolog.Nop()),
		Actions:     service.NewActionService(customers, ledger, zerolog.Nop()),
		Templates:   tmpl,
		Metrics:     reg,
		MetricsPath: "/metrics",
		PerPage:     7,
		FlashMaxAge: 30,
		Log:         zerolog.Nop(),
	})
	return &console{fake: fake, backend: srv, router: router, metrics: reg}
}

func (c *console) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	return rec
}

func (c *console) get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	return c.do(req)
}

func (c *console) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *console) sendJSON(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func flashCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "console_flash" && ck.MaxAge > 0 {
			return ck
		}
	}
	t.Fatalf("no flash cookie set")
	return nil
}

func TestHealth(t *testing.T) {
	c := newConsole(t)

	for _, path := range []string{"/live", "/ready", "/ui/health/live", "/ui/health/ready"} {
		rec := c.get(path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	c.backend.Close()
	rec := c.get("/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"backend":"unavailable"`)
}

func TestIndex_PageParameterFallsBackToFirstPage(t *testing.T) {
	c := newConsole(t)
	c.fake.Seed("Ali", "0770", decimal.NewFromInt(10))

	for _, q := range []string{"/?page=0", "/?page=-4", "/?page=abc", "/"} {
		rec := c.get(q)
		require.Equal(t, http.StatusOK, rec.Code, q)
		assert.Contains(t, rec.Body.String(), `href="/customer/1"`)
	}
	for _, raw := range c.fake.Queries() {
		assert.Equal(t, "page=1&per_page=7", raw)
	}
}

func TestIndex_SearchKeepsRequestedPage(t *testing.T) {
	c := newConsole(t)
	rec := c.get("/?page=2&search=%20Ali%20")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"page=2&per_page=7&search=Ali"}, c.fake.Queries())
	assert.Contains(t, rec.Body.String(), `value="Ali"`)
}

func TestIndex_BackendDownRendersErrorPage(t *testing.T) {
	c := newConsole(t)
	c.backend.Close()

	rec := c.get("/")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "حدث خطأ أثناء تحميل قائمة العملاء")
}

func TestAddCustomerForm_PostRedirectGet(t *testing.T) {
	c := newConsole(t)

	rec := c.postForm("/customers", url.Values{"name": {" Ali "}, "phone": {"0770"}, "initial_debt": {"abc"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	ck := flashCookie(t, rec)

	page := c.get("/", ck)
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), contract.MsgCustomerAdded)
	assert.Contains(t, page.Body.String(), "</span> Ali</td>")

	var cleared bool
	for _, k := range page.Result().Cookies() {
		if k.Name == "console_flash" && k.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "flash must be shown once")
}

func TestAddCustomerForm_ServerMessageOnRejection(t *testing.T) {
	c := newConsole(t)

	rec := c.postForm("/customers", url.Values{"name": {"  "}, "phone": {"0770"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	page := c.get("/", flashCookie(t, rec))
	assert.Contains(t, page.Body.String(), `class="notice error"`)
	assert.Contains(t, page.Body.String(), contract.ErrNameRequired)
}

func TestForms_UnreadableBodyIsAnErrorNotice(t *testing.T) {
	c := newConsole(t)
	id := c.fake.Seed("Ali", "0770", decimal.NewFromInt(100))

	tests := []struct {
		name string
		path string
		back string
	}{
		{name: "add customer", path: "/customers", back: "/"},
		{name: "update customer", path: "/customers/1", back: listing.DetailsPath(id)},
		{name: "add debt", path: "/customers/1/debts", back: listing.DetailsPath(id)},
		{name: "payment", path: "/customers/1/payments", back: listing.DetailsPath(id)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// multipart without a boundary cannot be parsed
			req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader("amount=5&name=x&phone=1"))
			req.Header.Set("Content-Type", "multipart/form-data")
			rec := c.do(req)
			require.Equal(t, http.StatusSeeOther, rec.Code)
			assert.Equal(t, tc.back, rec.Header().Get("Location"))

			page := c.get(tc.back, flashCookie(t, rec))
			require.Equal(t, http.StatusOK, page.Code)
			assert.Contains(t, page.Body.String(), `class="notice error"`)
			assert.Contains(t, page.Body.String(), "تعذر قراءة البيانات المرسلة")
		})
	}

	// nothing reached the backend
	rec := c.get("/ui/customers/1")
	require.Equal(t, http.StatusOK, rec.Code)
	var details service.CustomerDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &details))
	assert.Equal(t, "Ali", details.Customer.Name)
	assert.Empty(t, details.Transactions)
	assert.Equal(t, http.StatusNotFound, c.get("/ui/customers/2").Code)
}

func TestPaymentForm_RedirectsToCustomer(t *testing.T) {
	c := newConsole(t)
	id := c.fake.Seed("Ali", "0770", decimal.NewFromInt(100))

	rec := c.postForm("/customers/1/payments", url.Values{"amount": {"500"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, listing.DetailsPath(id), rec.Header().Get("Location"))

	page := c.get(listing.DetailsPath(id), flashCookie(t, rec))
	require.Equal(t, http.StatusOK, page.Code)
	assert.Contains(t, page.Body.String(), contract.ErrAmountTooLarge)
}

func TestDeleteTransactionForm_ReturnsToOwner(t *testing.T) {
	c := newConsole(t)
	id := c.fake.Seed("Ali", "0770", decimal.Zero)
	require.Equal(t, http.StatusSeeOther, c.postForm("/customers/1/debts", url.Values{"amount": {"20"}}).Code)

	rec := c.postForm("/transactions/1/delete", url.Values{"customer_id": {"1"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, listing.DetailsPath(id), rec.Header().Get("Location"))

	rec = c.postForm("/transactions/1/delete", nil)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestCustomerPage_NotFound(t *testing.T) {
	c := newConsole(t)

	for _, path := range []string{"/customer/999", "/customer/abc"} {
		rec := c.get(path)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "العميل غير موجود")
	}
}

func TestUIListing_JSON(t *testing.T) {
	c := newConsole(t)
	for i := 0; i < 9; i++ {
		c.fake.Seed("C", "07"+string(rune('0'+i)), decimal.NewFromInt(1))
	}

	req := httptest.NewRequest(http.MethodGet, "/ui/listing?page=2", nil)
	req.Header.Set(handler.RequestIDHeader, "abc-123")
	rec := c.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get(handler.RequestIDHeader))

	var view listing.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 2, view.State.Page)
	assert.Equal(t, 9, view.Total)
	assert.Equal(t, 8, view.Start)
	assert.Equal(t, 9, view.End)
	require.Len(t, view.Rows, 2)
	assert.Equal(t, 8, view.Rows[0].Rank)
	assert.NotEmpty(t, view.Window)
}

func TestRequestID_GeneratedWhenMissing(t *testing.T) {
	c := newConsole(t)
	rec := c.get("/live")
	assert.Len(t, rec.Header().Get(handler.RequestIDHeader), 36)
}

func TestUISummary_JSON(t *testing.T) {
	c := newConsole(t)
	c.fake.Seed("A", "01", decimal.NewFromInt(200))

	rec := c.get("/ui/summary")
	require.Equal(t, http.StatusOK, rec.Code)
	var cards dashboard.Cards
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cards))
	assert.Equal(t, "0.0%", cards.CollectionRate)
	assert.Equal(t, "1", cards.TotalCustomers)
}

func TestUIActions_JSON(t *testing.T) {
	c := newConsole(t)
	c.fake.Seed("Ali", "0770", decimal.NewFromInt(100))

	rec := c.sendJSON(http.MethodPost, "/ui/customers/1/debts", `{"amount":"ten"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"severity":"error","message":"الرجاء إدخال مبلغ صحيح"}`, rec.Body.String())

	rec = c.sendJSON(http.MethodPost, "/ui/customers/1/payments", `{"amount":"40","description":"cash"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), contract.MsgPaymentRecorded)

	rec = c.sendJSON(http.MethodPut, "/ui/customers/1", `{"phone":"0799"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = c.sendJSON(http.MethodDelete, "/ui/customers/77", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "حدث خطأ أثناء حذف العميل")

	rec = c.sendJSON(http.MethodPost, "/ui/customers", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUICustomer_JSON(t *testing.T) {
	c := newConsole(t)
	c.fake.Seed("Ali", "0770", decimal.NewFromInt(100))

	rec := c.get("/ui/customers/1")
	require.Equal(t, http.StatusOK, rec.Code)
	var details service.CustomerDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &details))
	assert.Equal(t, "Ali", details.Customer.Name)
	assert.Empty(t, details.Transactions)

	assert.Equal(t, http.StatusNotFound, c.get("/ui/customers/2").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	c := newConsole(t)
	c.get("/ui/summary")

	rec := c.get("/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `installment_console_backend_calls_total{op="reports.summary",outcome="ok"} 1`)
	assert.Contains(t, string(body), `route="/ui/summary"`)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handler.RequestID(zerolog.Nop()), handler.Recovery(zerolog.Nop()))
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDocs(t *testing.T) {
	c := newConsole(t)
	assert.Equal(t, http.StatusOK, c.get("/docs").Code)
	rec := c.get("/openapi.yaml")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "openapi: 3.0.3")
}

func TestOpenAPI_DescribesRegisteredRoutes(t *testing.T) {
	doc, err := handler.LoadOpenAPI(context.Background())
	require.NoError(t, err)

	c := newConsole(t)
	registered := map[string]bool{}
	for _, r := range c.router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for path, item := range doc.Paths.Map() {
		ginPath := strings.NewReplacer("{", ":", "}", "").Replace(path)
		for method := range item.Operations() {
			assert.True(t, registered[method+" "+ginPath], "documented but not routed: %s %s", method, ginPath)
		}
	}
}
