package contract

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/installment-console/internal/model"
	"github.com/shopspring/decimal"
)

// Backend messages, as the real service words them.
const (
	MsgCustomerAdded      = "تم إضافة العميل بنجاح"
	MsgCustomerUpdated    = "تم تحديث البيانات بنجاح"
	MsgCustomerDeleted    = "تم حذف العميل بنجاح"
	MsgDebtAdded          = "تم إضافة المديونية بنجاح"
	MsgPaymentRecorded    = "تم تسجيل الدفعة بنجاح"
	MsgTransactionDeleted = "تم حذف المعاملة بنجاح"
	ErrNameRequired       = "الرجاء إدخال اسم العميل"
	ErrPhoneRequired      = "الرجاء إدخال رقم الهاتف"
	ErrAmountInvalid      = "الرجاء إدخال مبلغ صحيح"
	ErrAmountTooLarge     = "المبلغ المدخل أكبر من الرصيد المتبقي"
)

type fakeCustomer struct {
	id          int64
	name        string
	phone       string
	initialDebt decimal.Decimal
	createdAt   time.Time
}

type fakeTransaction struct {
	id         int64
	customerID int64
	amount     decimal.Decimal
	kind       string
	desc       string
	createdAt  time.Time
}

// FakeBackend is an in-memory stand-in for the bookkeeping REST backend.
// It follows the real service's routes, payloads, ordering (newest customer
// first) and validation, which is what the repository contracts run against.
type FakeBackend struct {
	mu           sync.Mutex
	nextCustomer int64
	nextTx       int64
	customers    map[int64]*fakeCustomer
	transactions map[int64]*fakeTransaction
	clock        time.Time
	queries      []string
	failNext     *failure

	engine *gin.Engine
}

type failure struct {
	status int
	body   string
}

// NewFakeBackend builds an empty backend.
func NewFakeBackend() *FakeBackend {
	gin.SetMode(gin.TestMode)
	f := &FakeBackend{
		nextCustomer: 1,
		nextTx:       1,
		customers:    map[int64]*fakeCustomer{},
		transactions: map[int64]*fakeTransaction{},
		clock:        time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
	r := gin.New()
	r.Use(f.interceptFailure)
	api := r.Group("/api")
	{
		api.GET("/customers", f.listCustomers)
		api.POST("/customers", f.createCustomer)
		api.GET("/customers/:id", f.getCustomer)
		api.PUT("/customers/:id", f.updateCustomer)
		api.DELETE("/customers/:id", f.deleteCustomer)
		api.GET("/customers/:id/transactions", f.listTransactions)
		api.POST("/customers/:id/add-debt", f.addDebt)
		api.POST("/customers/:id/pay-installment", f.payInstallment)
		api.DELETE("/transactions/:id", f.deleteTransaction)
		api.GET("/reports/summary", f.summary)
	}
	f.engine = r
	return f
}

// ServeHTTP makes the fake usable as an http.Handler.
func (f *FakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) { f.engine.ServeHTTP(w, r) }

// Start serves the fake on a local test server; close it when done.
func (f *FakeBackend) Start() *httptest.Server { return httptest.NewServer(f) }

// Seed adds a customer directly and returns its id.
func (f *FakeBackend) Seed(name, phone string, initialDebt decimal.Decimal) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addCustomerLocked(name, phone, initialDebt)
}

// Queries returns the raw query strings of every listing request so far.
func (f *FakeBackend) Queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

// FailNext makes the next request answer with status and the raw body.
func (f *FakeBackend) FailNext(status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failNext = &failure{status: status, body: body}
}

func (f *FakeBackend) interceptFailure(c *gin.Context) {
	f.mu.Lock()
	fail := f.failNext
	f.failNext = nil
	f.mu.Unlock()
	if fail != nil {
		c.Data(fail.status, "application/json", []byte(fail.body))
		c.Abort()
		return
	}
	c.Next()
}

func (f *FakeBackend) addCustomerLocked(name, phone string, initialDebt decimal.Decimal) int64 {
	id := f.nextCustomer
	f.nextCustomer++
	f.clock = f.clock.Add(time.Minute)
	f.customers[id] = &fakeCustomer{id: id, name: name, phone: phone, initialDebt: initialDebt, createdAt: f.clock}
	return id
}

func (f *FakeBackend) summaryOf(c *fakeCustomer) model.CustomerSummary {
	debt, paid := c.initialDebt, decimal.Zero
	for _, t := range f.transactions {
		if t.customerID != c.id {
			continue
		}
		if t.kind == model.TransactionDebt {
			debt = debt.Add(t.amount)
		} else {
			paid = paid.Add(t.amount)
		}
	}
	remaining := debt.Sub(paid)
	return model.CustomerSummary{
		ID:               c.id,
		Name:             c.name,
		Phone:            c.phone,
		InitialDebt:      c.initialDebt,
		TotalDebt:        debt,
		TotalPaid:        paid,
		RemainingBalance: remaining,
		IsPaidOff:        !remaining.GreaterThan(decimal.Zero),
		CreatedAt:        c.createdAt.Format("2006-01-02"),
	}
}

func (f *FakeBackend) listCustomers(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))
	page := queryInt(c, "page", 1)
	perPage := queryInt(c, "per_page", 10)
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, c.Request.URL.RawQuery)

	// newest first; ids grow with creation time
	var matched []model.CustomerSummary
	for id := f.nextCustomer - 1; id >= 1; id-- {
		cu, ok := f.customers[id]
		if !ok {
			continue
		}
		if search != "" && !strings.Contains(cu.name, search) && !strings.Contains(cu.phone, search) {
			continue
		}
		matched = append(matched, f.summaryOf(cu))
	}

	total := len(matched)
	pages := (total + perPage - 1) / perPage
	items := []model.CustomerSummary{}
	if from := (page - 1) * perPage; from < total {
		to := from + perPage
		if to > total {
			to = total
		}
		items = matched[from:to]
	}
	c.JSON(http.StatusOK, gin.H{
		"customers":    items,
		"total":        total,
		"pages":        pages,
		"current_page": page,
		"per_page":     perPage,
		"has_next":     page < pages,
		"has_prev":     page > 1,
	})
}

func (f *FakeBackend) createCustomer(c *gin.Context) {
	var req struct {
		Name        string          `json:"name"`
		Phone       string          `json:"phone"`
		InitialDebt decimal.Decimal `json:"initial_debt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name, phone := strings.TrimSpace(req.Name), strings.TrimSpace(req.Phone)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrNameRequired})
		return
	}
	if phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrPhoneRequired})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.addCustomerLocked(name, phone, req.InitialDebt)
	c.JSON(http.StatusCreated, gin.H{"message": MsgCustomerAdded, "customer": f.summaryOf(f.customers[id])})
}

// customer resolves :id or answers 404 with a non-JSON body, as the real service does.
func (f *FakeBackend) customer(c *gin.Context) (*fakeCustomer, bool) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	cu, ok := f.customers[id]
	if !ok {
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte("<h1>Not Found</h1>"))
		return nil, false
	}
	return cu, true
}

func (f *FakeBackend) getCustomer(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cu, ok := f.customer(c); ok {
		c.JSON(http.StatusOK, f.summaryOf(cu))
	}
}

func (f *FakeBackend) updateCustomer(c *gin.Context) {
	var req model.CustomerPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cu, ok := f.customer(c)
	if !ok {
		return
	}
	if req.Name != nil {
		cu.name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		cu.phone = strings.TrimSpace(*req.Phone)
	}
	c.JSON(http.StatusOK, gin.H{"message": MsgCustomerUpdated, "customer": f.summaryOf(cu)})
}

func (f *FakeBackend) deleteCustomer(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cu, ok := f.customer(c)
	if !ok {
		return
	}
	for id, t := range f.transactions {
		if t.customerID == cu.id {
			delete(f.transactions, id)
		}
	}
	delete(f.customers, cu.id)
	c.JSON(http.StatusOK, gin.H{"message": MsgCustomerDeleted})
}

func (f *FakeBackend) listTransactions(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cu, ok := f.customer(c)
	if !ok {
		return
	}
	out := []model.Transaction{}
	for id := f.nextTx - 1; id >= 1; id-- {
		if t, ok := f.transactions[id]; ok && t.customerID == cu.id {
			out = append(out, toTransaction(t))
		}
	}
	c.JSON(http.StatusOK, out)
}

func (f *FakeBackend) addDebt(c *gin.Context)        { f.addEntry(c, model.TransactionDebt) }
func (f *FakeBackend) payInstallment(c *gin.Context) { f.addEntry(c, model.TransactionPayment) }

func (f *FakeBackend) addEntry(c *gin.Context, kind string) {
	var req model.LedgerEntry
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrAmountInvalid})
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cu, ok := f.customer(c)
	if !ok {
		return
	}
	if !req.Amount.GreaterThan(decimal.Zero) {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrAmountInvalid})
		return
	}
	desc := strings.TrimSpace(req.Description)
	msg := MsgDebtAdded
	if kind == model.TransactionPayment {
		if req.Amount.GreaterThan(f.summaryOf(cu).RemainingBalance) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrAmountTooLarge})
			return
		}
		msg = MsgPaymentRecorded
	}
	if desc == "" {
		desc = typeLabel(kind)
	}

	id := f.nextTx
	f.nextTx++
	f.clock = f.clock.Add(time.Minute)
	t := &fakeTransaction{id: id, customerID: cu.id, amount: req.Amount, kind: kind, desc: desc, createdAt: f.clock}
	f.transactions[id] = t
	c.JSON(http.StatusCreated, gin.H{"message": msg, "transaction": toTransaction(t), "customer": f.summaryOf(cu)})
}

func (f *FakeBackend) deleteTransaction(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.transactions[id]
	if !ok {
		c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte("<h1>Not Found</h1>"))
		return
	}
	delete(f.transactions, id)
	var owner any
	if cu, ok := f.customers[t.customerID]; ok {
		owner = f.summaryOf(cu)
	}
	c.JSON(http.StatusOK, gin.H{"message": MsgTransactionDeleted, "customer": owner})
}

func (f *FakeBackend) summary(c *gin.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var s model.Summary
	for _, cu := range f.customers {
		cs := f.summaryOf(cu)
		s.TotalCustomers++
		s.TotalDebt = s.TotalDebt.Add(cs.TotalDebt)
		s.TotalPaid = s.TotalPaid.Add(cs.TotalPaid)
		s.TotalRemaining = s.TotalRemaining.Add(cs.RemainingBalance)
		if cs.IsPaidOff {
			s.PaidOffCustomers++
		}
	}
	s.ActiveCustomers = s.TotalCustomers - s.PaidOffCustomers
	s.TotalDebt = s.TotalDebt.Round(2)
	s.TotalPaid = s.TotalPaid.Round(2)
	s.TotalRemaining = s.TotalRemaining.Round(2)
	c.JSON(http.StatusOK, s)
}

func toTransaction(t *fakeTransaction) model.Transaction {
	return model.Transaction{
		ID:         t.id,
		CustomerID: t.customerID,
		Amount:     t.amount,
		Type:       t.kind,
		TypeLabel:  typeLabel(t.kind),
		Desc:       t.desc,
		CreatedAt:  t.createdAt.Format("2006-01-02 15:04"),
	}
}

func typeLabel(kind string) string {
	if kind == model.TransactionDebt {
		return "مديونية جديدة"
	}
	return "تسديد قسط"
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}
