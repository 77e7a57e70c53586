package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/installment-console/internal/listing"
	"github.com/maxviazov/installment-console/internal/logger"
	"github.com/maxviazov/installment-console/internal/render"
	"github.com/maxviazov/installment-console/internal/repository"
	"github.com/maxviazov/installment-console/internal/service"
	"github.com/maxviazov/installment-console/pkg/response"
	"github.com/rs/zerolog"
)

// Messages for pages that could not be loaded.
const (
	msgListingFailed  = "حدث خطأ أثناء تحميل قائمة العملاء"
	msgCustomerAbsent = "العميل غير موجود"
	msgPageFailed     = "تعذر تحميل الصفحة"
)

// PageHandler serves the server-rendered console pages.
type PageHandler struct {
	views   service.ViewService
	perPage int
	flash   flash
	log     zerolog.Logger
}

func NewPageHandler(views service.ViewService, perPage int, f flash, log zerolog.Logger) *PageHandler {
	return &PageHandler{views: views, perPage: perPage, flash: f, log: log}
}

func (h *PageHandler) Register(r gin.IRoutes) {
	r.GET("/", h.index)
	r.GET("/customer/:id", h.customer)
}

// listingPage turns ?page=&search= into a fetch. A missing, malformed or
// non-positive page falls back to page 1 of the search.
func listingPage(c *gin.Context, perPage int) repository.Page {
	st := listing.NewState(perPage)
	p := st.SearchFor(c.Query("search"))
	st.Search = p.Search
	if n, err := strconv.Atoi(strings.TrimSpace(c.Query("page"))); err == nil {
		if requested, ok := st.RequestPage(n); ok {
			p = requested
		}
	}
	return p
}

func (h *PageHandler) index(c *gin.Context) {
	ctx := c.Request.Context()
	p := listingPage(c, h.perPage)
	page := render.IndexPage{Search: p.Search, Notice: h.flash.pop(c)}

	view, err := h.views.Listing(ctx, p)
	if err != nil {
		// the listing is the page; without it only the error remains
		h.renderError(c, err, msgListingFailed)
		return
	}
	page.View = view

	cards, err := h.views.Dashboard(ctx)
	if err != nil {
		l := logger.FromContext(ctx, h.log)
		l.Warn().Err(err).Msg("summary unavailable, rendering listing only")
		page.Partial = true
	}
	page.Cards = cards

	c.HTML(http.StatusOK, render.IndexTemplate, page)
}

func (h *PageHandler) customer(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	details, err := h.views.Customer(c.Request.Context(), id)
	if err != nil {
		msg := msgPageFailed
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, service.ErrInvalidInput) {
			msg = msgCustomerAbsent
			err = repository.ErrNotFound
		}
		h.renderError(c, err, msg)
		return
	}
	c.HTML(http.StatusOK, render.CustomerTemplate, render.CustomerPage{
		Customer:     details.Customer,
		Transactions: details.Transactions,
		Notice:       h.flash.pop(c),
	})
}

func (h *PageHandler) renderError(c *gin.Context, err error, msg string) {
	status, _ := response.MapError(err)
	_ = c.Error(err)
	if m := repository.ServerMessage(err); m != "" {
		msg = m
	}
	c.HTML(status, render.ErrorTemplate, render.ErrorPage{Status: status, Message: msg})
}
