package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/installment-console/internal/listing"
	"github.com/maxviazov/installment-console/internal/logger"
	"github.com/maxviazov/installment-console/internal/service"
	"github.com/maxviazov/installment-console/pkg/response"
	"github.com/rs/zerolog"
)

const msgBadForm = "تعذر قراءة البيانات المرسلة"

// ActionHandler serves the mutations twice: as classic form posts answered
// with a redirect and a flash notice, and as JSON under UIPrefix.
type ActionHandler struct {
	svc   service.ActionService
	flash flash
	log   zerolog.Logger
}

func NewActionHandler(svc service.ActionService, f flash, log zerolog.Logger) *ActionHandler {
	return &ActionHandler{svc: svc, flash: f, log: log.With().Str("component", "actions").Logger()}
}

// RegisterForms mounts the Post/Redirect/Get routes.
func (h *ActionHandler) RegisterForms(r gin.IRoutes) {
	r.POST("/customers", h.addCustomerForm)
	r.POST("/customers/:id", h.updateCustomerForm)
	r.POST("/customers/:id/delete", h.deleteCustomerForm)
	r.POST("/customers/:id/debts", h.addDebtForm)
	r.POST("/customers/:id/payments", h.payForm)
	r.POST("/transactions/:id/delete", h.deleteTransactionForm)
}

// RegisterJSON mounts the same actions as JSON endpoints.
func (h *ActionHandler) RegisterJSON(r *gin.RouterGroup) {
	g := r.Group("/customers")
	{
		g.POST("", h.addCustomerJSON)
		g.PUT("/:id", h.updateCustomerJSON)
		g.DELETE("/:id", h.deleteCustomerJSON)
		g.POST("/:id/debts", h.addDebtJSON)
		g.POST("/:id/payments", h.payJSON)
	}
	r.DELETE("/transactions/:id", h.deleteTransactionJSON)
}

func paramID(c *gin.Context) int64 {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	return id
}

func (h *ActionHandler) redirect(c *gin.Context, n service.Notice, to string) {
	h.flash.set(c, n)
	c.Redirect(http.StatusSeeOther, to)
}

// bindForm reads the posted form into dst. An unreadable body never reaches
// the backend: it is logged and answered with an error notice at back.
func (h *ActionHandler) bindForm(c *gin.Context, dst any, back string) bool {
	if err := c.ShouldBind(dst); err != nil {
		l := logger.FromContext(c.Request.Context(), h.log)
		l.Warn().Err(err).
			Str("path", c.FullPath()).Msg("form binding failed")
		h.redirect(c, service.Notice{Severity: service.SeverityError, Message: msgBadForm}, back)
		return false
	}
	return true
}

func (h *ActionHandler) addCustomerForm(c *gin.Context) {
	var f service.CustomerForm
	if !h.bindForm(c, &f, "/") {
		return
	}
	n, _ := h.svc.AddCustomer(c.Request.Context(), f)
	h.redirect(c, n, "/")
}

func (h *ActionHandler) updateCustomerForm(c *gin.Context) {
	var f service.CustomerForm
	id := paramID(c)
	if !h.bindForm(c, &f, listing.DetailsPath(id)) {
		return
	}
	n, _ := h.svc.UpdateCustomer(c.Request.Context(), id, f)
	h.redirect(c, n, listing.DetailsPath(id))
}

func (h *ActionHandler) deleteCustomerForm(c *gin.Context) {
	id := paramID(c)
	n, err := h.svc.DeleteCustomer(c.Request.Context(), id)
	if err != nil {
		h.redirect(c, n, listing.DetailsPath(id))
		return
	}
	h.redirect(c, n, "/")
}

func (h *ActionHandler) addDebtForm(c *gin.Context) {
	var f service.EntryForm
	id := paramID(c)
	if !h.bindForm(c, &f, listing.DetailsPath(id)) {
		return
	}
	n, _ := h.svc.AddDebt(c.Request.Context(), id, f)
	h.redirect(c, n, listing.DetailsPath(id))
}

func (h *ActionHandler) payForm(c *gin.Context) {
	var f service.EntryForm
	id := paramID(c)
	if !h.bindForm(c, &f, listing.DetailsPath(id)) {
		return
	}
	n, _ := h.svc.PayInstallment(c.Request.Context(), id, f)
	h.redirect(c, n, listing.DetailsPath(id))
}

// deleteTransactionForm returns to the owning customer when the form says who that is.
func (h *ActionHandler) deleteTransactionForm(c *gin.Context) {
	n, _ := h.svc.DeleteTransaction(c.Request.Context(), paramID(c))
	to := "/"
	if owner, err := strconv.ParseInt(c.PostForm("customer_id"), 10, 64); err == nil && owner > 0 {
		to = listing.DetailsPath(owner)
	}
	h.redirect(c, n, to)
}

func (h *ActionHandler) addCustomerJSON(c *gin.Context) {
	var f service.CustomerForm
	if err := c.ShouldBindJSON(&f); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	n, err := h.svc.AddCustomer(c.Request.Context(), f)
	response.WriteNotice(c, n, err)
}

func (h *ActionHandler) updateCustomerJSON(c *gin.Context) {
	var f service.CustomerForm
	if err := c.ShouldBindJSON(&f); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	n, err := h.svc.UpdateCustomer(c.Request.Context(), paramID(c), f)
	response.WriteNotice(c, n, err)
}

func (h *ActionHandler) deleteCustomerJSON(c *gin.Context) {
	n, err := h.svc.DeleteCustomer(c.Request.Context(), paramID(c))
	response.WriteNotice(c, n, err)
}

func (h *ActionHandler) addDebtJSON(c *gin.Context) {
	var f service.EntryForm
	if err := c.ShouldBindJSON(&f); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	n, err := h.svc.AddDebt(c.Request.Context(), paramID(c), f)
	response.WriteNotice(c, n, err)
}

func (h *ActionHandler) payJSON(c *gin.Context) {
	var f service.EntryForm
	if err := c.ShouldBindJSON(&f); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	n, err := h.svc.PayInstallment(c.Request.Context(), paramID(c), f)
	response.WriteNotice(c, n, err)
}

func (h *ActionHandler) deleteTransactionJSON(c *gin.Context) {
	n, err := h.svc.DeleteTransaction(c.Request.Context(), paramID(c))
	response.WriteNotice(c, n, err)
}
