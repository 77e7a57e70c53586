package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/installment-console/internal/service"
	"github.com/maxviazov/installment-console/pkg/response"
)

// UIHandler serves the read-side view-models as JSON for script-driven front-ends.
type UIHandler struct {
	views   service.ViewService
	perPage int
}

func NewUIHandler(views service.ViewService, perPage int) *UIHandler {
	return &UIHandler{views: views, perPage: perPage}
}

func (h *UIHandler) Register(r *gin.RouterGroup) {
	r.GET("/listing", h.listing)
	r.GET("/summary", h.summary)
	r.GET("/customers/:id", h.customer)
}

func (h *UIHandler) listing(c *gin.Context) {
	view, err := h.views.Listing(c.Request.Context(), listingPage(c, h.perPage))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, view)
}

func (h *UIHandler) summary(c *gin.Context) {
	cards, err := h.views.Dashboard(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, cards)
}

func (h *UIHandler) customer(c *gin.Context) {
	details, err := h.views.Customer(c.Request.Context(), paramID(c))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, details)
}
