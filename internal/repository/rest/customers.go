package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/maxviazov/installment-console/internal/model"
	"github.com/maxviazov/installment-console/internal/repository"
)

type customerRepository struct{ c *Client }

func NewCustomerRepository(c *Client) repository.CustomerRepository {
	return &customerRepository{c: c}
}

// listResponse mirrors GET /api/customers.
type listResponse struct {
	Customers   []model.CustomerSummary `json:"customers"`
	Total       int                     `json:"total"`
	Pages       int                     `json:"pages"`
	CurrentPage int                     `json:"current_page"`
	PerPage     int                     `json:"per_page"`
	HasNext     bool                    `json:"has_next"`
	HasPrev     bool                    `json:"has_prev"`
}

// messageResponse is the {"message": ...} envelope every mutation answers with.
type messageResponse struct {
	Message string `json:"message"`
}

func (r *customerRepository) List(ctx context.Context, p repository.Page) (model.PageResult[model.CustomerSummary], error) {
	var body listResponse
	err := r.c.do(ctx, call{op: "customers.list", method: http.MethodGet, path: "/api/customers", query: p.Values()}, &body)
	if err != nil {
		return model.PageResult[model.CustomerSummary]{}, err
	}
	items := body.Customers
	if items == nil {
		items = []model.CustomerSummary{}
	}
	return model.PageResult[model.CustomerSummary]{
		Items:       items,
		Total:       body.Total,
		TotalPages:  body.Pages,
		CurrentPage: body.CurrentPage,
		PerPage:     body.PerPage,
		HasNext:     body.HasNext,
		HasPrev:     body.HasPrev,
	}, nil
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (model.CustomerSummary, error) {
	var out model.CustomerSummary
	err := r.c.do(ctx, call{op: "customers.get", method: http.MethodGet, path: customerPath(id)}, &out)
	if err != nil {
		return model.CustomerSummary{}, err
	}
	return out, nil
}

func (r *customerRepository) Create(ctx context.Context, nc model.NewCustomer) (string, error) {
	var out messageResponse
	err := r.c.do(ctx, call{op: "customers.create", method: http.MethodPost, path: "/api/customers", body: nc}, &out)
	return out.Message, err
}

func (r *customerRepository) Update(ctx context.Context, id int64, patch model.CustomerPatch) (string, error) {
	var out messageResponse
	err := r.c.do(ctx, call{op: "customers.update", method: http.MethodPut, path: customerPath(id), body: patch}, &out)
	return out.Message, err
}

func (r *customerRepository) Delete(ctx context.Context, id int64) (string, error) {
	var out messageResponse
	err := r.c.do(ctx, call{op: "customers.delete", method: http.MethodDelete, path: customerPath(id)}, &out)
	return out.Message, err
}

func customerPath(id int64) string {
	return "/api/customers/" + strconv.FormatInt(id, 10)
}

var _ repository.CustomerRepository = (*customerRepository)(nil)
