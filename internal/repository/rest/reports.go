package rest

import (
	"context"
	"net/http"

	"github.com/maxviazov/installment-console/internal/model"
	"github.com/maxviazov/installment-console/internal/repository"
)

type reportRepository struct{ c *Client }

func NewReportRepository(c *Client) repository.ReportRepository {
	return &reportRepository{c: c}
}

func (r *reportRepository) Summary(ctx context.Context) (model.Summary, error) {
	var out model.Summary
	if err := r.c.do(ctx, call{op: "reports.summary", method: http.MethodGet, path: "/api/reports/summary"}, &out); err != nil {
		return model.Summary{}, err
	}
	return out, nil
}

var _ repository.ReportRepository = (*reportRepository)(nil)
