package rest

import (
	"context"
	"net/http"

	"github.com/maxviazov/installment-console/internal/repository"
)

type pinger struct{ c *Client }

// NewPinger probes the backend through its cheapest read, the summary report.
func NewPinger(c *Client) repository.Pinger { return &pinger{c: c} }

func (p *pinger) Ping(ctx context.Context) error {
	return p.c.do(ctx, call{op: "ping", method: http.MethodGet, path: "/api/reports/summary"}, nil)
}
