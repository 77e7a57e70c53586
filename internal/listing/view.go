package listing

import (
	"github.com/maxviazov/installment-console/internal/model"
	"github.com/maxviazov/installment-console/internal/repository"
)

// Range returns the 1-based "showing start-end" bounds. For total == 0 it
// yields (1, 0); callers show the empty state instead of trusting it.
func Range(currentPage, perPage, total int) (start, end int) {
	start = (currentPage-1)*perPage + 1
	end = currentPage * perPage
	if total < end {
		end = total
	}
	return start, end
}

// View is everything a front-end needs to draw one listing response.
type View struct {
	State  State         `json:"state"`
	Rows   []CustomerRow `json:"rows"`
	Window []Link        `json:"pagination"`
	Start  int           `json:"showing_start"`
	End    int           `json:"showing_end"`
	Total  int           `json:"total"`
	Pages  int           `json:"pages"`
	Empty  bool          `json:"empty"`
}

// Build shapes the response to fetch p into a View.
func Build(p repository.Page, res model.PageResult[model.CustomerSummary]) View {
	st := Apply(p, res)
	ranked := DisplayRows(res.Items, st.Page, st.PerPage)
	rows := make([]CustomerRow, len(ranked))
	for i, r := range ranked {
		rows[i] = RowView(r)
	}
	start, end := Range(st.Page, st.PerPage, res.Total)
	return View{
		State:  st,
		Rows:   rows,
		Window: Window(st.Page, res.TotalPages),
		Start:  start,
		End:    end,
		Total:  res.Total,
		Pages:  res.TotalPages,
		Empty:  len(res.Items) == 0,
	}
}
