package listing

// LinkKind tells a pagination descriptor apart.
type LinkKind string

const (
	LinkPrev     LinkKind = "prev"
	LinkPage     LinkKind = "page"
	LinkEllipsis LinkKind = "ellipsis"
	LinkNext     LinkKind = "next"
)

// Link is one control of the pagination strip. Page is the target page for
// prev, page and next links and zero for an ellipsis.
type Link struct {
	Kind     LinkKind `json:"kind"`
	Page     int      `json:"page,omitempty"`
	Current  bool     `json:"current,omitempty"`
	Disabled bool     `json:"disabled,omitempty"`
}

// Window lays out the pagination strip: prev, the first and last page, the
// pages adjacent to current, and an ellipsis at distance exactly two from
// current, then next. A gap further away than that gets no ellipsis; that is
// how the listing has always rendered and it is kept as is.
func Window(current, total int) []Link {
	if total <= 1 {
		return nil
	}

	links := make([]Link, 0, 9)
	links = append(links, Link{Kind: LinkPrev, Page: current - 1, Disabled: current == 1})

	for i := 1; i <= total; i++ {
		switch {
		case i == 1 || i == total || (i >= current-1 && i <= current+1):
			links = append(links, Link{Kind: LinkPage, Page: i, Current: i == current})
		case i == current-2 || i == current+2:
			links = append(links, Link{Kind: LinkEllipsis, Disabled: true})
		}
	}

	links = append(links, Link{Kind: LinkNext, Page: current + 1, Disabled: current == total})
	return links
}
