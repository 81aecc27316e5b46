package pagination

const (
	// DefaultPageSize matches the dashboard tables' page length.
	DefaultPageSize = 6
	// MaxPageSize caps how many rows any page can request.
	MaxPageSize = 100
)

// Params holds offset pagination inputs from controllers.
type Params struct {
	Page     int
	PageSize int
}

// Meta describes the paged result alongside its data.
type Meta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// Normalize clamps the parameters to sane bounds.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	return p
}

// Slice returns the [start, end) bounds of the requested page for a
// collection of the given length, and the accompanying metadata. Start
// never exceeds the collection length so out-of-range pages yield an empty
// slice rather than a panic.
func (p Params) Slice(total int) (int, int, Meta) {
	p = p.Normalize()

	totalPages := 0
	if total > 0 {
		totalPages = (total + p.PageSize - 1) / p.PageSize
	}

	start := (p.Page - 1) * p.PageSize
	if start > total {
		start = total
	}
	end := start + p.PageSize
	if end > total {
		end = total
	}

	return start, end, Meta{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
