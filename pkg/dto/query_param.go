package dto

type Filter struct {
	Limit    int    `query:"limit"`
	Page     int    `query:"page"`
	Q        string `query:"q"`
	Category string `query:"category"`
}

type PaginationMetadata struct {
	TotalCount uint64 `json:"total_count"`
	Page       uint64 `json:"page"`
	Limit      int    `json:"limit"`
}

type PaginationResponse struct {
	Metadata PaginationMetadata `json:"_metadata"`
	Records  interface{}        `json:"records"`
}

// Window returns the [start, end) bounds of the requested page over total
// items. A zero limit or page selects everything.
func (f Filter) Window(total int) (start, end int) {
	if f.Limit <= 0 || f.Page <= 0 {
		return 0, total
	}

	// pages past the end are empty, checked before multiplying so a huge
	// page cannot overflow
	pages := total / f.Limit
	if total%f.Limit != 0 {
		pages++
	}
	if f.Page > pages {
		return total, total
	}

	start = (f.Page - 1) * f.Limit

	end = total
	if f.Limit < total-start {
		end = start + f.Limit
	}

	return start, end
}
