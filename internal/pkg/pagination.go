package pkg

// PerPage is the fixed page size for every listing endpoint.
const PerPage = 5

type PageMeta struct {
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
	Page  int   `json:"page"`
}

// Paginate normalizes the requested page (anything below 1 becomes 1) and
// returns the matching meta block plus the offset to hand to the repository.
// pages == ceil(total/PerPage); an out-of-range page simply yields an offset
// past the end, which lists as an empty page.
func Paginate(page int, total int64) (PageMeta, int) {
	if page < 1 {
		page = 1
	}
	pages := int((total + PerPage - 1) / PerPage)
	meta := PageMeta{Total: total, Pages: pages, Page: page}
	return meta, (page - 1) * PerPage
}

// InRange reports whether page addresses an existing page. Page 1 is always
// in range when there are no records at all.
func (m PageMeta) InRange() bool {
	if m.Page < 1 {
		return false
	}
	if m.Pages == 0 {
		return m.Page == 1
	}
	return m.Page <= m.Pages
}
