package pagination

const (
	// DefaultSize is the standard page size when one is not provided.
	DefaultSize = 25
	// MaxSize caps how many rows any listing request can ask for.
	MaxSize = 100
	// FirstPage is the 1-based index of the first page.
	FirstPage = 1
)

// Params holds page/size pagination inputs for listing requests.
type Params struct {
	Page int
	Size int
}

// Normalize enforces the first-page floor and the size bounds.
func (p Params) Normalize() Params {
	return Params{
		Page: NormalizePage(p.Page),
		Size: NormalizeSize(p.Size),
	}
}

// NormalizePage clamps a page number to the 1-based range.
func NormalizePage(page int) int {
	if page < FirstPage {
		return FirstPage
	}
	return page
}

// NormalizeSize enforces the configured default and maximum sizes.
func NormalizeSize(size int) int {
	if size <= 0 {
		return DefaultSize
	}
	if size > MaxSize {
		return MaxSize
	}
	return size
}

// TotalPages derives the page count for a total row count and page size.
func TotalPages(total, size int) int {
	size = NormalizeSize(size)
	if total <= 0 {
		return FirstPage
	}
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return pages
}
