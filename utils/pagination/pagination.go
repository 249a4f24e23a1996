package pagination

import "strconv"

// PostsPerPage is the fixed page size for every listing in the app.
const PostsPerPage = 10

// Page describes one slice of an ordered result set. Number is 1-based.
type Page struct {
	Number      int   `json:"number"`
	NumPages    int   `json:"num_pages"`
	Count       int64 `json:"count"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
	Offset      int   `json:"-"`
	Limit       int   `json:"-"`
}

// ParsePageNumber reads a raw `page` query value; anything that is not a
// positive integer falls back to the first page.
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// GetPage clamps the requested page number into the valid range for the
// given total count and returns the resulting slice bounds. An empty result
// set still has exactly one (empty) page.
func GetPage(count int64, number, perPage int) Page {
	if perPage < 1 {
		perPage = PostsPerPage
	}
	numPages := int((count + int64(perPage) - 1) / int64(perPage))
	if numPages < 1 {
		numPages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > numPages {
		number = numPages
	}
	return Page{
		Number:      number,
		NumPages:    numPages,
		Count:       count,
		HasNext:     number < numPages,
		HasPrevious: number > 1,
		Offset:      (number - 1) * perPage,
		Limit:       perPage,
	}
}
