package models

// Page translates the from/size query parameters into a limit/offset
// pair. The offset snaps to a whole page boundary: page index is
// from/size, so from=5,size=10 reads the first page.
type Page struct {
	Limit  int
	Offset int
}

func NewPage(from, size int) Page {
	return Page{Limit: size, Offset: from / size * size}
}
