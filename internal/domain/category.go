package domain

// Category is a node in the shop's category tree. Path holds the full chain
// of category ids from the tree root down to the category itself, each
// segment delimited by pipes, e.g. "|3|7|12|".
type Category struct {
	ID   int64
	Name string
	Path string
}
