package domain

// Category groups posts under an admin-managed, unique name.
type Category struct {
	ID   string
	Name string
}
