package core

// Ordering names a result field and a sort direction, as bound from the
// `ordering` query param. Repositories apply orderings they recognize and
// ignore the rest.
type Ordering struct {
	Field     string
	Ascending bool
}

func (ord Ordering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}
