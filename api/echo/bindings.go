package echoapi

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/spaceacademy/backoffice/core"
)

var orderingParam = "ordering"

type Ordering struct {
	Orderings []core.Ordering
}

// Bind reads the `ordering` query param, a comma-separated field list where a
// leading "-" means descending.
func (ord *Ordering) Bind(ctx echo.Context) {
	data := ctx.QueryParams()
	if len(data) == 0 {
		return
	}
	val, ok := data[orderingParam]
	if !ok || len(val) == 0 || val[0] == "" {
		return
	}

	for _, field := range strings.Split(val[0], ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = field[1:] // drop "-"
		}
		ord.Orderings = append(ord.Orderings, core.Ordering{Field: field, Ascending: !descending})
	}
}

// intParam parses a numeric path param; anything non-numeric is a 404, same
// as an id that matches nothing.
func intParam(ctx echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(ctx.Param(name))
	if err != nil {
		return 0, errHttpNotFound
	}
	return id, nil
}
