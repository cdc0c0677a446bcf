package request

import (
	"fmt"
	"strconv"

	"github.com/NeuralTrust/Gatekeeper/pkg/domain/user"
)

// ListUsersRequest holds the raw page, limit and sort query parameters.
type ListUsersRequest struct {
	Page  string
	Limit string
	Sort  string
}

func (r ListUsersRequest) ToPagination() (user.Pagination, error) {
	page, err := parseOptionalInt("page", r.Page)
	if err != nil {
		return user.Pagination{}, err
	}
	limit, err := parseOptionalInt("limit", r.Limit)
	if err != nil {
		return user.Pagination{}, err
	}
	sorts, err := user.ParseSorts(r.Sort)
	if err != nil {
		return user.Pagination{}, err
	}
	return user.NewPagination(page, limit, sorts), nil
}

func parseOptionalInt(name, raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}
