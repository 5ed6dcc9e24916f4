package restclient

import "github.com/volatiletech/null/v8"

// Page is the list envelope every collection endpoint returns:
// {count, next, previous, results}.
type Page[T any] struct {
	Count    int         `json:"count"`
	Next     null.String `json:"next"`
	Previous null.String `json:"previous"`
	Results  []T         `json:"results"`
}
