package resolver

import (
	"strings"
)

// Entity is anything in a board document that has an id and a display name.
type Entity interface {
	EntityID() string
	EntityName() string
}

// Resolve returns the id of the first entity whose name matches query.
func Resolve[T Entity](items []T, query string) (string, bool) {
	return ResolveBy(items,
		func(item T) string { return item.EntityName() },
		func(item T) string { return item.EntityID() },
		query)
}

// ResolveBy is Resolve for values that do not implement Entity. name and id
// extract the compared name and the returned identifier. Items without an id
// cannot be referenced and never match.
func ResolveBy[T any](items []T, name, id func(T) string, query string) (string, bool) {
	q := Slug(query)
	if q == "" {
		return "", false
	}
	for _, item := range items {
		if itemID := id(item); itemID != "" && strings.Contains(Slug(name(item)), q) {
			return itemID, true
		}
	}
	return "", false
}

// Matches returns the ids of every entity whose name matches query, in
// collection order. The first element is what Resolve would return.
func Matches[T Entity](items []T, query string) []string {
	q := Slug(query)
	if q == "" {
		return nil
	}
	var ids []string
	for _, item := range items {
		if id := item.EntityID(); id != "" && strings.Contains(Slug(item.EntityName()), q) {
			ids = append(ids, id)
		}
	}
	return ids
}

// Names returns the display names of items in order.
func Names[T Entity](items []T) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.EntityName())
	}
	return names
}
