package ui

import (
	"net/url"
	"strings"
)

// RouteKind distinguishes the two screens.
type RouteKind int

const (
	RouteList RouteKind = iota
	RouteLesson
)

const lessonRoutePrefix = "/lesson/"

// Route addresses a screen: "/" for the list, "/lesson/:id" for a lesson.
type Route struct {
	Kind RouteKind
	ID   string
}

// ListRoute returns the catalog list route.
func ListRoute() Route { return Route{Kind: RouteList} }

// LessonRoute returns the detail route for id.
func LessonRoute(id string) Route { return Route{Kind: RouteLesson, ID: id} }

// ParseRoute maps a path to a route. Anything that is not a well-formed
// lesson path falls back to the list.
func ParseRoute(path string) Route {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, lessonRoutePrefix) {
		return ListRoute()
	}
	id := strings.TrimSuffix(path[len(lessonRoutePrefix):], "/")
	if id == "" || strings.Contains(id, "/") {
		return ListRoute()
	}
	if unescaped, err := url.PathUnescape(id); err == nil {
		id = unescaped
	}
	if id == "" {
		return ListRoute()
	}
	return LessonRoute(id)
}

// String renders the route as a path.
func (r Route) String() string {
	if r.Kind == RouteLesson {
		return lessonRoutePrefix + url.PathEscape(r.ID)
	}
	return "/"
}

// IsLesson reports whether r is a detail route.
func (r Route) IsLesson() bool {
	return r.Kind == RouteLesson
}
