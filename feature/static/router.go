package static

import "net/http"

// NotFoundPage is served for every path outside the routing table.
const NotFoundPage = "404.html"

// Route is the routing decision for a request path.
type Route struct {
	// Path is the request path the route answers.
	Path string
	// Filename is the page loaded from the document root.
	Filename string
	// Status is the intended HTTP status code.
	Status int
}

var routes = []Route{
	{Path: "/", Filename: "index.html", Status: http.StatusOK},
	{Path: "/about", Filename: "about.html", Status: http.StatusOK},
}

// RouteFor maps a request path to its page. Unknown paths get the 404 page.
func RouteFor(path string) Route {
	for _, r := range routes {
		if r.Path == path {
			return r
		}
	}
	return Route{Path: path, Filename: NotFoundPage, Status: http.StatusNotFound}
}

// Routes returns the fixed routing table.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Pages returns every filename the router can select, the 404 page included.
func Pages() []string {
	pages := make([]string, 0, len(routes)+1)
	for _, r := range routes {
		pages = append(pages, r.Filename)
	}
	return append(pages, NotFoundPage)
}
