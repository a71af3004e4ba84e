// Package static answers one HTTP request per connection with a page from disk.
//
// Only the request line is parsed. GET requests are routed through a closed
// table (RouteFor) to index.html, about.html or 404.html; other methods get
// no response. A page that cannot be loaded, including a missing 404 page,
// is answered with a fixed 500 page. Request lines longer than the
// configured limit get a fixed 400 page.
//
// Handler implements server.Handler and always closes the connection.
package static
