// Package integrity verifies that the document root can serve every route.
//
// The router selects from a closed set of pages (static.Pages). A page that
// is missing or unreadable is answered with the 500 page at request time, so
// this package lets operators find those problems before clients do.
//
// # Checks Provided
//
//   - Pages: loads each page through the same loader the server uses and
//     reports it as ok, missing or unreadable.
//
// # Fixes
//
//   - FixPages downloads missing pages from the configured bucket
//     (object key = storage prefix + page name) and moves them into place
//     atomically.
//
// # Usage
//
//	svc := integrity.NewService(fsys, client, cfg.Storage, logger)
//	report, err := svc.CheckPages(ctx)
//	if err == nil && len(report.Missing) > 0 {
//	    err = svc.FixPages(ctx, report.Missing)
//	}
package integrity
