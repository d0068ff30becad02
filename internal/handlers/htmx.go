package handlers

import "net/http"

// wantsFragment reports whether r came from htmx and can be answered with the
// page content alone. History restores replace the whole body, so they get
// the full document.
func wantsFragment(r *http.Request) bool {
	if r.Header.Get("HX-History-Restore-Request") == "true" {
		return false
	}
	return r.Header.Get("HX-Request") == "true" || r.Header.Get("HX-Boosted") == "true"
}
