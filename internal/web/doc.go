// Package web renders the album frontend: an app shell that routes "/" to the album list view and
// "/albums/{id}" to the album detail view.
//
// # Views
//
// Each view is a small state machine: [StateLoading] until its single fetch settles, then [StateSuccess]
// or [StateError]. A page request renders the view in its loading state (a spinner carrying an hx-get for
// the matching fragment endpoint). htmx loads the fragment on page load, and the fragment handler runs
// the fetch and renders the settled view.
//
// # Routes
//
//	GET /                    → album list page (loading)
//	GET /albums/{id}         → album detail page (loading)
//	GET /views/albums        → album list fragment (success | error)
//	GET /views/albums/{id}   → album detail fragment (success | error)
//	GET /*                   → empty page container
//
// A page request counts as a mount and drops the view's cached fetch, so each mount fetches fresh.
// Requests carrying HX-Request, or ?render=inline, resolve the view in the same response.
//
// # Templates
//
// Templates live under templates/ and are embedded into the binary. Bootstrap and htmx are loaded from a CDN.
package web
