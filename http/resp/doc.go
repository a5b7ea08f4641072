/*
Package resp answers trailhead's HTTP requests with a rendered page, JSON or a redirect.

A single [*Responder], built once by ranger, knows the layouts pages render within,
the root URL redirects default to and the message shown when a page cannot render.
Handlers shape each response with [Fn]s:

	h.Html(w, r, resp.Authed(), resp.Tmpls("tmpl/profile/index.tmpl"), resp.Data(page))
	h.Redirect(w, r, resp.Url("/profile"), resp.Flash(saved))
*/
package resp
