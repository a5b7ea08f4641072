/*
Package router registers trailhead's pages on a gorilla/mux router.

Pages come in three groups, each registered in one call so none can slip past its guard:

	rt.AuthedRoutes(signIn, h.AuthedRoutes())    // dashboard, profile, sign out
	rt.UnauthedRoutes(landing, h.UnauthedRoutes()) // sign in, sign up
	rt.HandleRoutes(h.Routes())                   // OAuth callback
*/
package router
