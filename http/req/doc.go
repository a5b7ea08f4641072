/*
Package req fills structs from what a browser or script sends trailhead and checks them.

A [Parser] reads JSON bodies, urlencoded forms and query strings.
"json" or "schema" tags name fields, "validate" tags hold go-playground/validator rules,
and "label" names a field in the messages [ValidationErrors.Fields] returns:

	type passwordForm struct {
		New string `schema:"newPassword" label:"Password" validate:"required,password"`
	}

Payloads that do not decode fail with trailhead.ErrBadFormat; rules that fail with ValidationErrors.
*/
package req
