// Package controller binds the customer form triggers to REST calls.
//
// A Controller owns the displayed view: the form values, the flash message and
// the last search results. Each trigger snapshots the form, empties the flash
// region, issues one request and commits the outcome against whatever view is
// current when the response arrives. Overlapping triggers are allowed and the
// last response to arrive wins.
//
//	ctl := controller.New(api, controller.WithPresenter(presenter))
//	ctl.SetField(customer.FieldID, "7")
//	err := ctl.Retrieve(ctx)
package controller
