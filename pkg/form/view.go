package form

import (
	"fmt"

	"github.com/goliatone/go-customerform/pkg/customer"
)

// Fixed flash messages.
const (
	MessageSuccess     = "Success"
	MessageDeleted     = "Customer has been Deleted!"
	MessageSuspended   = "Customer has been Suspended!"
	MessageServerError = "Server error!"
)

// View is everything a presenter draws: the form, the single flash region and
// the most recent search results.
type View struct {
	Form  State
	Flash string
	// Results is nil until the first successful search.
	Results *Results
}

// Results holds the rows of the last successful search.
type Results struct {
	Rows []customer.Customer
}

// Len reports the number of rows.
func (r *Results) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// RowID returns the positional identifier of row i.
func RowID(i int) string {
	return fmt.Sprintf("row_%d", i)
}

// Columns lists the result table columns in display order.
func Columns() []string {
	return append([]string(nil), customer.Fields...)
}

// Transitions below are pure: they take the view current at commit time and
// return the next one.

// BeginRequest empties the flash region before a request is issued.
func BeginRequest(v View) View {
	v.Flash = ""
	return v
}

// Loaded overwrites the form with a customer returned by create, update or
// retrieve.
func Loaded(v View, c customer.Customer) View {
	v.Form = v.Form.Overwrite(c)
	v.Flash = MessageSuccess
	return v
}

// Failed surfaces a server error message and leaves the form alone.
func Failed(v View, message string) View {
	v.Flash = message
	return v
}

// RetrieveFailed clears every field except id and surfaces the message.
func RetrieveFailed(v View, message string) View {
	v.Form = v.Form.ClearedExceptID()
	v.Flash = message
	return v
}

// Deleted clears every field except id. The response body is ignored.
func Deleted(v View) View {
	v.Form = v.Form.ClearedExceptID()
	v.Flash = MessageDeleted
	return v
}

// DeleteFailed always reports the generic server error.
func DeleteFailed(v View) View {
	v.Flash = MessageServerError
	return v
}

// Cleared resets the form and the flash region. Rendered results stay.
func Cleared(v View) View {
	v.Form = State{}
	v.Flash = ""
	return v
}

// Searched replaces the result table and copies the first row into the form
// when there is one.
func Searched(v View, rows []customer.Customer) View {
	v.Results = &Results{Rows: append([]customer.Customer(nil), rows...)}
	if len(rows) > 0 {
		v.Form = v.Form.Overwrite(rows[0])
	}
	v.Flash = MessageSuccess
	return v
}

// Suspended overwrites the form with the suspended customer.
func Suspended(v View, c customer.Customer) View {
	v.Form = v.Form.Overwrite(c)
	v.Flash = MessageSuspended
	return v
}
