package tui

import "tuntas/internal/action"

// reaction describes what a screen does with a dispatch outcome.
type reaction struct {
	closeForm bool // close the add/edit dialog
	openInfo  bool // open the deletion confirmation banner
	refetch   bool // reload the screen's data from the server
}

// reactTo is the outcome contract: a successful create or update closes
// the form, a successful delete opens the info banner, and any success
// triggers a wholesale re-fetch. Failure changes nothing on screen —
// dialogs stay open and no banner appears.
func reactTo(out action.Outcome) reaction {
	if !out.Success {
		return reaction{}
	}
	r := reaction{refetch: true}
	switch out.SubAction {
	case action.ActionCreate, action.ActionUpdate:
		r.closeForm = true
	case action.ActionDelete:
		r.openInfo = true
	}
	return r
}
