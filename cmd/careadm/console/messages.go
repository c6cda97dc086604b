package console

import (
	"github.com/charmbracelet/bubbles/table"

	"github.com/curanet/careadm/internal/listing"
)

// loginResultMsg reports the outcome of a credentials submission.
type loginResultMsg struct {
	err error
}

// profileMsg reports the outcome of the post-login profile reconciliation.
type profileMsg struct {
	err error
}

// residencesLoadedMsg reports the outcome of refreshing the visible
// residences and the persisted selection.
type residencesLoadedMsg struct {
	err error
}

// residenceSelectedMsg reports a picker selection being persisted.
type residenceSelectedMsg struct {
	err error
}

// optionsMsg carries one filter dimension's dropdown entries. The gen is
// echoed back so the controller can discard superseded responses.
type optionsMsg struct {
	kind    entityKind
	concern listing.Concern
	gen     uint64
	options []listing.Option
	err     error
}

// listingMsg carries one page (or scoped full list) of listing rows. The
// ids run parallel to rows so the cursor can name the record under it.
type listingMsg struct {
	kind  entityKind
	gen   uint64
	rows  []table.Row
	ids   []string
	total int
	err   error
}

// mutationMsg reports the outcome of a row mutation (currently delete).
type mutationMsg struct {
	kind entityKind
	err  error
}

// searchDebouncedMsg fires after the search input has been quiet for the
// configured window. Stale sequence numbers are ignored.
type searchDebouncedMsg struct {
	kind entityKind
	seq  int
}

// sessionEndedMsg reports that the session holder cleared the session,
// either by explicit logout or a backend token rejection.
type sessionEndedMsg struct{}
