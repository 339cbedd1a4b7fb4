package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"vaktdata.no/vaktdata/validation"
)

// The status constants must stay in lockstep with the wire values
// existing clients depend on.
func TestStatusWireValues(t *testing.T) {
	assert.Equal(t, "utkast", string(StatusDraft))
	assert.Equal(t, "klar", string(StatusReady))
	assert.Equal(t, "godkjent", string(StatusApproved))
	assert.Equal(t, "sendt", string(StatusSent))

	assert.Equal(t, validation.EntryStatuses, []string{
		string(StatusDraft), string(StatusReady), string(StatusApproved), string(StatusSent),
	})
}
