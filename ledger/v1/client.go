package v1

// LedgerClient talks to the external payroll ledger, the system of record
// for finalized hours.
type LedgerClient struct {
	Transport   *Transport
	TimeEntries *TimeEntryEndpoint
}

// NewLedgerClient initializes the API client
func NewLedgerClient(baseURL string, token string) *LedgerClient {
	t := NewTransport(baseURL, token)
	return &LedgerClient{
		Transport:   t,
		TimeEntries: &TimeEntryEndpoint{transport: t},
	}
}
