package api

import "encoding/json"

// ScheduledEmailPage is the data member of GET /emails/scheduled.
type ScheduledEmailPage struct {
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalCount int              `json:"total_count"`
	TotalPages int              `json:"total_pages"`
	Results    []ScheduledEmail `json:"results"`
}

// ScheduledEmail is one entry of a scheduled-email listing.
type ScheduledEmail struct {
	ReferenceID string `json:"reference_id"`
	Subject     string `json:"subject"`
	ScheduledAt string `json:"scheduled_at"`
	// Extra holds any additional members the API returned, undecoded.
	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the known members and keeps the rest in Extra.
func (e *ScheduledEmail) UnmarshalJSON(data []byte) error {
	type known ScheduledEmail
	var k known
	if err := json.Unmarshal(data, &k); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	delete(all, "reference_id")
	delete(all, "subject")
	delete(all, "scheduled_at")
	if len(all) > 0 {
		k.Extra = all
	}

	*e = ScheduledEmail(k)
	return nil
}
