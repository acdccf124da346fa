package domain

import "strings"

// Record is the persisted local authentication state. A record without a
// token is treated identically to an absent record.
type Record struct {
	Token            string `json:"notionToken,omitempty"`
	DefaultWorkspace string `json:"defaultWorkspace,omitempty"`
}

func (r Record) HasToken() bool {
	return strings.TrimSpace(r.Token) != ""
}
