package agent

import (
	"encoding/json"
	"fmt"
)

// ResultRecord is the structured output of a completed run. Result
// and Answer both carry the clean answer; FullResponse is the
// canonical Query/Result form for consumers that want it.
type ResultRecord struct {
	Result       string `json:"result"`
	Success      bool   `json:"success"`
	Query        string `json:"query"`
	Answer       string `json:"answer"`
	FullResponse string `json:"full_response"`
}

// NewResultRecord builds the record for a successful run.
func NewResultRecord(query, cleanAnswer string) *ResultRecord {
	return &ResultRecord{
		Result:       cleanAnswer,
		Success:      true,
		Query:        query,
		Answer:       cleanAnswer,
		FullResponse: fmt.Sprintf("Query: %s\nResult: %s", query, cleanAnswer),
	}
}

// JSON renders the record as indented JSON.
func (r *ResultRecord) JSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
