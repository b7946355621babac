package domain

import "time"

// GenerationRecord is the persisted state of the last successful pass for a client project.
type GenerationRecord struct {
	Project    string    `json:"project,omitzero"`
	InputHash  string    `json:"input_hash,omitzero"`
	OutputHash string    `json:"output_hash,omitzero"`
	OutputFile string    `json:"output_file,omitzero"`
	Timestamp  time.Time `json:"timestamp,omitzero"`
}
