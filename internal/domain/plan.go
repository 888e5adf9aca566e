package domain

import "time"

// Plan is a resolved install result recorded for later inspection
type Plan struct {
	ID           int64         `json:"id"`
	GameID       string        `json:"gameId"`
	ModName      string        `json:"modName"`
	Archive      string        `json:"archive"` // Path of the archive or directory that was listed
	Instructions []Instruction `json:"instructions,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// CopyCount returns the number of copy instructions in the plan
func (p *Plan) CopyCount() int {
	return (&InstallResult{Instructions: p.Instructions}).CopyCount()
}

// AttributeCount returns the number of attribute instructions in the plan
func (p *Plan) AttributeCount() int {
	return len(p.Instructions) - p.CopyCount()
}
