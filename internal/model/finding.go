package model

import (
	"strconv"
	"time"
)

// Finding is one marker occurrence found during a scan. Values are never
// mutated after the scanner builds them.
type Finding struct {
	File     string    `json:"file"`
	Line     int       `json:"line"`
	Column   int       `json:"column,omitempty"`
	Tag      string    `json:"tag"`
	Owner    string    `json:"owner,omitempty"`
	Message  string    `json:"message"`
	Text     string    `json:"text,omitempty"`
	Context  string    `json:"context,omitempty"`
	Scope    string    `json:"scope,omitempty"`
	Lang     string    `json:"lang,omitempty"`
	Modified time.Time `json:"modified,omitempty"`
}

// Location renders "file:line".
func (f Finding) Location() string {
	return f.File + ":" + strconv.Itoa(f.Line)
}
