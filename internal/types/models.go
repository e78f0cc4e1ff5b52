package types

import "time"

// Message is one chat record. DateTime keeps the raw exported timestamp so that
// output documents round-trip it unchanged; Timestamp is its parsed form.
type Message struct {
	Timestamp time.Time `json:"-"`
	DateTime  string    `json:"date_time"`
	Author    string    `json:"author"`
	Text      string    `json:"message"`
}

// Thread is a non-empty run of messages with no internal gap above the threading threshold.
type Thread []Message

// Token is a single tagged token (Penn Treebank tag set).
type Token struct {
	Text string `json:"text"`
	Tag  string `json:"tag"`
}

// Sentence is the token sequence of one sentence.
type Sentence []Token
