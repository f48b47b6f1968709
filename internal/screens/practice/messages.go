package practice

import "time"

// bufferUpdatedMsg is sent when the buffer signals a state change.
type bufferUpdatedMsg struct{}

// answerSavedMsg reports the outcome of persisting an answer.
type answerSavedMsg struct {
	Err error
}

// timerTickMsg is sent every second to advance the session clock.
type timerTickMsg time.Time
