package app

import (
	"time"

	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/store"
)

// Event describes one command handed to the player.
type Event struct {
	Command    gesture.Decision `json:"command"`
	Player     string           `json:"player"`
	Handedness string           `json:"handedness"`
	Fingers    string           `json:"fingers"`
	X          int              `json:"x"`
	Region     string           `json:"region"`
	Time       time.Time        `json:"time"`
	Error      string           `json:"error,omitempty"`
}

func newEvent(ev gesture.Evaluation, playerName string, at time.Time, err error) Event {
	e := Event{
		Command:    ev.Decision,
		Player:     playerName,
		Handedness: ev.Handedness.String(),
		Fingers:    ev.Fingers.String(),
		X:          ev.X,
		Region:     ev.Region.String(),
		Time:       at,
	}
	if err != nil {
		e.Error = err.Error()
	}
	return e
}

func (e Event) record() *store.Event {
	return &store.Event{
		Command:    e.Command.String(),
		Player:     e.Player,
		Handedness: e.Handedness,
		Fingers:    e.Fingers,
		X:          e.X,
		Region:     e.Region,
		Error:      e.Error,
		CreatedAt:  e.Time.UTC(),
	}
}
