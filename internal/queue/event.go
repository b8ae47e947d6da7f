// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/iliyamo/client-accounts/internal/model"
)

// Event types carried in ClientEvent.Type.
const (
	ClientCreated = "client.created"
	ClientUpdated = "client.updated"
	ClientDeleted = "client.deleted"
)

// ClientEvent is published after a client row was successfully written.  It
// carries enough for downstream consumers to react without querying the
// primary database.  Nom, Solde and Obs are empty for deletions.
type ClientEvent struct {
	Type       string   `json:"type"`
	NumCompte  int64    `json:"numCompte"`
	Nom        string   `json:"nom,omitempty"`
	Solde      *float64 `json:"solde,omitempty"`
	Obs        string   `json:"obs,omitempty"`
	OccurredAt string   `json:"occurredAt"`
}

// NewClientEvent builds a created/updated event for c stamped with the
// current UTC time.
func NewClientEvent(typ string, c model.Client) ClientEvent {
	solde := c.Solde
	return ClientEvent{
		Type:       typ,
		NumCompte:  c.NumCompte,
		Nom:        c.Nom,
		Solde:      &solde,
		Obs:        model.Classify(c.Solde),
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// NewDeletedEvent builds a client.deleted event.
func NewDeletedEvent(numCompte int64) ClientEvent {
	return ClientEvent{
		Type:       ClientDeleted,
		NumCompte:  numCompte,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
