package connect

import (
	"walletgo/internal/providers"
)

// Phase names the active variant of the connection state union.
type Phase string

const (
	PhaseInactive       Phase = "inactive"
	PhaseActivating     Phase = "activating"
	PhaseActive         Phase = "active"
	PhaseRejectedByUser Phase = "rejected_by_user"
	PhaseAlreadyPending Phase = "already_pending"
	PhaseFailed         Phase = "failed"
)

// State is the connection state machine value. Connector is set on every
// phase except PhaseInactive and records which provider handle the current
// attempt negotiates with. The machine never owns the handle, it only points
// at one of the registry's process-wide instances.
type State struct {
	Phase     Phase
	Connector *providers.Handle
}

func Inactive() State {
	return State{Phase: PhaseInactive}
}

func Activating(connector *providers.Handle) State {
	return State{Phase: PhaseActivating, Connector: connector}
}

func Active(connector *providers.Handle) State {
	return State{Phase: PhaseActive, Connector: connector}
}

func RejectedByUser(connector *providers.Handle) State {
	return State{Phase: PhaseRejectedByUser, Connector: connector}
}

func AlreadyPending(connector *providers.Handle) State {
	return State{Phase: PhaseAlreadyPending, Connector: connector}
}

func Failed(connector *providers.Handle) State {
	return State{Phase: PhaseFailed, Connector: connector}
}

func (s State) IsInactive() bool {
	return s.Phase == PhaseInactive
}

func (s State) String() string {
	if s.Connector == nil {
		return string(s.Phase)
	}

	return string(s.Phase) + "(" + s.Connector.String() + ")"
}
