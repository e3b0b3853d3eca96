package connect

import (
	"walletgo/internal/providers"
)

type actionKind string

const (
	actionStartActivating  actionKind = "start_activating"
	actionFail             actionKind = "fail"
	actionFinishActivating actionKind = "finish_activating"
	actionRetry            actionKind = "retry"
	actionCancel           actionKind = "cancel"
	actionDeactivate       actionKind = "deactivate"
)

// Action is a single reducer input. Actions are built by the view or by the
// wallet listeners, dispatched once and never stored.
type Action struct {
	kind      actionKind
	connector *providers.Handle
	err       error
}

// StartActivating records that an activation attempt on connector begins.
func StartActivating(connector *providers.Handle) Action {
	return Action{kind: actionStartActivating, connector: connector}
}

// Fail carries the wallet library's activation error.
func Fail(err error) Action {
	return Action{kind: actionFail, err: err}
}

// FinishActivating records that the wallet reported an active connection.
func FinishActivating() Action {
	return Action{kind: actionFinishActivating}
}

// Retry restarts the current attempt with the connector already stored in
// the state.
func Retry() Action {
	return Action{kind: actionRetry}
}

// Cancel abandons the current attempt.
func Cancel() Action {
	return Action{kind: actionCancel}
}

// Deactivate records that the wallet connection ended.
func Deactivate() Action {
	return Action{kind: actionDeactivate}
}

func (a Action) String() string {
	switch a.kind {
	case actionStartActivating:
		return string(a.kind) + "(" + a.connector.String() + ")"
	case actionFail:
		if a.err != nil {
			return string(a.kind) + "(" + a.err.Error() + ")"
		}

		return string(a.kind)
	default:
		return string(a.kind)
	}
}
