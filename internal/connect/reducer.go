package connect

import (
	"strings"

	"walletgo/internal/providers"
)

// Reduce maps (state, action) to the next state. It is pure and total: the
// second return value reports whether the action applied; when it is false
// the returned state equals the input and the caller is expected to log the
// ignored action.
func Reduce(state State, action Action) (State, bool) {
	switch action.kind {
	case actionStartActivating:
		return Activating(action.connector), true

	case actionFinishActivating:
		// The wallet can flip active without a preceding StartActivating
		// (eager connect resolving before any user click). The connector is
		// unknown in that case and defaults to the injected family handle.
		if state.IsInactive() {
			return Active(providers.Injected), true
		}

		return Active(state.Connector), true

	case actionFail:
		if state.IsInactive() {
			return state, false
		}

		return State{Phase: ClassifyFailure(action.err), Connector: state.Connector}, true

	case actionRetry:
		if state.IsInactive() {
			return state, false
		}

		return Activating(state.Connector), true

	case actionCancel, actionDeactivate:
		return Inactive(), true

	default:
		return state, false
	}
}

// ClassifyFailure buckets a wallet activation error by its human-readable
// text. The wallet library exposes no structured code, so matching is a
// case-insensitive substring check and stays best-effort across wallet
// versions and locales.
func ClassifyFailure(err error) Phase {
	if err == nil {
		return PhaseFailed
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "user rejected"):
		return PhaseRejectedByUser
	case strings.Contains(msg, "already pending"):
		return PhaseAlreadyPending
	default:
		return PhaseFailed
	}
}
