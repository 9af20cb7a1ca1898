package solver

import "github.com/23skdu/longbow-bowyer/internal/accel"

// All builders follow the same shape: resolve the element kind, borrow a
// handle, dispatch the size query through the operation's kind table, pack
// the descriptor, and release the handle on every exit path. Failures are
// surfaced to the caller untouched; nothing here retries.

func fillMode(lower bool) accel.FillMode {
	if lower {
		return accel.FillModeLower
	}
	return accel.FillModeUpper
}

func buildOK(op string) {
	buildsTotal.WithLabelValues(op).Inc()
}

func buildFailed(op string, err error) error {
	buildFailures.WithLabelValues(op).Inc()
	return err
}
