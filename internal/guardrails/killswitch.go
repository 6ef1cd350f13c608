package guardrails

import (
	"os"
)

const (
	killSwitchFile = "STOP"
	killSwitchEnv  = "KILL_SWITCH"
)

// KillSwitchEngaged reports whether the operator has asked for all batch
// work to stop: either a STOP file exists in the working directory or
// KILL_SWITCH=TRUE is set in the environment.
//
// The check is advisory. Callers poll it before starting a batch; the
// engine itself never consults it, and a batch already in flight runs to
// completion. Each row's output is independent and idempotent, so
// abandoning between batches leaves no inconsistent state.
func KillSwitchEngaged() bool {
	if os.Getenv(killSwitchEnv) == "TRUE" {
		return true
	}
	if _, err := os.Stat(killSwitchFile); err == nil {
		return true
	}
	return false
}
