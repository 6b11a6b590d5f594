// Package enginerrors defines the engine's typed error kinds, grounded
// on the platform's AppError pattern.
package enginerrors

import "fmt"

// AppError is a coded error with an optional human-readable detail,
// matching the platform's error envelope shape.
type AppError struct {
	Code    string
	Message string
	Details string
}

func New(code, message string, details ...string) *AppError {
	e := &AppError{Code: code, Message: message}
	if len(details) > 0 {
		e.Details = details[0]
	}
	return e
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error codes for every named failure mode the engine's public surface
// can produce.
const (
	CodeUnknownMode              = "UNKNOWN_MODE"
	CodeDuplicateModeRegistration = "DUPLICATE_MODE_REGISTRATION"
	CodeRegistryFrozen           = "REGISTRY_FROZEN"
	CodeUnknownTeamReference     = "UNKNOWN_TEAM_REFERENCE"
	CodeInvalidSimulationCount   = "INVALID_SIMULATION_COUNT"
	CodeInvalidWorkerCount       = "INVALID_WORKER_COUNT"
	CodeInvalidBracket           = "INVALID_BRACKET"
	CodeInvalidAdvancement       = "INVALID_ADVANCEMENT"
)

func UnknownMode(id string, available []string) *AppError {
	return New(CodeUnknownMode, fmt.Sprintf("mode %q is not registered", id), fmt.Sprintf("available: %v", available))
}

func DuplicateModeRegistration(id string) *AppError {
	return New(CodeDuplicateModeRegistration, fmt.Sprintf("mode %q is already registered", id))
}

func RegistryFrozen(id string) *AppError {
	return New(CodeRegistryFrozen, fmt.Sprintf("cannot register %q, registry is frozen", id))
}

func UnknownTeamReference(teamID, slotID string) *AppError {
	return New(CodeUnknownTeamReference, fmt.Sprintf("team %q referenced by slot %q has no metrics record", teamID, slotID))
}

func InvalidSimulationCount(n int) *AppError {
	return New(CodeInvalidSimulationCount, fmt.Sprintf("simulation count must be positive, got %d", n))
}

func InvalidWorkerCount(n int) *AppError {
	return New(CodeInvalidWorkerCount, fmt.Sprintf("worker count must be positive, got %d", n))
}
