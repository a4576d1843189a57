package errors

import "strings"

// MetaReason is the metadata key that carries the domain error kind
const MetaReason = "reason"

// Domain error reasons
const (
	ReasonMissingCreature   = "missing_creature"
	ReasonInvalidRarity     = "invalid_rarity"
	ReasonCyclicAncestry    = "cyclic_ancestry"
	ReasonReusedEngineState = "reused_engine_state"
)

// MissingCreature reports a name that does not resolve in the roster
func MissingCreature(name string) *Error {
	return NotFoundf("creature %q is not in the roster", name).
		WithMeta(MetaReason, ReasonMissingCreature).
		WithMeta("creature", name)
}

// InvalidRarity reports a rarity letter outside C, R, E, L, U, A
func InvalidRarity(letter string) *Error {
	return InvalidArgumentf("unknown rarity %q", letter).
		WithMeta(MetaReason, ReasonInvalidRarity).
		WithMeta("rarity", letter)
}

// CyclicAncestry reports a creature that is its own ancestor.
// path lists the names along the cycle, starting and ending with the same name.
func CyclicAncestry(path []string) *Error {
	return FailedPreconditionf("ancestry cycle: %s", strings.Join(path, " -> ")).
		WithMeta(MetaReason, ReasonCyclicAncestry).
		WithMeta("path", path)
}

// ReusedEngineState reports a second pass on a finalized engine
func ReusedEngineState() *Error {
	return FailedPrecondition("engine pass already finalized; call Reset before computing again").
		WithMeta(MetaReason, ReasonReusedEngineState)
}

// GetReason extracts the domain reason from an error, or "" if none
func GetReason(err error) string {
	reason, _ := GetMeta(err)[MetaReason].(string)
	return reason
}

// IsMissingCreature checks if an error is a missing creature error
func IsMissingCreature(err error) bool {
	return GetReason(err) == ReasonMissingCreature
}

// IsInvalidRarity checks if an error is an invalid rarity error
func IsInvalidRarity(err error) bool {
	return GetReason(err) == ReasonInvalidRarity
}

// IsCyclicAncestry checks if an error is a cyclic ancestry error
func IsCyclicAncestry(err error) bool {
	return GetReason(err) == ReasonCyclicAncestry
}

// IsReusedEngineState checks if an error is a reused engine state error
func IsReusedEngineState(err error) bool {
	return GetReason(err) == ReasonReusedEngineState
}
