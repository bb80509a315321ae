package loadout

import (
	"errors"
	"fmt"

	"github.com/lisongmechlab/lsml-sub001/internal/models"
)

// EquipResultType enumerates why a mutation cannot apply.
type EquipResultType int

const (
	Success EquipResultType = iota
	NotEnoughSlots
	TooHeavy
	ExceededMaxArmor
	NotSupported
	NeedEcm
	CannotRemoveECM
	LaaBeforeHa
)

var resultNames = []string{
	"success",
	"not enough slots",
	"too heavy",
	"exceeded max armor",
	"not supported",
	"stealth armor needs an ECM",
	"cannot remove ECM while stealth armor is equipped",
	"lower arm actuator must be present before hand actuator",
}

func (t EquipResultType) String() string {
	if t < 0 || int(t) >= len(resultNames) {
		return fmt.Sprintf("EquipResultType(%d)", int(t))
	}
	return resultNames[t]
}

// EquipResult is the outcome of a feasibility query, optionally tied to a location.
type EquipResult struct {
	Type        EquipResultType
	Location    models.Location
	HasLocation bool
}

// SuccessResult is the zero EquipResult.
var SuccessResult = EquipResult{}

// Fail returns a location-less failure.
func Fail(t EquipResultType) EquipResult {
	return EquipResult{Type: t}
}

// FailAt returns a failure for loc.
func FailAt(t EquipResultType, loc models.Location) EquipResult {
	return EquipResult{Type: t, Location: loc, HasLocation: true}
}

func (r EquipResult) IsSuccess() bool {
	return r.Type == Success
}

func (r EquipResult) String() string {
	if r.HasLocation {
		return fmt.Sprintf("%s (%s)", r.Type, r.Location)
	}
	return r.Type.String()
}

// Err converts a failed result into an *EquipError, and success into nil.
func (r EquipResult) Err() error {
	if r.IsSuccess() {
		return nil
	}
	return &EquipError{Result: r}
}

// EquipError carries a failed EquipResult out of a mutating operation.
type EquipError struct {
	Result EquipResult
}

func (e *EquipError) Error() string {
	return "cannot equip: " + e.Result.String()
}

// ResultOf extracts the EquipResult wrapped in err.
func ResultOf(err error) (EquipResult, bool) {
	var ee *EquipError
	if errors.As(err, &ee) {
		return ee.Result, true
	}
	return EquipResult{}, false
}
