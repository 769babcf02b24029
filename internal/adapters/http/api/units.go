package api

import (
	"net/http"

	"github.com/okian/fitcheck/internal/domain/bmi"
	"github.com/okian/fitcheck/internal/domain/model"
)

// UnitsDependencies defines the interface for unit label lookups.
type UnitsDependencies interface {
	Units(unit model.MeasurementUnit) model.UnitLabels
}

// UnitsHandler handles unit label requests.
type UnitsHandler struct {
	deps UnitsDependencies
}

// NewUnitsHandler creates a new units handler.
func NewUnitsHandler(deps UnitsDependencies) *UnitsHandler {
	return &UnitsHandler{deps: deps}
}

// HandleGetUnits handles GET /api/units/{unit} requests.
func (h *UnitsHandler) HandleGetUnits(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_units"
	unit, err := bmi.ParseUnit(r.PathValue("unit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_unit", WrapKind(op, ErrUnknownUnit, err))
		return
	}
	writeJSON(w, http.StatusOK, h.deps.Units(unit))
}
