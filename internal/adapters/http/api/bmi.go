package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	service "github.com/okian/fitcheck/internal/app"
	"github.com/okian/fitcheck/internal/domain/bmi"
	"github.com/okian/fitcheck/internal/domain/model"
)

// maxBodyBytes bounds the size of a calculation request.
const maxBodyBytes = 4 << 10

// BMIDependencies defines the interface for BMI submissions.
type BMIDependencies interface {
	Submit(ctx context.Context, unit model.MeasurementUnit, weight, height string) (service.Outcome, error)
}

// BMIHandler handles calculation requests.
type BMIHandler struct {
	deps BMIDependencies
}

// NewBMIHandler creates a new BMI handler.
func NewBMIHandler(deps BMIDependencies) *BMIHandler {
	return &BMIHandler{deps: deps}
}

// bmiRequest mirrors the OpenAPI schema for POST /api/bmi. Weight and height
// are kept as text so "70,5" and 70.5 go through the same parser.
type bmiRequest struct {
	Unit   string
	Weight string
	Height string
}

// parseBMIRequest reads a JSON object whose weight and height may be numbers
// or strings.
func parseBMIRequest(body []byte) (bmiRequest, error) {
	if !gjson.ValidBytes(body) {
		return bmiRequest{}, errors.New("body is not valid JSON")
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return bmiRequest{}, errors.New("body must be a JSON object")
	}
	req := bmiRequest{Unit: "metric"}
	if u := doc.Get("unit"); u.Exists() {
		if u.Type != gjson.String {
			return bmiRequest{}, errors.New("unit must be a string")
		}
		req.Unit = u.String()
	}
	var err error
	if req.Weight, err = numberField(doc, "weight"); err != nil {
		return bmiRequest{}, err
	}
	if req.Height, err = numberField(doc, "height"); err != nil {
		return bmiRequest{}, err
	}
	return req, nil
}

// numberField returns the raw text of a number or string field. A missing
// field reads as empty and is rejected later by validation.
func numberField(doc gjson.Result, name string) (string, error) {
	v := doc.Get(name)
	switch v.Type {
	case gjson.Null:
		return "", nil
	case gjson.Number:
		return v.Raw, nil
	case gjson.String:
		return v.String(), nil
	default:
		return "", errors.New(name + " must be a number or a string")
	}
}

// HandlePostBMI handles POST /api/bmi requests.
func (h *BMIHandler) HandlePostBMI(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_bmi"
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	req, err := parseBMIRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	unit, err := bmi.ParseUnit(req.Unit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown_unit", WrapKind(op, ErrUnknownUnit, err))
		return
	}

	out, err := h.deps.Submit(r.Context(), unit, req.Weight, req.Height)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, out)
	case bmi.IsValidation(err):
		// Validation messages are user-facing and returned as-is.
		writeError(w, http.StatusUnprocessableEntity, bmi.Reason(err), err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", WrapKind(op, ErrInternal, err))
	}
}
