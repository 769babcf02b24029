package site

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	service "github.com/okian/fitcheck/internal/app"
	"github.com/okian/fitcheck/internal/domain/model"
	"github.com/okian/fitcheck/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

// brokenClear fails every confirmed clear.
type brokenClear struct {
	*service.Service
}

func (b brokenClear) Clear(_ context.Context, confirmed bool) error {
	if !confirmed {
		return service.ErrNotConfirmed
	}
	return errors.New("read-only")
}

func post(mux *http.ServeMux, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func get(mux *http.ServeMux, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestSiteHandler(t *testing.T) {
	Convey("Given the site registered over a fresh service", t, func() {
		ctx := context.Background()
		svc := service.New()
		mux := http.NewServeMux()
		Register(ctx, mux, svc)

		Convey("When loading the page", func() {
			w := get(mux, "/")

			Convey("Then metric labels and the empty placeholder are shown", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				body := w.Body.String()
				So(body, ShouldContainSubstring, `<span id="weight-unit">kg</span>`)
				So(body, ShouldContainSubstring, `placeholder="e.g. 175"`)
				So(body, ShouldContainSubstring, `<li class="empty">No history yet</li>`)
				So(strings.Count(body, "<li"), ShouldEqual, 1)
			})
		})

		Convey("When switching to imperial", func() {
			w := get(mux, "/?unit=imperial")

			Convey("Then pound and inch labels are shown", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				body := w.Body.String()
				So(body, ShouldContainSubstring, `<span id="weight-unit">lb</span>`)
				So(body, ShouldContainSubstring, `placeholder="e.g. 150"`)
				So(body, ShouldContainSubstring, `<option value="imperial" selected>`)
			})
		})

		Convey("When asking for an unknown unit", func() {
			w := get(mux, "/?unit=stone")

			Convey("Then the page falls back to metric with an error", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
				So(w.Body.String(), ShouldContainSubstring, `class="error"`)
				So(w.Body.String(), ShouldContainSubstring, `<span id="weight-unit">kg</span>`)
			})
		})

		Convey("When submitting a valid form", func() {
			w := post(mux, "/calculate", url.Values{"unit": {"metric"}, "weight": {"70"}, "height": {"175"}})

			Convey("Then the result and the new history row are rendered", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				body := w.Body.String()
				So(body, ShouldContainSubstring, "Your BMI: <strong>22.9</strong> (Normal)")
				So(body, ShouldContainSubstring, "<strong>22.9 — Normal</strong>")
				So(body, ShouldNotContainSubstring, "No history yet")
			})
		})

		Convey("When submitting an invalid form", func() {
			w := post(mux, "/calculate", url.Values{"unit": {"metric"}, "weight": {"abc"}, "height": {"175"}})

			Convey("Then the message is shown and inputs are kept", func() {
				So(w.Code, ShouldEqual, http.StatusUnprocessableEntity)
				body := w.Body.String()
				So(body, ShouldContainSubstring, "enter a valid weight (positive number)")
				So(body, ShouldContainSubstring, `value="abc"`)
				So(svc.History(ctx), ShouldBeEmpty)
			})
		})

		Convey("When clearing with confirmation", func() {
			_, err := svc.Submit(ctx, model.Metric, "70", "175")
			So(err, ShouldBeNil)
			w := post(mux, "/history/clear", url.Values{"unit": {"imperial"}, "confirm": {"yes"}})

			Convey("Then the history is cleared and the page reloads", func() {
				So(w.Code, ShouldEqual, http.StatusSeeOther)
				So(w.Header().Get("Location"), ShouldEqual, "/?unit=imperial")
				So(svc.History(ctx), ShouldBeEmpty)
			})
		})

		Convey("When clearing without confirmation", func() {
			_, err := svc.Submit(ctx, model.Metric, "70", "175")
			So(err, ShouldBeNil)
			w := post(mux, "/history/clear", url.Values{"confirm": {""}})

			Convey("Then nothing is removed", func() {
				So(w.Code, ShouldEqual, http.StatusConflict)
				So(w.Body.String(), ShouldContainSubstring, confirmNeeded)
				So(len(svc.History(ctx)), ShouldEqual, 1)
			})
		})

		Convey("And unknown paths are not found", func() {
			So(get(mux, "/some-asset").Code, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given a service that cannot clear", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux, brokenClear{service.New()})

		Convey("Then a confirmed clear renders a server error", func() {
			w := post(mux, "/history/clear", url.Values{"confirm": {"yes"}})
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(w.Body.String(), ShouldContainSubstring, "Could not clear the history")
		})
	})
}

func TestSiteHandlerWithNilMux(t *testing.T) {
	Convey("Given a nil mux", t, func() {
		Convey("When registering the site handler", func() {
			Convey("Then it should panic", func() {
				So(func() {
					Register(context.Background(), nil, service.New())
				}, ShouldPanic)
			})
		})
	})
}
