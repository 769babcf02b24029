package history_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/fitcheck/internal/adapters/repository"
	"github.com/okian/fitcheck/internal/domain/history"
	"github.com/okian/fitcheck/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// failingKV returns the configured errors from each operation.
type failingKV struct {
	getErr, setErr, removeErr error
	value                     string
	present                   bool
}

func (f *failingKV) Get(context.Context, string) (string, bool, error) {
	return f.value, f.present, f.getErr
}

func (f *failingKV) Set(_ context.Context, _, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.value, f.present = value, true
	return nil
}

func (f *failingKV) Remove(context.Context, string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.value, f.present = "", false
	return nil
}

func entry(bmi float64, ts int64) model.HistoryEntry {
	return model.NewHistoryEntry(model.Metric, 70, 175, bmi, "Normal", time.UnixMilli(ts))
}

func TestStore_Load(t *testing.T) {
	Convey("Given a history store over an in-memory key-value store", t, func() {
		ctx := context.Background()
		kv := repository.NewMemoryStore()
		store := history.NewStore(kv)

		Convey("When nothing has been persisted", func() {
			entries := store.Load(ctx)

			Convey("Then it returns an empty, non-nil sequence", func() {
				So(entries, ShouldNotBeNil)
				So(entries, ShouldBeEmpty)
			})
		})

		Convey("When the persisted value is corrupt", func() {
			for _, raw := range []string{"{not json", `{"bmi":1}`, `[1,2]`, `[{"bmi":"high"}]`, `"text"`, ""} {
				So(kv.Set(ctx, history.StorageKey, raw), ShouldBeNil)
				So(func() { store.Load(ctx) }, ShouldNotPanic)
				So(store.Load(ctx), ShouldBeEmpty)
			}
		})

		Convey("When the persisted value is null", func() {
			So(kv.Set(ctx, history.StorageKey, "null"), ShouldBeNil)

			Convey("Then it is treated as empty", func() {
				So(store.Load(ctx), ShouldBeEmpty)
			})
		})

		Convey("When the persisted value was written by the browser version", func() {
			raw := `[{"bmi":22.9,"category":"Normal","ts":1700000000000,"unitLabel":"kg/cm","weight":70,"height":175,"weightUnit":"kg","heightUnit":"cm"}]`
			So(kv.Set(ctx, history.StorageKey, raw), ShouldBeNil)

			Convey("Then it decodes every field", func() {
				entries := store.Load(ctx)
				So(len(entries), ShouldEqual, 1)
				So(entries[0], ShouldResemble, model.HistoryEntry{
					BMI: 22.9, Category: "Normal", TS: 1700000000000, UnitLabel: "kg/cm",
					Weight: 70, Height: 175, WeightUnit: "kg", HeightUnit: "cm",
				})
			})
		})
	})

	Convey("Given a key-value store that fails to read", t, func() {
		store := history.NewStore(&failingKV{getErr: errors.New("disk on fire")})

		Convey("Then Load recovers to an empty sequence", func() {
			So(store.Load(context.Background()), ShouldBeEmpty)
		})
	})
}

func TestStore_Append(t *testing.T) {
	Convey("Given an empty history store", t, func() {
		ctx := context.Background()
		kv := repository.NewMemoryStore()
		store := history.NewStore(kv)

		Convey("When appending one entry", func() {
			persisted, err := store.Append(ctx, entry(22.9, 1))

			Convey("Then it is returned and persisted", func() {
				So(err, ShouldBeNil)
				So(len(persisted), ShouldEqual, 1)
				So(store.Load(ctx), ShouldResemble, persisted)

				raw, ok, _ := kv.Get(ctx, history.StorageKey)
				So(ok, ShouldBeTrue)
				So(raw, ShouldStartWith, `[{"bmi":22.9,"category":"Normal","ts":1,`)
			})
		})

		Convey("When appending entries in order", func() {
			for i := 1; i <= 3; i++ {
				_, err := store.Append(ctx, entry(float64(20+i), int64(i)))
				So(err, ShouldBeNil)
			}

			Convey("Then the newest comes first", func() {
				entries := store.Load(ctx)
				So(len(entries), ShouldEqual, 3)
				So(entries[0].TS, ShouldEqual, 3)
				So(entries[2].TS, ShouldEqual, 1)
			})
		})

		Convey("When the history already holds 10 entries", func() {
			for i := 1; i <= 10; i++ {
				_, err := store.Append(ctx, entry(20, int64(i)))
				So(err, ShouldBeNil)
			}
			persisted, err := store.Append(ctx, entry(30, 11))

			Convey("Then the oldest entry is dropped and the size stays 10", func() {
				So(err, ShouldBeNil)
				So(len(persisted), ShouldEqual, 10)
				So(persisted[0].TS, ShouldEqual, 11)
				So(persisted[9].TS, ShouldEqual, 2)
				So(len(store.Load(ctx)), ShouldEqual, 10)
			})
		})

		Convey("When the persisted value is corrupt", func() {
			So(kv.Set(ctx, history.StorageKey, "garbage"), ShouldBeNil)
			persisted, err := store.Append(ctx, entry(22.9, 5))

			Convey("Then the corrupt value is replaced by the new entry", func() {
				So(err, ShouldBeNil)
				So(len(persisted), ShouldEqual, 1)
				So(store.Load(ctx), ShouldResemble, persisted)
			})
		})
	})

	Convey("Given a history store with a custom limit", t, func() {
		ctx := context.Background()
		store := history.NewStore(repository.NewMemoryStore(), history.WithLimit(3), history.WithKey("custom"))

		for i := 1; i <= 5; i++ {
			_, err := store.Append(ctx, entry(20, int64(i)))
			So(err, ShouldBeNil)
		}

		Convey("Then it keeps only the newest three", func() {
			entries := store.Load(ctx)
			So(store.Limit(), ShouldEqual, 3)
			So(len(entries), ShouldEqual, 3)
			So(entries[0].TS, ShouldEqual, 5)
			So(entries[2].TS, ShouldEqual, 3)
		})
	})

	Convey("Given a key-value store that fails to write", t, func() {
		kv := &failingKV{setErr: errors.New("quota exceeded")}
		store := history.NewStore(kv)

		Convey("Then Append reports a write failure", func() {
			persisted, err := store.Append(context.Background(), entry(22.9, 1))
			So(persisted, ShouldBeNil)
			So(errors.Is(err, history.ErrPersistenceWriteFailed), ShouldBeTrue)
			So(kv.present, ShouldBeFalse)
		})
	})
}

func TestStore_Clear(t *testing.T) {
	Convey("Given a history store with entries", t, func() {
		ctx := context.Background()
		store := history.NewStore(repository.NewMemoryStore())
		for i := 1; i <= 4; i++ {
			_, err := store.Append(ctx, entry(20, int64(i)))
			So(err, ShouldBeNil)
		}

		Convey("When clearing", func() {
			So(store.Clear(ctx), ShouldBeNil)

			Convey("Then a subsequent Load is empty", func() {
				So(store.Load(ctx), ShouldBeEmpty)
			})

			Convey("And clearing again is harmless", func() {
				So(store.Clear(ctx), ShouldBeNil)
			})
		})
	})

	Convey("Given a key-value store that fails to remove", t, func() {
		store := history.NewStore(&failingKV{removeErr: errors.New("read-only")})

		Convey("Then Clear reports a write failure", func() {
			err := store.Clear(context.Background())
			So(errors.Is(err, history.ErrPersistenceWriteFailed), ShouldBeTrue)
		})
	})
}

func TestDecode(t *testing.T) {
	Convey("Given persisted documents", t, func() {
		Convey("Then an empty array decodes to an empty sequence", func() {
			entries, err := history.Decode("[]")
			So(err, ShouldBeNil)
			So(entries, ShouldBeEmpty)
		})

		Convey("And malformed documents return ErrMalformedHistory", func() {
			for _, raw := range []string{"", "{", "42", `{"a":1}`, `[null]`, `["x"]`} {
				_, err := history.Decode(raw)
				So(errors.Is(err, history.ErrMalformedHistory), ShouldBeTrue)
			}
		})

		Convey("And Encode writes an empty array for nil", func() {
			raw, err := history.Encode(nil)
			So(err, ShouldBeNil)
			So(raw, ShouldEqual, "[]")
		})
	})
}

func TestRows(t *testing.T) {
	Convey("Given an empty history", t, func() {
		rows := history.Rows(nil, time.UTC)

		Convey("Then exactly one placeholder row is rendered", func() {
			So(len(rows), ShouldEqual, 1)
			So(rows[0].Empty, ShouldBeTrue)
			So(rows[0].Headline, ShouldEqual, history.EmptyPlaceholder)
		})
	})

	Convey("Given a history with entries", t, func() {
		at := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
		entries := []model.HistoryEntry{
			model.NewHistoryEntry(model.Imperial, 150, 70.5, 21.2, "Normal", at),
			model.NewHistoryEntry(model.Metric, 70, 175, 23, "Normal", at.Add(-time.Hour)),
		}
		rows := history.Rows(entries, time.UTC)

		Convey("Then one row per entry is rendered in order", func() {
			So(len(rows), ShouldEqual, 2)
			So(rows[0].Headline, ShouldEqual, "21.2 — Normal")
			So(rows[0].Summary, ShouldEqual, "lb/in · 150lb · 70.5in")
			So(rows[0].Time, ShouldEqual, "2026-10-18 09:30:00")
			So(rows[1].Headline, ShouldEqual, "23 — Normal")
			So(rows[1].Summary, ShouldEqual, "kg/cm · 70kg · 175cm")
			So(rows[1].Empty, ShouldBeFalse)
		})

		Convey("And timestamps follow the requested zone", func() {
			loc := time.FixedZone("UTC+2", 2*60*60)
			So(history.Rows(entries, loc)[0].Time, ShouldEqual, "2026-10-18 11:30:00")
		})
	})

	Convey("Given numbers to format", t, func() {
		for v, want := range map[float64]string{70: "70", 70.5: "70.5", 22.9: "22.9", 0.1: "0.1"} {
			So(history.FormatNumber(v), ShouldEqual, want)
		}
		So(history.FormatNumber(1e6), ShouldEqual, "1000000")
	})
}
