package concurrent

import "testing"

func TestHandle_SeesSuccess(t *testing.T) {
	up := Completed(3)
	down := Handle(up, func(v int, err error) (string, error) {
		if err != nil {
			return "error", nil
		}
		return "ok", nil
	})
	val, err := down.Get()
	if err != nil || val != "ok" {
		t.Fatalf("Get() = (%q, %v), want (%q, nil)", val, err, "ok")
	}
}

func TestHandle_SeesCancellation(t *testing.T) {
	up := newStage[int](Inline)
	down := Handle(up, func(v int, err error) (string, error) {
		if _, ok := err.(*CancellationFailure); ok {
			return "was-cancelled", nil
		}
		return "other", nil
	})
	up.Cancel(false)
	val, err := down.Get()
	if err != nil || val != "was-cancelled" {
		t.Fatalf("Get() = (%q, %v), want (%q, nil)", val, err, "was-cancelled")
	}
	if down.IsCancelled() {
		t.Fatalf("down.IsCancelled() = true; Handle always produces a successful stage")
	}
}
