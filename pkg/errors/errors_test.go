package errors

import (
	stderrors "errors"
	"testing"
)

type captureHandler struct {
	got []*Error
}

func (h *captureHandler) HandleError(err *Error) {
	h.got = append(h.got, err)
}

func TestError_FormatsOpKindAndCause(t *testing.T) {
	err := Errorf("core.FlushBuild", KindBuild, "boom %d", 7)
	want := "core.FlushBuild [build]: boom 7"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}

func TestWrap_NilPassthrough(t *testing.T) {
	if Wrap("op", KindConfig, nil) != nil {
		t.Fatalf("wrapping nil must return nil")
	}
}

func TestWrap_UnwrapsToCause(t *testing.T) {
	cause := stderrors.New("underlying")
	err := Wrap("config.Load", KindConfig, cause)
	if !stderrors.Is(err, cause) {
		t.Fatalf("expected errors.Is to find the cause")
	}
}

func TestReport_SetsTimestampAndReachesHandler(t *testing.T) {
	handler := &captureHandler{}
	SetHandler(handler)
	defer SetHandler(nil)

	Report(&Error{Op: "test", Kind: KindInternal, Err: stderrors.New("x")})

	if len(handler.got) != 1 {
		t.Fatalf("expected one reported error, got %d", len(handler.got))
	}
	if handler.got[0].Timestamp.IsZero() {
		t.Fatalf("expected Report to stamp the error")
	}
}

func TestKind_Strings(t *testing.T) {
	cases := map[Kind]string{
		KindBuild:    "build",
		KindLayout:   "layout",
		KindPaint:    "paint",
		KindHitTest:  "hittest",
		KindConfig:   "config",
		KindInternal: "internal",
		KindUnknown:  "unknown",
	}
	for kind, want := range cases {
		if kind.String() != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", kind, kind.String(), want)
		}
	}
}
