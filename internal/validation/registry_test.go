package validation

import (
	"errors"
	"testing"
)

// recorder returns a validator that appends tag to *calls and returns err.
func recorder(calls *[]string, tag string, err error) ValidatorFunc {
	return func(string) error {
		*calls = append(*calls, tag)
		return err
	}
}

func TestRegister_AppendsInOrder(t *testing.T) {
	var calls []string
	reg := NewRegistry()
	reg.Register(QueryParam("test"), recorder(&calls, "r1", nil))
	reg.Register(QueryParam("test"), recorder(&calls, "r2", nil))

	chain := reg.Lookup(QueryParam("test"))
	if len(chain) != 2 {
		t.Fatalf("chain length = %d, want 2", len(chain))
	}
	for _, fn := range chain {
		_ = fn("x")
	}
	if len(calls) != 2 || calls[0] != "r1" || calls[1] != "r2" {
		t.Fatalf("evaluation order = %v, want [r1 r2]", calls)
	}
	if reg.Len() != 1 {
		t.Fatalf("Len = %d, want 1", reg.Len())
	}
}

func TestLookup_MissingKeyIsEmpty(t *testing.T) {
	reg := NewRegistry()
	reg.Register(Header("X-Id"), func(string) error { return nil })

	if got := reg.Lookup(Cookie("X-Id")); len(got) != 0 {
		t.Fatalf("Lookup on other source returned %d validators", len(got))
	}
	if got := reg.Lookup(Header("X-Other")); got != nil {
		t.Fatalf("Lookup on unknown key = %v, want nil", got)
	}
}

func TestFieldKey_Structural(t *testing.T) {
	if PathParam("n") != (FieldKey{Source: SourcePath, Name: "n"}) {
		t.Fatalf("PathParam constructor is not structural")
	}
	if PathParam("n") == QueryParam("n") {
		t.Fatalf("keys with different sources compare equal")
	}
}

func TestWithValidators_ComposesWithPrior(t *testing.T) {
	var calls []string
	reg := NewRegistry()
	reg.Register(PathParam("n"), recorder(&calls, "prior", nil))

	reg.WithValidators(map[FieldKey]ValidatorFunc{
		PathParam("n"):    recorder(&calls, "bulk", nil),
		Cookie("session"): recorder(&calls, "cookie", nil),
		Header("X-A"):     recorder(&calls, "header", nil),
	})

	chain := reg.Lookup(PathParam("n"))
	if len(chain) != 2 {
		t.Fatalf("chain length = %d, want 2 (bulk must append)", len(chain))
	}
	_ = chain[0]("")
	_ = chain[1]("")
	if calls[0] != "prior" || calls[1] != "bulk" {
		t.Fatalf("order = %v, want prior then bulk", calls)
	}

	keys := reg.Keys()
	want := []FieldKey{PathParam("n"), Header("X-A"), Cookie("session")}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("keys[%d] = %v, want %v", i, keys[i], want[i])
		}
	}
}

func TestRegister_NilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on nil validator")
		}
	}()
	NewRegistry().Register(PathParam("n"), nil)
}

func TestSnapshot_Isolated(t *testing.T) {
	reg := NewRegistry()
	reg.Register(PathParam("n"), func(string) error { return nil })
	snap := reg.snapshot()

	reg.Register(PathParam("n"), func(string) error { return errors.New("late") })
	reg.Register(Header("X-Late"), func(string) error { return nil })

	if got := len(snap.Lookup(PathParam("n"))); got != 1 {
		t.Fatalf("snapshot chain grew to %d", got)
	}
	if snap.Len() != 1 {
		t.Fatalf("snapshot keys = %d, want 1", snap.Len())
	}
}

func TestSource_TextAndParse(t *testing.T) {
	for _, s := range []Source{SourcePath, SourceQuery, SourceHeader, SourceCookie} {
		b, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", s, err)
		}
		back, err := ParseSource(string(b))
		if err != nil || back != s {
			t.Fatalf("ParseSource(%q) = %v, %v", b, back, err)
		}
	}
	if _, err := ParseSource("body"); err == nil {
		t.Fatalf("ParseSource(body) should fail")
	}
	if _, err := Source(0).MarshalText(); err == nil {
		t.Fatalf("MarshalText on zero Source should fail")
	}
}

func TestValidationError_DefaultStatus(t *testing.T) {
	if got := (&ValidationError{Message: "x"}).Status(); got != 400 {
		t.Fatalf("Status = %d, want 400", got)
	}
	ve := asValidationError(errors.New("plain"))
	if ve.Status() != 400 || ve.Message != "plain" {
		t.Fatalf("asValidationError = %+v", ve)
	}
	custom := &ValidationError{StatusCode: 422, Message: "nope"}
	if asValidationError(custom) != custom {
		t.Fatalf("asValidationError did not keep *ValidationError")
	}
}

func TestValidationError_TypedNil(t *testing.T) {
	var typed *ValidationError
	var err error = typed

	ve := asValidationError(err)
	if ve == nil || ve.Status() != 400 || ve.Message != defaultMessage {
		t.Fatalf("asValidationError(typed nil) = %+v", ve)
	}
	if typed.Error() != defaultMessage || typed.Status() != 400 {
		t.Fatalf("nil receiver: Error = %q Status = %d", typed.Error(), typed.Status())
	}
}
