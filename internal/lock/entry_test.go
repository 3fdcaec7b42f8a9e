package lock

import (
	"errors"
	"testing"

	"bast-security/keypad-lock/internal/keypad"
)

func key(t *testing.T, s byte) keypad.Key {
	t.Helper()
	k, ok := keypad.Locate(keypad.Symbol(s))
	if !ok {
		t.Fatalf("%q is not on the keypad", s)
	}
	return k
}

func newMachine(t *testing.T) *EntryMachine {
	t.Helper()
	p, err := ParsePasscode(DefaultPasscode)
	if err != nil {
		t.Fatal(err)
	}
	return NewEntryMachine(p)
}

func press(t *testing.T, m *EntryMachine, keys string) []Result {
	t.Helper()
	var out []Result
	for i := 0; i < len(keys); i++ {
		out = append(out, m.Press(key(t, keys[i])))
	}
	return out
}

func TestCorrectCodeUnlocks(t *testing.T) {
	m := newMachine(t)
	res := press(t, m, "8632")

	for i, r := range res[:3] {
		if r.Outcome != Closed || r.Attempt != "" {
			t.Fatalf("press %d = %+v, want Closed", i, r)
		}
	}
	if res[3].Outcome != Unlocked || res[3].Attempt != "8632" {
		t.Fatalf("last press = %+v, want Unlocked 8632", res[3])
	}
	if m.Count() != 0 {
		t.Fatalf("Count = %d after attempt", m.Count())
	}
}

func TestWrongCodeRetries(t *testing.T) {
	for _, code := range []string{"8633", "0632", "2368", "AAAA", "863#", "D632"} {
		m := newMachine(t)
		res := press(t, m, code)
		if last := res[3]; last.Outcome != Retry || last.Attempt != code {
			t.Errorf("%s: last press = %+v, want Retry", code, last)
		}
		if m.Count() != 0 {
			t.Errorf("%s: Count = %d after attempt", code, m.Count())
		}
	}
}

func TestPartialEntryStaysClosed(t *testing.T) {
	m := newMachine(t)
	for i, s := range []byte("863") {
		r := m.Press(key(t, s))
		if r.Outcome != Closed {
			t.Fatalf("press %d = %v", i, r.Outcome)
		}
		if m.Count() != i+1 {
			t.Fatalf("Count = %d, want %d", m.Count(), i+1)
		}
	}
}

func TestResetAtAnyCount(t *testing.T) {
	for n := 0; n < CodeLength; n++ {
		m := newMachine(t)
		press(t, m, "8632"[:n])
		if r := m.Press(key(t, '*')); r.Outcome != Reset {
			t.Fatalf("after %d keys: * = %v, want Reset", n, r.Outcome)
		}
		if m.Count() != 0 {
			t.Fatalf("after %d keys: Count = %d", n, m.Count())
		}
	}
}

func TestResetBeatsCompletion(t *testing.T) {
	m := newMachine(t)
	res := press(t, m, "863*")
	if res[3].Outcome != Reset || res[3].Attempt != "" {
		t.Fatalf("fourth key * = %+v, want Reset", res[3])
	}

	// the buffer is gone: the next four keys are judged on their own
	res = press(t, m, "8632")
	if res[3].Outcome != Unlocked {
		t.Fatalf("after reset: %v", res[3].Outcome)
	}
}

func TestAttemptsDoNotCarryOver(t *testing.T) {
	m := newMachine(t)
	press(t, m, "1111")
	res := press(t, m, "8632")
	if res[3].Outcome != Unlocked {
		t.Fatalf("second attempt = %v", res[3].Outcome)
	}
}

func TestParsePasscode(t *testing.T) {
	if _, err := ParsePasscode("12A#"); err != nil {
		t.Fatal(err)
	}
	for _, bad := range []string{"", "123", "12345", "12E4", "12*4"} {
		if _, err := ParsePasscode(bad); !errors.Is(err, ErrBadPasscode) {
			t.Errorf("ParsePasscode(%q) = %v", bad, err)
		}
	}
}
