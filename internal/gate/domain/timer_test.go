package domain

import "testing"

func TestTimerState_IsValid(t *testing.T) {
	for _, s := range []TimerState{TimerStopped, TimerWork, TimerRest, TimerPaused} {
		if !s.IsValid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if TimerState("NAPPING").IsValid() {
		t.Error("unknown state should be invalid")
	}
}

func TestParseTimerState(t *testing.T) {
	cases := []struct {
		in      string
		want    TimerState
		wantErr bool
	}{
		{"WORK", TimerWork, false},
		{"rest", TimerRest, false},
		{"  stopped ", TimerStopped, false},
		{"Paused", TimerPaused, false},
		{"bogus", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		got, err := ParseTimerState(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseTimerState(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if err == nil && got != tc.want {
			t.Errorf("ParseTimerState(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStoppedTimer(t *testing.T) {
	st := StoppedTimer()
	if st.State != TimerStopped || st.Active {
		t.Errorf("StoppedTimer() = %+v, want stopped/inactive", st)
	}
}
