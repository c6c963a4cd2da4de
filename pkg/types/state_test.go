package types

import "testing"

func TestRecordErrorFirstWins(t *testing.T) {
	var st ResearchState
	st.RecordError("discovery found nothing")
	st.RecordError("acquisition found nothing")

	if st.LastError != "discovery found nothing" {
		t.Errorf("LastError = %q, want the first recorded error", st.LastError)
	}
	if !st.Failed() {
		t.Error("Failed() = false after RecordError")
	}
}

func TestLimitDefault(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"unset", 0, DefaultPaperLimit},
		{"negative", -2, DefaultPaperLimit},
		{"explicit", 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := ResearchState{PaperLimit: tt.limit}
			if got := st.Limit(); got != tt.want {
				t.Errorf("Limit() = %d, want %d", got, tt.want)
			}
		})
	}
}
