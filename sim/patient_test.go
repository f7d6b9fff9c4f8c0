package sim

import (
	"testing"
)

func TestStatus_Predicates(t *testing.T) {
	tests := []struct {
		status   Status
		waiting  bool
		terminal bool
	}{
		{StatusNew, false, false},
		{StatusWhite, true, false},
		{StatusYellow, true, false},
		{StatusRed, true, false},
		{StatusTreating, false, false},
		{StatusOut, false, true},
		{StatusBlack, false, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsWaiting(); got != tt.waiting {
				t.Errorf("IsWaiting() = %v, want %v", got, tt.waiting)
			}
			if got := tt.status.IsTerminal(); got != tt.terminal {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.terminal)
			}
		})
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"white", StatusWhite, false},
		{"YELLOW", StatusYellow, false},
		{" Red ", StatusRed, false},
		{"black", "", true},
		{"treating", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseSeverity(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSeverity(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseSeverity(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewPatient_StartsNew(t *testing.T) {
	p := NewPatient("p1")
	if p.Status != StatusNew {
		t.Errorf("Status = %s, want %s", p.Status, StatusNew)
	}
	if p.String() != "Patient: (ID: p1, Status: new, QueueTime: 0)" {
		t.Errorf("unexpected String(): %s", p.String())
	}
}
