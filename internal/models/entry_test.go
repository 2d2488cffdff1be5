package models

import (
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func validEntry() *Entry {
	return &Entry{
		UserID:         1,
		EntryDate:      "2025-06-09",
		WakeupTime:     strPtr("06:00"),
		MangalaAarti:   true,
		MorningKatha:   KathaZoom,
		MorningPuja:    strPtr("00:30"),
		MeditationMins: intPtr(15),
		Vachanamrut:    true,
		MastMeditation: true,
		Cheshta:        true,
		MansiPujaCount: 5,
		ReadingTime:    strPtr("01:00"),
		WastedTime:     strPtr("00:10"),
		MantraJap:      25,
		Notes:          "a good day",
	}
}

func TestEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(e *Entry)
		wantErr bool
	}{
		{
			name:   "valid full entry",
			mutate: func(e *Entry) {},
		},
		{
			name: "valid with all optional fields blank",
			mutate: func(e *Entry) {
				e.WakeupTime = nil
				e.MorningPuja = nil
				e.MeditationMins = nil
				e.ReadingTime = nil
				e.WastedTime = nil
				e.Notes = ""
			},
		},
		{
			name:    "missing user",
			mutate:  func(e *Entry) { e.UserID = 0 },
			wantErr: true,
		},
		{
			name:    "missing date",
			mutate:  func(e *Entry) { e.EntryDate = "" },
			wantErr: true,
		},
		{
			name:    "malformed date",
			mutate:  func(e *Entry) { e.EntryDate = "09/06/2025" },
			wantErr: true,
		},
		{
			name:    "bad wakeup time",
			mutate:  func(e *Entry) { e.WakeupTime = strPtr("25:00") },
			wantErr: true,
		},
		{
			name:   "wakeup time with seconds",
			mutate: func(e *Entry) { e.WakeupTime = strPtr("06:00:00") },
		},
		{
			name:    "wakeup time not a clock",
			mutate:  func(e *Entry) { e.WakeupTime = strPtr("morning") },
			wantErr: true,
		},
		{
			name:    "unknown katha mode",
			mutate:  func(e *Entry) { e.MorningKatha = "tv" },
			wantErr: true,
		},
		{
			name:   "katha missed",
			mutate: func(e *Entry) { e.MorningKatha = KathaNo },
		},
		{
			name:    "meditation over the hour cap",
			mutate:  func(e *Entry) { e.MeditationMins = intPtr(61) },
			wantErr: true,
		},
		{
			name:    "negative meditation",
			mutate:  func(e *Entry) { e.MeditationMins = intPtr(-1) },
			wantErr: true,
		},
		{
			name:    "mansi puja over cap",
			mutate:  func(e *Entry) { e.MansiPujaCount = 6 },
			wantErr: true,
		},
		{
			name:    "negative mantra jap",
			mutate:  func(e *Entry) { e.MantraJap = -1 },
			wantErr: true,
		},
		{
			name:    "notes too long",
			mutate:  func(e *Entry) { e.Notes = strings.Repeat("x", 501) },
			wantErr: true,
		},
		{
			name:   "notes at the limit",
			mutate: func(e *Entry) { e.Notes = strings.Repeat("x", 500) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEntry()
			tt.mutate(e)
			err := e.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate() succeeded, want error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestUserFullName(t *testing.T) {
	u := &User{FirstName: "Arjun", LastName: "Patel"}
	if got := u.FullName(); got != "Arjun Patel" {
		t.Errorf("FullName() = %q, want %q", got, "Arjun Patel")
	}
}

func TestUserIsLeader(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{RoleStudent, false},
		{RolePoshakLeader, true},
		{RoleAdmin, true},
	}
	for _, tt := range tests {
		u := &User{Role: tt.role}
		if got := u.IsLeader(); got != tt.want {
			t.Errorf("IsLeader() for role %q = %v, want %v", tt.role, got, tt.want)
		}
	}
}
