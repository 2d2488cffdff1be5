package report

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"midnight", "00:00", 0, false},
		{"six am", "06:00", 360, false},
		{"six forty five", "06:45", 405, false},
		{"with seconds", "06:30:00", 390, false},
		{"single digit hour", "6:05", 365, false},
		{"end of day", "23:59", 1439, false},
		{"hour too large", "24:00", 0, true},
		{"minutes too large", "06:60", 0, true},
		{"not a clock", "morning", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseClock(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseClock(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		mins int
		want string
	}{
		{0, "00:00"},
		{353, "05:53"},
		{360, "06:00"},
		{1439, "23:59"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.mins); got != tt.want {
			t.Errorf("FormatClock(%d) = %s, want %s", tt.mins, got, tt.want)
		}
	}
}

func TestFormatClock12(t *testing.T) {
	tests := []struct {
		mins int
		want string
	}{
		{0, "12:00 AM"},
		{365, "6:05 AM"},
		{720, "12:00 PM"},
		{1110, "6:30 PM"},
	}

	for _, tt := range tests {
		if got := FormatClock12(tt.mins); got != tt.want {
			t.Errorf("FormatClock12(%d) = %s, want %s", tt.mins, got, tt.want)
		}
	}
}

func TestFormatDurationShort(t *testing.T) {
	tests := []struct {
		mins int
		want string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h"},
		{125, "2h 5m"},
	}

	for _, tt := range tests {
		if got := FormatDurationShort(tt.mins); got != tt.want {
			t.Errorf("FormatDurationShort(%d) = %s, want %s", tt.mins, got, tt.want)
		}
	}
}

func TestFormatDurationLong(t *testing.T) {
	tests := []struct {
		mins int
		want string
	}{
		{0, "0 m"},
		{45, "45 m"},
		{120, "2 h"},
		{125, "2 h 5 m"},
	}

	for _, tt := range tests {
		if got := FormatDurationLong(tt.mins); got != tt.want {
			t.Errorf("FormatDurationLong(%d) = %s, want %s", tt.mins, got, tt.want)
		}
	}
}
