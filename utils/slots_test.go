package utils

import (
	"reflect"
	"testing"
)

func TestGenerateTimeSlots(t *testing.T) {
	tests := []struct {
		name    string
		opening string
		closing string
		minutes int
		booked  map[string]bool
		want    []string
	}{
		{
			name:    "morning window no bookings",
			opening: "09:00",
			closing: "11:00",
			minutes: 30,
			want:    []string{"09:00", "09:30", "10:00", "10:30"},
		},
		{
			name:    "booked slot excluded",
			opening: "09:00",
			closing: "11:00",
			minutes: 30,
			booked:  map[string]bool{"09:30": true},
			want:    []string{"09:00", "10:00", "10:30"},
		},
		{
			name:    "slot must fully fit before closing",
			opening: "09:00",
			closing: "10:45",
			minutes: 30,
			want:    []string{"09:00", "09:30", "10:00"},
		},
		{
			name:    "opening equals closing",
			opening: "09:00",
			closing: "09:00",
			minutes: 30,
			want:    []string{},
		},
		{
			name:    "opening after closing",
			opening: "18:00",
			closing: "09:00",
			minutes: 30,
			want:    []string{},
		},
		{
			name:    "window shorter than one slot",
			opening: "09:00",
			closing: "09:15",
			minutes: 30,
			want:    []string{},
		},
		{
			name:    "all slots booked",
			opening: "09:00",
			closing: "10:00",
			minutes: 30,
			booked:  map[string]bool{"09:00": true, "09:30": true},
			want:    []string{},
		},
		{
			name:    "full day",
			opening: "00:00",
			closing: "01:30",
			minutes: 30,
			want:    []string{"00:00", "00:30", "01:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateTimeSlots(tt.opening, tt.closing, tt.minutes, tt.booked)
			if err != nil {
				t.Fatalf("GenerateTimeSlots returned error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GenerateTimeSlots(%q, %q) = %v, want %v", tt.opening, tt.closing, got, tt.want)
			}
		})
	}
}

func TestGenerateTimeSlotsIdempotent(t *testing.T) {
	booked := map[string]bool{"10:00": true}
	first, err := GenerateTimeSlots("09:00", "17:00", 30, booked)
	if err != nil {
		t.Fatal(err)
	}
	second, err := GenerateTimeSlots("09:00", "17:00", 30, booked)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different output: %v vs %v", first, second)
	}
}

func TestGenerateTimeSlotsInvalidInput(t *testing.T) {
	if _, err := GenerateTimeSlots("9am", "17:00", 30, nil); err == nil {
		t.Error("expected error for malformed opening time")
	}
	if _, err := GenerateTimeSlots("09:00", "25:99", 30, nil); err == nil {
		t.Error("expected error for malformed closing time")
	}
}

func TestOnSlotGrid(t *testing.T) {
	tests := []struct {
		slot string
		want bool
	}{
		{"09:00", true},
		{"09:30", true},
		{"10:30", true},
		{"11:00", true}, // finishes exactly at closing
		{"11:30", false}, // no room before closing
		{"09:15", false}, // off the grid
		{"08:30", false}, // before opening
		{"bogus", false},
	}
	for _, tt := range tests {
		if got := OnSlotGrid("09:00", "11:30", 30, tt.slot); got != tt.want {
			t.Errorf("OnSlotGrid(09:00, 11:30, 30, %q) = %v, want %v", tt.slot, got, tt.want)
		}
	}
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("14:45")
	if err != nil {
		t.Fatal(err)
	}
	if m != 14*60+45 {
		t.Errorf("ParseClock(14:45) = %d, want %d", m, 14*60+45)
	}
	if FormatClock(m) != "14:45" {
		t.Errorf("FormatClock round trip failed: %q", FormatClock(m))
	}
	if _, err := ParseClock("99:99"); err == nil {
		t.Error("expected error for out-of-range time")
	}
}
