package utils

import (
	"fmt"
	"time"
)

// SlotDurationMinutes is the fixed width of a booking slot.
const SlotDurationMinutes = 30

const clockLayout = "15:04"

// ParseClock converts an "HH:MM" string to minutes since midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock converts minutes since midnight back to "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// GenerateTimeSlots returns the available slot start times for a branch day,
// stepping from opening by slotMinutes while the whole slot still fits
// before closing. Slots present in booked are skipped. Times are naive
// local "HH:MM" strings; opening >= closing yields an empty list.
func GenerateTimeSlots(opening, closing string, slotMinutes int, booked map[string]bool) ([]string, error) {
	openMin, err := ParseClock(opening)
	if err != nil {
		return nil, err
	}
	closeMin, err := ParseClock(closing)
	if err != nil {
		return nil, err
	}

	slots := []string{}
	for current := openMin; current+slotMinutes <= closeMin; current += slotMinutes {
		slot := FormatClock(current)
		if booked[slot] {
			continue
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// OnSlotGrid reports whether slot is a valid start time for the given
// opening window, i.e. a whole multiple of slotMinutes from opening with
// room to finish before closing.
func OnSlotGrid(opening, closing string, slotMinutes int, slot string) bool {
	openMin, err := ParseClock(opening)
	if err != nil {
		return false
	}
	closeMin, err := ParseClock(closing)
	if err != nil {
		return false
	}
	m, err := ParseClock(slot)
	if err != nil {
		return false
	}
	if m < openMin || (m-openMin)%slotMinutes != 0 {
		return false
	}
	return m+slotMinutes <= closeMin
}
