package models

import "time"

// PriceItem is one line of the published price list.
type PriceItem struct {
	Label string `mapstructure:"label" json:"label"`
	Value string `mapstructure:"value" json:"value"`
}

// DiningRoom is one time-slotted restaurant room with a fixed seat count.
type DiningRoom struct {
	Name  string `mapstructure:"name" json:"name"`
	Seats int    `mapstructure:"seats" json:"seats"`
}

// BusinessConfig carries all static brand content and booking rules for the
// single hospitality business this service fronts. Loaded once at start,
// immutable afterwards.
type BusinessConfig struct {
	Name    string `mapstructure:"name"`
	Phone   string `mapstructure:"phone"`
	Email   string `mapstructure:"email"`
	Address string `mapstructure:"address"`

	OpeningHours string      `mapstructure:"opening_hours"`
	Prices       []PriceItem `mapstructure:"prices"`
	Menu         []string    `mapstructure:"menu"`

	// Room booking rules.
	RoomCapacity     int      `mapstructure:"room_capacity"`
	ClosedWeekdays   []string `mapstructure:"closed_weekdays"` // English weekday names
	PeakMonths       []int    `mapstructure:"peak_months"`
	MinNightsPeak    int      `mapstructure:"min_nights_peak"`
	MinNightsOffPeak int      `mapstructure:"min_nights_offpeak"`
	MaxNights        int      `mapstructure:"max_nights"`
	SearchWindowDays int      `mapstructure:"search_window_days"`

	// Table booking rules.
	DiningOpen         string `mapstructure:"dining_open"`  // HH:MM
	DiningClose        string `mapstructure:"dining_close"` // HH:MM
	LastArrivalMinutes int    `mapstructure:"last_arrival_minutes"`
	TableStepMinutes   int    `mapstructure:"table_step_minutes"`
	MaxAlternatives    int    `mapstructure:"max_alternatives"`

	// Entity catalogs.
	Persons     []CatalogEntry `mapstructure:"persons"`
	Rooms       []CatalogEntry `mapstructure:"rooms"`
	Animals     []CatalogEntry `mapstructure:"animals"`
	DiningRooms []DiningRoom   `mapstructure:"dining_rooms"`
}

// TotalRooms returns the guest room inventory size.
func (b *BusinessConfig) TotalRooms() int {
	return len(b.Rooms)
}

// RoomNames lists the guest room names in catalog order.
func (b *BusinessConfig) RoomNames() []string {
	names := make([]string, 0, len(b.Rooms))
	for _, r := range b.Rooms {
		names = append(names, r.Name)
	}
	return names
}

// IsClosed reports whether the business is closed on the given date's weekday.
func (b *BusinessConfig) IsClosed(date time.Time) bool {
	day := date.Weekday().String()
	for _, closed := range b.ClosedWeekdays {
		if closed == day {
			return true
		}
	}
	return false
}

// IsPeak reports whether the month falls into the high-season window.
func (b *BusinessConfig) IsPeak(month time.Month) bool {
	for _, m := range b.PeakMonths {
		if time.Month(m) == month {
			return true
		}
	}
	return false
}

// MinNights returns the seasonal minimum stay for an arrival date.
func (b *BusinessConfig) MinNights(date time.Time) int {
	if b.IsPeak(date.Month()) {
		return b.MinNightsPeak
	}
	return b.MinNightsOffPeak
}
