package config

import (
	"fmt"

	"innkeeper/models"

	"github.com/spf13/viper"
)

// LoadBusiness reads the business/catalog configuration (brand facts, booking
// rules, entity catalogs) from the given yaml file. An empty path returns the
// built-in defaults, which also back the test suite.
func LoadBusiness(path string) (*models.BusinessConfig, error) {
	biz := DefaultBusiness()
	if path == "" {
		return biz, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read business config %s: %w", path, err)
	}
	if err := v.Unmarshal(biz); err != nil {
		return nil, fmt.Errorf("parse business config %s: %w", path, err)
	}
	tagCatalogKinds(biz)
	return biz, nil
}

// tagCatalogKinds stamps each catalog entry with its owning catalog; the yaml
// groups entries by section, so the kind is implied by placement.
func tagCatalogKinds(biz *models.BusinessConfig) {
	for i := range biz.Persons {
		biz.Persons[i].Kind = models.KindPerson
	}
	for i := range biz.Rooms {
		biz.Rooms[i].Kind = models.KindRoomEntity
	}
	for i := range biz.Animals {
		biz.Animals[i].Kind = models.KindAnimal
	}
}

// DefaultBusiness is the built-in configuration of the tourist farm Pri Lipi.
func DefaultBusiness() *models.BusinessConfig {
	biz := &models.BusinessConfig{
		Name:    "Turistična kmetija Pri Lipi",
		Phone:   "+386 41 555 123",
		Email:   "info@prilipi.si",
		Address: "Lipova cesta 7, 4260 Bled",

		OpeningHours: "Odprti smo vse dni razen ponedeljka, od 8.00 do 22.00. Zajtrk strežemo od 8.00 do 10.00, večerjo od 18.00 do 21.00.",
		Prices: []models.PriceItem{
			{Label: "Nočitev z zajtrkom (oseba)", Value: "45 €"},
			{Label: "Polpenzion (oseba)", Value: "62 €"},
			{Label: "Otroci do 6 let", Value: "brezplačno"},
			{Label: "Otroci 6-12 let", Value: "50 % popust"},
			{Label: "Kosilo za zunanje goste", Value: "od 18 €"},
		},
		Menu: []string{
			"Domača goveja juha z rezanci",
			"Pečenka iz krušne peči z mlinci",
			"Postrv z bledskega jezera",
			"Ajdovi žganci z ocvirki",
			"Gibanica po domače",
		},

		RoomCapacity:     4,
		ClosedWeekdays:   []string{"Monday"},
		PeakMonths:       []int{6, 7, 8},
		MinNightsPeak:    3,
		MinNightsOffPeak: 2,
		MaxNights:        21,
		SearchWindowDays: 30,

		DiningOpen:         "12:00",
		DiningClose:        "22:00",
		LastArrivalMinutes: 90,
		TableStepMinutes:   30,
		MaxAlternatives:    3,

		Persons: []models.CatalogEntry{
			{Name: "Marija", Description: "Gospodinja in kuharica, skrbi za domačo kuhinjo."},
			{Name: "Tone", Description: "Gospodar, vodi kmetijo in rad razkaže posestvo."},
			{Name: "Avgust", Description: "Dedek Avgust, najstarejši član domačije, pozna vse zgodbe."},
			{Name: "Julija", Description: "Hči, vodi jahanje ponijev za otroke."},
		},
		Rooms: []models.CatalogEntry{
			{Name: "Lipa", Description: "Družinska soba s pogledom na sadovnjak.", Capacity: 4},
			{Name: "Murka", Description: "Soba z balkonom proti planinam.", Capacity: 4},
			{Name: "Julija", Description: "Podstrešna soba za pare.", Capacity: 2},
			{Name: "Rozka", Description: "Soba ob vrtu, pritličje, dostopna brez stopnic.", Capacity: 4},
			{Name: "Sivka", Description: "Tiha soba na severni strani.", Capacity: 4},
		},
		Animals: []models.CatalogEntry{
			{Name: "Murka", Description: "Krava Murka, naša najstarejša krava cika."},
			{Name: "Lisko", Description: "Poni Lisko, najljubši pri otrocih."},
			{Name: "Pika", Description: "Ovčarka Pika, čuva dvorišče."},
		},
		DiningRooms: []models.DiningRoom{
			{Name: "Kamra", Seats: 20},
			{Name: "Hram", Seats: 30},
			{Name: "Terasa", Seats: 24},
		},
	}
	tagCatalogKinds(biz)
	return biz
}
