package database

import (
	"fmt"
	"log"

	"github.com/tamaki/restaurant-ops-api/internal/models"
	"github.com/tamaki/restaurant-ops-api/internal/schedule"
)

// defaultPeriods is the stock daily cycle installed on first boot. Venues
// adjust it through the period admin endpoints afterwards.
var defaultPeriods = []models.Period{
	{Code: "opening", Name: "Opening", StartTime: "10:00", EndTime: "10:30", DisplayOrder: 1},
	{Code: "lunch-prep", Name: "Lunch Prep", StartTime: "10:30", EndTime: "11:30", DisplayOrder: 2},
	{Code: "lunch", Name: "Lunch Service", StartTime: "11:30", EndTime: "15:00", DisplayOrder: 3},
	{Code: "dinner-prep", Name: "Dinner Prep", StartTime: "15:00", EndTime: "17:00", DisplayOrder: 4},
	{Code: "dinner", Name: "Dinner Service", StartTime: "17:00", EndTime: "22:00", DisplayOrder: 5},
	{Code: "closing", Name: "Closing", StartTime: "22:00", EndTime: "01:00", DisplayOrder: 6, IsEventDriven: true},
}

// SeedPeriods installs the default period cycle if none is configured, then
// validates whatever configuration ends up live. Malformed period times are
// a boot failure, not something the period math tolerates at runtime.
func SeedPeriods() error {
	var count int64
	if err := DB.Model(&models.Period{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count periods: %w", err)
	}

	if count == 0 {
		if err := DB.Create(&defaultPeriods).Error; err != nil {
			return fmt.Errorf("failed to seed periods: %w", err)
		}
		log.Printf("Seeded %d default periods", len(defaultPeriods))
	}

	var periods []models.Period
	if err := DB.Order("display_order").Find(&periods).Error; err != nil {
		return fmt.Errorf("failed to load periods: %w", err)
	}
	if err := schedule.ValidatePeriods(periods); err != nil {
		return fmt.Errorf("invalid period configuration: %w", err)
	}

	return nil
}
