package domain

import "fmt"

// Slaughterhouse accepts up to DailyCapacity pigs per simulated day.
type Slaughterhouse struct {
	ID             string
	Location       Location
	DailyCapacity  int
	ProcessedToday int
}

func NewSlaughterhouse(id string, loc Location, dailyCapacity int) *Slaughterhouse {
	return &Slaughterhouse{ID: id, Location: loc, DailyCapacity: dailyCapacity}
}

func (s *Slaughterhouse) RemainingCapacity() int {
	return s.DailyCapacity - s.ProcessedToday
}

func (s *Slaughterhouse) ResetDay() {
	s.ProcessedToday = 0
}

// Receive books pigs against today's quota.
func (s *Slaughterhouse) Receive(pigs int) error {
	if pigs < 0 {
		return fmt.Errorf("slaughterhouse %s: receive %d pigs: %w", s.ID, pigs, ErrInvariant)
	}
	if s.ProcessedToday+pigs > s.DailyCapacity {
		return fmt.Errorf(
			"slaughterhouse %s: processed %d+%d exceeds daily capacity %d: %w",
			s.ID, s.ProcessedToday, pigs, s.DailyCapacity, ErrInvariant,
		)
	}
	s.ProcessedToday += pigs
	return nil
}
