package domain

// Distribution parameters for one week of age.
type Stat struct {
	Mean float64 `yaml:"mean" json:"mean"`
	SD   float64 `yaml:"sd" json:"sd"`
}

// GrowthTables maps age in weeks to the population weight distribution and
// to the cumulative feed intake distribution.
type GrowthTables struct {
	Weight map[int]Stat `yaml:"weight" json:"weight"`
	Intake map[int]Stat `yaml:"cumulative_intake" json:"cumulative_intake"`
}

// DefaultGrowthTables returns the reference curves for weeks 10 to 28.
func DefaultGrowthTables() GrowthTables {
	return GrowthTables{
		Weight: map[int]Stat{
			10: {29.7, 3.9},
			11: {33.4, 4.6},
			12: {37.8, 5.4},
			13: {42.6, 6.3},
			14: {47.9, 7.4},
			15: {53.5, 8.4},
			16: {59.3, 9.5},
			17: {65.3, 10.6},
			18: {71.3, 11.8},
			19: {77.4, 12.9},
			20: {83.4, 14.0},
			21: {89.2, 15.2},
			22: {94.8, 16.3},
			23: {100.0, 17.5},
			24: {104.8, 18.7},
			25: {109.1, 19.8},
			26: {112.8, 21.0},
			27: {120.695, 21.8},
			28: {126.18, 22.9},
		},
		Intake: map[int]Stat{
			10: {5.1, 5.5},
			11: {12.1, 8.5},
			12: {20.5, 12.1},
			13: {30.2, 15.9},
			14: {41.3, 19.7},
			15: {53.4, 23.6},
			16: {66.4, 27.5},
			17: {80.3, 31.4},
			18: {94.9, 35.3},
			19: {110.1, 39.2},
			20: {125.7, 43.2},
			21: {141.6, 47.1},
			22: {157.6, 51.0},
			23: {173.7, 54.9},
			24: {189.6, 58.9},
			25: {205.3, 62.8},
			26: {220.6, 66.7},
			27: {243.07, 70.35},
			28: {262.33, 74.22},
		},
	}
}

// GrowthModel applies the weekly weight update and computes feed intake.
// Ages missing from the tables fall back to the fixed values below.
type GrowthModel struct {
	Tables GrowthTables

	FallbackWeeklyGainKg float64
	DefaultWeeklyFeedKg  float64
	MinWeeklyFeedKg      float64
}

// InitialStat returns the weight distribution used to populate a new batch.
func (m GrowthModel) InitialStat(ageWeeks int) Stat {
	if s, ok := m.Tables.Weight[ageWeeks]; ok {
		return s
	}
	return Stat{Mean: 30 + float64(ageWeeks)*4, SD: 5}
}

// GrowOneWeek ages the batch by one week.
//
// Each weight is mapped through its z-score from the current age's
// distribution to the next age's, so every pig keeps its rank in the batch.
func (m GrowthModel) GrowOneWeek(b *Batch) {
	cur, okCur := m.Tables.Weight[b.AgeWeeks]
	next, okNext := m.Tables.Weight[b.AgeWeeks+1]

	if okCur && okNext && cur.SD > 0 {
		for i, w := range b.weights {
			z := (w - cur.Mean) / cur.SD
			b.weights[i] = nonNegative(z*next.SD + next.Mean)
		}
		b.NominalMean = next.Mean
		b.NominalSD = next.SD
	} else {
		for i := range b.weights {
			b.weights[i] += m.FallbackWeeklyGainKg
		}
		b.NominalMean += m.FallbackWeeklyGainKg
	}

	b.AgeWeeks++
}

// WeeklyFeedPerPig returns the kilograms of feed one pig of the batch eats
// during its current week of age.
func (m GrowthModel) WeeklyFeedPerPig(b *Batch) float64 {
	cur, okCur := m.Tables.Intake[b.AgeWeeks]
	prev, okPrev := m.Tables.Intake[b.AgeWeeks-1]
	if !okCur || !okPrev {
		return m.DefaultWeeklyFeedKg
	}

	cumCur := cur.Mean + b.IntakeZ*cur.SD
	cumPrev := prev.Mean + b.IntakeZ*prev.SD

	weekly := cumCur - cumPrev
	if weekly < m.MinWeeklyFeedKg {
		return m.MinWeeklyFeedKg
	}
	return weekly
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
