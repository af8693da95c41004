package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Params holds every tunable of a simulation run. It is built once and
// passed by value, so independent runs never share mutable settings.
type Params struct {
	Seed      uint64    `yaml:"seed" env:"SEED"`
	Days      int       `yaml:"days" env:"DAYS" validate:"gt=0"`
	WeekDays  int       `yaml:"week_days" env:"WEEK_DAYS" validate:"gt=0"`
	RestDays  int       `yaml:"rest_days" env:"REST_DAYS" validate:"gte=0,ltfield=WeekDays"`
	StartDate time.Time `yaml:"start_date" env:"START_DATE"`

	Fleet   Fleet   `yaml:"fleet" envPrefix:"FLEET_"`
	Prices  Prices  `yaml:"prices" envPrefix:"PRICE_"`
	Routing Routing `yaml:"routing" envPrefix:"ROUTING_"`
	Growth  Growth  `yaml:"growth" envPrefix:"GROWTH_"`
	World   World   `yaml:"world" envPrefix:"WORLD_"`
}

type Fleet struct {
	// Size 0 means the fleet is sized from the initial stock.
	Size               int     `yaml:"size" env:"SIZE" validate:"gte=0"`
	FixedWeeklyCost    float64 `yaml:"fixed_weekly_cost" env:"FIXED_WEEKLY_COST" validate:"gte=0"`
	// Small-truck figures are reported in the run banner only; routes are
	// always planned and costed with the large truck.
	SmallCapacityKg    float64 `yaml:"small_capacity_kg" env:"SMALL_CAPACITY_KG" validate:"gt=0"`
	LargeCapacityKg    float64 `yaml:"large_capacity_kg" env:"LARGE_CAPACITY_KG" validate:"gt=0"`
	SmallCostPerKm     float64 `yaml:"small_cost_per_km" env:"SMALL_COST_PER_KM" validate:"gte=0"`
	LargeCostPerKm     float64 `yaml:"large_cost_per_km" env:"LARGE_COST_PER_KM" validate:"gte=0"`
	MinLoadFactor      float64 `yaml:"min_load_factor" env:"MIN_LOAD_FACTOR" validate:"gte=0,lte=1"`
	AverageSpeedKmh    float64 `yaml:"average_speed_kmh" env:"AVERAGE_SPEED_KMH" validate:"gt=0"`
	LoadingHoursPerPig float64 `yaml:"loading_hours_per_pig" env:"LOADING_HOURS_PER_PIG" validate:"gte=0"`
	MaxHoursPerDay     float64 `yaml:"max_hours_per_day" env:"MAX_HOURS_PER_DAY" validate:"gt=0"`
	SizingPigsPerTruck int     `yaml:"sizing_pigs_per_truck" env:"SIZING_PIGS_PER_TRUCK" validate:"gt=0"`
	SizingTripsPerDay  int     `yaml:"sizing_trips_per_day" env:"SIZING_TRIPS_PER_DAY" validate:"gt=0"`
	SizingDaysToClear  int     `yaml:"sizing_days_to_clear" env:"SIZING_DAYS_TO_CLEAR" validate:"gt=0"`
}

type Prices struct {
	BasePerKg      float64 `yaml:"base_per_kg" env:"BASE_PER_KG" validate:"gt=0"`
	FeedPerKg      float64 `yaml:"feed_per_kg" env:"FEED_PER_KG" validate:"gte=0"`
	OptimalMinKg   float64 `yaml:"optimal_min_kg" env:"OPTIMAL_MIN_KG" validate:"gtfield=AcceptMinKg"`
	OptimalMaxKg   float64 `yaml:"optimal_max_kg" env:"OPTIMAL_MAX_KG" validate:"gtfield=OptimalMinKg"`
	AcceptMinKg    float64 `yaml:"accept_min_kg" env:"ACCEPT_MIN_KG" validate:"gt=0"`
	AcceptMaxKg    float64 `yaml:"accept_max_kg" env:"ACCEPT_MAX_KG" validate:"gtfield=OptimalMaxKg"`
	MildPenalty    float64 `yaml:"mild_penalty" env:"MILD_PENALTY" validate:"gte=0,lte=1"`
	SeverePenalty  float64 `yaml:"severe_penalty" env:"SEVERE_PENALTY" validate:"gte=0,lte=1"`
	MarketWeightKg float64 `yaml:"market_weight_kg" env:"MARKET_WEIGHT_KG" validate:"gt=0"`
}

type Routing struct {
	MaxStops             int     `yaml:"max_stops" env:"MAX_STOPS" validate:"gt=0"`
	MaxLegKm             float64 `yaml:"max_leg_km" env:"MAX_LEG_KM" validate:"gt=0"`
	SlaughterhouseBuffer int     `yaml:"slaughterhouse_buffer" env:"SLAUGHTERHOUSE_BUFFER" validate:"gte=0"`
}

type Growth struct {
	FallbackWeeklyGainKg float64 `yaml:"fallback_weekly_gain_kg" env:"FALLBACK_WEEKLY_GAIN_KG" validate:"gte=0"`
	DefaultWeeklyFeedKg  float64 `yaml:"default_weekly_feed_kg" env:"DEFAULT_WEEKLY_FEED_KG" validate:"gte=0"`
	MinWeeklyFeedKg      float64 `yaml:"min_weekly_feed_kg" env:"MIN_WEEKLY_FEED_KG" validate:"gte=0"`
	TablesFile           string  `yaml:"tables_file" env:"TABLES_FILE"`
}

// World controls the random environment generator.
type World struct {
	SlaughterhouseID       string  `yaml:"slaughterhouse_id" env:"SLAUGHTERHOUSE_ID" validate:"required"`
	SlaughterhouseCapacity int     `yaml:"slaughterhouse_capacity" env:"SLAUGHTERHOUSE_CAPACITY" validate:"gt=0"`
	LatMin                 float64 `yaml:"lat_min" env:"LAT_MIN"`
	LatMax                 float64 `yaml:"lat_max" env:"LAT_MAX" validate:"gtefield=LatMin"`
	LonMin                 float64 `yaml:"lon_min" env:"LON_MIN"`
	LonMax                 float64 `yaml:"lon_max" env:"LON_MAX" validate:"gtefield=LonMin"`
	// FarmPlacement is "around" (farms within the spreads of the
	// slaughterhouse) or "region" (farms anywhere inside the lat/lon box).
	FarmPlacement          string  `yaml:"farm_placement" env:"FARM_PLACEMENT" validate:"oneof=around region"`
	FarmLatSpread          float64 `yaml:"farm_lat_spread" env:"FARM_LAT_SPREAD" validate:"gte=0"`
	FarmLonSpread          float64 `yaml:"farm_lon_spread" env:"FARM_LON_SPREAD" validate:"gte=0"`
	FarmCount              int     `yaml:"farm_count" env:"FARM_COUNT" validate:"gte=0"`
	FarmCapacity           int     `yaml:"farm_capacity" env:"FARM_CAPACITY" validate:"gt=0"`
	BatchesPerFarm         int     `yaml:"batches_per_farm" env:"BATCHES_PER_FARM" validate:"gte=0"`
	BatchAgeMin            int     `yaml:"batch_age_min" env:"BATCH_AGE_MIN" validate:"gte=0"`
	BatchAgeMax            int     `yaml:"batch_age_max" env:"BATCH_AGE_MAX" validate:"gtefield=BatchAgeMin"`
	BatchSizeMin           int     `yaml:"batch_size_min" env:"BATCH_SIZE_MIN" validate:"gt=0"`
	BatchSizeMax           int     `yaml:"batch_size_max" env:"BATCH_SIZE_MAX" validate:"gtefield=BatchSizeMin"`
	SeedFile               string  `yaml:"seed_file" env:"SEED_FILE"`
}

// Default returns the reference scenario: three large trucks collecting from
// sixty farms for fifteen days.
func Default() Params {
	return Params{
		Seed:      1,
		Days:      15,
		WeekDays:  7,
		RestDays:  2,
		StartDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Fleet: Fleet{
			Size:               3,
			FixedWeeklyCost:    2000,
			SmallCapacityKg:    10000,
			LargeCapacityKg:    20000,
			SmallCostPerKm:     1.15,
			LargeCostPerKm:     1.25,
			MinLoadFactor:      0.1,
			AverageSpeedKmh:    60,
			LoadingHoursPerPig: 0.5 / 60,
			MaxHoursPerDay:     8,
			SizingPigsPerTruck: 170,
			SizingTripsPerDay:  3,
			SizingDaysToClear:  5,
		},
		Prices: Prices{
			BasePerKg:      1.56,
			FeedPerKg:      0.35,
			OptimalMinKg:   105,
			OptimalMaxKg:   115,
			AcceptMinKg:    100,
			AcceptMaxKg:    120,
			MildPenalty:    0.15,
			SeverePenalty:  0.20,
			MarketWeightKg: 100,
		},
		Routing: Routing{
			MaxStops:             3,
			MaxLegKm:             100,
			SlaughterhouseBuffer: 50,
		},
		Growth: Growth{
			FallbackWeeklyGainKg: 5,
			DefaultWeeklyFeedKg:  15,
			MinWeeklyFeedKg:      1,
		},
		World: World{
			SlaughterhouseID:       "SLAUGHTERHOUSE_CENTRAL",
			SlaughterhouseCapacity: 1800,
			LatMin:                 41.50,
			LatMax:                 42.10,
			LonMin:                 0.50,
			LonMax:                 2.50,
			FarmPlacement:          PlacementAround,
			FarmLatSpread:          0.3,
			FarmLonSpread:          0.4,
			FarmCount:              60,
			FarmCapacity:           2500,
			BatchesPerFarm:         4,
			BatchAgeMin:            15,
			BatchAgeMax:            24,
			BatchSizeMin:           150,
			BatchSizeMax:           350,
		},
	}
}

const (
	PlacementAround = "around"
	PlacementRegion = "region"
)

// CataloniaWorld is the regional scenario: 25 farms scattered over central
// Catalonia with older batches and a 2000-head slaughterhouse.
func CataloniaWorld() World {
	w := Default().World
	w.SlaughterhouseID = "SLAUGHTERHOUSE_VIC"
	w.SlaughterhouseCapacity = 2000
	w.LatMin, w.LatMax = 41.36, 42.27
	w.LonMin, w.LonMax = 1.20, 2.76
	w.FarmPlacement = PlacementRegion
	w.FarmCount = 25
	w.BatchAgeMin, w.BatchAgeMax = 18, 25
	return w
}

// WorldPreset returns a named World: "default" or "catalonia".
func WorldPreset(name string) (World, error) {
	switch name {
	case "", "default":
		return Default().World, nil
	case "catalonia":
		return CataloniaWorld(), nil
	default:
		return World{}, fmt.Errorf("unknown world preset %q", name)
	}
}

// Load builds Params from the defaults (with the World named by
// SIM_WORLD_PRESET, if any), then the YAML file named by SIM_CONFIG_FILE
// (if any), then SIM_* environment variables.
func Load() (Params, error) {
	p := Default()

	world, err := WorldPreset(os.Getenv("SIM_WORLD_PRESET"))
	if err != nil {
		return Params{}, fmt.Errorf("load config: %w", err)
	}
	p.World = world

	if path := os.Getenv("SIM_CONFIG_FILE"); path != "" {
		p, err = LoadFile(path, p)
		if err != nil {
			return Params{}, err
		}
	}

	if err := env.ParseWithOptions(&p, env.Options{Prefix: "SIM_"}); err != nil {
		aggErr := env.AggregateError{}
		if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
			return Params{}, fmt.Errorf("load config: %w", aggErr.Errors[0])
		}
		return Params{}, fmt.Errorf("load config: %w", err)
	}

	if err := p.Validate(); err != nil {
		return Params{}, err
	}

	return p, nil
}

// LoadFile overlays the YAML document at path on base. Keys missing from the
// file keep base's values.
func LoadFile(path string, base Params) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("load config file: read %q: %w", path, err)
	}

	p := base
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Params{}, fmt.Errorf("load config file: parse %q: %w", path, err)
	}

	return p, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Get returns the environment variable key, or fallback when it is unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
