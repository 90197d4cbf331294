package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// HourRange is a half-open [Open, Close) window of local hours.
type HourRange struct {
	Open  int `yaml:"open"`
	Close int `yaml:"close"`
}

// Policy is the site-specific seat and operating-hours policy. It is loaded
// once at startup and treated as immutable afterwards; the engine is handed
// the validated value and never re-reads it.
type Policy struct {
	// SeatPrefix is the canonical seat key prefix; seat "3" renders as
	// "<prefix>-3".
	SeatPrefix string `yaml:"seat_prefix"`

	// DrivingSeats is the ordered first-fit pool for driving/trial requests.
	DrivingSeats []string `yaml:"driving_seats"`

	// ConsultationSeats is the ordered pool for pure consultation requests.
	ConsultationSeats []string `yaml:"consultation_seats"`

	// ExcludedSeats are never auto-assigned, whatever the classification.
	ExcludedSeats []string `yaml:"excluded_seats"`

	// Keyword sets matched as case-sensitive substrings against the request
	// product/note fields. A review-note match overrides consultation.
	ReviewNoteKeywords   []string `yaml:"review_note_keywords"`
	TrialKeywords        []string `yaml:"trial_keywords"`
	ConsultationKeywords []string `yaml:"consultation_keywords"`

	WeekdayHours  HourRange `yaml:"weekday_hours"`
	SaturdayHours HourRange `yaml:"saturday_hours"`
	SundayOpen    bool      `yaml:"sunday_open"`
}

// DefaultPolicy returns the reference Dobong-site policy.
func DefaultPolicy() *Policy {
	return &Policy{
		SeatPrefix:           "dobong",
		DrivingSeats:         []string{"dobong-1", "dobong-2", "dobong-3", "dobong-5", "dobong-6"},
		ConsultationSeats:    []string{"dobong-9"},
		ExcludedSeats:        []string{"dobong-4", "dobong-7", "dobong-8"},
		ReviewNoteKeywords:   []string{"리뷰노트"},
		TrialKeywords:        []string{"체험권"},
		ConsultationKeywords: []string{"상담"},
		WeekdayHours:         HourRange{Open: 9, Close: 21},
		SaturdayHours:        HourRange{Open: 10, Close: 18},
		SundayOpen:           false,
	}
}

// Normalize fills zero values with the reference defaults so a partial policy
// file still yields a complete policy.
func (p *Policy) Normalize() {
	def := DefaultPolicy()

	if p.SeatPrefix == "" {
		p.SeatPrefix = def.SeatPrefix
	}
	if len(p.DrivingSeats) == 0 {
		p.DrivingSeats = def.DrivingSeats
	}
	if len(p.ConsultationSeats) == 0 {
		p.ConsultationSeats = def.ConsultationSeats
	}
	if p.ExcludedSeats == nil {
		p.ExcludedSeats = def.ExcludedSeats
	}
	if len(p.ReviewNoteKeywords) == 0 {
		p.ReviewNoteKeywords = def.ReviewNoteKeywords
	}
	if len(p.TrialKeywords) == 0 {
		p.TrialKeywords = def.TrialKeywords
	}
	if len(p.ConsultationKeywords) == 0 {
		p.ConsultationKeywords = def.ConsultationKeywords
	}
	if p.WeekdayHours == (HourRange{}) {
		p.WeekdayHours = def.WeekdayHours
	}
	if p.SaturdayHours == (HourRange{}) {
		p.SaturdayHours = def.SaturdayHours
	}
}

// Validate enforces the structural invariants the engine relies on. A policy
// that fails validation must abort startup; these are not per-request checks.
func (p *Policy) Validate() error {
	if len(p.DrivingSeats) == 0 {
		return errors.New("policy: driving pool is empty")
	}
	if len(p.ConsultationSeats) == 0 {
		return errors.New("policy: consultation pool is empty")
	}

	excluded := make(map[string]bool, len(p.ExcludedSeats))
	for _, seat := range p.ExcludedSeats {
		excluded[seat] = true
	}

	for _, seat := range p.DrivingSeats {
		if excluded[seat] {
			return fmt.Errorf("policy: excluded seat %s present in driving pool", seat)
		}
	}
	for _, seat := range p.ConsultationSeats {
		if excluded[seat] {
			return fmt.Errorf("policy: excluded seat %s present in consultation pool", seat)
		}
	}

	for _, hours := range []HourRange{p.WeekdayHours, p.SaturdayHours} {
		if hours.Open < 0 || hours.Close > 24 || hours.Open >= hours.Close {
			return fmt.Errorf("policy: invalid hour range %d-%d", hours.Open, hours.Close)
		}
	}

	return nil
}

// LoadPolicy reads the policy YAML at path. A missing file (or empty path)
// yields the reference defaults; a present-but-invalid file is fatal.
func LoadPolicy(path string) (*Policy, error) {
	if path == "" {
		policy := DefaultPolicy()

		return policy, policy.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info().Str("path", path).Msg("No policy file found, using reference policy")
			policy := DefaultPolicy()

			return policy, policy.Validate()
		}

		return nil, fmt.Errorf("reading policy file: %w", err)
	}

	var policy Policy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("parsing policy file: %w", err)
	}

	policy.Normalize()

	if err := policy.Validate(); err != nil {
		return nil, err
	}

	log.Info().
		Str("path", path).
		Int("driving_seats", len(policy.DrivingSeats)).
		Int("consultation_seats", len(policy.ConsultationSeats)).
		Int("excluded_seats", len(policy.ExcludedSeats)).
		Msg("Seat policy loaded")

	return &policy, nil
}

// GetPolicy loads the policy configured via APP_POLICY_PATH, aborting the
// process on a broken policy. Used as the wire provider.
func GetPolicy(cfg *Config) *Policy {
	policy, err := LoadPolicy(cfg.App.PolicyPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load seat policy")
	}

	return policy
}
