package domain

import (
	"fmt"
	"strconv"
	"strings"
)

type Ambition string

const (
	AmbitionTravel   Ambition = "Travel"
	AmbitionBusiness Ambition = "Business"
	AmbitionHobby    Ambition = "Hobby"
	AmbitionHealth   Ambition = "Health"
)

var Ambitions = []Ambition{AmbitionTravel, AmbitionBusiness, AmbitionHobby, AmbitionHealth}

func (a Ambition) Validate() error {
	switch a {
	case AmbitionTravel, AmbitionBusiness, AmbitionHobby, AmbitionHealth:
		return nil
	default:
		return fmt.Errorf("unsupported ambition %q", string(a))
	}
}

// ParseAmbition accepts any casing of the ambition names.
func ParseAmbition(raw string) (Ambition, error) {
	for _, a := range Ambitions {
		if strings.EqualFold(strings.TrimSpace(raw), string(a)) {
			return a, nil
		}
	}
	return "", fmt.Errorf("unsupported ambition %q", raw)
}

// Kind tags what a completion counts towards. Vision sessions have no
// catalog entry; they only ever appear on sessions and completions.
type Kind string

const (
	KindFoundation Kind = "foundation"
	KindJourney    Kind = "journey"
	KindVision     Kind = "vision"
)

func (k Kind) Validate() error {
	switch k {
	case KindFoundation, KindJourney, KindVision:
		return nil
	default:
		return fmt.Errorf("unsupported mission kind %q", string(k))
	}
}

const (
	JourneyLength            = 30
	DefaultFreeJourneyPrefix = 7
	journeyLevelSpan         = 7

	VisionMissionID = "custom-vision"
	FoundationIcon  = "Zap"
)

type Mission struct {
	ID              string
	Ambition        Ambition
	Kind            Kind
	Title           string
	Description     string
	DurationSeconds int
	Level           int
	IsPremium       bool
	Icon            string
}

// PremiumGated reports whether starting the mission needs a Pro entitlement.
func (m Mission) PremiumGated() bool { return m.IsPremium }

func (m Mission) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("mission id is required")
	}
	if err := m.Ambition.Validate(); err != nil {
		return err
	}
	if m.Kind != KindFoundation && m.Kind != KindJourney {
		return fmt.Errorf("mission %s: unsupported kind %q", m.ID, m.Kind)
	}
	if m.DurationSeconds <= 0 {
		return fmt.Errorf("mission %s: duration must be positive", m.ID)
	}
	if m.Level < 1 {
		return fmt.Errorf("mission %s: level must be at least 1", m.ID)
	}
	if m.Kind == KindFoundation && m.IsPremium {
		return fmt.Errorf("mission %s: foundation missions cannot be premium", m.ID)
	}
	return nil
}

type Plan struct {
	Ambition   Ambition
	Foundation []Mission
	Journey    []Mission
}

// Find returns the mission and, for journey missions, its position.
func (p Plan) Find(missionID string) (Mission, int, bool) {
	for i, m := range p.Foundation {
		if m.ID == missionID {
			return m, i, true
		}
	}
	for i, m := range p.Journey {
		if m.ID == missionID {
			return m, i, true
		}
	}
	return Mission{}, 0, false
}

// Definition is the authored content of one ambition. Journey missions are
// generated from it by BuildPlan.
// JourneyDescription may reference the day number as {day}.
type Definition struct {
	Ambition           Ambition
	Foundation         []Mission
	JourneyPrefix      string
	JourneyIcon        string
	JourneyDescription string
	Topics             []string
}

// BuildPlan expands a definition. Journey entry i (0-based) lasts 120+30i
// seconds, sits at level i/7+1 and is premium when i >= freePrefix.
func BuildPlan(def Definition, freePrefix int) (Plan, error) {
	if err := def.Ambition.Validate(); err != nil {
		return Plan{}, err
	}
	if len(def.Topics) == 0 {
		return Plan{}, fmt.Errorf("ambition %s: journey topics are required", def.Ambition)
	}
	if strings.TrimSpace(def.JourneyPrefix) == "" {
		return Plan{}, fmt.Errorf("ambition %s: journey prefix is required", def.Ambition)
	}
	plan := Plan{Ambition: def.Ambition}
	for _, m := range def.Foundation {
		m.Ambition = def.Ambition
		m.Kind = KindFoundation
		if m.Level == 0 {
			m.Level = 1
		}
		if m.Icon == "" {
			m.Icon = FoundationIcon
		}
		if err := m.Validate(); err != nil {
			return Plan{}, err
		}
		plan.Foundation = append(plan.Foundation, m)
	}
	for i := 0; i < JourneyLength; i++ {
		day := i + 1
		plan.Journey = append(plan.Journey, Mission{
			ID:              fmt.Sprintf("%s-%d", def.JourneyPrefix, day),
			Ambition:        def.Ambition,
			Kind:            KindJourney,
			Title:           fmt.Sprintf("Day %d: %s", day, def.Topics[i%len(def.Topics)]),
			Description:     strings.ReplaceAll(def.JourneyDescription, "{day}", strconv.Itoa(day)),
			DurationSeconds: 120 + i*30,
			Level:           i/journeyLevelSpan + 1,
			IsPremium:       i >= freePrefix,
			Icon:            def.JourneyIcon,
		})
	}
	return plan, nil
}
