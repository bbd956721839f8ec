package dto

type MissionOutput struct {
	ID              string
	Ambition        string
	Kind            string
	Title           string
	Description     string
	DurationSeconds int
	Level           int
	IsPremium       bool
	Icon            string
	// Position is the 0-based index within its list.
	Position int
}

type PlanOutput struct {
	Ambition   string
	Foundation []MissionOutput
	Journey    []MissionOutput
}
