package domain

// PassportEntry is a stamp with the display data needed to render it.
type PassportEntry struct {
	Stamp        Stamp
	MissionTitle string
	Ambition     string
}

type PassportExport struct {
	IndexPath string
	Written   int
	Skipped   int
}
