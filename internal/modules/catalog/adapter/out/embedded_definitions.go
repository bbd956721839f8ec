package out

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"stepone/internal/modules/catalog/domain"
	catalogout "stepone/internal/modules/catalog/port/out"
)

const definitionsSchemaVersion = 1

//go:embed definitions.yaml
var embeddedDefinitions []byte

type definitionsDoc struct {
	SchemaVersion int             `yaml:"schema_version"`
	Ambitions     []definitionDoc `yaml:"ambitions"`
}

type definitionDoc struct {
	Ambition           string       `yaml:"ambition"`
	JourneyPrefix      string       `yaml:"journey_prefix"`
	JourneyIcon        string       `yaml:"journey_icon"`
	JourneyDescription string       `yaml:"journey_description"`
	Topics             []string     `yaml:"topics"`
	Foundation         []missionDoc `yaml:"foundation"`
}

type missionDoc struct {
	ID              string `yaml:"id"`
	Title           string `yaml:"title"`
	Description     string `yaml:"description"`
	DurationSeconds int    `yaml:"duration_seconds"`
	Level           int    `yaml:"level"`
	Icon            string `yaml:"icon"`
}

// YAMLDefinitionSource decodes mission content from a YAML document.
type YAMLDefinitionSource struct {
	raw []byte
}

func NewEmbeddedDefinitionSource() catalogout.DefinitionSource {
	return &YAMLDefinitionSource{raw: embeddedDefinitions}
}

func NewYAMLDefinitionSource(raw []byte) catalogout.DefinitionSource {
	return &YAMLDefinitionSource{raw: raw}
}

func (s *YAMLDefinitionSource) Definitions(_ context.Context) ([]domain.Definition, error) {
	doc := definitionsDoc{}
	if err := yaml.Unmarshal(s.raw, &doc); err != nil {
		return nil, fmt.Errorf("decode mission definitions: %w", err)
	}
	if doc.SchemaVersion != definitionsSchemaVersion {
		return nil, fmt.Errorf("unsupported mission definitions schema %d", doc.SchemaVersion)
	}
	defs := make([]domain.Definition, 0, len(doc.Ambitions))
	for _, a := range doc.Ambitions {
		def := domain.Definition{
			Ambition:           domain.Ambition(a.Ambition),
			JourneyPrefix:      a.JourneyPrefix,
			JourneyIcon:        a.JourneyIcon,
			JourneyDescription: a.JourneyDescription,
			Topics:             a.Topics,
		}
		for _, m := range a.Foundation {
			def.Foundation = append(def.Foundation, domain.Mission{
				ID:              m.ID,
				Title:           m.Title,
				Description:     m.Description,
				DurationSeconds: m.DurationSeconds,
				Level:           m.Level,
				Icon:            m.Icon,
			})
		}
		defs = append(defs, def)
	}
	return defs, nil
}
