package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"stepone/internal/modules/progress/domain"
	progressout "stepone/internal/modules/progress/port/out"
	"stepone/internal/platform/markdown"
	"stepone/internal/platform/slug"
)

var stampsBlock = markdown.Block{
	Start: "<!-- stepone:stamps:start -->",
	End:   "<!-- stepone:stamps:end -->",
}

const passportIndex = "index.md"

type stampMeta struct {
	SchemaVersion int    `yaml:"schema_version"`
	StampID       string `yaml:"stamp_id"`
	MissionID     string `yaml:"mission_id"`
	Mission       string `yaml:"mission"`
	Ambition      string `yaml:"ambition,omitempty"`
	EarnedAt      string `yaml:"earned_at"`
	BadgeIcon     string `yaml:"badge_icon"`
	BadgeColor    string `yaml:"badge_color"`
}

// VaultPassportExporter writes one markdown note per stamp and keeps a
// generated list of them in index.md.
type VaultPassportExporter struct {
	dir string
}

func NewVaultPassportExporter(dir string) progressout.PassportExporter {
	return &VaultPassportExporter{dir: dir}
}

func (e *VaultPassportExporter) Export(ctx context.Context, entries []domain.PassportEntry) (domain.PassportExport, error) {
	result := domain.PassportExport{IndexPath: filepath.Join(e.dir, passportIndex)}
	links := make([]string, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		rel, written, err := e.writeNote(entry)
		if err != nil {
			return result, err
		}
		if written {
			result.Written++
		} else {
			result.Skipped++
		}
		links = append(links, indexLine(entry, rel))
	}
	if err := e.writeIndex(result.IndexPath, links); err != nil {
		return result, err
	}
	return result, nil
}

func (e *VaultPassportExporter) writeNote(entry domain.PassportEntry) (string, bool, error) {
	stamp := entry.Stamp
	at := stamp.EarnedAt
	relDir := filepath.Join(at.Format("2006"), at.Format("01"), at.Format("02"))
	if err := os.MkdirAll(filepath.Join(e.dir, relDir), 0o755); err != nil {
		return "", false, fmt.Errorf("create passport dir: %w", err)
	}
	base := fmt.Sprintf("%s-%s", at.Format("150405"), slug.Make(entry.MissionTitle))
	rel := filepath.Join(relDir, base+".md")

	owner, err := noteStampID(filepath.Join(e.dir, rel))
	if err != nil {
		return "", false, err
	}
	switch owner {
	case stamp.ID:
		return filepath.ToSlash(rel), false, nil
	case "":
	default:
		// Same second, same title, different stamp.
		rel = filepath.Join(relDir, fmt.Sprintf("%s-%.8s.md", base, stamp.ID))
		owner, err = noteStampID(filepath.Join(e.dir, rel))
		if err != nil {
			return "", false, err
		}
		if owner == stamp.ID {
			return filepath.ToSlash(rel), false, nil
		}
	}

	meta := stampMeta{
		SchemaVersion: domain.SchemaVersion,
		StampID:       stamp.ID,
		MissionID:     stamp.MissionID,
		Mission:       entry.MissionTitle,
		Ambition:      entry.Ambition,
		EarnedAt:      at.Format(time.RFC3339),
		BadgeIcon:     stamp.BadgeIcon,
		BadgeColor:    stamp.BadgeColor,
	}
	body := fmt.Sprintf("# %s\n\n- Earned: %s\n- Badge: %s %s\n", entry.MissionTitle, at.Format("2006-01-02 15:04"), stamp.BadgeIcon, stamp.BadgeColor)
	rendered, err := markdown.Render(meta, body)
	if err != nil {
		return "", false, err
	}
	if err := os.WriteFile(filepath.Join(e.dir, rel), []byte(rendered), 0o644); err != nil {
		return "", false, fmt.Errorf("write stamp note: %w", err)
	}
	return filepath.ToSlash(rel), true, nil
}

// noteStampID returns the stamp id recorded in the note at path, or "" when
// the note does not exist.
func noteStampID(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read stamp note: %w", err)
	}
	meta := stampMeta{}
	if _, _, err := markdown.Split(string(raw), &meta); err != nil || meta.StampID == "" {
		// Not one of ours; never overwritten.
		return "user", nil
	}
	return meta.StampID, nil
}

func indexLine(entry domain.PassportEntry, rel string) string {
	return fmt.Sprintf("- %s [%s](%s)", entry.Stamp.EarnedAt.Format("2006-01-02 15:04"), entry.MissionTitle, rel)
}

func (e *VaultPassportExporter) writeIndex(path string, links []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create passport dir: %w", err)
	}
	existing := "# Passport\n"
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		existing = string(raw)
	case errors.Is(err, os.ErrNotExist):
	default:
		return fmt.Errorf("read passport index: %w", err)
	}
	generated := "_No stamps yet._"
	if len(links) > 0 {
		generated = strings.Join(links, "\n")
	}
	updated := stampsBlock.Replace(existing, generated)
	if updated == existing {
		return nil
	}
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("write passport index: %w", err)
	}
	return nil
}
