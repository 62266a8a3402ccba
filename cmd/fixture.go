package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/planwise/planwise/app"
	"github.com/planwise/planwise/core/model"
)

type fixtureRange struct {
	Start  time.Time `json:"start" yaml:"start"`
	End    time.Time `json:"end" yaml:"end"`
	Status string    `json:"status" yaml:"status"`
}

type fixtureParticipant struct {
	ID     string         `json:"id" yaml:"id"`
	Ranges []fixtureRange `json:"ranges" yaml:"ranges"`
}

type fixtureEvent struct {
	ID    string    `json:"id" yaml:"id"`
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

type fixture struct {
	Participants []fixtureParticipant `json:"participants" yaml:"participants"`
	Events       []fixtureEvent       `json:"events" yaml:"events"`
}

// loadFixture decodes an availability fixture from a YAML or JSON file.
func loadFixture(path string) (*fixture, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fx fixture
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &fx)
	case ".json":
		err = json.Unmarshal(b, &fx)
	default:
		return nil, fmt.Errorf("unsupported fixture format: %s", ext)
	}
	if err != nil {
		return nil, err
	}
	return &fx, nil
}

func parseStatus(s string) (model.AvailabilityStatus, error) {
	switch strings.ToLower(s) {
	case "", "available":
		return model.StatusAvailable, nil
	case "unavailable":
		return model.StatusUnavailable, nil
	case "tentative":
		return model.StatusTentative, nil
	default:
		return 0, fmt.Errorf("unknown availability status %q", s)
	}
}

// seedFixture loads the fixture and stores it under the configured scope.
func seedFixture(ctx context.Context, st app.ScopeStore, path string) error {
	fx, err := loadFixture(path)
	if err != nil {
		return err
	}
	for _, p := range fx.Participants {
		pa := model.ParticipantAvailability{ParticipantID: p.ID}
		for _, r := range p.Ranges {
			status, err := parseStatus(r.Status)
			if err != nil {
				return fmt.Errorf("participant %s: %w", p.ID, err)
			}
			tr, err := model.NewTimeRange(r.Start, r.End)
			if err != nil {
				return fmt.Errorf("participant %s: %w", p.ID, err)
			}
			pa.Ranges = append(pa.Ranges, model.AvailabilityRange{Range: tr, Status: status})
		}
		if err := st.SaveAvailability(ctx, scopeName, pa); err != nil {
			return err
		}
	}
	for _, ev := range fx.Events {
		tr, err := model.NewTimeRange(ev.Start, ev.End)
		if err != nil {
			return fmt.Errorf("event %s: %w", ev.ID, err)
		}
		if err := st.SaveCommittedEvent(ctx, scopeName, model.CommittedEvent{EventID: ev.ID, Range: tr}); err != nil {
			return err
		}
	}
	return nil
}

// printJSON renders command output for scripting.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
