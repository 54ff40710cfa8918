// Package templates holds the read-only catalogue of training and nutrition
// templates used as the deterministic source of a plan.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"alcyxob/fitness-planner/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed data/training/*.yaml data/nutrition/*.yaml
var embeddedTemplates embed.FS

// Library is a loaded template catalogue. It is safe for concurrent use;
// every lookup returns a deep copy.
type Library struct {
	training  []domain.TrainingTemplate
	nutrition []domain.NutritionTemplate
}

var (
	defaultOnce    sync.Once
	defaultLibrary *Library
	defaultErr     error
)

// Default returns the catalogue embedded in the binary, loading it on first use.
func Default() (*Library, error) {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(embeddedTemplates, "data")
		if err != nil {
			defaultErr = err
			return
		}
		defaultLibrary, defaultErr = Load(sub)
	})
	return defaultLibrary, defaultErr
}

// Load reads training/*.yaml and nutrition/*.yaml from fsys, one template per file.
func Load(fsys fs.FS) (*Library, error) {
	lib := &Library{}
	seen := make(map[string]bool)

	err := eachYAML(fsys, "training", func(name string, data []byte) error {
		var t domain.TrainingTemplate
		if err := yaml.Unmarshal(data, &t); err != nil {
			return fmt.Errorf("parse training template %s: %w", name, err)
		}
		if err := checkTraining(t); err != nil {
			return fmt.Errorf("training template %s: %w", name, err)
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate template id %q", t.ID)
		}
		seen[t.ID] = true
		lib.training = append(lib.training, t)
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = eachYAML(fsys, "nutrition", func(name string, data []byte) error {
		var t domain.NutritionTemplate
		if err := yaml.Unmarshal(data, &t); err != nil {
			return fmt.Errorf("parse nutrition template %s: %w", name, err)
		}
		if t.ID == "" || len(t.WeeklyMenu) == 0 {
			return fmt.Errorf("nutrition template %s: id and weeklyMenu are required", name)
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate template id %q", t.ID)
		}
		seen[t.ID] = true
		t.WeeklyMenu = fillWeek(t.WeeklyMenu)
		lib.nutrition = append(lib.nutrition, t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lib, nil
}

func eachYAML(fsys fs.FS, dir string, fn func(name string, data []byte) error) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read template dir %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	for _, e := range entries {
		if e.IsDir() || (path.Ext(e.Name()) != ".yaml" && path.Ext(e.Name()) != ".yml") {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return err
		}
		if err := fn(e.Name(), data); err != nil {
			return err
		}
	}
	return nil
}

func checkTraining(t domain.TrainingTemplate) error {
	if t.ID == "" {
		return errors.New("id is required")
	}
	if len(t.WeeklyStructure) != len(domain.WeekDays) {
		return fmt.Errorf("weeklyStructure must have %d days, got %d", len(domain.WeekDays), len(t.WeeklyStructure))
	}
	training := 0
	for _, d := range t.WeeklyStructure {
		if d.IsTraining() {
			training++
		}
	}
	if training != t.DaysPerWeek {
		return fmt.Errorf("declares %d days per week but has %d training days", t.DaysPerWeek, training)
	}
	return nil
}

// fillWeek rotates the authored sample days until all seven weekdays are
// covered, relabelling each copy with its weekday.
func fillWeek(authored []domain.DailyNutrition) []domain.DailyNutrition {
	week := make([]domain.DailyNutrition, len(domain.WeekDays))
	for i, label := range domain.WeekDays {
		day := authored[i%len(authored)].Clone()
		day.Day = label
		week[i] = day
	}
	return week
}

// FindTrainingTemplate returns the template matching every field exactly.
// There is no closest-match fallback.
func (l *Library) FindTrainingTemplate(goal domain.Goal, daysPerWeek, sessionMinutes int, equipment domain.Equipment, level domain.Level) (domain.TrainingTemplate, bool) {
	if level == "" {
		level = domain.LevelBeginner
	}
	for _, t := range l.training {
		if t.Goal == goal &&
			t.DaysPerWeek == daysPerWeek &&
			t.SessionTime == sessionMinutes &&
			t.Equipment == equipment &&
			t.Level == level {
			return t.Clone(), true
		}
	}
	return domain.TrainingTemplate{}, false
}

// FindNutritionTemplate returns the template matching goal, diet and meal
// count exactly whose excluded allergens do not intersect allergies.
func (l *Library) FindNutritionTemplate(goal domain.Goal, dietType domain.DietType, mealsPerDay int, allergies []string) (domain.NutritionTemplate, bool) {
	for _, t := range l.nutrition {
		if t.Goal != goal || t.DietType != dietType || t.MealsPerDay != mealsPerDay {
			continue
		}
		if intersects(t.ExcludedAllergens, allergies) {
			continue
		}
		return t.Clone(), true
	}
	return domain.NutritionTemplate{}, false
}

func intersects(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, v := range a {
		set[normalize(v)] = struct{}{}
	}
	for _, v := range b {
		if _, ok := set[normalize(v)]; ok {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TrainingTemplates returns copies of every training template.
func (l *Library) TrainingTemplates() []domain.TrainingTemplate {
	out := make([]domain.TrainingTemplate, len(l.training))
	for i, t := range l.training {
		out[i] = t.Clone()
	}
	return out
}

// NutritionTemplates returns copies of every nutrition template.
func (l *Library) NutritionTemplates() []domain.NutritionTemplate {
	out := make([]domain.NutritionTemplate, len(l.nutrition))
	for i, t := range l.nutrition {
		out[i] = t.Clone()
	}
	return out
}
