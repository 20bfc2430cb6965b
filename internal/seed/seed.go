// Package seed loads catalog and reference data from a YAML file.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/midwaife/backend/internal/model"
	"github.com/midwaife/backend/internal/nutrition"
	"github.com/midwaife/backend/internal/repository"
	"github.com/midwaife/backend/internal/service"
	"gopkg.in/yaml.v3"
)

var knownNutrients = []string{
	model.NutrientCalcium,
	model.NutrientIron,
	model.NutrientFolate,
	model.NutrientProtein,
	model.NutrientVitaminD,
	model.NutrientDHA,
	model.NutrientFiber,
}

type File struct {
	Foods      []Food      `yaml:"foods"`
	Milestones []Milestone `yaml:"milestones"`
	Users      []User      `yaml:"users"`
}

type Food struct {
	Name               string   `yaml:"name"`
	Portion            string   `yaml:"portion"`
	MacroCategory      string   `yaml:"macro_category"`
	RainbowColor       string   `yaml:"rainbow_color"`
	PhytonutrientFocus string   `yaml:"phytonutrient_focus"`
	Nutrients          []string `yaml:"nutrients"`
	Warning            string   `yaml:"warning"`
	WarningType        string   `yaml:"warning_type"`
	Tags               []string `yaml:"tags"`
	Description        string   `yaml:"description"`
}

type Milestone struct {
	Week                  int    `yaml:"week"`
	SizeComparison        string `yaml:"size_comparison"`
	DevelopmentMilestone  string `yaml:"development"`
	NutritionalFocusColor string `yaml:"focus_color"`
	KeyNutrient           string `yaml:"key_nutrient"`
	ActionTip             string `yaml:"action_tip"`
	SourceURL             string `yaml:"source_url"`
}

type User struct {
	ID                  string   `yaml:"id"`
	Email               string   `yaml:"email"`
	FirstName           string   `yaml:"first_name"`
	DueDate             string   `yaml:"due_date"`
	DietaryRestrictions []string `yaml:"dietary_restrictions"`
}

// Result counts what a run wrote.
type Result struct {
	Foods      int
	Milestones int
	Users      int
	Skipped    int
}

func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

func Load(r io.Reader) (*File, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	err := dec.Decode(&file)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	for i, food := range file.Foods {
		for _, n := range food.Nutrients {
			if !slices.Contains(knownNutrients, n) {
				return nil, fmt.Errorf("food %d (%s): unknown nutrient %q", i, food.Name, n)
			}
		}
	}

	return &file, nil
}

type Seeder struct {
	meals      *service.MealService
	milestones *service.MilestoneService
	users      *service.UserService
}

func NewSeeder(meals *service.MealService, milestones *service.MilestoneService, users *service.UserService) *Seeder {
	return &Seeder{
		meals:      meals,
		milestones: milestones,
		users:      users,
	}
}

// Apply writes the file's contents. Foods whose name already exists and users
// whose email is taken are skipped, so a file can be applied repeatedly.
// Milestones are upserted by week.
func (s *Seeder) Apply(ctx context.Context, file *File) (*Result, error) {
	res := &Result{}

	for _, f := range file.Foods {
		exists, err := s.foodExists(ctx, f.Name)
		if err != nil {
			return res, err
		}
		if exists {
			res.Skipped++
			continue
		}

		_, err = s.meals.CreateFood(ctx, f.toCreate())
		if err != nil {
			return res, fmt.Errorf("failed to seed food %q: %w", f.Name, err)
		}
		res.Foods++
	}

	for _, m := range file.Milestones {
		err := s.milestones.Save(ctx, m.toModel())
		if err != nil {
			return res, fmt.Errorf("failed to seed milestone week %d: %w", m.Week, err)
		}
		res.Milestones++
	}

	for _, u := range file.Users {
		_, err := s.users.Create(ctx, u.toModel())
		if errors.Is(err, repository.ErrDuplicateEmail) {
			res.Skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("failed to seed user %q: %w", u.Email, err)
		}
		res.Users++
	}

	slog.Info("seed applied", "foods", res.Foods, "milestones", res.Milestones, "users", res.Users, "skipped", res.Skipped)
	return res, nil
}

func (s *Seeder) foodExists(ctx context.Context, name string) (bool, error) {
	matches, err := s.meals.SearchFoods(ctx, name)
	if err != nil {
		return false, err
	}
	for _, m := range matches {
		if strings.EqualFold(m.Name, strings.TrimSpace(name)) {
			return true, nil
		}
	}
	return false, nil
}

func (f Food) toCreate() *model.FoodCreate {
	return &model.FoodCreate{
		Name:                   f.Name,
		Portion:                optional(f.Portion),
		MacroCategory:          optional(f.MacroCategory),
		RainbowColor:           optional(f.RainbowColor),
		PhytonutrientFocus:     optional(f.PhytonutrientFocus),
		ContainsMicronutrients: nutrition.FromNames(f.Nutrients),
		HasWarnings:            f.Warning != "",
		WarningMessage:         optional(f.Warning),
		WarningType:            optional(f.WarningType),
		Tags:                   f.Tags,
		Description:            optional(f.Description),
	}
}

func (m Milestone) toModel() *model.Milestone {
	return &model.Milestone{
		WeekNumber:            m.Week,
		NHSSizeComparison:     optional(m.SizeComparison),
		DevelopmentMilestone:  m.DevelopmentMilestone,
		NutritionalFocusColor: optional(m.NutritionalFocusColor),
		KeyNutrient:           optional(m.KeyNutrient),
		ActionTip:             optional(m.ActionTip),
		SourceURL:             optional(m.SourceURL),
	}
}

func (u User) toModel() *model.User {
	return &model.User{
		ID:                  u.ID,
		Email:               u.Email,
		FirstName:           u.FirstName,
		DueDate:             optional(u.DueDate),
		DietaryRestrictions: u.DietaryRestrictions,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
