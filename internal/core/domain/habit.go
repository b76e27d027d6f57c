package domain

import (
	"errors"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitNameEmpty     = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong   = errors.New("habit name is too long (max 100 chars)")
	ErrHabitDescTooLong   = errors.New("habit description is too long (max 500 chars)")
	ErrHabitInvalidUserID = errors.New("invalid user id")
	ErrInvalidFrequency   = errors.New("invalid frequency (must be daily or weekly)")
	ErrInvalidColor       = errors.New("invalid color tag (max 32 chars)")
	ErrInvalidDate        = errors.New("invalid date (must be YYYY-MM-DD)")
)

const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
	MaxNameLen      = 100
	MaxDescLen      = 500
	MaxColorLen     = 32
)

// Palette holds the color tags handed out to habits created without one.
var Palette = []string{"red", "blue", "green", "yellow", "purple", "indigo", "orange"}

type Habit struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	Frequency      string    `json:"frequency"`
	Color          string    `json:"color"`
	CompletedDates []string  `json:"completed_dates"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func validate(name, desc, frequency, color string) (string, error) {
	if name == "" {
		return "", ErrHabitNameEmpty
	}
	if len(name) > MaxNameLen {
		return "", ErrHabitNameTooLong
	}
	if len(desc) > MaxDescLen {
		return "", ErrHabitDescTooLong
	}
	if len(color) > MaxColorLen {
		return "", ErrInvalidColor
	}

	switch frequency {
	case "":
		return FrequencyDaily, nil
	case FrequencyDaily, FrequencyWeekly:
		return frequency, nil
	default:
		return "", ErrInvalidFrequency
	}
}

func NewHabit(userID, name, description, frequency, color string) (*Habit, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrHabitInvalidUserID
	}

	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	color = strings.TrimSpace(color)

	freq, err := validate(name, description, frequency, color)
	if err != nil {
		return nil, err
	}

	if color == "" {
		color = Palette[rand.IntN(len(Palette))]
	}

	now := time.Now().UTC()

	return &Habit{
		ID:             uuid.NewString(),
		UserID:         userID,
		Name:           name,
		Description:    description,
		Frequency:      freq,
		Color:          color,
		CompletedDates: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func (h *Habit) Update(name, description, frequency, color string) error {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	color = strings.TrimSpace(color)

	freq, err := validate(name, description, frequency, color)
	if err != nil {
		return err
	}

	if color == "" {
		color = h.Color
	}

	h.Name = name
	h.Description = description
	h.Frequency = freq
	h.Color = color
	h.UpdatedAt = time.Now().UTC()

	return nil
}

func (h *Habit) IsCompletedOn(date string) bool {
	for _, d := range h.CompletedDates {
		if d == date {
			return true
		}
	}
	return false
}

// SetCompletion marks or unmarks a day. It reports whether the set changed.
func (h *Habit) SetCompletion(date string, done bool) (bool, error) {
	if !IsValidDay(date) {
		return false, ErrInvalidDate
	}

	if h.IsCompletedOn(date) == done {
		return false, nil
	}

	if done {
		h.CompletedDates = append(h.CompletedDates, date)
	} else {
		kept := make([]string, 0, len(h.CompletedDates))
		for _, d := range h.CompletedDates {
			if d != date {
				kept = append(kept, d)
			}
		}
		h.CompletedDates = kept
	}

	h.CompletedDates = NormalizeDates(h.CompletedDates)
	h.UpdatedAt = time.Now().UTC()
	return true, nil
}

// ToggleCompletion flips the state of a day and returns the new state.
func (h *Habit) ToggleCompletion(date string) (bool, error) {
	done := !h.IsCompletedOn(date)
	if _, err := h.SetCompletion(date, done); err != nil {
		return false, err
	}
	return done, nil
}

// NormalizeDates sorts and dedups a completion set, keeping malformed entries.
func NormalizeDates(dates []string) []string {
	if len(dates) == 0 {
		return []string{}
	}

	seen := make(map[string]bool, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}

	sort.Strings(out)
	return out
}
