package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

func TestNewHabit(t *testing.T) {
	t.Run("Success: Creates valid habit with defaults", func(t *testing.T) {
		h, err := domain.NewHabit("u1", "  Drink Water ", "", "", "")

		require.NoError(t, err)
		assert.NotEmpty(t, h.ID)
		assert.Equal(t, "u1", h.UserID)
		assert.Equal(t, "Drink Water", h.Name)
		assert.Equal(t, domain.FrequencyDaily, h.Frequency)
		assert.Contains(t, domain.Palette, h.Color, "Habits without a color get one from the palette")
		assert.NotNil(t, h.CompletedDates)
		assert.Empty(t, h.CompletedDates)
		assert.WithinDuration(t, time.Now().UTC(), h.CreatedAt, 2*time.Second)
	})

	t.Run("Success: Keeps explicit weekly frequency and color", func(t *testing.T) {
		h, err := domain.NewHabit("u1", "Long run", "Sunday morning", domain.FrequencyWeekly, "teal")

		require.NoError(t, err)
		assert.Equal(t, domain.FrequencyWeekly, h.Frequency)
		assert.Equal(t, "teal", h.Color)
		assert.Equal(t, "Sunday morning", h.Description)
	})

	tests := []struct {
		name      string
		userID    string
		habitName string
		desc      string
		freq      string
		color     string
		wantErr   error
	}{
		{name: "Error: Empty name", userID: "u1", habitName: "   ", wantErr: domain.ErrHabitNameEmpty},
		{name: "Error: Name too long", userID: "u1", habitName: strings.Repeat("a", 101), wantErr: domain.ErrHabitNameTooLong},
		{name: "Error: Description too long", userID: "u1", habitName: "Read", desc: strings.Repeat("d", 501), wantErr: domain.ErrHabitDescTooLong},
		{name: "Error: Invalid user", userID: "", habitName: "Read", wantErr: domain.ErrHabitInvalidUserID},
		{name: "Error: Unknown frequency", userID: "u1", habitName: "Read", freq: "monthly", wantErr: domain.ErrInvalidFrequency},
		{name: "Error: Color too long", userID: "u1", habitName: "Read", color: strings.Repeat("c", 33), wantErr: domain.ErrInvalidColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := domain.NewHabit(tt.userID, tt.habitName, tt.desc, tt.freq, tt.color)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, h)
		})
	}
}

func TestHabit_Update(t *testing.T) {
	t.Run("Success: Updates fields and keeps color when empty", func(t *testing.T) {
		h, err := domain.NewHabit("u1", "Read", "", "", "blue")
		require.NoError(t, err)
		before := h.UpdatedAt

		time.Sleep(time.Millisecond)
		err = h.Update("Read more", "20 pages", domain.FrequencyWeekly, "")

		require.NoError(t, err)
		assert.Equal(t, "Read more", h.Name)
		assert.Equal(t, "20 pages", h.Description)
		assert.Equal(t, domain.FrequencyWeekly, h.Frequency)
		assert.Equal(t, "blue", h.Color)
		assert.True(t, h.UpdatedAt.After(before))
	})

	t.Run("Error: Invalid update leaves habit untouched", func(t *testing.T) {
		h, err := domain.NewHabit("u1", "Read", "", "", "blue")
		require.NoError(t, err)

		err = h.Update("", "", "", "")

		assert.ErrorIs(t, err, domain.ErrHabitNameEmpty)
		assert.Equal(t, "Read", h.Name)
	})
}

func TestHabit_Completions(t *testing.T) {
	t.Run("SetCompletion is idempotent and keeps the set sorted", func(t *testing.T) {
		h, _ := domain.NewHabit("u1", "Read", "", "", "")

		changed, err := h.SetCompletion("2026-10-17", true)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = h.SetCompletion("2026-10-15", true)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = h.SetCompletion("2026-10-17", true)
		require.NoError(t, err)
		assert.False(t, changed, "Marking an already completed day is a no-op")

		assert.Equal(t, []string{"2026-10-15", "2026-10-17"}, h.CompletedDates)

		changed, err = h.SetCompletion("2026-10-15", false)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, []string{"2026-10-17"}, h.CompletedDates)

		changed, err = h.SetCompletion("2026-10-01", false)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("ToggleCompletion flips the day", func(t *testing.T) {
		h, _ := domain.NewHabit("u1", "Read", "", "", "")

		done, err := h.ToggleCompletion("2026-10-17")
		require.NoError(t, err)
		assert.True(t, done)
		assert.True(t, h.IsCompletedOn("2026-10-17"))

		done, err = h.ToggleCompletion("2026-10-17")
		require.NoError(t, err)
		assert.False(t, done)
		assert.False(t, h.IsCompletedOn("2026-10-17"))
	})

	t.Run("Error: Rejects malformed dates", func(t *testing.T) {
		h, _ := domain.NewHabit("u1", "Read", "", "", "")

		for _, bad := range []string{"", "17/10/2026", "2026-02-30", "2026-10-17T10:00:00Z"} {
			_, err := h.ToggleCompletion(bad)
			assert.ErrorIs(t, err, domain.ErrInvalidDate, bad)
		}
		assert.Empty(t, h.CompletedDates)
	})
}

func TestNormalizeDates(t *testing.T) {
	assert.Equal(t, []string{}, domain.NormalizeDates(nil))
	assert.Equal(t,
		[]string{"2026-10-01", "2026-10-02", "garbage"},
		domain.NormalizeDates([]string{"garbage", "2026-10-02", "2026-10-01", "2026-10-02"}),
	)
}

func TestParseDay(t *testing.T) {
	t.Run("Strict calendar date", func(t *testing.T) {
		d, ok := domain.ParseDay("2026-10-17", nil)
		require.True(t, ok)
		assert.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), d)
	})

	t.Run("Timestamp is reduced to the day in loc", func(t *testing.T) {
		loc := time.FixedZone("UTC+2", 2*60*60)
		d, ok := domain.ParseDay("2026-10-16T23:00:00Z", loc)
		require.True(t, ok)
		assert.Equal(t, "2026-10-17", domain.FormatDay(d))
	})

	t.Run("Garbage is rejected", func(t *testing.T) {
		for _, s := range []string{"", "today", "2026-1-7", "2026-13-01"} {
			_, ok := domain.ParseDay(s, time.UTC)
			assert.False(t, ok, s)
		}
	})

	t.Run("IsValidDay is strict", func(t *testing.T) {
		assert.True(t, domain.IsValidDay("2028-02-29"))
		assert.False(t, domain.IsValidDay("2026-02-29"))
		assert.False(t, domain.IsValidDay("2026-10-17T00:00:00Z"))
	})
}

func TestAchievements_Flags(t *testing.T) {
	a := domain.Achievements{Total: 2, WeekWarrior: true, HabitMaster: true}

	assert.Equal(t, map[string]bool{
		domain.AchievementWeekWarrior:     true,
		domain.AchievementConsistencyKing: false,
		domain.AchievementHabitMaster:     true,
	}, a.Flags())
}
