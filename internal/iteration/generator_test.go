package iteration

import (
	"testing"
	"time"

	"github.com/artplanhq/artplan/internal/art"
	"github.com/artplanhq/artplan/internal/errors"
)

func pi(start, end time.Time) art.ProgramIncrement {
	return art.ProgramIncrement{
		ID:        "pi-2024-1",
		Name:      "PI 2024.1",
		StartDate: start,
		EndDate:   end,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateNinetyDayIncrement(t *testing.T) {
	// 90 days at a 14-day cadence: six iterations, remainder absorbed
	// into the last one.
	iterations, err := Generate(pi(day(2024, time.January, 1), day(2024, time.March, 31)), 14)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if len(iterations) != 6 {
		t.Fatalf("Generate() produced %d iterations, want 6", len(iterations))
	}

	first := iterations[0]
	if !first.StartDate.Equal(day(2024, time.January, 1)) {
		t.Errorf("iteration 1 starts %v, want 2024-01-01", first.StartDate)
	}
	if !first.EndDate.Equal(day(2024, time.January, 14)) {
		t.Errorf("iteration 1 ends %v, want 2024-01-14", first.EndDate)
	}

	last := iterations[5]
	if !last.StartDate.Equal(day(2024, time.March, 11)) {
		t.Errorf("iteration 6 starts %v, want 2024-03-11", last.StartDate)
	}
	if !last.EndDate.Equal(day(2024, time.March, 31)) {
		t.Errorf("iteration 6 must absorb the remainder and end 2024-03-31, got %v", last.EndDate)
	}

	if first.Name != "PI 2024.1 - Iteration 1" {
		t.Errorf("iteration 1 name = %q", first.Name)
	}
	if last.Name != "PI 2024.1 - Iteration 6" {
		t.Errorf("iteration 6 name = %q", last.Name)
	}
}

func TestGenerateEvenSplit(t *testing.T) {
	iterations, err := Generate(pi(day(2024, time.April, 1), day(2024, time.May, 1)), 10)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(iterations) != 3 {
		t.Fatalf("30-day increment at 10-day cadence should yield 3 iterations, got %d", len(iterations))
	}
	for i, it := range iterations {
		if next := i + 1; next < len(iterations) {
			if !iterations[next].StartDate.After(it.EndDate) {
				t.Errorf("iteration %d overlaps its successor", i+1)
			}
		}
	}
}

func TestGenerateShortIncrement(t *testing.T) {
	// Shorter than one iteration length: a single iteration covering
	// the whole increment.
	iterations, err := Generate(pi(day(2024, time.June, 1), day(2024, time.June, 8)), 14)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(iterations) != 1 {
		t.Fatalf("want 1 iteration, got %d", len(iterations))
	}
	if !iterations[0].EndDate.Equal(day(2024, time.June, 8)) {
		t.Errorf("single iteration should end at the increment end")
	}
}

func TestGenerateRejectsBadInputs(t *testing.T) {
	start := day(2024, time.January, 1)

	_, err := Generate(pi(start, start), 14)
	if !errors.HasCode(err, errors.ErrCodeInputBadIncrement) {
		t.Errorf("zero-duration increment should fail with INPUT-004, got %v", err)
	}

	_, err = Generate(pi(start, start.AddDate(0, 0, -10)), 14)
	if !errors.HasCode(err, errors.ErrCodeInputBadIncrement) {
		t.Errorf("negative-duration increment should fail with INPUT-004, got %v", err)
	}

	_, err = Generate(pi(start, day(2024, time.March, 31)), 0)
	if !errors.HasCode(err, errors.ErrCodeInputBadIteration) {
		t.Errorf("non-positive length should fail with INPUT-005, got %v", err)
	}
}

func TestContains(t *testing.T) {
	it := art.Iteration{
		StartDate: day(2024, time.January, 1),
		EndDate:   day(2024, time.January, 14),
	}
	if !Contains(it, day(2024, time.January, 1)) || !Contains(it, day(2024, time.January, 14)) {
		t.Error("boundaries are inside the iteration")
	}
	if Contains(it, day(2024, time.January, 15)) {
		t.Error("day after the end is outside")
	}
}
