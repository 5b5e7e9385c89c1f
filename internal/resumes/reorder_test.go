package resumes

import (
	"errors"
	"slices"
	"testing"
)

func TestMove(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		from int
		to   int
		want []string
	}{
		{"forward", []string{"a", "b", "c", "d"}, 0, 2, []string{"b", "c", "a", "d"}},
		{"backward", []string{"a", "b", "c", "d"}, 3, 1, []string{"a", "d", "b", "c"}},
		{"to end", []string{"a", "b", "c"}, 0, 2, []string{"b", "c", "a"}},
		{"to start", []string{"a", "b", "c"}, 2, 0, []string{"c", "a", "b"}},
		{"adjacent", []string{"a", "b"}, 0, 1, []string{"b", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := slices.Clone(tt.in)
			got, err := Move(in, tt.from, tt.to)
			if err != nil {
				t.Fatalf("Move: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Fatalf("Move = %v, want %v", got, tt.want)
			}
			if !slices.Equal(in, tt.in) {
				t.Fatalf("input mutated: %v", in)
			}
		})
	}
}

func TestMoveNoop(t *testing.T) {
	in := []string{"a", "b", "c"}
	got, err := Move(in, 1, 1)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if !slices.Equal(got, in) {
		t.Fatalf("Move = %v, want input order", got)
	}
}

func TestMoveOutOfRange(t *testing.T) {
	in := []string{"a", "b"}
	for _, idx := range [][2]int{{-1, 0}, {2, 0}, {0, -1}, {0, 2}} {
		if _, err := Move(in, idx[0], idx[1]); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("Move(%d, %d) err = %v, want ErrInvalidInput", idx[0], idx[1], err)
		}
	}
}

func TestMoveSection(t *testing.T) {
	doc := Document{
		Skills: []SkillGroup{
			{Category: "Languages"},
			{Category: "Databases"},
			{Category: "Tools"},
		},
	}
	got, err := MoveSection(doc, SectionSkills, 2, 0)
	if err != nil {
		t.Fatalf("MoveSection: %v", err)
	}
	if got.Skills[0].Category != "Tools" || got.Skills[1].Category != "Languages" {
		t.Fatalf("unexpected order: %+v", got.Skills)
	}
	if doc.Skills[0].Category != "Languages" {
		t.Fatalf("input document mutated: %+v", doc.Skills)
	}

	if _, err := MoveSection(doc, "hobbies", 0, 1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown section err = %v, want ErrInvalidInput", err)
	}
}
