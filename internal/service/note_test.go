package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/solvenote/solvenote/internal/compress"
	"github.com/solvenote/solvenote/internal/model"
	"github.com/solvenote/solvenote/internal/store"
	"github.com/solvenote/solvenote/internal/tester"
	"github.com/stretchr/testify/assert"
)

func newNoteService() *NoteService {
	return NewNoteService(compress.NewNop(), store.NewGormStore(tester.TestDB()))
}

func contentWithText(text string) json.RawMessage {
	doc := map[string]interface{}{
		"type": "doc",
		"content": []interface{}{
			map[string]interface{}{
				"type": "paragraph",
				"content": []interface{}{
					map[string]interface{}{"type": "text", "text": text},
				},
			},
		},
	}
	data, _ := json.Marshal(doc)
	return data
}

func TestNoteService_CreateNote(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	client := newNoteService()

	url := "https://leetcode.com/problems/two-sum"
	note, err := client.CreateNote(context.TODO(), CreateNoteInput{
		Title:      "Two Sum",
		Content:    contentWithText("use a #HashMap for O(n)"),
		Tags:       []string{"arrays"},
		Difficulty: model.DifficultyEasy,
		Sources:    []string{"LeetCode Top 100"},
		ProblemURL: &url,
	})
	assert.NoError(t, err)
	assert.NotNil(t, note)

	assert.Equal(t, "Two Sum", note.Title)
	assert.Equal(t, "two-sum", note.Slug)
	// explicit tags plus hashtags extracted from the content
	assert.ElementsMatch(t, []string{"arrays", "HashMap"}, note.Tags)
	assert.Equal(t, []string{"LeetCode Top 100"}, note.Sources)
	assert.Equal(t, model.DifficultyEasy, note.Meta.Difficulty)
	assert.Equal(t, &url, note.Meta.ProblemURL)
	assert.Nil(t, note.Progress)
	assert.Equal(t, int64(1), note.DisplayProgress.Count)

	got, err := client.GetNoteBySlug(context.TODO(), "two-sum")
	assert.NoError(t, err)
	assert.Equal(t, note.ID, got.ID)
}

func TestNoteService_CreateNote_Validation(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	client := newNoteService()

	tests := []struct {
		name  string
		input CreateNoteInput
		want  error
	}{
		{
			name:  "missing title",
			input: CreateNoteInput{Difficulty: model.DifficultyEasy, Sources: []string{"s"}},
			want:  ErrTitleRequired,
		},
		{
			name:  "blank title",
			input: CreateNoteInput{Title: "   ", Difficulty: model.DifficultyEasy, Sources: []string{"s"}},
			want:  ErrTitleRequired,
		},
		{
			name:  "bad difficulty",
			input: CreateNoteInput{Title: "t", Difficulty: "IMPOSSIBLE", Sources: []string{"s"}},
			want:  ErrInvalidDifficulty,
		},
		{
			name:  "no sources",
			input: CreateNoteInput{Title: "t", Difficulty: model.DifficultyEasy},
			want:  ErrSourceRequired,
		},
		{
			name:  "blank sources",
			input: CreateNoteInput{Title: "t", Difficulty: model.DifficultyEasy, Sources: []string{"  ", ""}},
			want:  ErrSourceRequired,
		},
		{
			name: "invalid content",
			input: CreateNoteInput{
				Title:      "t",
				Content:    json.RawMessage(`{"type":`),
				Difficulty: model.DifficultyEasy,
				Sources:    []string{"s"},
			},
			want: ErrInvalidContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.CreateNote(context.TODO(), tt.input)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestNoteService_SlugCollision(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	client := newNoteService()

	base := CreateNoteInput{
		Difficulty: model.DifficultyMedium,
		Sources:    []string{"NeetCode 150"},
	}

	slugs := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		input := base
		input.Title = "Binary Search"
		note, err := client.CreateNote(context.TODO(), input)
		assert.NoError(t, err)
		slugs = append(slugs, note.Slug)
	}

	assert.Equal(t, []string{"binary-search", "binary-search-2", "binary-search-3"}, slugs)
}

func TestNoteService_UpdateNote(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	client := newNoteService()

	note, err := client.CreateNote(context.TODO(), CreateNoteInput{
		Title:      "Course Schedule",
		Content:    contentWithText("topological sort #Graph"),
		Difficulty: model.DifficultyMedium,
		Sources:    []string{"LeetCode Top 100"},
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Graph"}, note.Tags)

	newTitle := "Course Schedule II"
	hard := model.DifficultyHard
	updated, err := client.UpdateNote(context.TODO(), note.ID, UpdateNoteInput{
		Title:      &newTitle,
		Tags:       []string{"Graph", "BFS"},
		Difficulty: &hard,
		Sources:    []string{"NeetCode 150"},
	})
	assert.NoError(t, err)

	assert.Equal(t, "Course Schedule II", updated.Title)
	assert.Equal(t, "course-schedule-ii", updated.Slug)
	assert.ElementsMatch(t, []string{"Graph", "BFS"}, updated.Tags)
	assert.Equal(t, []string{"NeetCode 150"}, updated.Sources)
	assert.Equal(t, model.DifficultyHard, updated.Meta.Difficulty)

	// fields not present in the input stay untouched
	again, err := client.UpdateNote(context.TODO(), note.ID, UpdateNoteInput{
		Content: contentWithText("switched to #DFS"),
	})
	assert.NoError(t, err)
	assert.Equal(t, "Course Schedule II", again.Title)
	assert.Equal(t, model.DifficultyHard, again.Meta.Difficulty)
	// content hashtags merge into the kept tag set
	assert.ElementsMatch(t, []string{"Graph", "BFS", "DFS"}, again.Tags)
}

func TestNoteService_UpdateNote_SameTitleKeepsSlug(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	client := newNoteService()

	note, err := client.CreateNote(context.TODO(), CreateNoteInput{
		Title:      "Valid Anagram",
		Difficulty: model.DifficultyEasy,
		Sources:    []string{"LeetCode Top 100"},
	})
	assert.NoError(t, err)

	title := "Valid Anagram"
	updated, err := client.UpdateNote(context.TODO(), note.ID, UpdateNoteInput{Title: &title})
	assert.NoError(t, err)
	assert.Equal(t, "valid-anagram", updated.Slug)
}

func TestNoteService_UpdateNote_NotFound(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	client := newNoteService()

	title := "ghost"
	_, err := client.UpdateNote(context.TODO(), "no-such-id", UpdateNoteInput{Title: &title})
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestNoteService_DeleteNote(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	client := newNoteService()

	note, err := client.CreateNote(context.TODO(), CreateNoteInput{
		Title:      "Climbing Stairs",
		Difficulty: model.DifficultyEasy,
		Sources:    []string{"LeetCode Top 100"},
	})
	assert.NoError(t, err)

	assert.NoError(t, client.DeleteNote(context.TODO(), note.ID))

	_, err = client.GetNote(context.TODO(), note.ID)
	assert.ErrorIs(t, err, ErrNoteNotFound)

	assert.ErrorIs(t, client.DeleteNote(context.TODO(), note.ID), ErrNoteNotFound)
}

func TestNoteService_EmptyContentDefaults(t *testing.T) {
	tester.RemoveDBFile()
	tester.Setup()

	client := newNoteService()

	note, err := client.CreateNote(context.TODO(), CreateNoteInput{
		Title:      "No Content Yet",
		Difficulty: model.DifficultyMedium,
		Sources:    []string{"Blind 75"},
	})
	assert.NoError(t, err)
	assert.JSONEq(t, "{}", string(note.Content))
	assert.Equal(t, []string{}, note.Tags)
}
