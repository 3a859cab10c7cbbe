package cli

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-dictation/internal/store"
)

// ---------------------------------------------------------------------------
// runExerciseList
// ---------------------------------------------------------------------------

func TestRunExerciseList_Text(t *testing.T) {
	t.Parallel()
	env, m := testEnv(t, "")
	older := testExercise("lesson-1", "One two three.", "Four five.")
	older.CreatedAt = testNow.Add(-72 * time.Hour)
	newer := testExercise("lesson-2", "Six seven eight.")
	for _, ex := range []store.Exercise{older, newer} {
		if err := m.store.Save(context.Background(), ex); err != nil {
			t.Fatal(err)
		}
	}

	if err := RunExerciseList(context.Background(), env, ""); err != nil {
		t.Fatalf("RunExerciseList() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(m.stdout.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2:\n%s", len(lines), m.stdout.String())
	}
	if !strings.HasPrefix(lines[0], "NAME") || !strings.Contains(lines[0], "CREATED") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "lesson-2") || !strings.HasSuffix(lines[1], "2h ago") {
		t.Errorf("first row = %q, want newest with age", lines[1])
	}
	if !strings.HasPrefix(lines[2], "lesson-1") || !strings.HasSuffix(lines[2], "3d ago") {
		t.Errorf("second row = %q", lines[2])
	}
	if m.store.Closed() != 1 {
		t.Errorf("store closed %d times, want 1", m.store.Closed())
	}
}

func TestRunExerciseList_Empty(t *testing.T) {
	t.Parallel()

	t.Run("text", func(t *testing.T) {
		t.Parallel()
		env, m := testEnv(t, "")
		if err := RunExerciseList(context.Background(), env, "text"); err != nil {
			t.Fatalf("RunExerciseList() error = %v", err)
		}
		if got := m.stdout.String(); got != "No exercises saved.\n" {
			t.Errorf("stdout = %q", got)
		}
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		env, m := testEnv(t, "")
		if err := RunExerciseList(context.Background(), env, "json"); err != nil {
			t.Fatalf("RunExerciseList() error = %v", err)
		}
		if got := strings.TrimSpace(m.stdout.String()); got != "[]" {
			t.Errorf("stdout = %q, want []", got)
		}
	})
}

func TestRunExerciseList_JSON(t *testing.T) {
	t.Parallel()
	env, m := testEnv(t, "")
	if err := m.store.Save(context.Background(), testExercise("lesson-1", "One two three.")); err != nil {
		t.Fatal(err)
	}

	if err := RunExerciseList(context.Background(), env, "json"); err != nil {
		t.Fatalf("RunExerciseList() error = %v", err)
	}
	var got []store.Summary
	if err := json.Unmarshal([]byte(m.stdout.String()), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(got) != 1 || got[0].Name != "lesson-1" || got[0].Fragments != 1 {
		t.Errorf("summaries = %+v", got)
	}
}

func TestRunExerciseList_OpenError(t *testing.T) {
	t.Parallel()
	env, m := testEnv(t, "")
	openErr := errors.New("disk on fire")
	m.storeOpener.OpenFunc = func(context.Context, string) (Store, error) {
		return nil, openErr
	}

	if err := RunExerciseList(context.Background(), env, ""); !errors.Is(err, openErr) {
		t.Errorf("RunExerciseList() error = %v, want %v", err, openErr)
	}
}

func TestRunExerciseList_BadFormat(t *testing.T) {
	t.Parallel()
	env, m := testEnv(t, "")
	if err := RunExerciseList(context.Background(), env, "yaml"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("RunExerciseList() error = %v, want ErrUnsupportedFormat", err)
	}
	if len(m.storeOpener.Paths()) != 0 {
		t.Error("store opened despite invalid format")
	}
}

// ---------------------------------------------------------------------------
// runExerciseShow
// ---------------------------------------------------------------------------

func TestRunExerciseShow_Text(t *testing.T) {
	t.Parallel()
	env, m := testEnv(t, "")
	if err := m.store.Save(context.Background(), testExercise("lesson-1", "One two three.", "Four.")); err != nil {
		t.Fatal(err)
	}

	if err := RunExerciseShow(context.Background(), env, "lesson-1", ""); err != nil {
		t.Fatalf("RunExerciseShow() error = %v", err)
	}
	want := "Title lesson-1 (lesson-1)\n" +
		"1. [3w] One two three.\n" +
		"2. [1w short] Four.\n" +
		"2 fragments, avg 2.0 words, 1 short\n"
	if got := m.stdout.String(); got != want {
		t.Errorf("stdout =\n%s\nwant\n%s", got, want)
	}
}

func TestRunExerciseShow_JSON(t *testing.T) {
	t.Parallel()
	env, m := testEnv(t, "")
	if err := m.store.Save(context.Background(), testExercise("lesson-1", "One two three.")); err != nil {
		t.Fatal(err)
	}

	if err := RunExerciseShow(context.Background(), env, "lesson-1", "json"); err != nil {
		t.Fatalf("RunExerciseShow() error = %v", err)
	}
	var got store.Exercise
	if err := json.Unmarshal([]byte(m.stdout.String()), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if got.Name != "lesson-1" || len(got.Records) != 1 || got.Records[0].Text != "One two three." {
		t.Errorf("exercise = %+v", got)
	}
}

func TestRunExerciseShow_NotFound(t *testing.T) {
	t.Parallel()
	env, _ := testEnv(t, "")
	err := RunExerciseShow(context.Background(), env, "missing", "")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("RunExerciseShow() error = %v, want ErrNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// runExerciseDelete
// ---------------------------------------------------------------------------

func TestRunExerciseDelete(t *testing.T) {
	t.Parallel()
	env, m := testEnv(t, "")
	if err := m.store.Save(context.Background(), testExercise("lesson-1", "One two three.")); err != nil {
		t.Fatal(err)
	}

	if err := RunExerciseDelete(context.Background(), env, "lesson-1"); err != nil {
		t.Fatalf("RunExerciseDelete() error = %v", err)
	}
	if _, ok := m.store.Exercise("lesson-1"); ok {
		t.Error("exercise still stored")
	}
	if !strings.Contains(m.stderr.String(), `Deleted exercise "lesson-1"`) {
		t.Errorf("stderr = %q", m.stderr.String())
	}

	err := RunExerciseDelete(context.Background(), env, "lesson-1")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}
