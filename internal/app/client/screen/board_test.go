package screen

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/domain/note"
)

func notes(ids ...string) []note.Note {
	out := make([]note.Note, 0, len(ids))
	for _, id := range ids {
		out = append(out, note.Note{ID: id, Title: "title " + id, Content: "content " + id})
	}
	return out
}

func TestBoard_FirstRefreshEntersAll(t *testing.T) {
	b := NewBoard()
	b.Refresh(notes("a", "b"))

	assert.Equal(t, Entering, b.Transition("a"))
	assert.Equal(t, Entering, b.Transition("b"))
}

func TestBoard_RefreshMarksOnlyNewIDsEntering(t *testing.T) {
	b := NewBoard()
	b.Seed(notes("a", "b"))
	require.Equal(t, Idle, b.Transition("a"))

	b.Refresh(notes("c", "a", "b"))

	assert.Equal(t, Entering, b.Transition("c"))
	assert.Equal(t, Idle, b.Transition("a"))
	assert.Equal(t, Idle, b.Transition("b"))

	// следующий refresh без изменений гасит Entering
	b.Refresh(notes("c", "a", "b"))
	assert.Equal(t, Idle, b.Transition("c"))
}

func TestBoard_LeavingUntilGone(t *testing.T) {
	b := NewBoard()
	b.Seed(notes("a", "b"))

	assert.True(t, b.MarkLeaving("a"))
	assert.False(t, b.MarkLeaving("missing"))
	assert.Equal(t, Leaving, b.Transition("a"))

	// удаление еще не дошло до хранилища
	b.Refresh(notes("a", "b"))
	assert.Equal(t, Leaving, b.Transition("a"))

	b.Refresh(notes("b"))
	_, found := b.Find("a")
	assert.False(t, found)
	assert.Equal(t, Idle, b.Transition("b"))

	// вернувшаяся заметка снова появляется, а не исчезает
	b.Refresh(notes("a", "b"))
	assert.Equal(t, Entering, b.Transition("a"))
}

func TestBoard_Deterministic(t *testing.T) {
	run := func() map[string]Transition {
		b := NewBoard()
		b.Seed(notes("a", "b", "c"))
		b.MarkLeaving("b")
		b.Refresh(notes("d", "a", "b"))
		return b.transitions
	}

	assert.Equal(t, run(), run())
	assert.Equal(t, map[string]Transition{"d": Entering, "a": Idle, "b": Leaving}, run())
}

func TestBoard_Render(t *testing.T) {
	color.NoColor = true

	b := NewBoard()
	b.Seed(notes("a"))
	b.Refresh(append(notes("b"), notes("a")...))

	var buf bytes.Buffer
	require.NoError(t, b.Render(&buf))

	out := buf.String()
	assert.Contains(t, out, "Заметки (2):")
	assert.Contains(t, out, "+ b  title b")
	assert.Contains(t, out, "  a  title a")
	assert.Contains(t, out, "content a")
}

func TestBoard_RenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewBoard().Render(&buf))
	assert.Contains(t, buf.String(), "Заметок пока нет")
}

func TestBoard_RenderJSON(t *testing.T) {
	b := NewBoard()
	b.Seed(notes("a"))
	b.MarkLeaving("a")

	var buf bytes.Buffer
	require.NoError(t, b.RenderJSON(&buf))

	var items []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0]["id"])
	assert.Equal(t, "leaving", items[0]["transition"])
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "one line", preview("one line"))
	assert.Equal(t, "first …", preview("first\nsecond"))

	long := preview(string(bytes.Repeat([]byte("x"), 100)))
	assert.Equal(t, previewLen+1, len([]rune(long)))
}
