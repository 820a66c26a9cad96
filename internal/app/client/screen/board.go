package screen

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"notekeeper/internal/domain/note"
)

type Transition int

const (
	Idle Transition = iota
	Entering
	Leaving
)

func (t Transition) String() string {
	switch t {
	case Entering:
		return "entering"
	case Leaving:
		return "leaving"
	default:
		return "idle"
	}
}

const previewLen = 60

// Board держит последний загруженный список заметок и состояние перехода для каждой.
// Состояние живет только в памяти процесса и пересчитывается при каждом Refresh.
type Board struct {
	notes       []note.Note
	transitions map[string]Transition
	leaving     map[string]struct{}
}

func NewBoard() *Board {
	return &Board{
		transitions: make(map[string]Transition),
		leaving:     make(map[string]struct{}),
	}
}

// Refresh заменяет список. Заметки, которых не было в прошлом списке, становятся Entering;
// помеченные на удаление и еще присутствующие остаются Leaving; остальные Idle.
// Первый Refresh показывает весь список как Entering.
func (b *Board) Refresh(notes []note.Note) {
	prev := b.transitions
	next := make(map[string]Transition, len(notes))

	for _, n := range notes {
		_, wasShown := prev[n.ID]
		_, isLeaving := b.leaving[n.ID]

		switch {
		case isLeaving:
			next[n.ID] = Leaving
		case !wasShown:
			next[n.ID] = Entering
		default:
			next[n.ID] = Idle
		}
	}

	for id := range b.leaving {
		if _, ok := next[id]; !ok {
			delete(b.leaving, id)
		}
	}

	b.notes = append(b.notes[:0:0], notes...)
	b.transitions = next
}

// Seed загружает список без анимации появления: все заметки Idle.
func (b *Board) Seed(notes []note.Note) {
	b.Refresh(notes)
	for id, t := range b.transitions {
		if t == Entering {
			b.transitions[id] = Idle
		}
	}
}

// MarkLeaving помечает заметку как удаляемую. Неизвестный id игнорируется.
func (b *Board) MarkLeaving(id string) bool {
	if _, ok := b.transitions[id]; !ok {
		return false
	}

	b.leaving[id] = struct{}{}
	b.transitions[id] = Leaving
	return true
}

func (b *Board) Transition(id string) Transition {
	return b.transitions[id]
}

func (b *Board) Notes() []note.Note {
	return b.notes
}

func (b *Board) Find(id string) (note.Note, bool) {
	for _, n := range b.notes {
		if n.ID == id {
			return n, true
		}
	}
	return note.Note{}, false
}

var (
	enteringColor = color.New(color.FgGreen)
	leavingColor  = color.New(color.FgRed, color.CrossedOut)
	titleColor    = color.New(color.Bold)
	dimColor      = color.New(color.Faint)
)

func (b *Board) Render(w io.Writer) error {
	if len(b.notes) == 0 {
		_, err := fmt.Fprintln(w, "Заметок пока нет. Создайте первую: notekeeper note create")
		return err
	}

	if _, err := fmt.Fprintf(w, "Заметки (%d):\n", len(b.notes)); err != nil {
		return err
	}

	for _, n := range b.notes {
		var err error
		switch b.transitions[n.ID] {
		case Entering:
			_, err = enteringColor.Fprintf(w, "+ %s  %s\n", n.ID, n.Title)
		case Leaving:
			_, err = leavingColor.Fprintf(w, "- %s  %s\n", n.ID, n.Title)
		default:
			_, err = fmt.Fprintf(w, "  %s  %s\n", dimColor.Sprint(n.ID), titleColor.Sprint(n.Title))
		}
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "    %s\n", preview(n.Content)); err != nil {
			return err
		}
	}

	return nil
}

type boardItem struct {
	note.Note
	Transition string `json:"transition"`
}

func (b *Board) RenderJSON(w io.Writer) error {
	items := make([]boardItem, 0, len(b.notes))
	for _, n := range b.notes {
		items = append(items, boardItem{Note: n, Transition: b.transitions[n.ID].String()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

func preview(content string) string {
	line, _, cut := strings.Cut(content, "\n")
	r := []rune(line)
	if len(r) > previewLen {
		return string(r[:previewLen]) + "…"
	}
	if cut {
		return line + " …"
	}
	return line
}
