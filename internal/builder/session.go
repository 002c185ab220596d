// Package builder implements the drag-and-drop layout document: an
// ordered list of typed blocks with a tracked selection, mutated by
// insert/reorder/edit/delete operations and serialized into templates and
// campaign drafts.
package builder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"camacero/api-gateway/models"
)

var (
	ErrUnknownKind     = errors.New("tipo de componente desconocido")
	ErrElementNotFound = errors.New("elemento no encontrado")
	ErrBadPosition     = errors.New("posición fuera de rango")
	ErrNoSelection     = errors.New("ningún elemento seleccionado")
	ErrEmptyName       = errors.New("el nombre es obligatorio")
)

// Session is one builder document. Instance identifiers are allocated
// from a per-session counter, so they stay unique and strictly increasing
// no matter how blocks are reordered or deleted in between.
type Session struct {
	mu       sync.Mutex
	layout   []models.Element
	selected string // instance id, empty when nothing is selected
	nextID   int
}

// NewSession starts an empty canvas.
func NewSession() *Session {
	return &Session{nextID: 1}
}

// LoadLayout resumes editing of a persisted layout. The id counter is
// bumped past the highest existing instance id so new blocks never
// collide with loaded ones.
func (s *Session) LoadLayout(layout []models.Element) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layout = cloneLayout(layout)
	s.selected = ""
	maxID := 0
	for _, el := range s.layout {
		if n := parseInstanceID(el.InstanceID); n > maxID {
			maxID = n
		}
	}
	s.nextID = maxID + 1
}

func parseInstanceID(id string) int {
	raw, ok := strings.CutPrefix(id, "el-")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// Insert drops a new block of the given kind at position index (clamped
// to the list bounds) and returns it. The columns kind always starts with
// exactly two empty child lists. Selection is unaffected.
func (s *Session) Insert(kind models.ElementKind, index int) (models.Element, error) {
	if !models.KnownElementKind(kind) {
		return models.Element{}, ErrUnknownKind
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	element := models.Element{
		InstanceID: fmt.Sprintf("el-%d", id),
		Type:       kind,
		Content:    models.ElementDefaultContent(kind),
	}
	if kind == models.ElementColumns {
		element.Columns = []models.Column{
			{ID: fmt.Sprintf("col-%d-1", id), Content: []models.Element{}},
			{ID: fmt.Sprintf("col-%d-2", id), Content: []models.Element{}},
		}
	}

	if index < 0 {
		index = 0
	}
	if index > len(s.layout) {
		index = len(s.layout)
	}
	s.layout = append(s.layout, models.Element{})
	copy(s.layout[index+1:], s.layout[index:])
	s.layout[index] = element

	return element, nil
}

// Reorder moves the block at from to position to. Identifiers are
// preserved; selection follows the moved block implicitly because it is
// tracked by id, not position.
func (s *Session) Reorder(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if from < 0 || from >= len(s.layout) || to < 0 || to >= len(s.layout) {
		return ErrBadPosition
	}
	moved := s.layout[from]
	s.layout = append(s.layout[:from], s.layout[from+1:]...)
	s.layout = append(s.layout, models.Element{})
	copy(s.layout[to+1:], s.layout[to:])
	s.layout[to] = moved
	return nil
}

// Select marks the block with the given instance id as selected.
func (s *Session) Select(instanceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(instanceID) < 0 {
		return ErrElementNotFound
	}
	s.selected = instanceID
	return nil
}

// Selected returns a copy of the currently selected block, or nil.
func (s *Session) Selected() *models.Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(s.selected)
	if i < 0 {
		return nil
	}
	element := s.layout[i]
	return &element
}

// EditContent mutates the selected block's payload in place and returns
// the updated block, keeping the selection mirror in sync.
func (s *Session) EditContent(content string) (models.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(s.selected)
	if i < 0 {
		return models.Element{}, ErrNoSelection
	}
	s.layout[i].Content = content
	return s.layout[i], nil
}

// Delete removes the block with the given instance id and clears the
// selection.
func (s *Session) Delete(instanceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(instanceID)
	if i < 0 {
		return ErrElementNotFound
	}
	s.layout = append(s.layout[:i], s.layout[i+1:]...)
	s.selected = ""
	return nil
}

// Layout returns a snapshot of the document in render order.
func (s *Session) Layout() []models.Element {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneLayout(s.layout)
}

// BuildTemplate serializes the document into a template record. A new id
// is assigned when existingID is empty; otherwise the existing record is
// overwritten. The thumbnail comes from the first image block's content,
// falling back to the fixed placeholder.
func (s *Session) BuildTemplate(existingID, name string) (models.Template, error) {
	if strings.TrimSpace(name) == "" {
		return models.Template{}, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := existingID
	if id == "" {
		id = "template-" + uuid.NewString()
	}
	return models.Template{
		ID:        id,
		Name:      name,
		Layout:    cloneLayout(s.layout),
		Thumbnail: thumbnailFor(s.layout),
	}, nil
}

// BuildCampaign serializes the document into a campaign draft.
func (s *Session) BuildCampaign(name string) (models.Campaign, error) {
	if strings.TrimSpace(name) == "" {
		return models.Campaign{}, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return models.Campaign{
		Name:   name,
		Status: models.CampaignDraft,
		Layout: cloneLayout(s.layout),
	}, nil
}

// indexOf must be called with the lock held.
func (s *Session) indexOf(instanceID string) int {
	if instanceID == "" {
		return -1
	}
	for i := range s.layout {
		if s.layout[i].InstanceID == instanceID {
			return i
		}
	}
	return -1
}

func thumbnailFor(layout []models.Element) string {
	for _, el := range layout {
		if el.Type == models.ElementImage {
			return el.Content
		}
	}
	return models.TemplatePlaceholderThumbnail
}

func cloneLayout(layout []models.Element) []models.Element {
	out := make([]models.Element, len(layout))
	for i, el := range layout {
		out[i] = el
		if el.Columns != nil {
			cols := make([]models.Column, len(el.Columns))
			for j, col := range el.Columns {
				cols[j] = models.Column{ID: col.ID, Content: cloneLayout(col.Content)}
			}
			out[i].Columns = cols
		}
	}
	return out
}
