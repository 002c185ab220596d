package builder

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camacero/api-gateway/models"
)

func TestInsertAssignsIncreasingInstanceIDs(t *testing.T) {
	s := NewSession()

	first, err := s.Insert(models.ElementText, 0)
	require.NoError(t, err)
	second, err := s.Insert(models.ElementDivider, 1)
	require.NoError(t, err)

	assert.Equal(t, "el-1", first.InstanceID)
	assert.Equal(t, "el-2", second.InstanceID)

	// Deleting and reinserting must not reuse an id.
	require.NoError(t, s.Delete("el-2"))
	third, err := s.Insert(models.ElementText, 0)
	require.NoError(t, err)
	assert.Equal(t, "el-3", third.InstanceID)
}

func TestInsertUnknownKind(t *testing.T) {
	s := NewSession()
	_, err := s.Insert(models.ElementKind("video"), 0)
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.Empty(t, s.Layout())
}

func TestInsertClampsPosition(t *testing.T) {
	s := NewSession()
	_, err := s.Insert(models.ElementText, -5)
	require.NoError(t, err)
	_, err = s.Insert(models.ElementDivider, 99)
	require.NoError(t, err)

	layout := s.Layout()
	require.Len(t, layout, 2)
	assert.Equal(t, models.ElementText, layout[0].Type)
	assert.Equal(t, models.ElementDivider, layout[1].Type)
}

func TestInsertColumnsStartsWithTwoEmptyLists(t *testing.T) {
	s := NewSession()
	element, err := s.Insert(models.ElementColumns, 0)
	require.NoError(t, err)

	require.Len(t, element.Columns, 2)
	assert.Equal(t, "col-1-1", element.Columns[0].ID)
	assert.Equal(t, "col-1-2", element.Columns[1].ID)
	assert.Empty(t, element.Columns[0].Content)
	assert.Empty(t, element.Columns[1].Content)
}

// The serialized document for a text block followed by an edited columns
// block keeps instance ids, default payloads and the two child lists.
func TestLayoutSerialization(t *testing.T) {
	s := NewSession()
	_, err := s.Insert(models.ElementText, 0)
	require.NoError(t, err)
	_, err = s.Insert(models.ElementColumns, 1)
	require.NoError(t, err)

	require.NoError(t, s.Select("el-1"))
	_, err = s.EditContent("Hello")
	require.NoError(t, err)

	raw, err := json.Marshal(s.Layout())
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, "el-1", decoded[0]["instanceId"])
	assert.Equal(t, "text", decoded[0]["type"])
	assert.Equal(t, "Hello", decoded[0]["content"])

	assert.Equal(t, "el-2", decoded[1]["instanceId"])
	assert.Equal(t, "columns", decoded[1]["type"])
	columns, ok := decoded[1]["columns"].([]interface{})
	require.True(t, ok)
	assert.Len(t, columns, 2)
}

func TestReorderPreservesIDsAndSelection(t *testing.T) {
	s := NewSession()
	for i := 0; i < 3; i++ {
		_, err := s.Insert(models.ElementText, i)
		require.NoError(t, err)
	}
	require.NoError(t, s.Select("el-3"))

	require.NoError(t, s.Reorder(2, 0))

	layout := s.Layout()
	assert.Equal(t, "el-3", layout[0].InstanceID)
	assert.Equal(t, "el-1", layout[1].InstanceID)
	assert.Equal(t, "el-2", layout[2].InstanceID)

	selected := s.Selected()
	require.NotNil(t, selected)
	assert.Equal(t, "el-3", selected.InstanceID)
}

func TestReorderOutOfRange(t *testing.T) {
	s := NewSession()
	_, err := s.Insert(models.ElementText, 0)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Reorder(0, 5), ErrBadPosition)
	assert.ErrorIs(t, s.Reorder(-1, 0), ErrBadPosition)
}

func TestEditContentWithoutSelection(t *testing.T) {
	s := NewSession()
	_, err := s.Insert(models.ElementText, 0)
	require.NoError(t, err)

	_, err = s.EditContent("nuevo contenido")
	assert.ErrorIs(t, err, ErrNoSelection)
}

func TestEditContentSyncsSelectionMirror(t *testing.T) {
	s := NewSession()
	_, err := s.Insert(models.ElementText, 0)
	require.NoError(t, err)
	require.NoError(t, s.Select("el-1"))

	updated, err := s.EditContent("editado")
	require.NoError(t, err)
	assert.Equal(t, "editado", updated.Content)

	selected := s.Selected()
	require.NotNil(t, selected)
	assert.Equal(t, "editado", selected.Content)
	assert.Equal(t, "editado", s.Layout()[0].Content)
}

func TestDeleteClearsSelection(t *testing.T) {
	s := NewSession()
	_, err := s.Insert(models.ElementText, 0)
	require.NoError(t, err)
	require.NoError(t, s.Select("el-1"))

	require.NoError(t, s.Delete("el-1"))
	assert.Nil(t, s.Selected())
	assert.Empty(t, s.Layout())

	assert.ErrorIs(t, s.Delete("el-1"), ErrElementNotFound)
}

func TestSelectUnknownElement(t *testing.T) {
	s := NewSession()
	assert.ErrorIs(t, s.Select("el-99"), ErrElementNotFound)
}

func TestLoadLayoutBumpsIDCounter(t *testing.T) {
	s := NewSession()
	s.LoadLayout([]models.Element{
		{InstanceID: "el-4", Type: models.ElementText, Content: "a"},
		{InstanceID: "el-9", Type: models.ElementDivider},
	})

	element, err := s.Insert(models.ElementText, 0)
	require.NoError(t, err)
	assert.Equal(t, "el-10", element.InstanceID)
}

func TestBuildTemplateThumbnail(t *testing.T) {
	s := NewSession()
	_, err := s.Insert(models.ElementText, 0)
	require.NoError(t, err)

	template, err := s.BuildTemplate("", "Sin imagen")
	require.NoError(t, err)
	assert.Equal(t, models.TemplatePlaceholderThumbnail, template.Thumbnail)
	assert.NotEmpty(t, template.ID)

	image, err := s.Insert(models.ElementImage, 0)
	require.NoError(t, err)
	template, err = s.BuildTemplate("template-abc", "Con imagen")
	require.NoError(t, err)
	assert.Equal(t, image.Content, template.Thumbnail)
	assert.Equal(t, "template-abc", template.ID)
}

func TestBuildTemplateRequiresName(t *testing.T) {
	s := NewSession()
	_, err := s.BuildTemplate("", "   ")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestBuildCampaignStartsAsDraft(t *testing.T) {
	s := NewSession()
	_, err := s.Insert(models.ElementText, 0)
	require.NoError(t, err)

	campaign, err := s.BuildCampaign("Campaña de prueba")
	require.NoError(t, err)
	assert.Equal(t, models.CampaignDraft, campaign.Status)
	assert.Len(t, campaign.Layout, 1)

	_, err = s.BuildCampaign("")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestLayoutReturnsCopy(t *testing.T) {
	s := NewSession()
	_, err := s.Insert(models.ElementColumns, 0)
	require.NoError(t, err)

	snapshot := s.Layout()
	snapshot[0].Content = "mutado"
	snapshot[0].Columns[0].Content = append(snapshot[0].Columns[0].Content, models.Element{InstanceID: "el-x"})

	layout := s.Layout()
	assert.NotEqual(t, "mutado", layout[0].Content)
	assert.Empty(t, layout[0].Columns[0].Content)
}

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()
	id, created := m.Create()

	got, err := m.Get(id)
	require.NoError(t, err)
	assert.Same(t, created, got)

	m.Delete(id)
	_, err = m.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManagerPrunesIdleSessions(t *testing.T) {
	m := NewManager()
	current := time.Now()
	m.now = func() time.Time { return current }

	id, _ := m.Create()

	current = current.Add(sessionTTL + time.Minute)
	_, err := m.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
