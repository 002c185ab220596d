package models

// ElementKind tags one of the fixed block kinds of the layout builder.
type ElementKind string

const (
	ElementText    ElementKind = "text"
	ElementImage   ElementKind = "image"
	ElementColumns ElementKind = "columns"
	ElementDivider ElementKind = "divider"
	ElementHTML    ElementKind = "html"
)

// Column is one child slot of a two-column element.
type Column struct {
	ID      string    `json:"id"`
	Content []Element `json:"content"`
}

// Element is one block of a builder layout. InstanceID is unique within a
// layout and strictly increasing as blocks are added ("el-1", "el-2", ...),
// so reordering never collides. Columns is populated only for the columns
// kind and always carries exactly two child lists.
type Element struct {
	InstanceID string      `json:"instanceId"`
	Type       ElementKind `json:"type"`
	Content    string      `json:"content,omitempty"`
	Columns    []Column    `json:"columns,omitempty"`
}

var elementLabels = map[ElementKind]string{
	ElementText:    "Texto",
	ElementImage:   "Imagen",
	ElementColumns: "2 Columnas",
	ElementDivider: "Divisor",
	ElementHTML:    "HTML",
}

var elementDefaults = map[ElementKind]string{
	ElementText:  "Este es un párrafo de texto. Haz clic para editar.",
	ElementImage: "https://images.unsplash.com/photo-1715930792947-f8434a2c490a?w=400",
	ElementHTML:  "<div>Tu código HTML aquí</div>",
}

// KnownElementKind reports whether k is one of the palette kinds.
func KnownElementKind(k ElementKind) bool {
	_, ok := elementLabels[k]
	return ok
}

// ElementDefaultContent returns the payload a freshly dropped block of the
// given kind starts with.
func ElementDefaultContent(k ElementKind) string {
	if content, ok := elementDefaults[k]; ok {
		return content
	}
	return "Contenido de " + elementLabels[k]
}
