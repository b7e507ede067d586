package schema

import "github.com/taibuivan/tutorials/internal/platform/constants"

// TutorialsTable represents the 'public.tutorials' table
type TutorialsTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	Published   string
}

// Tutorials is the schema definition for public.tutorials
var Tutorials = TutorialsTable{
	Table:       constants.SchemaPublic + ".tutorials",
	ID:          "id",
	Title:       "title",
	Description: "description",
	Published:   "published",
}

func (t TutorialsTable) Columns() []string {
	return []string{t.ID, t.Title, t.Description, t.Published}
}
