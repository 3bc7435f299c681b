package content

// Section is an in-page anchor target
type Section struct {
	ID    string
	Label string
}

// Sections lists the page anchors in navigation order
var Sections = []Section{
	{ID: "hero", Label: "Home"},
	{ID: "about", Label: "About"},
	{ID: "skills", Label: "Skills"},
	{ID: "projects", Label: "Projects"},
	{ID: "education", Label: "Education"},
	{ID: "contact", Label: "Contact"},
}

// ResolveSection returns the section for id. Unknown ids resolve to nothing.
func ResolveSection(id string) (Section, bool) {
	for _, s := range Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}
