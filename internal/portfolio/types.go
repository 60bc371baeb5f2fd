// Package portfolio holds the portfolio content model, its default content
// and the Site service that wires each section to persisted storage.
package portfolio

// Hero 首屏信息，单例记录。Image 可以是 URL，也可以是内嵌的 data URI。
type Hero struct {
	Name        string `json:"name"`
	Accent      string `json:"accent"`
	Role        string `json:"role"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// About 三段自我介绍，单例记录。
type About struct {
	P1 string `json:"p1"`
	P2 string `json:"p2"`
	P3 string `json:"p3"`
}

// Experience is one entry of the experience timeline.
type Experience struct {
	ID       string   `json:"id"`
	Role     string   `json:"role"`
	Company  string   `json:"company"`
	Period   string   `json:"period"`
	Location string   `json:"location"`
	Details  []string `json:"details"`
}

func (e Experience) RecordID() string { return e.ID }

func (e Experience) WithID(id string) Experience {
	e.ID = id
	return e
}

func (e Experience) Clone() Experience {
	e.Details = cloneStrings(e.Details)
	return e
}

// Education carries two optional fields. A nil Grade and a nil Activities
// slice mean "not provided" and are omitted from the stored JSON.
type Education struct {
	ID          string   `json:"id"`
	Degree      string   `json:"degree"`
	Institution string   `json:"institution"`
	Period      string   `json:"period"`
	Grade       *string  `json:"grade,omitempty"`
	Activities  []string `json:"activities,omitempty"`
}

func (e Education) RecordID() string { return e.ID }

func (e Education) WithID(id string) Education {
	e.ID = id
	return e
}

func (e Education) Clone() Education {
	if e.Grade != nil {
		grade := *e.Grade
		e.Grade = &grade
	}
	e.Activities = cloneStrings(e.Activities)
	return e
}

// GradeOrEmpty returns the grade or "" when none was recorded.
func (e Education) GradeOrEmpty() string {
	if e.Grade == nil {
		return ""
	}
	return *e.Grade
}

// Project is one portfolio project card.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Tech        []string `json:"tech"`
	LiveLink    string   `json:"liveLink"`
	GithubLink  string   `json:"githubLink"`
	Image       string   `json:"image"`
}

func (p Project) RecordID() string { return p.ID }

func (p Project) WithID(id string) Project {
	p.ID = id
	return p
}

func (p Project) Clone() Project {
	p.Features = cloneStrings(p.Features)
	p.Tech = cloneStrings(p.Tech)
	return p
}

// SkillGroup is a titled list of skills.
type SkillGroup struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Skills []string `json:"skills"`
}

func (g SkillGroup) RecordID() string { return g.ID }

func (g SkillGroup) WithID(id string) SkillGroup {
	g.ID = id
	return g
}

func (g SkillGroup) Clone() SkillGroup {
	g.Skills = cloneStrings(g.Skills)
	return g
}

// Achievement is static content; it is not editable.
type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ContactLink is static content; it is not editable.
type ContactLink struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Href  string `json:"href"`
}

// Snapshot is the whole portfolio as rendered, in display order.
type Snapshot struct {
	Hero         Hero          `json:"hero"`
	About        About         `json:"about"`
	Experience   []Experience  `json:"experience"`
	Education    []Education   `json:"education"`
	Projects     []Project     `json:"projects"`
	Skills       []SkillGroup  `json:"skills"`
	Achievements []Achievement `json:"achievements"`
	Contact      []ContactLink `json:"contact"`
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
