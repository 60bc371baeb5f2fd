package portfolio

import "strings"

// The form types mirror what an editing form shows: list fields are a single
// comma separated string. No field is required; blank values are stored as-is.

type ExperienceForm struct {
	Role     string `json:"role" form:"role"`
	Company  string `json:"company" form:"company"`
	Period   string `json:"period" form:"period"`
	Location string `json:"location" form:"location"`
	Details  string `json:"details" form:"details"`
}

func (f ExperienceForm) Record() Experience {
	return Experience{
		Role:     f.Role,
		Company:  f.Company,
		Period:   f.Period,
		Location: f.Location,
		Details:  SplitList(f.Details),
	}
}

func ExperienceFormOf(e Experience) ExperienceForm {
	return ExperienceForm{
		Role:     e.Role,
		Company:  e.Company,
		Period:   e.Period,
		Location: e.Location,
		Details:  JoinList(e.Details),
	}
}

// EducationForm 中 Grade 与 Activities 为空白时视为未填写。
type EducationForm struct {
	Degree      string `json:"degree" form:"degree"`
	Institution string `json:"institution" form:"institution"`
	Period      string `json:"period" form:"period"`
	Grade       string `json:"grade" form:"grade"`
	Activities  string `json:"activities" form:"activities"`
}

func (f EducationForm) Record() Education {
	e := Education{
		Degree:      f.Degree,
		Institution: f.Institution,
		Period:      f.Period,
	}
	if strings.TrimSpace(f.Grade) != "" {
		grade := f.Grade
		e.Grade = &grade
	}
	if activities := SplitList(f.Activities); len(activities) > 0 {
		e.Activities = activities
	}
	return e
}

func EducationFormOf(e Education) EducationForm {
	return EducationForm{
		Degree:      e.Degree,
		Institution: e.Institution,
		Period:      e.Period,
		Grade:       e.GradeOrEmpty(),
		Activities:  JoinList(e.Activities),
	}
}

type ProjectForm struct {
	Title       string `json:"title" form:"title"`
	Date        string `json:"date" form:"date"`
	Description string `json:"description" form:"description"`
	Features    string `json:"features" form:"features"`
	Tech        string `json:"tech" form:"tech"`
	LiveLink    string `json:"liveLink" form:"liveLink"`
	GithubLink  string `json:"githubLink" form:"githubLink"`
	Image       string `json:"image" form:"image"`
}

func (f ProjectForm) Record() Project {
	return Project{
		Title:       f.Title,
		Date:        f.Date,
		Description: f.Description,
		Features:    SplitList(f.Features),
		Tech:        SplitList(f.Tech),
		LiveLink:    f.LiveLink,
		GithubLink:  f.GithubLink,
		Image:       f.Image,
	}
}

func ProjectFormOf(p Project) ProjectForm {
	return ProjectForm{
		Title:       p.Title,
		Date:        p.Date,
		Description: p.Description,
		Features:    JoinList(p.Features),
		Tech:        JoinList(p.Tech),
		LiveLink:    p.LiveLink,
		GithubLink:  p.GithubLink,
		Image:       p.Image,
	}
}

type SkillGroupForm struct {
	Title  string `json:"title" form:"title"`
	Skills string `json:"skills" form:"skills"`
}

func (f SkillGroupForm) Record() SkillGroup {
	return SkillGroup{Title: f.Title, Skills: SplitList(f.Skills)}
}

func SkillGroupFormOf(g SkillGroup) SkillGroupForm {
	return SkillGroupForm{Title: g.Title, Skills: JoinList(g.Skills)}
}
