package portfolio

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	cases := map[string][]string{
		"":                 {},
		"  ":               {},
		"Go":               {"Go"},
		"Go, gin ,  gorm":  {"Go", "gin", "gorm"},
		"a,,b, ,":          {"a", "b"},
		" React.js ,Java,": {"React.js", "Java"},
	}
	for in, want := range cases {
		assert.Equal(t, want, SplitList(in), "input %q", in)
	}
}

func TestJoinListRoundTrip(t *testing.T) {
	items := []string{"Recruitment", "Onboarding", "Engagement"}
	assert.Equal(t, "Recruitment, Onboarding, Engagement", JoinList(items))
	assert.Equal(t, items, SplitList(JoinList(items)))
}

func TestEducationFormOptionalFields(t *testing.T) {
	bare := EducationForm{Degree: "BSc", Grade: "  ", Activities: " , "}.Record()
	assert.Nil(t, bare.Grade)
	assert.Nil(t, bare.Activities)

	raw, err := json.Marshal(bare)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "grade")
	assert.NotContains(t, string(raw), "activities")

	full := EducationForm{Degree: "BSc", Grade: "A", Activities: "Chess, Debate"}.Record()
	require.NotNil(t, full.Grade)
	assert.Equal(t, "A", *full.Grade)
	assert.Equal(t, []string{"Chess", "Debate"}, full.Activities)

	assert.Equal(t, EducationForm{Degree: "BSc", Grade: "A", Activities: "Chess, Debate"}, EducationFormOf(full))

	padded := EducationForm{Degree: " BSc ", Grade: " Grade: A "}.Record()
	assert.Equal(t, " BSc ", padded.Degree)
	require.NotNil(t, padded.Grade)
	assert.Equal(t, " Grade: A ", *padded.Grade)
}

func TestEducationCloneIsDeep(t *testing.T) {
	original := DefaultEducation()[0]
	clone := original.Clone()
	*clone.Grade = "changed"
	clone.Activities[0] = "changed"

	assert.Equal(t, "Grade: A", *original.Grade)
	assert.Equal(t, "Devcon 2025 team", original.Activities[0])
}

func TestProjectFormRoundTrip(t *testing.T) {
	p := DefaultProjects()[0]
	back := ProjectFormOf(p).Record()
	assert.Equal(t, p.WithID(""), back)
}

func TestStoredEducationWithoutOptionalFieldsLoads(t *testing.T) {
	var list []Education
	require.NoError(t, json.Unmarshal([]byte(`[{"id":"2","degree":"Intermediate Pre-Engineering","institution":"Punjab Group Of Colleges","period":"2022"}]`), &list))
	assert.Equal(t, DefaultEducation()[1], list[0])
}
