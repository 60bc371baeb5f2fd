package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"folio/internal/editor"
	"folio/internal/portfolio"
)

// listSection hides the record type of one editable list.
type listSection interface {
	items() any
	find(id string) (any, bool)
	add(ctx context.Context, sets map[string]string) (any, error)
	edit(ctx context.Context, id string, sets map[string]string) (any, error)
	remove(ctx context.Context, id string, confirm func(record any) (bool, error)) (bool, error)
	reset(ctx context.Context) any
}

type editorSection[T editor.Record[T], F any] struct {
	list     *editor.List[T]
	toRecord func(F) T
	formOf   func(T) F
}

func (s editorSection[T, F]) items() any { return s.list.Items() }

func (s editorSection[T, F]) find(id string) (any, bool) { return s.list.Find(id) }

func (s editorSection[T, F]) add(ctx context.Context, sets map[string]string) (any, error) {
	var form F
	if err := applySets(&form, sets); err != nil {
		return nil, err
	}
	session := s.list.Open()
	if err := session.BeginAdd(s.toRecord(form)); err != nil {
		return nil, err
	}
	return session.Save(ctx)
}

// edit starts from the stored record, so fields not named in sets are kept.
func (s editorSection[T, F]) edit(ctx context.Context, id string, sets map[string]string) (any, error) {
	session := s.list.Open()
	if err := session.BeginEdit(id); err != nil {
		return nil, err
	}
	form := s.formOf(session.Form())
	if err := applySets(&form, sets); err != nil {
		session.Cancel()
		return nil, err
	}
	if err := session.Update(func(record *T) { *record = s.toRecord(form) }); err != nil {
		return nil, err
	}
	return session.Save(ctx)
}

func (s editorSection[T, F]) remove(ctx context.Context, id string, confirm func(record any) (bool, error)) (bool, error) {
	session := s.list.Open()
	deleted, err := session.RequestDelete(ctx, id)
	if err != nil || deleted {
		return deleted, err
	}

	record, _ := s.list.Find(id)
	ok, err := confirm(record)
	if err != nil || !ok {
		_ = session.CancelDelete()
		return false, err
	}
	if err := session.ConfirmDelete(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s editorSection[T, F]) reset(ctx context.Context) any { return s.list.Reset(ctx) }

func listSections(site *portfolio.Site) map[string]listSection {
	return map[string]listSection{
		portfolio.SectionExperience: editorSection[portfolio.Experience, portfolio.ExperienceForm]{
			list: site.Experience, toRecord: portfolio.ExperienceForm.Record, formOf: portfolio.ExperienceFormOf,
		},
		portfolio.SectionEducation: editorSection[portfolio.Education, portfolio.EducationForm]{
			list: site.Education, toRecord: portfolio.EducationForm.Record, formOf: portfolio.EducationFormOf,
		},
		portfolio.SectionProjects: editorSection[portfolio.Project, portfolio.ProjectForm]{
			list: site.Projects, toRecord: portfolio.ProjectForm.Record, formOf: portfolio.ProjectFormOf,
		},
		portfolio.SectionSkills: editorSection[portfolio.SkillGroup, portfolio.SkillGroupForm]{
			list: site.Skills, toRecord: portfolio.SkillGroupForm.Record, formOf: portfolio.SkillGroupFormOf,
		},
	}
}

func lookupList(site *portfolio.Site, name string) (listSection, error) {
	if section, ok := listSections(site)[name]; ok {
		return section, nil
	}
	return nil, fmt.Errorf("unknown list section %q (want one of %s)", name, strings.Join(listSectionNames(), ", "))
}

func listSectionNames() []string {
	return []string{
		portfolio.SectionExperience,
		portfolio.SectionEducation,
		portfolio.SectionProjects,
		portfolio.SectionSkills,
	}
}

// parseSets turns repeated field=value flags into a map. Values may contain
// '=' and ','; only the first '=' separates.
func parseSets(raw []string) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for _, entry := range raw {
		field, value, ok := strings.Cut(entry, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid --set %q, want field=value", entry)
		}
		out[field] = value
	}
	return out, nil
}

// applySets writes sets into the string fields of form, addressed by their
// JSON names.
func applySets(form any, sets map[string]string) error {
	raw, err := json.Marshal(form)
	if err != nil {
		return err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return err
	}

	for name, value := range sets {
		current, ok := fields[name]
		if !ok {
			return fmt.Errorf("unknown field %q (known: %s)", name, strings.Join(sortedKeys(fields), ", "))
		}
		if _, isString := current.(string); !isString {
			return fmt.Errorf("field %q cannot be set from the command line", name)
		}
		fields[name] = value
	}

	raw, err = json.Marshal(fields)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, form)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
