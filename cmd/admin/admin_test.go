package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/auth"
	"folio/internal/kvstore"
	"folio/internal/portfolio"
)

type fixture struct {
	store         *kvstore.MemoryStore
	confirmDelete bool
}

func newFixture(confirmDelete bool) *fixture {
	return &fixture{store: kvstore.NewMemoryStore(), confirmDelete: confirmDelete}
}

// site reloads from the store, as a fresh CLI invocation would.
func (f *fixture) site() *portfolio.Site {
	return portfolio.NewSite(context.Background(), f.store, portfolio.Options{ConfirmDelete: f.confirmDelete},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (f *fixture) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	a := &app{openSite: func(context.Context) (*portfolio.Site, func(), error) {
		return f.site(), func() {}, nil
	}}
	cmd := newRootCmd(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAddProjectPersists(t *testing.T) {
	f := newFixture(true)

	out, err := f.run(t, "", "add", "projects", "--set", "title=X", "--set", "tech=Go, React,")
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "X"`)

	items := f.site().Projects.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "X", items[1].Title)
	assert.Equal(t, []string{"Go", "React"}, items[1].Tech)
	assert.NotEmpty(t, items[1].ID)
}

func TestAddRejectsUnknownField(t *testing.T) {
	f := newFixture(true)

	_, err := f.run(t, "", "add", "skills", "--set", "colour=red")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown field "colour"`)
	assert.Len(t, f.site().Skills.Items(), 3)
}

func TestEditKeepsUntouchedFields(t *testing.T) {
	f := newFixture(true)

	_, err := f.run(t, "", "edit", "education", "1", "--set", "grade=First")
	require.NoError(t, err)

	items := f.site().Education.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ID)
	require.NotNil(t, items[0].Grade)
	assert.Equal(t, "First", *items[0].Grade)
	assert.Equal(t, portfolio.DefaultEducation()[0].Degree, items[0].Degree)
}

func TestEditHero(t *testing.T) {
	f := newFixture(true)

	_, err := f.run(t, "", "edit", "hero", "--set", "role=Staff Engineer")
	require.NoError(t, err)
	hero := f.site().Hero()
	assert.Equal(t, "Staff Engineer", hero.Role)
	assert.Equal(t, portfolio.DefaultHero().Name, hero.Name)

	_, err = f.run(t, "", "edit", "hero", "1", "--set", "role=x")
	assert.Error(t, err)
}

func TestDeletePromptDeclined(t *testing.T) {
	f := newFixture(true)

	out, err := f.run(t, "n\n", "delete", "education", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Delete education 2? [y/N]")
	assert.Contains(t, out, "Cancelled")
	assert.Len(t, f.site().Education.Items(), 2)
}

func TestDeletePromptAccepted(t *testing.T) {
	f := newFixture(true)

	out, err := f.run(t, "y\n", "delete", "education", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted education 2")

	items := f.site().Education.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ID)
}

func TestDeleteYesAndPolicyOff(t *testing.T) {
	f := newFixture(true)
	out, err := f.run(t, "", "delete", "skills", "1", "--yes")
	require.NoError(t, err)
	assert.NotContains(t, out, "[y/N]")
	assert.Len(t, f.site().Skills.Items(), 2)

	g := newFixture(false)
	out, err = g.run(t, "", "delete", "skills", "1")
	require.NoError(t, err)
	assert.NotContains(t, out, "[y/N]")
	assert.Len(t, g.site().Skills.Items(), 2)
}

func TestDeleteUnknownID(t *testing.T) {
	f := newFixture(true)
	_, err := f.run(t, "y\n", "delete", "projects", "nope")
	assert.Error(t, err)
}

func TestShowYAMLUsesJSONFieldNames(t *testing.T) {
	f := newFixture(true)

	out, err := f.run(t, "", "show", "projects", "--output", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "liveLink:")
	assert.Contains(t, out, "title: Basti The Food Street")
	assert.NotContains(t, out, "{")
}

func TestShowUnknownSection(t *testing.T) {
	f := newFixture(true)
	_, err := f.run(t, "", "show", "blog")
	assert.Error(t, err)
	_, err = f.run(t, "", "show", "hero", "-o", "xml")
	assert.Error(t, err)
}

func TestResetSection(t *testing.T) {
	f := newFixture(false)
	_, err := f.run(t, "", "delete", "projects", "1")
	require.NoError(t, err)
	require.Empty(t, f.site().Projects.Items())

	_, err = f.run(t, "", "reset", "projects")
	require.NoError(t, err)
	assert.Equal(t, portfolio.DefaultProjects(), f.site().Projects.Items())
}

func TestHashPasswordFromStdin(t *testing.T) {
	f := newFixture(true)

	out, err := f.run(t, "s3cret\n", "hash-password")
	require.NoError(t, err)
	assert.True(t, auth.CheckPasswordHash("s3cret", strings.TrimSpace(out)))

	_, err = f.run(t, "", "hash-password")
	assert.Error(t, err)
}

func TestParseSets(t *testing.T) {
	sets, err := parseSets([]string{"title=a=b", "tech=Go, Redis", "grade="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"title": "a=b", "tech": "Go, Redis", "grade": ""}, sets)

	_, err = parseSets([]string{"novalue"})
	assert.Error(t, err)
}
