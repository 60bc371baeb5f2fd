package portfolio

import (
	"context"
	"log/slog"
	"sync"

	"folio/internal/editor"
	"folio/internal/kvstore"
	"folio/internal/metrics"
	"folio/internal/persisted"
)

// Section names as used in routes, the CLI and change notifications.
const (
	SectionHero       = "hero"
	SectionAbout      = "about"
	SectionExperience = "experience"
	SectionEducation  = "education"
	SectionProjects   = "projects"
	SectionSkills     = "skills"
)

// Options configure a Site.
type Options struct {
	// ConfirmDelete applies one confirmation policy to every list section.
	ConfirmDelete bool
	IDs           editor.IDGenerator
	// OnChange is called after every committed write to any section.
	OnChange func(ctx context.Context, change editor.Change)
}

// Site is the editable portfolio. Every section owns exactly one storage key
// and is the only writer to it.
type Site struct {
	hero  *persisted.State[Hero]
	about *persisted.State[About]

	Experience *editor.List[Experience]
	Education  *editor.List[Education]
	Projects   *editor.List[Project]
	Skills     *editor.List[SkillGroup]

	singletonMu sync.Mutex
	onChange    func(ctx context.Context, change editor.Change)
}

// NewSite loads every section from store. Missing or corrupt sections start
// from their default content.
func NewSite(ctx context.Context, store kvstore.Store, opts Options, logger *slog.Logger) *Site {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.IDs == nil {
		opts.IDs = editor.NewClockIDs()
	}
	listOpts := editor.Options{
		ConfirmDelete: opts.ConfirmDelete,
		IDs:           opts.IDs,
		OnCommit:      opts.OnChange,
	}

	return &Site{
		hero:  persisted.New(ctx, store, KeyHero, DefaultHero, logger),
		about: persisted.New(ctx, store, KeyAbout, DefaultAbout, logger),
		Experience: editor.NewList(SectionExperience,
			persisted.New(ctx, store, KeyExperience, DefaultExperience, logger), listOpts),
		Education: editor.NewList(SectionEducation,
			persisted.New(ctx, store, KeyEducation, DefaultEducation, logger), listOpts),
		Projects: editor.NewList(SectionProjects,
			persisted.New(ctx, store, KeyProjects, DefaultProjects, logger), listOpts),
		Skills: editor.NewList(SectionSkills,
			persisted.New(ctx, store, KeySkills, DefaultSkills, logger), listOpts),
		onChange: opts.OnChange,
	}
}

func (s *Site) Hero() Hero   { return s.hero.Get() }
func (s *Site) About() About { return s.about.Get() }

// SetHero replaces the hero section.
func (s *Site) SetHero(ctx context.Context, hero Hero) Hero {
	s.singletonMu.Lock()
	s.hero.Set(ctx, hero)
	s.singletonMu.Unlock()
	s.changed(ctx, SectionHero, KeyHero, editor.ActionReplace)
	return hero
}

// SetAbout replaces the about section.
func (s *Site) SetAbout(ctx context.Context, about About) About {
	s.singletonMu.Lock()
	s.about.Set(ctx, about)
	s.singletonMu.Unlock()
	s.changed(ctx, SectionAbout, KeyAbout, editor.ActionReplace)
	return about
}

func (s *Site) ResetHero(ctx context.Context) Hero {
	s.singletonMu.Lock()
	hero := s.hero.Reset(ctx)
	s.singletonMu.Unlock()
	s.changed(ctx, SectionHero, KeyHero, editor.ActionReset)
	return hero
}

func (s *Site) ResetAbout(ctx context.Context) About {
	s.singletonMu.Lock()
	about := s.about.Reset(ctx)
	s.singletonMu.Unlock()
	s.changed(ctx, SectionAbout, KeyAbout, editor.ActionReset)
	return about
}

// Snapshot returns the whole portfolio in display order.
func (s *Site) Snapshot() Snapshot {
	return Snapshot{
		Hero:         s.Hero(),
		About:        s.About(),
		Experience:   s.Experience.Items(),
		Education:    s.Education.Items(),
		Projects:     s.Projects.Items(),
		Skills:       s.Skills.Items(),
		Achievements: Achievements(),
		Contact:      ContactLinks(),
	}
}

func (s *Site) changed(ctx context.Context, section, key string, action editor.Action) {
	metrics.EditorCommitted(section, string(action))
	if s.onChange != nil {
		s.onChange(ctx, editor.Change{Section: section, Key: key, Action: action})
	}
}
