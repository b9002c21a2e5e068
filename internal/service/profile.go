package service

import (
	"context"
	"strings"

	"github.com/johndoniego/erudite/internal/media"
	"github.com/johndoniego/erudite/internal/model"
	"github.com/johndoniego/erudite/internal/store"
)

// ProfileService manages the user's profile and teach/learn skills
type ProfileService struct {
	profile *store.Collection[model.Profile]
	teach   *store.Collection[[]model.Skill]
	learn   *store.Collection[[]model.Skill]
	now     Clock
}

// ProfileServiceConfig holds configuration for the profile service
type ProfileServiceConfig struct {
	Store *store.Store
	Now   Clock
}

// NewProfileService creates a new profile service
func NewProfileService(cfg ProfileServiceConfig) *ProfileService {
	return &ProfileService{
		profile: store.RecordOf[model.Profile](cfg.Store, store.KeyProfile),
		teach:   store.ListOf[model.Skill](cfg.Store, store.KeyTeachSkills),
		learn:   store.ListOf[model.Skill](cfg.Store, store.KeyLearnSkills),
		now:     clockOrNow(cfg.Now),
	}
}

// Get returns the profile; an unsaved profile is the zero value
func (s *ProfileService) Get(ctx context.Context) model.Profile {
	return s.profile.Read(ctx)
}

// Save overwrites every editable field. The avatar is kept.
func (s *ProfileService) Save(ctx context.Context, req *model.UpdateProfileRequest) (model.Profile, error) {
	if errs := req.Validate(); errs != nil {
		return model.Profile{}, errs
	}
	return s.profile.Mutate(ctx, func(current model.Profile) (model.Profile, error) {
		return model.Profile{
			Name:         strings.TrimSpace(req.Name),
			Bio:          strings.TrimSpace(req.Bio),
			Location:     strings.TrimSpace(req.Location),
			Website:      strings.TrimSpace(req.Website),
			LinkedIn:     strings.TrimSpace(req.LinkedIn),
			GitHub:       strings.TrimSpace(req.GitHub),
			About:        strings.TrimSpace(req.About),
			Avatar:       current.Avatar,
			Interests:    model.CleanList(req.Interests),
			Availability: model.CleanList(req.Availability),
			UpdatedAt:    s.now(),
		}, nil
	})
}

// SetAvatar waits for the image read to finish and then stores the result.
// Nothing is written if the read fails or ctx ends first.
func (s *ProfileService) SetAvatar(ctx context.Context, task *media.ImageTask) (model.Profile, error) {
	ref, err := task.Wait(ctx)
	if err != nil {
		return model.Profile{}, err
	}
	return s.profile.Mutate(ctx, func(current model.Profile) (model.Profile, error) {
		current.Avatar = ref
		current.UpdatedAt = s.now()
		return current, nil
	})
}

func (s *ProfileService) skills(kind model.SkillKind) (*store.Collection[[]model.Skill], error) {
	switch kind {
	case model.SkillsToTeach:
		return s.teach, nil
	case model.SkillsToLearn:
		return s.learn, nil
	default:
		return nil, ErrInvalidKind
	}
}

// Skills returns the teach or learn skills
func (s *ProfileService) Skills(ctx context.Context, kind model.SkillKind) ([]model.Skill, error) {
	c, err := s.skills(kind)
	if err != nil {
		return nil, err
	}
	return c.Read(ctx), nil
}

// AddSkill appends a skill. Names are unique within a collection, ignoring case.
func (s *ProfileService) AddSkill(ctx context.Context, kind model.SkillKind, req *model.AddSkillRequest) ([]model.Skill, error) {
	c, err := s.skills(kind)
	if err != nil {
		return nil, err
	}
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}

	skill := model.Skill{Name: strings.TrimSpace(req.Name), Level: req.Level}
	return c.Mutate(ctx, func(current []model.Skill) ([]model.Skill, error) {
		for _, existing := range current {
			if strings.EqualFold(existing.Name, skill.Name) {
				return current, ErrDuplicateSkill
			}
		}
		return append(current, skill), nil
	})
}

// RemoveSkill deletes a skill by name, ignoring case
func (s *ProfileService) RemoveSkill(ctx context.Context, kind model.SkillKind, name string) ([]model.Skill, error) {
	c, err := s.skills(kind)
	if err != nil {
		return nil, err
	}
	return c.Mutate(ctx, func(current []model.Skill) ([]model.Skill, error) {
		for i, existing := range current {
			if strings.EqualFold(existing.Name, strings.TrimSpace(name)) {
				out := make([]model.Skill, 0, len(current)-1)
				out = append(out, current[:i]...)
				return append(out, current[i+1:]...), nil
			}
		}
		return current, ErrSkillNotFound
	})
}

// MatchProfile assembles the user's side of match scoring
func (s *ProfileService) MatchProfile(ctx context.Context) model.MatchProfile {
	p := s.profile.Read(ctx)
	return model.MatchProfile{
		SkillsToTeach: model.SkillNames(s.teach.Read(ctx)),
		SkillsToLearn: model.SkillNames(s.learn.Read(ctx)),
		Interests:     p.Interests,
		Location:      p.Location,
		Availability:  p.Availability,
	}
}
