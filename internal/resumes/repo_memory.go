package resumes

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-process Repo used when no database is configured and
// in tests. Stored values are deep-copied on the way in and out so callers
// cannot alias internal state.
type MemoryRepo struct {
	mu      sync.RWMutex
	resumes map[string]Resume
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{resumes: make(map[string]Resume)}
}

func (r *MemoryRepo) Create(_ context.Context, res Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resumes[res.ID] = copyResume(res)
	return nil
}

func (r *MemoryRepo) Get(_ context.Context, userID, id string) (Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.resumes[id]
	if !ok || res.UserID != userID {
		return Resume{}, ErrNotFound
	}
	return copyResume(res), nil
}

func (r *MemoryRepo) GetPublic(_ context.Context, id string) (Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.resumes[id]
	if !ok {
		return Resume{}, ErrNotFound
	}
	return copyResume(res), nil
}

func (r *MemoryRepo) List(_ context.Context, userID string) ([]Resume, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Resume
	for _, res := range r.resumes {
		if res.UserID == userID {
			out = append(out, copyResume(res))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *MemoryRepo) Update(_ context.Context, res Resume) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.resumes[res.ID]
	if !ok || existing.UserID != res.UserID {
		return ErrNotFound
	}
	res.CreatedAt = existing.CreatedAt
	r.resumes[res.ID] = copyResume(res)
	return nil
}

func (r *MemoryRepo) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.resumes[id]
	if !ok || res.UserID != userID {
		return ErrNotFound
	}
	delete(r.resumes, id)
	return nil
}

func copyResume(res Resume) Resume {
	out := res
	out.WorkExperiences = append([]WorkExperience(nil), res.WorkExperiences...)
	out.Educations = append([]Education(nil), res.Educations...)
	out.Projects = make([]Project, len(res.Projects))
	for i, p := range res.Projects {
		p.Stack = append([]string(nil), p.Stack...)
		out.Projects[i] = p
	}
	out.Skills = make([]SkillGroup, len(res.Skills))
	for i, s := range res.Skills {
		s.Values = append([]string(nil), s.Values...)
		out.Skills[i] = s
	}
	out.Achievements = append([]Achievement(nil), res.Achievements...)
	out.Certificates = append([]Certificate(nil), res.Certificates...)
	return out
}

var _ Repo = (*MemoryRepo)(nil)
