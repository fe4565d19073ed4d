package store

import (
	"log"
	"sync"

	"github.com/jonathan/resume-builder/internal/types"
)

// Listener is notified with the new state after every successful dispatch.
type Listener func(action Action, next State)

// Store owns the single live state. Dispatches are serialized and listeners
// run synchronously, in subscription order, before Dispatch returns.
// Listeners must not call Dispatch.
type Store struct {
	dispatchMu sync.Mutex

	mu        sync.RWMutex
	state     State
	reducer   Reducer
	listeners []listenerEntry
	nextID    int
}

type listenerEntry struct {
	id int
	fn Listener
}

// Option configures a Store.
type Option func(*Store)

// WithTemplateResolver installs the function used to map unknown template
// ids onto registered ones.
func WithTemplateResolver(resolve func(string) string) Option {
	return func(s *Store) {
		s.reducer.ResolveTemplate = resolve
	}
}

// WithInitialState seeds the store, typically from a restored snapshot.
func WithInitialState(state State) Option {
	return func(s *Store) {
		s.state = state.clone()
	}
}

// New creates a store holding the default state unless overridden.
func New(opts ...Option) *Store {
	s := &Store{state: DefaultState()}
	for _, opt := range opts {
		opt(s)
	}
	s.state.SectionOrder = types.NormalizeSectionOrder(s.state.SectionOrder)
	return s
}

// State returns the current state. The returned value shares no memory with
// the store's copy.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// IsDirty reports the dirty flag.
func (s *Store) IsDirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsDirty
}

// Subscribe registers a listener and returns a function that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Dispatch applies an action and notifies listeners.
func (s *Store) Dispatch(a Action) (State, error) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	next, err := s.reducer.Reduce(s.state, a)
	if err != nil {
		s.mu.Unlock()
		log.Printf("[store] %s rejected: %v", a.Name(), err)
		return s.State(), err
	}
	s.state = next
	listeners := append([]listenerEntry{}, s.listeners...)
	s.mu.Unlock()

	for _, l := range listeners {
		l.fn(a, next.clone())
	}
	return next.clone(), nil
}

// UpdatePersonalInfo merges fields into personalInfo.
func (s *Store) UpdatePersonalInfo(p types.PersonalInfoPatch) error {
	_, err := s.Dispatch(UpdatePersonalInfo{Patch: p})
	return err
}

// AddEducation appends an entry and returns it with its assigned id.
func (s *Store) AddEducation(e types.Education) (types.Education, error) {
	next, err := s.Dispatch(AddEducation{Entry: e})
	if err != nil {
		return types.Education{}, err
	}
	return next.Resume.Education[len(next.Resume.Education)-1], nil
}

// UpdateEducation merges fields into the entry at index.
func (s *Store) UpdateEducation(index int, p types.EducationPatch) error {
	_, err := s.Dispatch(UpdateEducation{Index: index, Patch: p})
	return err
}

// RemoveEducation deletes the entry at index.
func (s *Store) RemoveEducation(index int) error {
	_, err := s.Dispatch(RemoveEducation{Index: index})
	return err
}

// AddExperience appends an entry and returns it with its assigned id.
func (s *Store) AddExperience(e types.Experience) (types.Experience, error) {
	next, err := s.Dispatch(AddExperience{Entry: e})
	if err != nil {
		return types.Experience{}, err
	}
	return next.Resume.Experience[len(next.Resume.Experience)-1], nil
}

// UpdateExperience merges fields into the entry at index.
func (s *Store) UpdateExperience(index int, p types.ExperiencePatch) error {
	_, err := s.Dispatch(UpdateExperience{Index: index, Patch: p})
	return err
}

// RemoveExperience deletes the entry at index.
func (s *Store) RemoveExperience(index int) error {
	_, err := s.Dispatch(RemoveExperience{Index: index})
	return err
}

// AddProject appends an entry and returns it with its assigned id.
func (s *Store) AddProject(p types.Project) (types.Project, error) {
	next, err := s.Dispatch(AddProject{Entry: p})
	if err != nil {
		return types.Project{}, err
	}
	return next.Resume.Projects[len(next.Resume.Projects)-1], nil
}

// UpdateProject merges fields into the entry at index.
func (s *Store) UpdateProject(index int, p types.ProjectPatch) error {
	_, err := s.Dispatch(UpdateProject{Index: index, Patch: p})
	return err
}

// RemoveProject deletes the entry at index.
func (s *Store) RemoveProject(index int) error {
	_, err := s.Dispatch(RemoveProject{Index: index})
	return err
}

// AddAchievement appends an entry and returns it with its assigned id.
func (s *Store) AddAchievement(a types.Achievement) (types.Achievement, error) {
	next, err := s.Dispatch(AddAchievement{Entry: a})
	if err != nil {
		return types.Achievement{}, err
	}
	return next.Resume.Achievements[len(next.Resume.Achievements)-1], nil
}

// UpdateAchievement merges fields into the entry at index.
func (s *Store) UpdateAchievement(index int, p types.AchievementPatch) error {
	_, err := s.Dispatch(UpdateAchievement{Index: index, Patch: p})
	return err
}

// RemoveAchievement deletes the entry at index.
func (s *Store) RemoveAchievement(index int) error {
	_, err := s.Dispatch(RemoveAchievement{Index: index})
	return err
}

// UpdateSkills replaces one skill category.
func (s *Store) UpdateSkills(category string, values []string) error {
	_, err := s.Dispatch(UpdateSkills{Category: category, Values: values})
	return err
}

// AddSkill appends a skill unless it is blank or already present.
func (s *Store) AddSkill(category, value string) error {
	_, err := s.Dispatch(AddSkill{Category: category, Value: value})
	return err
}

// RemoveSkill removes a skill from a category.
func (s *Store) RemoveSkill(category, value string) error {
	_, err := s.Dispatch(RemoveSkill{Category: category, Value: value})
	return err
}

// SetTemplate selects the template and returns the resolved id.
func (s *Store) SetTemplate(id string) string {
	next, _ := s.Dispatch(SetTemplate{ID: id})
	return next.Resume.TemplateID
}

// UpdateFormatting merges formatting fields.
func (s *Store) UpdateFormatting(p types.FormattingPatch) {
	_, _ = s.Dispatch(UpdateFormatting{Patch: p})
}

// SetSectionOrder replaces the section order.
func (s *Store) SetSectionOrder(order []types.SectionKey) {
	_, _ = s.Dispatch(SetSectionOrder{Order: order})
}

// LoadResume replaces the document and marks the state clean.
func (s *Store) LoadResume(doc types.ResumeDocument) {
	_, _ = s.Dispatch(LoadResume{Document: doc})
}

// MarkClean clears the dirty flag.
func (s *Store) MarkClean() {
	_, _ = s.Dispatch(MarkClean{})
}

// MarkDirty sets the dirty flag.
func (s *Store) MarkDirty() {
	_, _ = s.Dispatch(MarkDirty{})
}

// ResetResume restores the default document.
func (s *Store) ResetResume() {
	_, _ = s.Dispatch(ResetResume{})
}

// ClearResume restores the default document.
func (s *Store) ClearResume() {
	_, _ = s.Dispatch(ClearResume{})
}
