package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/types"
)

// ---------------------------------------------------------------------
// Resume document handlers
// ---------------------------------------------------------------------

var entrySections = []string{
	store.SectionEducation,
	store.SectionExperience,
	store.SectionProjects,
	store.SectionAchievements,
}

func (s *Server) handleGetResume(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, s.store.State())
}

// handleLoadResume replaces the document. The body is checked against the
// resume schema before it is decoded.
func (s *Server) handleLoadResume(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := schemas.ValidateResume(body); err != nil {
		s.writeError(w, err)
		return
	}
	var doc types.ResumeDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.dispatch(w, store.LoadResume{Document: doc})
}

func (s *Server) handleResetResume(w http.ResponseWriter, _ *http.Request) {
	s.dispatch(w, store.ResetResume{})
}

func (s *Server) handleClearResume(w http.ResponseWriter, _ *http.Request) {
	s.dispatch(w, store.ClearResume{})
}

func (s *Server) handleUpdatePersonalInfo(w http.ResponseWriter, r *http.Request) {
	var patch types.PersonalInfoPatch
	if !s.decodeJSON(w, r, &patch) {
		return
	}
	s.dispatch(w, store.UpdatePersonalInfo{Patch: patch})
}

func (s *Server) handleAddEntry(section string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch section {
		case store.SectionEducation:
			addEntry(s, w, r, s.store.AddEducation, func(e *types.Education) { e.ID = "" })
		case store.SectionExperience:
			addEntry(s, w, r, s.store.AddExperience, func(e *types.Experience) { e.ID = "" })
		case store.SectionProjects:
			addEntry(s, w, r, s.store.AddProject, func(p *types.Project) { p.ID = "" })
		case store.SectionAchievements:
			addEntry(s, w, r, s.store.AddAchievement, func(a *types.Achievement) { a.ID = "" })
		}
	}
}

// addEntry decodes, gates and appends one entry. Ids are always assigned
// by the store.
func addEntry[T any](s *Server, w http.ResponseWriter, r *http.Request, add func(T) (T, error), clearID func(*T)) {
	var entry T
	if !s.decodeJSON(w, r, &entry) {
		return
	}
	clearID(&entry)

	probe := entry
	trimStrings(&probe)
	if err := s.checkRequired(probe); err != nil {
		s.writeError(w, err)
		return
	}

	created, err := add(entry)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateEntry(section string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch section {
		case store.SectionEducation:
			updateEntry(s, w, r, section, func(i int, p types.EducationPatch) store.Action {
				return store.UpdateEducation{Index: i, Patch: p}
			})
		case store.SectionExperience:
			updateEntry(s, w, r, section, func(i int, p types.ExperiencePatch) store.Action {
				return store.UpdateExperience{Index: i, Patch: p}
			})
		case store.SectionProjects:
			updateEntry(s, w, r, section, func(i int, p types.ProjectPatch) store.Action {
				return store.UpdateProject{Index: i, Patch: p}
			})
		case store.SectionAchievements:
			updateEntry(s, w, r, section, func(i int, p types.AchievementPatch) store.Action {
				return store.UpdateAchievement{Index: i, Patch: p}
			})
		}
	}
}

// updateEntry applies a patch to the entry with the path id. Updates are
// not gated: any field may be blanked.
func updateEntry[P any](s *Server, w http.ResponseWriter, r *http.Request, section string, build func(int, P) store.Action) {
	var patch P
	if !s.decodeJSON(w, r, &patch) {
		return
	}
	s.dispatch(w, store.ByID{
		Section: section,
		ID:      r.PathValue("id"),
		Build:   func(i int) store.Action { return build(i, patch) },
	})
}

func (s *Server) handleRemoveEntry(section string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.dispatch(w, store.ByID{
			Section: section,
			ID:      r.PathValue("id"),
			Build: func(i int) store.Action {
				switch section {
				case store.SectionEducation:
					return store.RemoveEducation{Index: i}
				case store.SectionExperience:
					return store.RemoveExperience{Index: i}
				case store.SectionProjects:
					return store.RemoveProject{Index: i}
				default:
					return store.RemoveAchievement{Index: i}
				}
			},
		})
	}
}

type updateSkillsRequest struct {
	Values []string `json:"values"`
}

type addSkillRequest struct {
	Value string `json:"value" validate:"required"`
}

func (s *Server) handleUpdateSkills(w http.ResponseWriter, r *http.Request) {
	var req updateSkillsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Values == nil {
		req.Values = []string{}
	}
	s.dispatch(w, store.UpdateSkills{Category: r.PathValue("category"), Values: req.Values})
}

func (s *Server) handleAddSkill(w http.ResponseWriter, r *http.Request) {
	var req addSkillRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	req.Value = strings.TrimSpace(req.Value)
	if err := s.checkRequired(req); err != nil {
		s.writeError(w, err)
		return
	}
	s.dispatch(w, store.AddSkill{Category: r.PathValue("category"), Value: req.Value})
}

func (s *Server) handleRemoveSkill(w http.ResponseWriter, r *http.Request) {
	s.dispatch(w, store.RemoveSkill{Category: r.PathValue("category"), Value: r.PathValue("value")})
}

type setTemplateRequest struct {
	TemplateID string `json:"templateId"`
}

func (s *Server) handleSetTemplate(w http.ResponseWriter, r *http.Request) {
	var req setTemplateRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	next, err := s.store.Dispatch(store.SetTemplate{ID: req.TemplateID})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, setTemplateRequest{TemplateID: next.Resume.TemplateID})
}

func (s *Server) handleUpdateFormatting(w http.ResponseWriter, r *http.Request) {
	var patch types.FormattingPatch
	if !s.decodeJSON(w, r, &patch) {
		return
	}
	s.dispatch(w, store.UpdateFormatting{Patch: patch})
}

type sectionOrderRequest struct {
	SectionOrder []types.SectionKey `json:"sectionOrder"`
}

func (s *Server) handleSetSectionOrder(w http.ResponseWriter, r *http.Request) {
	var req sectionOrderRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	s.dispatch(w, store.SetSectionOrder{Order: req.SectionOrder})
}

func (s *Server) handleMarkClean(w http.ResponseWriter, _ *http.Request) {
	s.dispatch(w, store.MarkClean{})
}

func (s *Server) handleMarkDirty(w http.ResponseWriter, _ *http.Request) {
	s.dispatch(w, store.MarkDirty{})
}

// dispatch applies a and writes the resulting state.
func (s *Server) dispatch(w http.ResponseWriter, a store.Action) {
	next, err := s.store.Dispatch(a)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, next)
}

type stateEvent struct {
	Action string      `json:"action"`
	State  store.State `json:"state"`
}

// handleResumeEvents streams every state change as a server-sent event.
// Slow readers miss intermediate states, never the latest one being sent.
func (s *Server) handleResumeEvents(w http.ResponseWriter, r *http.Request) {
	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	updates := make(chan stateEvent, 16)
	unsubscribe := s.store.Subscribe(func(a store.Action, next store.State) {
		select {
		case updates <- stateEvent{Action: a.Name(), State: next}:
		default:
		}
	})
	defer unsubscribe()

	if err := sse.WriteEvent("state", stateEvent{Action: "connected", State: s.store.State()}); err != nil {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-updates:
			if err := sse.WriteEvent("state", ev); err != nil {
				return
			}
		}
	}
}
