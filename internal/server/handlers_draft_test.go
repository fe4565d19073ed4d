package server

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-builder/internal/draft"
	"github.com/jonathan/resume-builder/internal/snapshot"
	"github.com/jonathan/resume-builder/internal/testutil"
	"github.com/jonathan/resume-builder/internal/types"
)

func TestDraftTrigger_CleanRunsImmediately(t *testing.T) {
	env := newTestEnv(t, nil)
	_, err := env.store.AddProject(types.Project{Name: "CLI"})
	require.NoError(t, err)
	env.store.MarkClean()

	w := env.do(t, http.MethodPost, "/api/draft/trigger", `{"action":"reset"}`)
	require.Equal(t, http.StatusOK, w.Code)

	out := decodeBody[draft.Outcome](t, w)
	assert.Equal(t, "reset", out.Ran)
	assert.Equal(t, draft.StateClean, out.Status.State)
	assert.Empty(t, env.store.State().Resume.Projects)
}

func TestDraftTrigger_DirtyWaitsForDecision(t *testing.T) {
	tests := []struct {
		decision    string
		wantRan     string
		wantDropped string
		wantCleared bool
	}{
		{decision: "save", wantRan: "clear", wantCleared: true},
		{decision: "discard", wantRan: "clear", wantCleared: true},
		{decision: "cancel", wantDropped: "clear"},
	}
	for _, tt := range tests {
		t.Run(tt.decision, func(t *testing.T) {
			env := newTestEnv(t, nil)
			_, err := env.store.AddProject(types.Project{Name: "CLI"})
			require.NoError(t, err)

			w := env.do(t, http.MethodPost, "/api/draft/trigger", `{"action":"clear"}`)
			require.Equal(t, http.StatusAccepted, w.Code)
			out := decodeBody[draft.Outcome](t, w)
			assert.Equal(t, draft.StatePendingDecision, out.Status.State)
			assert.Equal(t, "clear", out.Status.PendingAction)
			assert.Len(t, env.store.State().Resume.Projects, 1, "nothing runs before the decision")

			// a second trigger while the prompt is open is rejected
			w = env.do(t, http.MethodPost, "/api/draft/trigger", `{"action":"reset"}`)
			assert.Equal(t, http.StatusConflict, w.Code)

			w = env.do(t, http.MethodPost, "/api/draft/decision", map[string]string{"decision": tt.decision})
			require.Equal(t, http.StatusOK, w.Code)
			out = decodeBody[draft.Outcome](t, w)
			assert.Equal(t, tt.wantRan, out.Ran)
			assert.Equal(t, tt.wantDropped, out.Dropped)
			assert.Equal(t, draft.StateClean, out.Status.State)

			if tt.wantCleared {
				assert.Empty(t, env.store.State().Resume.Projects)
				assert.False(t, env.store.IsDirty())
			} else {
				assert.Len(t, env.store.State().Resume.Projects, 1)
				assert.True(t, env.store.IsDirty())
			}
		})
	}
}

func TestDraftDecision_Errors(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/draft/decision", `{"decision":"save"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	env.store.MarkDirty()
	require.Equal(t, http.StatusAccepted, env.do(t, http.MethodPost, "/api/draft/trigger", `{"action":"reset"}`).Code)

	w = env.do(t, http.MethodPost, "/api/draft/decision", `{"decision":"maybe"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, `unknown decision "maybe"`, errorText(t, w))

	w = env.do(t, http.MethodGet, "/api/draft", nil)
	require.Equal(t, http.StatusOK, w.Code)
	st := decodeBody[draft.Status](t, w)
	assert.Equal(t, draft.StatePendingDecision, st.State)
	assert.True(t, st.Dirty)
}

func TestDraftTrigger_UnknownAction(t *testing.T) {
	env := newTestEnv(t, nil)

	w := env.do(t, http.MethodPost, "/api/draft/trigger", `{"action":"explode"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, `unknown action "explode"`, errorText(t, w))
}

func TestDraftTrigger_ApplyImport(t *testing.T) {
	env := newTestEnv(t, jsonBackend(http.StatusOK,
		`{"success":true,"data":{"personalInfo":{"fullName":"Imported Person"}}}`))

	w := env.do(t, http.MethodPost, "/api/draft/trigger", `{"action":"apply-import"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	require.Equal(t, http.StatusAccepted,
		env.doMultipart(t, "/api/import", "cv.pdf", "application/pdf", testutil.MinimalPDF(1), nil).Code)
	env.srv.imports.Wait()

	env.store.MarkDirty()
	w = env.do(t, http.MethodPost, "/api/draft/trigger", `{"action":"apply-import"}`)
	require.Equal(t, http.StatusAccepted, w.Code)

	w = env.do(t, http.MethodPost, "/api/draft/decision", `{"decision":"discard"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "apply-import", decodeBody[draft.Outcome](t, w).Ran)
	assert.Equal(t, "Imported Person", env.store.State().Resume.PersonalInfo.FullName)
	assert.False(t, env.store.IsDirty())
}

type brokenRepo struct{ *snapshot.MemoryRepository }

func (brokenRepo) Save(context.Context, string, []byte) error {
	return errors.New("read-only filesystem")
}

func TestDraftStatus_ReportsSaves(t *testing.T) {
	savedAt := time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC)

	t.Run("without persistence", func(t *testing.T) {
		env := newTestEnv(t, nil)
		body := decodeBody[map[string]any](t, env.do(t, http.MethodGet, "/api/draft", nil))
		assert.NotContains(t, body, "lastSaved")
		assert.NotContains(t, body, "saveError")
	})

	t.Run("after a successful save", func(t *testing.T) {
		env := newTestEnv(t, nil, withSaves(func(d *Deps) SaveStatus {
			p := snapshot.NewPersister(snapshot.NewMemoryRepository(), snapshot.WithClock(func() time.Time { return savedAt }))
			p.Attach(d.Store)
			return p
		}))
		require.NoError(t, env.store.AddSkill("technical", "Go"))

		w := env.do(t, http.MethodGet, "/api/draft", nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeBody[draftStatusResponse](t, w)
		require.NotNil(t, resp.LastSaved)
		assert.True(t, savedAt.Equal(*resp.LastSaved))
		assert.Empty(t, resp.SaveError)
		assert.True(t, resp.Dirty)
	})

	t.Run("after a failed save", func(t *testing.T) {
		env := newTestEnv(t, nil, withSaves(func(d *Deps) SaveStatus {
			p := snapshot.NewPersister(brokenRepo{snapshot.NewMemoryRepository()})
			p.Attach(d.Store)
			return p
		}))
		require.NoError(t, env.store.AddSkill("technical", "Go"))

		resp := decodeBody[draftStatusResponse](t, env.do(t, http.MethodGet, "/api/draft", nil))
		assert.Nil(t, resp.LastSaved)
		assert.Equal(t, "read-only filesystem", resp.SaveError)
	})
}
