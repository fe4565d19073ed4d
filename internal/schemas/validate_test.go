package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateResume(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantError bool
	}{
		{
			name: "full document",
			json: `{"templateId":"modern","personalInfo":{"fullName":"Jane"},
				"experience":[{"title":"Engineer","company":"Acme","current":true}],
				"skills":{"technical":["Go"],"soft":[],"languages":[]}}`,
		},
		{
			name: "empty object",
			json: `{}`,
		},
		{
			name:      "not an object",
			json:      `["a"]`,
			wantError: true,
		},
		{
			name:      "current is not boolean",
			json:      `{"experience":[{"title":"x","current":"yes"}]}`,
			wantError: true,
		},
		{
			name:      "skills not strings",
			json:      `{"skills":{"technical":[1,2]}}`,
			wantError: true,
		},
		{
			name: "repeated skills",
			json: `{"skills":{"soft":["a","a"]}}`,
		},
		{
			name: "null fields",
			json: `{"personalInfo":{"phone":null},"education":[{"degree":"BSc","gpa":null}],
				"experience":[{"title":"x","current":null}],"skills":{"technical":null},"projects":null}`,
		},
		{
			name:      "null entry",
			json:      `{"education":[null]}`,
			wantError: true,
		},
		{
			name:      "malformed",
			json:      `{ invalid json }`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResume([]byte(tt.json))
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "want ValidationError, got %T: %v", err, err)
			assert.NotEmpty(t, ve.Errors)
		})
	}
}

func TestValidateResume_FieldPath(t *testing.T) {
	err := ValidateResume([]byte(`{"experience":[{"current":"yes"}]}`))
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.First(), "experience.0.current")
}

func TestValidateResumeFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"personalInfo":{"fullName":"Jane"}}`), 0644))

	assert.NoError(t, ValidateResumeFile(good))

	err := ValidateResumeFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON file not found")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "name")
	assert.Contains(t, errorMsg, "age")
	assert.Equal(t, "name: is required", err.First())
}
