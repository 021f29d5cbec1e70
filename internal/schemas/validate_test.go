package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validResume = `{
	"personal_info": {"name": "Ada Lovelace", "email": "ada@example.com", "phone": null},
	"experience": [{
		"title": "Engineer",
		"company": "Analytical Engines",
		"duration": "1842 - 1843",
		"description": ["Wrote the first program"],
		"technologies": ["Difference Engine"]
	}],
	"skills": {"technical": ["Mathematics"], "frameworks": [], "tools": [], "languages": []},
	"projects": [],
	"education": [{"degree": null, "institution": "Home", "graduation_year": 1835, "gpa": null}]
}`

func TestValidateResume(t *testing.T) {
	tests := []struct {
		name      string
		document  string
		wantField string
	}{
		{name: "valid", document: validResume},
		{name: "missing personal info", document: `{"experience": [], "skills": {}}`, wantField: "(root)"},
		{name: "empty name", document: `{"personal_info": {"name": ""}, "experience": [], "skills": {}}`, wantField: "personal_info.name"},
		{name: "skills wrong type", document: `{"personal_info": {"name": "A"}, "experience": [], "skills": {"technical": "Go"}}`, wantField: "skills.technical"},
		{name: "experience item missing company", document: `{"personal_info": {"name": "A"}, "experience": [{"title": "x"}], "skills": {}}`, wantField: "experience.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResume([]byte(tt.document))
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "resume.schema.json", validationErr.Schema)

			fields := make([]string, 0, len(validationErr.Errors))
			for _, fe := range validationErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestValidate_MalformedDocument(t *testing.T) {
	err := ValidateResume([]byte("{ invalid json }"))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Errors[0].Message, "not valid JSON")
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope.schema.json", []byte(`{}`))

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "schema file not found")
}

func TestValidateJobAnalysis(t *testing.T) {
	assert.NoError(t, ValidateJobAnalysis([]byte(`{
		"title": "Backend Engineer",
		"company": null,
		"required_skills": ["Go"],
		"preferred_skills": null,
		"technologies": ["Kafka"],
		"experience_level": "Senior",
		"key_requirements": []
	}`)))

	err := ValidateJobAnalysis([]byte(`{"company": "Acme"}`))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
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
}

func TestValidationError_Summary(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "a", Message: "x"},
		{Field: "b", Message: "y"},
		{Field: "c", Message: "z"},
		{Field: "d", Message: "w"},
		{Field: "e", Message: "v"},
	}}
	assert.Equal(t, "a: x; b: y; c: z; and 2 more", err.Summary())
}
