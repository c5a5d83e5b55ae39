package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-matcher/internal/schemas"
)

var schemaFiles = []string{
	"job_record.schema.json",
	"candidate_record.schema.json",
	"match_result.schema.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			schemaPath := filepath.Join(".", schemaFile)
			data, err := os.ReadFile(schemaPath)
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_DeclareDraft07(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err)

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj))

			assert.Equal(t, "http://json-schema.org/draft-07/schema#", schemaObj["$schema"])
			_, hasType := schemaObj["type"]
			_, hasProps := schemaObj["properties"]
			assert.True(t, hasType && hasProps, "schema should declare type and properties")
		})
	}
}

func TestSchemaFiles_LoadableByValidator(t *testing.T) {
	// Each schema must compile: validate a trivially empty document and
	// require a validation failure, not a schema load failure.
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			jsonPath := filepath.Join(t.TempDir(), "doc.json")
			require.NoError(t, os.WriteFile(jsonPath, []byte(`{}`), 0644))

			err := schemas.ValidateJSON(schemaFile, jsonPath)
			if err != nil {
				_, isLoadErr := err.(*schemas.SchemaLoadError)
				assert.False(t, isLoadErr, "schema must load cleanly: %v", err)
			}
		})
	}
}

func TestJobRecordSchema_ReferencesMatchResult(t *testing.T) {
	// A job record embedding a full match result must resolve the cross-file
	// $ref to match_result.schema.json.
	testJSON := `{
		"id": "job-1",
		"title": "Platform Engineer",
		"match_result": {
			"job_id": "job-1",
			"overall_match": 0.75,
			"bucket_results": {
				"technical": {
					"match_percentage": 0.75,
					"weight": 1.0,
					"job_skills": ["go", "kubernetes"],
					"cv_skills": ["go"],
					"confidence": {"confidence_score": 0.7, "confidence_level": "Medium"},
					"outcome": "matched"
				}
			},
			"overall_confidence": {"confidence_score": 0.7, "confidence_level": "Medium"},
			"skills_extracted": true,
			"timestamp": "2026-01-02T15:04:05Z"
		}
	}`

	jsonPath := filepath.Join(t.TempDir(), "record.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(testJSON), 0644))

	err := schemas.ValidateJSON("job_record.schema.json", jsonPath)
	assert.NoError(t, err)
}

func TestMatchResultSchema_RejectsUnknownBucket(t *testing.T) {
	testJSON := `{
		"overall_match": 0.5,
		"bucket_results": {
			"wizardry": {
				"match_percentage": 0.5,
				"weight": 1.0,
				"job_skills": [],
				"cv_skills": [],
				"confidence": {"confidence_score": 0.5, "confidence_level": "Low"},
				"outcome": "matched"
			}
		},
		"overall_confidence": {"confidence_score": 0.5, "confidence_level": "Low"},
		"timestamp": "2026-01-02T15:04:05Z"
	}`

	jsonPath := filepath.Join(t.TempDir(), "result.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(testJSON), 0644))

	err := schemas.ValidateJSON("match_result.schema.json", jsonPath)
	require.Error(t, err)
	_, ok := err.(*schemas.ValidationError)
	assert.True(t, ok, "unknown bucket name should fail validation, got %T", err)
}
