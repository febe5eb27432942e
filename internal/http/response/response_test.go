package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/teamsync/internal/lib/validate"
	"github.com/magabrotheeeer/teamsync/internal/models"
)

func TestFail(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	Fail(rec, req, http.StatusNotFound, MsgProjectNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body models.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Project not found", body.Message)
}

func TestValidationError(t *testing.T) {
	err := &validate.Error{Fields: []validate.FieldError{
		{Field: "Name", Message: "field Name is a required field"},
		{Field: "Color", Message: "field Color must be at most 20 characters long"},
	}}
	assert.Equal(t,
		"field Name is a required field, field Color must be at most 20 characters long",
		ValidationError(err).Message)
}
