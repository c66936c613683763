package problemdetails

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p := New(http.StatusNotFound, TypeNotFound, "Not Found", "None of the provided URLs were found.")

	assert.Equal(t, "https://link-catalog.dev/problems/not-found", p.Type)
	assert.Equal(t, http.StatusNotFound, p.Status)
	assert.Equal(t, "404 Not Found: None of the provided URLs were found.", p.Error())
}

func TestProblemDetail_JSON(t *testing.T) {
	data, err := json.Marshal(New(http.StatusBadRequest, TypeInvalidFormat, "Invalid Format", "expected an array"))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"type": "https://link-catalog.dev/problems/invalid-format",
		"title": "Invalid Format",
		"status": 400,
		"detail": "expected an array",
		"success": false
	}`, string(data))
}
