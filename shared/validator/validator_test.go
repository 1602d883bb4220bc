package validator_test

import (
	"strings"
	"testing"

	"ecodash/shared/failure"
	"ecodash/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reservationRequest struct {
	SpaceID string `json:"space_id"        validate:"required"`
	Start   string `json:"start_timestamp" validate:"required,instant"`
	End     string `json:"end_timestamp"   validate:"required,instant"`
	Note    string `json:"note"            validate:"omitempty,max=10"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name: "valid body",
			body: `{"space_id":"A1","start_timestamp":"2030-01-01T10:00:00Z","end_timestamp":"2030-01-01T11:00:00+00:00"}`,
		},
		{
			name:    "missing space",
			body:    `{"start_timestamp":"2030-01-01T10:00:00Z","end_timestamp":"2030-01-01T11:00:00Z"}`,
			wantErr: "space_id is required",
		},
		{
			name:    "missing end",
			body:    `{"space_id":"A1","start_timestamp":"2030-01-01T10:00:00Z"}`,
			wantErr: "end_timestamp is required",
		},
		{
			name:    "naive start",
			body:    `{"space_id":"A1","start_timestamp":"2030-01-01T10:00:00","end_timestamp":"2030-01-01T11:00:00Z"}`,
			wantErr: "start_timestamp must be an ISO 8601 timestamp with a UTC offset",
		},
		{
			name:    "note too long",
			body:    `{"space_id":"A1","start_timestamp":"2030-01-01T10:00:00Z","end_timestamp":"2030-01-01T11:00:00Z","note":"far too long a note"}`,
			wantErr: "note must be less than or equal to 10",
		},
		{
			name:    "malformed json",
			body:    `{"space_id":`,
			wantErr: "failed to decode request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req reservationRequest

			err := validator.Validate(strings.NewReader(tt.body), &req)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "A1", req.SpaceID)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, failure.Is(err, failure.KindValidation))
		})
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	var req reservationRequest

	err := validator.Validate(strings.NewReader(`{"start_timestamp":"tomorrow"}`), &req)

	require.Error(t, err)
	assert.Equal(t, "space_id is required; start_timestamp must be an ISO 8601 timestamp with a UTC offset; end_timestamp is required", err.Error())
}
