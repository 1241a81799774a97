package services

import (
	"context"
	"encoding/json"
	"testing"

	"agrisense-api/internal/adapters/persistence/models"
	"agrisense-api/internal/core/domain"
	"agrisense-api/internal/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawBody(t *testing.T, s string) map[string]json.RawMessage {
	t.Helper()
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(s), &body))
	return body
}

func TestFarmerService_GetProfile(t *testing.T) {
	env := newTestEnv(t)
	env.seedFarmer(t, "F1", "asha@example.com")
	svc := NewFarmerService(env.farmers, env.log)

	profile, err := svc.GetProfile(context.Background(), "F1")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", profile.Email)

	raw, err := json.Marshal(profile)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")

	_, err = svc.GetProfile(context.Background(), "F404")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestFarmerService_UpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	env.seedFarmer(t, "F1", "asha@example.com", func(f *models.Farmer) {
		f.Ph = floatPtr(6.8)
	})
	svc := NewFarmerService(env.farmers, env.log)

	updated, err := svc.UpdateProfile(context.Background(), "F1",
		rawBody(t, `{"crop":"rice","year":2024,"areaHectare":2.5,"district":" Amritsar ","ph":null}`))
	require.NoError(t, err)

	assert.Equal(t, "rice", updated.Crop)
	require.NotNil(t, updated.Year)
	assert.Equal(t, 2024, *updated.Year)
	assert.Equal(t, 2.5, *updated.AreaHectare)
	assert.Equal(t, "Amritsar", updated.District)
	assert.Nil(t, updated.Ph)

	// identity is untouched
	assert.Equal(t, "F1", updated.FarmerID)
	assert.Equal(t, "asha@example.com", updated.Email)
	assert.Equal(t, string(domain.RoleFarmer), updated.Role)
}

func TestFarmerService_UpdateProfileRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"farmer id", `{"farmerId":"F2"}`, "farmerId"},
		{"email", `{"email":"x@example.com"}`, "email"},
		{"role escalation", `{"role":"admin","crop":"rice"}`, "role"},
		{"password", `{"password":"newpassword"}`, "password"},
		{"several sorted", `{"role":"admin","email":"x@example.com"}`, "email, role"},
		{"empty body", `{}`, "no fields to update"},
		{"blank required", `{"farmerName":"  "}`, "farmerName: must not be empty"},
		{"null required", `{"state":null}`, "state: must not be empty"},
		{"wrong kind", `{"year":"last"}`, "year: must be an integer"},
		{"string number", `{"N":"12"}`, "N: must be a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.seedFarmer(t, "F1", "asha@example.com")
			svc := NewFarmerService(env.farmers, env.log)

			_, err := svc.UpdateProfile(context.Background(), "F1", rawBody(t, tt.body))
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tt.want)

			stored, err := env.farmers.GetByEmail(context.Background(), "asha@example.com")
			require.NoError(t, err)
			assert.Equal(t, "F1", stored.FarmerID)
			assert.Equal(t, string(domain.RoleFarmer), stored.Role)
			assert.Empty(t, stored.Crop)
			assert.True(t, env.hasher.Verify("password123", stored.PasswordHash))
		})
	}
}

func TestFarmerService_UpdateProfileUnknownFarmer(t *testing.T) {
	env := newTestEnv(t)
	svc := NewFarmerService(env.farmers, env.log)

	_, err := svc.UpdateProfile(context.Background(), "F404", rawBody(t, `{"crop":"rice"}`))
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestFarmerService_ListFarmers(t *testing.T) {
	env := newTestEnv(t)
	env.seedFarmer(t, "F1", "a@example.com")
	env.seedFarmer(t, "F2", "b@example.com")
	env.seedFarmer(t, "F3", "c@example.com")
	svc := NewFarmerService(env.farmers, env.log)

	out, err := svc.ListFarmers(context.Background(), pagination.NewParams(1, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(3), out.Meta.Total)
	assert.True(t, out.Meta.HasNext)

	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"F1"`)
	assert.Contains(t, string(raw), `"F2"`)
	assert.NotContains(t, string(raw), `"F3"`)
	assert.NotContains(t, string(raw), "$2a$")
}
