package services

import (
	"context"
	"encoding/json"
	"testing"

	"agrisense-api/internal/adapters/llm"
	"agrisense-api/internal/adapters/persistence/models"
	"agrisense-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvisorService_NotConfigured(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAdvisorService(env.farmers, AdvisorBackends{}, env.log)
	claims := claimsFor("F1", domain.RoleFarmer)
	ctx := context.Background()

	_, err := svc.RecommendCrop(ctx, claims)
	assert.ErrorIs(t, err, domain.ErrServiceNotConfigured)

	_, err = svc.PredictYield(ctx, claims)
	assert.ErrorIs(t, err, domain.ErrServiceNotConfigured)

	_, err = svc.Chat(ctx, claims, "When should I sow?")
	assert.ErrorIs(t, err, domain.ErrServiceNotConfigured)
}

func TestAdvisorService_ModelUsesSessionFarmer(t *testing.T) {
	env := newTestEnv(t)
	var asked []string
	model := &fakeModel{
		RecommendFunc: func(ctx context.Context, farmerID string) (json.RawMessage, error) {
			asked = append(asked, farmerID)
			return json.RawMessage(`{"crop":"rice"}`), nil
		},
		PredictFunc: func(ctx context.Context, farmerID string) (json.RawMessage, error) {
			asked = append(asked, farmerID)
			return nil, &domain.UpstreamError{Service: "ai-model", StatusCode: 422, Detail: "no soil data"}
		},
	}
	svc := NewAdvisorService(env.farmers, AdvisorBackends{Model: model}, env.log)
	claims := claimsFor("F1", domain.RoleFarmer)

	out, err := svc.RecommendCrop(context.Background(), claims)
	require.NoError(t, err)
	assert.JSONEq(t, `{"crop":"rice"}`, string(out))

	_, err = svc.PredictYield(context.Background(), claims)
	var up *domain.UpstreamError
	assert.ErrorAs(t, err, &up)

	assert.Equal(t, []string{"F1", "F1"}, asked)
}

func TestAdvisorService_Chat(t *testing.T) {
	env := newTestEnv(t)
	env.seedFarmer(t, "F1", "asha@example.com", func(f *models.Farmer) {
		f.Crop = "wheat"
		f.Ph = floatPtr(6.8)
	})

	var got []llm.Message
	chat := &fakeChat{CompleteFunc: func(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
		got = messages
		return "Sow after the first rain.", nil
	}}
	svc := NewAdvisorService(env.farmers, AdvisorBackends{Chat: chat}, env.log)

	reply, err := svc.Chat(context.Background(), claimsFor("F1", domain.RoleFarmer), "  When should I sow?  ")
	require.NoError(t, err)
	assert.Equal(t, "Sow after the first rain.", reply)

	require.Len(t, got, 2)
	assert.Equal(t, "system", got[0].Role)
	assert.Equal(t, "user", got[1].Role)
	assert.Contains(t, got[1].Content, "- Name: Asha")
	assert.Contains(t, got[1].Content, "- Location: Ludhiana, Punjab")
	assert.Contains(t, got[1].Content, "- Current Crop: wheat")
	assert.Contains(t, got[1].Content, "- Soil pH: 6.8")
	assert.Contains(t, got[1].Content, "- Humidity: N/A")
	assert.Contains(t, got[1].Content, `"When should I sow?"`)
}

func TestAdvisorService_ChatEdgeCases(t *testing.T) {
	env := newTestEnv(t)
	chat := &fakeChat{CompleteFunc: func(ctx context.Context, messages []llm.Message, opts ...llm.Option) (string, error) {
		return "", nil
	}}
	svc := NewAdvisorService(env.farmers, AdvisorBackends{Chat: chat}, env.log)
	ctx := context.Background()

	_, err := svc.Chat(ctx, claimsFor("F1", domain.RoleFarmer), "   ")
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "No text provided")

	_, err = svc.Chat(ctx, claimsFor("F404", domain.RoleFarmer), "hello")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	env.seedFarmer(t, "F1", "asha@example.com")
	reply, err := svc.Chat(ctx, claimsFor("F1", domain.RoleFarmer), "hello")
	require.NoError(t, err)
	assert.Equal(t, "The AI returned an empty response.", reply)
}
