package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"agrisense-api/internal/adapters/llm"
	"agrisense-api/internal/adapters/persistence/models"
	"agrisense-api/internal/adapters/persistence/repositories"
	"agrisense-api/internal/core/domain"

	"go.uber.org/zap"
)

const systemPrompt = "You are a helpful agricultural AI assistant."

// AdvisorService proxies the crop/yield model, the chat assistant and the
// market price feed
type AdvisorService struct {
	farmers repositories.FarmerRepository
	model   ModelService
	chat    ChatCompleter
	prices  PriceSource
	images  ImageFinder
	log     *zap.Logger
}

// AdvisorBackends are the optional upstreams. A nil Model, Chat or Prices
// makes its operations report ErrServiceNotConfigured; a nil Images falls
// back to keyword photo URLs.
type AdvisorBackends struct {
	Model  ModelService
	Chat   ChatCompleter
	Prices PriceSource
	Images ImageFinder
}

// NewAdvisorService creates an advisor
func NewAdvisorService(farmers repositories.FarmerRepository, backends AdvisorBackends, log *zap.Logger) *AdvisorService {
	return &AdvisorService{
		farmers: farmers,
		model:   backends.Model,
		chat:    backends.Chat,
		prices:  backends.Prices,
		images:  backends.Images,
		log:     log,
	}
}

// RecommendCrop asks the model service for the session farmer
func (s *AdvisorService) RecommendCrop(ctx context.Context, claims *domain.SessionClaims) (json.RawMessage, error) {
	if s.model == nil {
		return nil, fmt.Errorf("%w: AI Model service", domain.ErrServiceNotConfigured)
	}
	out, err := s.model.RecommendCrop(ctx, claims.FarmerID)
	if err != nil {
		s.log.Warn("crop recommendation failed", zap.String("farmer_id", claims.FarmerID), zap.Error(err))
		return nil, err
	}
	return out, nil
}

// PredictYield asks the model service for the session farmer
func (s *AdvisorService) PredictYield(ctx context.Context, claims *domain.SessionClaims) (json.RawMessage, error) {
	if s.model == nil {
		return nil, fmt.Errorf("%w: AI Model service", domain.ErrServiceNotConfigured)
	}
	out, err := s.model.PredictYield(ctx, claims.FarmerID)
	if err != nil {
		s.log.Warn("yield prediction failed", zap.String("farmer_id", claims.FarmerID), zap.Error(err))
		return nil, err
	}
	return out, nil
}

// Chat answers a free-text question with the farmer's record as context
func (s *AdvisorService) Chat(ctx context.Context, claims *domain.SessionClaims, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: No text provided", domain.ErrValidation)
	}
	if s.chat == nil {
		return "", fmt.Errorf("%w: AI service", domain.ErrServiceNotConfigured)
	}

	farmer, err := s.farmers.GetByFarmerID(ctx, claims.FarmerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrAccountNotFound
		}
		return "", err
	}

	reply, err := s.chat.Complete(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: farmerPrompt(farmer, text)},
	})
	if err != nil {
		s.log.Warn("chat completion failed", zap.String("farmer_id", claims.FarmerID), zap.Error(err))
		return "", err
	}
	if reply == "" {
		reply = "The AI returned an empty response."
	}
	return reply, nil
}

func farmerPrompt(f *models.Farmer, question string) string {
	location := f.CurrentCity
	if location == "" {
		location = f.District
	}

	var b strings.Builder
	b.WriteString("You are an expert agricultural assistant. Based on the following farmer's data, answer the user's question concisely.\n")
	fmt.Fprintf(&b, "- Name: %s\n", f.FarmerName)
	fmt.Fprintf(&b, "- Location: %s, %s\n", location, f.State)
	fmt.Fprintf(&b, "- Current Crop: %s\n", orText(f.Crop, "Not specified"))
	fmt.Fprintf(&b, "- Soil pH: %s\n", formatReading(f.Ph, "%.1f"))
	fmt.Fprintf(&b, "- Temperature: %s\n", formatReading(f.Temperature, "%.1f°C"))
	fmt.Fprintf(&b, "- Humidity: %s\n", formatReading(f.Humidity, "%.0f%%"))
	fmt.Fprintf(&b, "- Rainfall: %s\n", formatReading(f.Rainfall, "%.1f mm"))
	fmt.Fprintf(&b, "\nUser's question is: %q\n", question)
	return b.String()
}

func orText(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func formatReading(v *float64, format string) string {
	if !present(v) {
		return "N/A"
	}
	return fmt.Sprintf(format, *v)
}
