package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"agrisense-api/internal/adapters/llm"
	"agrisense-api/internal/core/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	defaultPriceState = "Karnataka"
	defaultPriceLimit = 10
	maxPriceLimit     = 100
	maxPhotoLookups   = 4

	fallbackImageBase = "https://source.unsplash.com/800x600/?"
)

var adviceLanguages = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"kn": "Kannada",
}

// CropPriceFilters echoes the filters a price lookup used. Unset filters are null.
type CropPriceFilters struct {
	State     *string `json:"state"`
	District  *string `json:"district"`
	Market    *string `json:"market"`
	Commodity *string `json:"commodity"`
	Variety   *string `json:"variety"`
	Grade     *string `json:"grade"`
	Limit     int     `json:"limit"`
	Offset    int     `json:"offset"`
}

// CropPrices is one page of mandi prices
type CropPrices struct {
	Records      []json.RawMessage `json:"records"`
	TotalRecords int               `json:"totalRecords"`
	Personalized bool              `json:"personalized"`
	FarmerState  string            `json:"farmerState"`
	FiltersUsed  CropPriceFilters  `json:"filtersUsed"`
}

// FinanceTip is one generated advice card
type FinanceTip struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	Category string `json:"category"`
	ImageURL string `json:"imageUrl"`
}

// CropPrices looks up market prices. Without an explicit state the caller's
// stored state is used, then Karnataka.
func (s *AdvisorService) CropPrices(ctx context.Context, claims *domain.SessionClaims, query domain.PriceQuery) (*CropPrices, error) {
	if s.prices == nil {
		return nil, fmt.Errorf("%w: crop price service", domain.ErrServiceNotConfigured)
	}

	query = normalizePriceQuery(query)
	personalized := query.State == ""
	if personalized {
		query.State = defaultPriceState
		farmer, err := s.farmers.GetByFarmerID(ctx, claims.FarmerID)
		switch {
		case err == nil && farmer.State != "":
			query.State = farmer.State
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return nil, err
		}
	}

	result, err := s.prices.FetchPrices(ctx, query)
	if err != nil {
		s.log.Warn("crop price lookup failed",
			zap.String("farmer_id", claims.FarmerID),
			zap.String("state", query.State),
			zap.Error(err),
		)
		return nil, err
	}

	records := result.Records
	if records == nil {
		records = []json.RawMessage{}
	}
	if len(records) > query.Limit {
		records = records[:query.Limit]
	}
	total := result.Total
	if total == 0 {
		total = len(result.Records)
	}

	return &CropPrices{
		Records:      records,
		TotalRecords: total,
		Personalized: personalized,
		FarmerState:  query.State,
		FiltersUsed: CropPriceFilters{
			State:     nullable(query.State),
			District:  nullable(query.District),
			Market:    nullable(query.Market),
			Commodity: nullable(query.Commodity),
			Variety:   nullable(query.Variety),
			Grade:     nullable(query.Grade),
			Limit:     query.Limit,
			Offset:    query.Offset,
		},
	}, nil
}

// FinanceAdvice asks the chat backend for six finance tips in the given
// language (en, hi or kn; anything else means English) and attaches a photo
// to each.
func (s *AdvisorService) FinanceAdvice(ctx context.Context, claims *domain.SessionClaims, language string) ([]FinanceTip, error) {
	if s.chat == nil {
		return nil, fmt.Errorf("%w: AI service", domain.ErrServiceNotConfigured)
	}

	languageName, ok := adviceLanguages[strings.ToLower(strings.TrimSpace(language))]
	if !ok {
		languageName = "English"
	}

	reply, err := s.chat.Complete(ctx,
		[]llm.Message{{Role: "user", Content: financePrompt(languageName)}},
		llm.WithTemperature(0.8),
		llm.WithMaxTokens(1024),
	)
	if err != nil {
		s.log.Warn("finance advice failed", zap.String("farmer_id", claims.FarmerID), zap.Error(err))
		return nil, err
	}

	tips, err := parseFinanceTips(reply)
	if err != nil {
		s.log.Warn("finance advice unparseable",
			zap.String("farmer_id", claims.FarmerID),
			zap.String("reply", reply),
			zap.Error(err),
		)
		return nil, err
	}

	s.attachImages(ctx, tips)
	return tips, nil
}

func financePrompt(languageName string) string {
	return "You are an expert agricultural finance advisor for Indian farmers. Generate 6 distinct, actionable financial tips. " +
		`Respond ONLY with a valid JSON array of objects. Each object must have keys: "title", "summary", and "category". ` +
		"The summary should be 1-2 concise sentences. " +
		"Categories can be: 'Government Schemes', 'Crop Insurance', 'Market Prices', 'Loans & Credit', 'Investment', 'Sustainable Farming'. " +
		"The response language must be " + languageName + "."
}

// parseFinanceTips decodes the outermost JSON array in reply; models often
// wrap it in prose or code fences.
func parseFinanceTips(reply string) ([]FinanceTip, error) {
	start := strings.Index(reply, "[")
	end := strings.LastIndex(reply, "]")
	if start == -1 || end < start {
		return nil, fmt.Errorf("%w: AI returned an unexpected format.", domain.ErrMalformedResponse)
	}

	var tips []FinanceTip
	if err := json.Unmarshal([]byte(reply[start:end+1]), &tips); err != nil {
		return nil, fmt.Errorf("%w: AI returned an invalid format. Could not parse advice.", domain.ErrMalformedResponse)
	}
	if tips == nil {
		tips = []FinanceTip{}
	}
	return tips, nil
}

// attachImages looks up every tip's photo concurrently; lookups never fail
func (s *AdvisorService) attachImages(ctx context.Context, tips []FinanceTip) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxPhotoLookups)
	for i := range tips {
		tip := &tips[i]
		g.Go(func() error {
			tip.ImageURL = s.imageFor(gctx, tip.Category)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *AdvisorService) imageFor(ctx context.Context, category string) string {
	category = orText(strings.TrimSpace(category), "farming")
	if s.images == nil {
		return fallbackImageBase + escapeQuery(category) + ",agriculture"
	}

	query := category + " farm finance"
	found, err := s.images.SearchPhoto(ctx, query)
	if err != nil {
		s.log.Debug("photo search failed", zap.String("query", query), zap.Error(err))
	}
	if err != nil || found == "" {
		return fallbackImageBase + escapeQuery(query)
	}
	return found
}

// escapeQuery percent-encodes like encodeURIComponent, spaces as %20
func escapeQuery(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func normalizePriceQuery(q domain.PriceQuery) domain.PriceQuery {
	q.State = strings.TrimSpace(q.State)
	q.District = strings.TrimSpace(q.District)
	q.Market = strings.TrimSpace(q.Market)
	q.Commodity = strings.TrimSpace(q.Commodity)
	q.Variety = strings.TrimSpace(q.Variety)
	q.Grade = strings.TrimSpace(q.Grade)
	if q.Limit <= 0 {
		q.Limit = defaultPriceLimit
	}
	if q.Limit > maxPriceLimit {
		q.Limit = maxPriceLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return q
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
