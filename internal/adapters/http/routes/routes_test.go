package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"agrisense-api/internal/adapters/agmarknet"
	"agrisense-api/internal/adapters/llm"
	"agrisense-api/internal/adapters/persistence/models"
	"agrisense-api/internal/config"
	"agrisense-api/internal/pkg/jwt"
	"agrisense-api/internal/pkg/metrics"
	"agrisense-api/internal/pkg/password"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T, overrides ...func(*Dependencies)) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, models.AutoMigrate(db))

	deps := &Dependencies{
		DB:      db,
		Config:  &config.Config{AppMode: "dev"},
		Logger:  zap.NewNop(),
		Metrics: metrics.New(),
		Tokens:  jwt.NewManager("test-secret", time.Hour),
		Hasher:  password.NewHasher(password.MinCost),
	}
	for _, o := range overrides {
		o(deps)
	}

	app := fiber.New()
	Setup(app, deps)
	return app
}

type result struct {
	status int
	header http.Header
	raw    string
	body   map[string]interface{}
}

func call(t *testing.T, app *fiber.App, method, path, token string, body interface{}) result {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := result{status: resp.StatusCode, header: resp.Header, raw: string(raw)}
	_ = json.Unmarshal(raw, &out.body)
	return out
}

func signupBody(email, role string) map[string]interface{} {
	return map[string]interface{}{
		"farmerName": "Asha",
		"email":      email,
		"password":   "password123",
		"role":       role,
		"state":      "Punjab",
		"district":   "Ludhiana",
		"N":          30,
	}
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)

	signup := call(t, app, http.MethodPost, "/farmer/signup", "", signupBody(" Asha@Example.com ", ""))
	require.Equal(t, fiber.StatusCreated, signup.status, signup.raw)
	assert.Equal(t, "Farmer registered successfully", signup.body["message"])
	assert.NotEmpty(t, signup.body["token"])
	assert.NotEmpty(t, signup.body["farmerId"])
	assert.NotContains(t, signup.raw, "password")
	assert.Contains(t, signup.header.Get(fiber.HeaderCacheControl), "no-store")

	// emails are compared exactly, so a different case is a different account
	lower := call(t, app, http.MethodPost, "/farmer/signup", "", signupBody("asha@example.com", ""))
	require.Equal(t, fiber.StatusCreated, lower.status, lower.raw)
	assert.NotEqual(t, signup.body["farmerId"], lower.body["farmerId"])

	dup := call(t, app, http.MethodPost, "/farmer/signup", "", signupBody("Asha@Example.com", ""))
	assert.Equal(t, fiber.StatusBadRequest, dup.status)
	assert.Equal(t, "Farmer already exists", dup.body["error"])

	wrongPassword := call(t, app, http.MethodPost, "/farmer/login", "", map[string]string{"email": "Asha@Example.com", "password": "nope-nope"})
	unknownEmail := call(t, app, http.MethodPost, "/farmer/login", "", map[string]string{"email": "ghost@example.com", "password": "password123"})
	assert.Equal(t, fiber.StatusBadRequest, wrongPassword.status)
	assert.Equal(t, wrongPassword.status, unknownEmail.status)
	assert.Equal(t, wrongPassword.raw, unknownEmail.raw)
	assert.Equal(t, "Invalid credentials", wrongPassword.body["error"])

	wrongCase := call(t, app, http.MethodPost, "/farmer/login", "", map[string]string{"email": "ASHA@example.com", "password": "password123"})
	assert.Equal(t, fiber.StatusBadRequest, wrongCase.status)
	assert.Equal(t, "Invalid credentials", wrongCase.body["error"])

	login := call(t, app, http.MethodPost, "/farmer/login", "", map[string]string{"email": " Asha@Example.com ", "password": "password123"})
	require.Equal(t, fiber.StatusOK, login.status, login.raw)
	assert.Equal(t, "Login successful", login.body["message"])
	assert.Equal(t, signup.body["farmerId"], login.body["farmerId"])
	assert.NotContains(t, login.raw, "password")

	lowerLogin := call(t, app, http.MethodPost, "/farmer/login", "", map[string]string{"email": "asha@example.com", "password": "password123"})
	require.Equal(t, fiber.StatusOK, lowerLogin.status, lowerLogin.raw)
	assert.Equal(t, lower.body["farmerId"], lowerLogin.body["farmerId"])
}

func TestSignupValidation(t *testing.T) {
	app := newTestApp(t)

	body := signupBody("asha@example.com", "")
	delete(body, "district")

	res := call(t, app, http.MethodPost, "/farmer/signup", "", body)
	assert.Equal(t, fiber.StatusBadRequest, res.status)
	assert.Equal(t, "missing required fields: district", res.body["error"])
}

func TestProfileRoutes(t *testing.T) {
	app := newTestApp(t)
	signup := call(t, app, http.MethodPost, "/farmer/signup", "", signupBody("asha@example.com", ""))
	require.Equal(t, fiber.StatusCreated, signup.status, signup.raw)
	token := signup.body["token"].(string)

	noToken := call(t, app, http.MethodGet, "/farmer/profile", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, noToken.status)

	profile := call(t, app, http.MethodGet, "/farmer/profile", token, nil)
	require.Equal(t, fiber.StatusOK, profile.status, profile.raw)
	assert.Equal(t, "asha@example.com", profile.body["email"])
	assert.NotContains(t, profile.raw, "password")
	assert.NotContains(t, profile.raw, "$2a$")

	escalate := call(t, app, http.MethodPut, "/farmer/update", token, map[string]string{"role": "admin"})
	assert.Equal(t, fiber.StatusBadRequest, escalate.status)
	assert.Contains(t, escalate.body["error"], "role")

	update := call(t, app, http.MethodPut, "/farmer/update", token, map[string]interface{}{"crop": "rice", "ph": 6.9})
	require.Equal(t, fiber.StatusOK, update.status, update.raw)
	assert.Equal(t, "Profile updated", update.body["message"])
	farmer := update.body["farmer"].(map[string]interface{})
	assert.Equal(t, "rice", farmer["crop"])
	assert.Equal(t, "farmer", farmer["role"])

	dashboard := call(t, app, http.MethodGet, "/farmer/dashboard", token, nil)
	require.Equal(t, fiber.StatusOK, dashboard.status, dashboard.raw)
	assert.Contains(t, dashboard.body, "soilHealthData")
	assert.Contains(t, dashboard.body, "cropRecommendations")
}

func TestAssetAndAdminRoutes(t *testing.T) {
	app := newTestApp(t)

	farmerSignup := call(t, app, http.MethodPost, "/farmer/signup", "", signupBody("asha@example.com", ""))
	require.Equal(t, fiber.StatusCreated, farmerSignup.status, farmerSignup.raw)
	farmerToken := farmerSignup.body["token"].(string)
	farmerID := farmerSignup.body["farmerId"].(string)

	adminSignup := call(t, app, http.MethodPost, "/farmer/signup", "", signupBody("root@example.com", "admin"))
	require.Equal(t, fiber.StatusCreated, adminSignup.status, adminSignup.raw)
	adminToken := adminSignup.body["token"].(string)

	save := call(t, app, http.MethodPost, "/farmer/assets", farmerToken, map[string]interface{}{
		"farmerId": farmerID,
		"sensors":  []map[string]interface{}{{"name": "Soil probe"}},
	})
	require.Equal(t, fiber.StatusOK, save.status, save.raw)
	assert.Equal(t, "Assets saved successfully", save.body["message"])

	orphan := call(t, app, http.MethodPost, "/farmer/assets", adminToken, map[string]interface{}{
		"farmerId": "F-does-not-exist",
		"drones":   []map[string]interface{}{{"name": "Sprayer"}},
	})
	assert.Equal(t, fiber.StatusNotFound, orphan.status, orphan.raw)
	assert.Equal(t, "Farmer not found", orphan.body["error"])

	other := call(t, app, http.MethodGet, "/farmer/assets/"+adminSignup.body["farmerId"].(string), farmerToken, nil)
	assert.Equal(t, fiber.StatusForbidden, other.status)

	stats := call(t, app, http.MethodGet, "/farmer/assets/"+farmerID+"/stats", adminToken, nil)
	require.Equal(t, fiber.StatusOK, stats.status, stats.raw)
	assert.Equal(t, float64(1), stats.body["totalAssets"])

	forbidden := call(t, app, http.MethodGet, "/admin/farmers", farmerToken, nil)
	assert.Equal(t, fiber.StatusForbidden, forbidden.status)

	list := call(t, app, http.MethodGet, "/admin/farmers?limit=10", adminToken, nil)
	require.Equal(t, fiber.StatusOK, list.status, list.raw)
	assert.Len(t, list.body["data"], 2)
	assert.NotContains(t, list.raw, "$2a$")

	assets := call(t, app, http.MethodGet, "/admin/assets", adminToken, nil)
	require.Equal(t, fiber.StatusOK, assets.status, assets.raw)
	assert.Contains(t, assets.body, "summary")
}

func TestAdvisorRoutesWithoutBackends(t *testing.T) {
	app := newTestApp(t)
	signup := call(t, app, http.MethodPost, "/farmer/signup", "", signupBody("asha@example.com", ""))
	require.Equal(t, fiber.StatusCreated, signup.status, signup.raw)
	token := signup.body["token"].(string)

	res := call(t, app, http.MethodPost, "/farmer/recommend-crop", token, nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, res.status)

	chat := call(t, app, http.MethodPost, "/farmer/chat", token, map[string]string{"text": ""})
	assert.Equal(t, fiber.StatusBadRequest, chat.status)
	assert.Equal(t, "No text provided", chat.body["error"])

	prices := call(t, app, http.MethodGet, "/farmer/crop-prices", token, nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, prices.status)
	assert.Equal(t, "Crop price service is not configured on the server.", prices.body["error"])

	advice := call(t, app, http.MethodPost, "/farmer/finance-advice", token, map[string]string{"language": "en"})
	assert.Equal(t, fiber.StatusServiceUnavailable, advice.status)
	assert.Equal(t, "AI service is not configured on the server.", advice.body["error"])
}

func TestCropPricesRoute(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("filters[state.keyword]") == "Nowhere" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"status":"error","message":"Invalid API key"}`))
			return
		}
		assert.Equal(t, "Punjab", q.Get("filters[state.keyword]"))
		assert.Equal(t, "2", q.Get("limit"))
		_, _ = w.Write([]byte(`{"total":9,"records":[{"market":"Khanna"},{"market":"Jagraon"},{"market":"Moga"}]}`))
	}))
	defer upstream.Close()

	app := newTestApp(t, func(d *Dependencies) {
		d.Prices = agmarknet.NewClient(upstream.URL, "k", time.Second)
	})
	signup := call(t, app, http.MethodPost, "/farmer/signup", "", signupBody("asha@example.com", ""))
	require.Equal(t, fiber.StatusCreated, signup.status, signup.raw)
	token := signup.body["token"].(string)

	noToken := call(t, app, http.MethodGet, "/farmer/crop-prices", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, noToken.status)

	res := call(t, app, http.MethodGet, "/farmer/crop-prices?limit=2&commodity=Wheat", token, nil)
	require.Equal(t, fiber.StatusOK, res.status, res.raw)
	assert.Equal(t, "Crop prices fetched successfully", res.body["message"])
	data := res.body["data"].(map[string]interface{})
	assert.Len(t, data["records"], 2)
	assert.Equal(t, float64(9), data["totalRecords"])
	assert.Equal(t, true, data["personalized"])
	assert.Equal(t, "Punjab", data["farmerState"])
	filters := data["filtersUsed"].(map[string]interface{})
	assert.Equal(t, "Wheat", filters["commodity"])
	assert.Nil(t, filters["district"])
	assert.Equal(t, float64(2), filters["limit"])

	rejected := call(t, app, http.MethodGet, "/farmer/crop-prices?state=Nowhere", token, nil)
	assert.Equal(t, fiber.StatusForbidden, rejected.status)
	assert.Equal(t, "Invalid API key", rejected.body["error"])
}

func TestFinanceAdviceRoute(t *testing.T) {
	var reply atomic.Value
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, err := json.Marshal(map[string]interface{}{
			"choices": []map[string]interface{}{{"message": map[string]string{"content": reply.Load().(string)}}},
		})
		assert.NoError(t, err)
		_, _ = w.Write(payload)
	}))
	defer upstream.Close()

	app := newTestApp(t, func(d *Dependencies) {
		d.Chat = llm.NewClient(upstream.URL, "hf_test", "m", time.Second)
	})
	signup := call(t, app, http.MethodPost, "/farmer/signup", "", signupBody("asha@example.com", ""))
	require.Equal(t, fiber.StatusCreated, signup.status, signup.raw)
	token := signup.body["token"].(string)

	reply.Store(`Sure! [{"title":"Insure","summary":"Enrol in PMFBY.","category":"Crop Insurance"}]`)
	res := call(t, app, http.MethodPost, "/farmer/finance-advice", token, map[string]string{"language": "kn"})
	require.Equal(t, fiber.StatusOK, res.status, res.raw)
	var tips []map[string]string
	require.NoError(t, json.Unmarshal([]byte(res.raw), &tips))
	require.Len(t, tips, 1)
	assert.Equal(t, "Insure", tips[0]["title"])
	assert.Equal(t, "https://source.unsplash.com/800x600/?Crop%20Insurance,agriculture", tips[0]["imageUrl"])

	noBody := call(t, app, http.MethodPost, "/farmer/finance-advice", token, nil)
	assert.Equal(t, fiber.StatusOK, noBody.status, noBody.raw)

	reply.Store("I cannot produce JSON today.")
	bad := call(t, app, http.MethodPost, "/farmer/finance-advice", token, nil)
	assert.Equal(t, fiber.StatusBadGateway, bad.status)
	assert.Equal(t, "AI returned an unexpected format.", bad.body["error"])
}

func TestOperationalRoutes(t *testing.T) {
	app := newTestApp(t)

	health := call(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, fiber.StatusOK, health.status, health.raw)
	assert.Equal(t, "ok", health.body["status"])

	// generate at least one auth sample
	call(t, app, http.MethodPost, "/farmer/login", "", map[string]string{"email": "ghost@example.com", "password": "password123"})

	m := call(t, app, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, fiber.StatusOK, m.status)
	assert.Contains(t, m.raw, "agrisense_auth_attempts_total")
}
