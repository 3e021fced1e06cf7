package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/oneapp-labs/waitlist-api/config"
	"github.com/oneapp-labs/waitlist-api/config/router"
	"github.com/oneapp-labs/waitlist-api/domain"
	"github.com/oneapp-labs/waitlist-api/internal/log"
	"github.com/oneapp-labs/waitlist-api/internal/models"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testAdminToken = "integration-test-admin-token"

func newTestApp(t *testing.T) (*config.ApplicationConfig, *httptest.Server) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.WaitlistEntrant{}); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	logger := log.NewLoggerWithJSONOutput()

	appConfig := &config.ApplicationConfig{
		DB:     db,
		Logger: logger,
	}

	appConfig.RouterService = router.CreateRouterService(logger, nil, &router.RouterConfig{
		RateLimitRequests: 100,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    30 * time.Second,
	})

	domain.SetupCoreDomain(appConfig)

	return appConfig, httptest.NewServer(appConfig.RouterService.GetEngine())
}

type WaitlistAPITestSuite struct {
	suite.Suite
	db        *gorm.DB
	server    *httptest.Server
	baseURL   string
	logger    *log.Logger
	appConfig *config.ApplicationConfig
}

func (suite *WaitlistAPITestSuite) SetupSuite() {
	os.Setenv("ADMIN_TOKEN", testAdminToken)

	suite.appConfig, suite.server = newTestApp(suite.T())
	suite.db = suite.appConfig.DB
	suite.logger = suite.appConfig.Logger
	suite.baseURL = suite.server.URL
}

func (suite *WaitlistAPITestSuite) TearDownSuite() {
	if suite.server != nil {
		suite.server.Close()
	}
	if suite.db != nil {
		sqlDB, _ := suite.db.DB()
		sqlDB.Close()
	}
	os.Unsetenv("ADMIN_TOKEN")
}

func (suite *WaitlistAPITestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM waitlist_entrants")
}

func (suite *WaitlistAPITestSuite) postJoin(body map[string]string) (*http.Response, map[string]interface{}) {
	jsonBody, _ := json.Marshal(body)

	resp, err := http.Post(suite.baseURL+"/api/waitlist/join", "application/json", bytes.NewBuffer(jsonBody))
	suite.Require().NoError(err)
	defer resp.Body.Close()

	var response map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&response)
	suite.Require().NoError(err)

	return resp, response
}

func (suite *WaitlistAPITestSuite) seedEntrant(name, email, code, referredBy string, position int64) *models.WaitlistEntrant {
	entrant := &models.WaitlistEntrant{
		Name:             name,
		Email:            email,
		Interest:         models.InterestAll,
		ReferralCode:     code,
		ReferredBy:       referredBy,
		WaitlistPosition: position,
		EarlyAccess:      position <= models.EarlyAccessSpots,
		Subscription:     models.SubscriptionFree,
		SignupSource:     models.DefaultSignupSource,
	}
	suite.Require().NoError(suite.db.Create(entrant).Error)
	return entrant
}

func (suite *WaitlistAPITestSuite) countEntrants() int64 {
	var count int64
	suite.Require().NoError(suite.db.Model(&models.WaitlistEntrant{}).Count(&count).Error)
	return count
}

func (suite *WaitlistAPITestSuite) TestHealthCheck() {
	resp, err := http.Get(suite.baseURL + "/health")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)

	var response map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&response)
	suite.Require().NoError(err)

	suite.Equal(true, response["success"])
	suite.Contains(response["message"], "health check completed")

	data := response["data"].(map[string]interface{})
	suite.Contains(data, "database")
	suite.Contains(data, "uptime")

	suite.Equal(float64(1), data["database"])
}

func (suite *WaitlistAPITestSuite) TestJoinWaitlist() {
	resp, response := suite.postJoin(map[string]string{
		"name":     "Ada Lovelace",
		"email":    "ada@example.com",
		"interest": "shopping",
	})

	suite.Equal(http.StatusCreated, resp.StatusCode)
	suite.Equal(true, response["success"])
	suite.Contains(response["message"], "joined waitlist")

	data := response["data"].(map[string]interface{})
	suite.Equal("Ada Lovelace", data["name"])
	suite.Equal("ada@example.com", data["email"])
	suite.Equal(float64(1), data["waitlistPosition"])
	suite.Equal(true, data["earlyAccess"])
	suite.Regexp(`^ONE[A-Z0-9]{6}$`, data["referralCode"])
	suite.Contains(data, "id")
	suite.Contains(data, "joinDate")
}

func (suite *WaitlistAPITestSuite) TestJoinDuplicateEmail() {
	suite.seedEntrant("First User", "duplicate@example.com", "ONEAAA111", "", 1)

	resp, response := suite.postJoin(map[string]string{
		"name":  "Second User",
		"email": "Duplicate@Example.com",
	})

	suite.Equal(http.StatusBadRequest, resp.StatusCode)
	suite.Equal(false, response["success"])
	suite.Contains(response["message"], "already on our waitlist")
	suite.Equal(int64(1), suite.countEntrants())
}

func (suite *WaitlistAPITestSuite) TestJoinValidationErrors() {
	resp, response := suite.postJoin(map[string]string{
		"name":  "A",
		"email": "not-an-email",
	})

	suite.Equal(http.StatusBadRequest, resp.StatusCode)
	suite.Equal(false, response["success"])

	errorsList := response["errors"].([]interface{})
	suite.True(len(errorsList) >= 2)

	fields := make(map[string]string, len(errorsList))
	for _, item := range errorsList {
		violation := item.(map[string]interface{})
		fields[violation["field"].(string)] = violation["message"].(string)
	}

	suite.Contains(fields, "name")
	suite.Contains(fields, "email")
}

func (suite *WaitlistAPITestSuite) TestJoinInvalidReferralCode() {
	resp, response := suite.postJoin(map[string]string{
		"name":         "Referred User",
		"email":        "referred@example.com",
		"referralCode": "ONEZZZ999",
	})

	suite.Equal(http.StatusBadRequest, resp.StatusCode)
	suite.Equal(false, response["success"])
	suite.Contains(response["message"], "Invalid referral code")
	suite.Equal(int64(0), suite.countEntrants())
}

func (suite *WaitlistAPITestSuite) TestJoinWithReferral() {
	suite.seedEntrant("Referrer", "referrer@example.com", "ONEREF001", "", 1)

	resp, response := suite.postJoin(map[string]string{
		"name":         "Referred User",
		"email":        "referred2@example.com",
		"referralCode": "ONEREF001",
	})

	suite.Equal(http.StatusCreated, resp.StatusCode)
	suite.Equal(true, response["success"])

	data := response["data"].(map[string]interface{})
	suite.Equal(float64(2), data["waitlistPosition"])

	var stored models.WaitlistEntrant
	suite.Require().NoError(suite.db.Where("email = ?", "referred2@example.com").First(&stored).Error)
	suite.Equal("ONEREF001", stored.ReferredBy)
}

func (suite *WaitlistAPITestSuite) TestSequentialPositions() {
	for i := 1; i <= 3; i++ {
		resp, response := suite.postJoin(map[string]string{
			"name":  fmt.Sprintf("User %d", i),
			"email": fmt.Sprintf("user%d@example.com", i),
		})

		suite.Equal(http.StatusCreated, resp.StatusCode)
		data := response["data"].(map[string]interface{})
		suite.Equal(float64(i), data["waitlistPosition"])
	}
}

func (suite *WaitlistAPITestSuite) TestStats() {
	suite.seedEntrant("User One", "one@example.com", "ONESTA001", "", 1)
	suite.seedEntrant("User Two", "two@example.com", "ONESTA002", "", 2)

	entrant := suite.seedEntrant("User Three", "three@example.com", "ONESTA003", "", 3)
	suite.Require().NoError(suite.db.Model(entrant).Updates(map[string]interface{}{
		"interest": models.InterestFood,
	}).Error)

	resp, err := http.Get(suite.baseURL + "/api/waitlist/stats")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)

	var response map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&response)
	suite.Require().NoError(err)

	suite.Equal(true, response["success"])

	data := response["data"].(map[string]interface{})
	suite.Equal(float64(3), data["totalUsers"])
	suite.Equal(float64(3), data["earlyAccessUsers"])
	suite.Equal(float64(models.EarlyAccessSpots-3), data["earlyAccessSpotsLeft"])

	interestStats := data["interestStats"].(map[string]interface{})
	suite.Equal(float64(2), interestStats[models.InterestAll])
	suite.Equal(float64(1), interestStats[models.InterestFood])
}

func (suite *WaitlistAPITestSuite) TestReferralStats() {
	suite.seedEntrant("Referrer", "referrer@example.com", "ONEREF100", "", 1)
	for i := 0; i < 5; i++ {
		suite.seedEntrant(
			fmt.Sprintf("Friend %d", i),
			fmt.Sprintf("friend%d@example.com", i),
			fmt.Sprintf("ONEFRD10%d", i),
			"ONEREF100",
			int64(i+2),
		)
	}

	resp, err := http.Get(suite.baseURL + "/api/waitlist/referral/ONEREF100")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)

	var response map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&response)
	suite.Require().NoError(err)

	data := response["data"].(map[string]interface{})
	suite.Equal("Referrer", data["referrerName"])
	suite.Equal("ONEREF100", data["referralCode"])
	suite.Equal(float64(5), data["referralCount"])
	suite.Equal(true, data["rewardsEligible"])
}

func (suite *WaitlistAPITestSuite) TestReferralStatsNotFound() {
	resp, err := http.Get(suite.baseURL + "/api/waitlist/referral/ONENOPE00")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusNotFound, resp.StatusCode)

	var response map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&response)
	suite.Require().NoError(err)

	suite.Equal(false, response["success"])
	suite.Contains(response["message"], "Invalid referral code")
}

func (suite *WaitlistAPITestSuite) TestListEntrantsRequiresAuth() {
	resp, err := http.Get(suite.baseURL + "/api/waitlist/users")
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusUnauthorized, resp.StatusCode)

	var response map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&response)
	suite.Require().NoError(err)

	suite.Equal(false, response["success"])
	suite.Equal("Unauthorized", response["message"])
}

func (suite *WaitlistAPITestSuite) TestListEntrantsRejectsWrongToken() {
	req, err := http.NewRequest(http.MethodGet, suite.baseURL+"/api/waitlist/users", nil)
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer wrong-token")

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (suite *WaitlistAPITestSuite) TestListEntrants() {
	suite.seedEntrant("User One", "one@example.com", "ONELST001", "", 1)
	suite.seedEntrant("User Two", "two@example.com", "ONELST002", "", 2)
	suite.seedEntrant("User Three", "three@example.com", "ONELST003", "", 3)

	req, err := http.NewRequest(http.MethodGet, suite.baseURL+"/api/waitlist/users?page=1&limit=2", nil)
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+testAdminToken)

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)

	var response map[string]interface{}
	err = json.NewDecoder(resp.Body).Decode(&response)
	suite.Require().NoError(err)

	suite.Equal(true, response["success"])

	data := response["data"].(map[string]interface{})
	users := data["users"].([]interface{})
	suite.Len(users, 2)

	pagination := data["pagination"].(map[string]interface{})
	suite.Equal(float64(1), pagination["current"])
	suite.Equal(float64(2), pagination["pages"])
	suite.Equal(float64(3), pagination["total"])
}

func TestJoinRateLimit(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration tests. Set RUN_INTEGRATION_TESTS=true to run them")
	}

	// Fresh server so limiter state from other tests does not interfere.
	appConfig, server := newTestApp(t)
	defer server.Close()
	defer func() {
		sqlDB, _ := appConfig.DB.DB()
		sqlDB.Close()
	}()

	var lastStatus int
	for i := 0; i < 11; i++ {
		body, _ := json.Marshal(map[string]string{
			"name":  fmt.Sprintf("Limit User %d", i),
			"email": fmt.Sprintf("limit%d@example.com", i),
		})

		resp, err := http.Post(server.URL+"/api/waitlist/join", "application/json", bytes.NewBuffer(body))
		if err != nil {
			t.Fatalf("Failed to make request: %v", err)
		}
		lastStatus = resp.StatusCode
		resp.Body.Close()

		if i < 10 && resp.StatusCode != http.StatusCreated {
			t.Fatalf("Request %d: expected status 201, got %d", i, resp.StatusCode)
		}
	}

	if lastStatus != http.StatusTooManyRequests {
		t.Errorf("Expected status 429 after exceeding the join budget, got %d", lastStatus)
	}
}

func TestWaitlistAPISuite(t *testing.T) {
	// Skip integration tests unless explicitly requested
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration tests. Set RUN_INTEGRATION_TESTS=true to run them")
	}

	suite.Run(t, new(WaitlistAPITestSuite))
}
