//go:build integration

package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ledger-backoffice/backend/config"
	"github.com/ledger-backoffice/backend/internal/domain/entity"
	"github.com/ledger-backoffice/backend/internal/domain/valueobject"
	"github.com/ledger-backoffice/backend/internal/infra/dependency"
	"github.com/ledger-backoffice/backend/internal/integration/auditqueue"
	"github.com/ledger-backoffice/backend/internal/integration/entrypoint/dto"
	"github.com/ledger-backoffice/backend/internal/integration/persistence/model"
	"github.com/ledger-backoffice/backend/test/integration/mock"
)

const (
	testJWTSecret        = "test-jwt-secret-key-for-testing-purposes"
	testOperator         = "operator"
	testOperatorPassword = "operator-pass"
	testAuditQueueKey    = "ledger:audit:test"
)

var tags string

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		Name: "ledger-backoffice-api",
		ScenarioInitializer: func(s *godog.ScenarioContext) {
			InitializeScenario(s)
		},
		Options: &godog.Options{
			Format:      "pretty",
			Paths:       []string{"../features"},
			Tags:        tags,
			Concurrency: 1,
			Strict:      true,
			TestingT:    t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type testContext struct {
	uri         string
	headers     map[string]string
	client      *http.Client
	response    *response
	accessToken string
	ids         map[string]string
	vendorIDs   map[string]string
}

type response struct {
	status  int
	header  http.Header
	body    any
	rawBody []byte
}

var (
	serverInit     sync.Once
	portInit       sync.Once
	testServerPort int
	testDB         *mock.Db
	testTime       = mock.NewTime()
	testQueue      *auditqueue.Queue
	testWorker     *auditqueue.Worker
)

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("ENV", "test")
	})
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	testDB = mock.NewDb(map[string]any{
		"vendors":      &model.VendorModel{},
		"products":     &model.ProductModel{},
		"transactions": &model.TransactionModel{},
		"payments":     &model.PaymentModel{},
		"settlements":  &model.SettlementModel{},
		"audit_logs":   &model.AuditLogModel{},
	})

	test := &testContext{
		uri:    fmt.Sprintf("http://localhost:%d", testServerPort),
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current time is "([^"]*)"$`, test.theCurrentTimeIs)
	ctx.Given(`^I am logged in as the operator$`, test.iAmLoggedInAsTheOperator)

	// Ledger setup steps
	ctx.Given(`^a vendor "([^"]*)" exists$`, test.aVendorExists)
	ctx.Given(`^a deleted vendor "([^"]*)" exists$`, test.aDeletedVendorExists)
	ctx.Given(`^vendor "([^"]*)" has a transaction on "([^"]*)" for "([^"]*)" at price "([^"]*)" and qty "([^"]*)"$`, test.vendorHasATransaction)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^the audit queue is drained$`, test.theAuditQueueIsDrained)
	ctx.Given(`^the audit queue is unavailable$`, test.theAuditQueueIsUnavailable)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items$`, test.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response header "([^"]*)" should be "([^"]*)"$`, test.theResponseHeaderShouldBe)

	// Database and queue assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
	ctx.Then(`^the audit queue should hold (\d+) entries$`, test.theAuditQueueShouldHoldEntries)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.response = nil
	t.ids = make(map[string]string)
	t.vendorIDs = make(map[string]string)

	testTime.SetCurrentTime(time.Date(2026, 3, 10, 9, 0, 0, 0, valueobject.KST))

	mock.RestoreRedis()
	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	return testDB.ClearDB()
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		gin.SetMode(gin.TestMode)

		hash, err := bcrypt.GenerateFromPassword([]byte(testOperatorPassword), bcrypt.MinCost)
		if err != nil {
			panic(fmt.Sprintf("failed to hash password: %v", err))
		}

		cfg := config.Load()
		cfg.Server.Environment = "test"
		cfg.Auth.JWTSecret = testJWTSecret
		cfg.Auth.OperatorUsername = testOperator
		cfg.Auth.OperatorPasswordHash = string(hash)
		cfg.Supplier.CompanyName = "Integration Foods"

		if err := dto.RegisterValidators(); err != nil {
			panic(err)
		}

		repos := dependency.NewGormRepositories(testDB.DbConn)
		testQueue = auditqueue.NewQueue(mock.NewRedis(), testAuditQueueKey, repos.AuditLogs)
		testWorker = auditqueue.NewWorker(testQueue, repos.AuditLogs, auditqueue.DefaultWorkerConfig())

		injector := dependency.NewInjector(cfg, repos, dependency.Options{
			AuditSink:   testQueue,
			HealthCheck: func() bool { return testDB != nil && testDB.DbConn != nil },
			QueueDepth:  testQueue.Len,
			Clock:       valueobject.NewClock(testTime.Now),
		})
		engine := injector.Router.Setup("test")

		go func() {
			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}
			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) theCurrentTimeIs(value string) error {
	current, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return err
	}
	testTime.SetCurrentTime(current)
	return nil
}

func (t *testContext) iAmLoggedInAsTheOperator() error {
	payload := fmt.Sprintf(`{"username":%q,"password":%q}`, testOperator, testOperatorPassword)
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/login", []byte(payload)); err != nil {
		return err
	}
	if t.response.status != http.StatusOK {
		return fmt.Errorf("login failed with status %d: %v", t.response.status, t.response.body)
	}

	token, ok := getFieldValue(t.response.body, "access_token").(string)
	if !ok || token == "" {
		return fmt.Errorf("login response has no access_token: %v", t.response.body)
	}
	t.accessToken = token
	return nil
}

func (t *testContext) createVendor(name string, deleted bool) error {
	vendor := entity.NewVendor(name, "", "010-0000-0000", testTime.Now())
	row := model.VendorFromEntity(vendor)
	if deleted {
		row.DeletedAt = gorm.DeletedAt{Time: testTime.Now(), Valid: true}
	}
	if err := testDB.DbConn.Create(row).Error; err != nil {
		return err
	}
	t.vendorIDs[name] = vendor.ID
	t.ids["vendor_id"] = vendor.ID
	return nil
}

func (t *testContext) aVendorExists(name string) error {
	return t.createVendor(name, false)
}

func (t *testContext) aDeletedVendorExists(name string) error {
	return t.createVendor(name, true)
}

func (t *testContext) vendorHasATransaction(vendorName, dateKey, productName, unitPrice, qty string) error {
	vendorID, ok := t.vendorIDs[vendorName]
	if !ok {
		return fmt.Errorf("vendor %q was not created in this scenario", vendorName)
	}

	price, err := decimal.NewFromString(unitPrice)
	if err != nil {
		return err
	}
	quantity, err := decimal.NewFromString(qty)
	if err != nil {
		return err
	}

	transaction := entity.NewTransaction(dateKey, vendorID, productName, "", price, quantity, "09:00:00", testTime.Now())
	if err := testDB.DbConn.Create(model.TransactionFromEntity(transaction)).Error; err != nil {
		return err
	}
	t.ids["transaction_id"] = transaction.ID
	return nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = "" // Clear access token to simulate unauthenticated request
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) theAuditQueueIsDrained() error {
	testWorker.ProcessNow(context.Background())
	return nil
}

func (t *testContext) theAuditQueueIsUnavailable() error {
	mock.FailRedis("LOADING redis is loading the dataset in memory")
	return nil
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	for key, value := range t.ids {
		content = strings.ReplaceAll(content, "{{"+key+"}}", value)
	}
	for name, id := range t.vendorIDs {
		content = strings.ReplaceAll(content, "{{vendor:"+name+"}}", id)
	}
	return content
}

// captureID remembers the id of a created resource under a placeholder
// derived from the collection it was posted to.
func (t *testContext) captureID(method, path string, body map[string]any) {
	if method != http.MethodPost {
		return
	}

	id, ok := body["id"].(string)
	if !ok {
		if returned, isReturn := body["return"].(map[string]any); isReturn {
			id, ok = returned["id"].(string)
		}
	}
	if !ok {
		return
	}

	path, _, _ = strings.Cut(path, "?")
	switch {
	case strings.HasSuffix(path, "/payments"):
		t.ids["payment_id"] = id
	case strings.HasSuffix(path, "/return"):
		t.ids["return_id"] = id
	case strings.HasPrefix(path, "/api/v1/vendors"):
		t.ids["vendor_id"] = id
	case strings.HasPrefix(path, "/api/v1/products"):
		t.ids["product_id"] = id
	case strings.HasPrefix(path, "/api/v1/transactions"):
		t.ids["transaction_id"] = id
	case strings.HasPrefix(path, "/api/v1/settlements"):
		t.ids["settlement_id"] = id
	}
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.uri+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status:  resp.StatusCode,
		header:  resp.Header,
		rawBody: bodyBytes,
	}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	if resp.StatusCode == http.StatusCreated {
		t.captureID(method, path, responseBody)
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != t.replacePlaceholders(expectedValue) {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	if getFieldValue(t.response.body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	items, ok := getFieldValue(t.response.body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, t.response.body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) theResponseHeaderShouldBe(header, expected string) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if actual := t.response.header.Get(header); actual != expected {
		return fmt.Errorf("header '%s' expected '%s', got '%s'", header, expected, actual)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	return t.theDbShouldContainObjectsInWithTheValues(quantity, table, &godog.DocString{Content: "{}"})
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	row, ok := testDB.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(row).Elem()
	entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
	entitySlicePtr := reflect.New(entitySlice.Type())
	entitySlicePtr.Elem().Set(entitySlice)

	query := testDB.DbConn.Unscoped()
	for key, value := range criteria {
		if value == nil {
			query = query.Where(fmt.Sprintf("%s IS NULL", key))
			continue
		}
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	result := query.Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theAuditQueueShouldHoldEntries(quantity int) error {
	length, err := testQueue.Len(context.Background())
	if err != nil {
		return err
	}
	if int(length) != quantity {
		return fmt.Errorf("expected %d queued audit entries, got %d", quantity, length)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
