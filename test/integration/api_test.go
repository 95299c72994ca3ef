// Package integration provides end-to-end integration tests for the vault API.
// Tests run the full container against both PostgreSQL and MySQL vault storage.
package integration

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ClavisPass/ClavisPass-sub001/internal/app"
	"github.com/ClavisPass/ClavisPass-sub001/internal/config"
	cryptoDomain "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/domain"
	cryptoTesting "github.com/ClavisPass/ClavisPass-sub001/internal/crypto/testing"
	"github.com/ClavisPass/ClavisPass-sub001/internal/testutil"
	"github.com/ClavisPass/ClavisPass-sub001/internal/vault/http/dto"
)

var drivers = []string{"postgres", "mysql"}

// integrationTestContext holds all dependencies and state for integration testing.
type integrationTestContext struct {
	container *app.Container
	db        *sql.DB
	server    *httptest.Server
	dbDriver  string
}

// makeRequest performs an HTTP request and returns the response and body.
func (ctx *integrationTestContext) makeRequest(
	t *testing.T,
	method, path string,
	body any,
) (*http.Response, []byte) {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequest(method, ctx.server.URL+path, bodyReader)
	require.NoError(t, err, "failed to create request")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: 10 * time.Second}
	//nolint:gosec // controlled test environment with localhost URLs
	resp, err := client.Do(req)
	require.NoError(t, err, "failed to perform request")

	respBody, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.Logf("Warning: failed to close response body: %v", closeErr)
	}

	return resp, respBody
}

// setupIntegrationTest migrates the test database and serves the container's router.
func setupIntegrationTest(t *testing.T, dbDriver string) *integrationTestContext {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db := testutil.SetupDB(t, dbDriver)

	cfg := &config.Config{
		ServerHost:           "localhost",
		ServerPort:           8080,
		LogLevel:             "error",
		VaultStorage:         dbDriver,
		DBDriver:             dbDriver,
		DBConnectionString:   testutil.GetTestDSN(dbDriver),
		DBMaxOpenConnections: 10,
		DBMaxIdleConnections: 5,
		DBConnMaxLifetime:    time.Hour,
		KDFOpsLimit:          cryptoTesting.FastOpsLimit,
		KDFMemLimit:          cryptoTesting.FastMemLimit,
		MetricsNamespace:     "integration",
	}

	container := app.NewContainer(cfg)

	httpSrv, err := container.HTTPServer()
	require.NoError(t, err, "failed to get HTTP server")

	handler := httpSrv.GetHandler()
	require.NotNil(t, handler, "handler should not be nil after SetupRouter")

	return &integrationTestContext{
		container: container,
		db:        db,
		server:    httptest.NewServer(handler),
		dbDriver:  dbDriver,
	}
}

// teardownIntegrationTest cleans up all resources.
func teardownIntegrationTest(t *testing.T, ctx *integrationTestContext) {
	t.Helper()

	if ctx.server != nil {
		ctx.server.Close()
	}
	if ctx.container != nil {
		if err := ctx.container.Shutdown(context.Background()); err != nil {
			t.Logf("Warning: container shutdown error: %v", err)
		}
	}
	if ctx.db != nil {
		testutil.TeardownDB(t, ctx.db)
	}
}

func samplePayload() map[string]any {
	return map[string]any{
		"version": "1",
		"folder":  []any{map[string]any{"id": "f1", "name": "Work"}},
		"values":  []any{map[string]any{"id": "e1", "title": "mail"}},
		"devices": []any{},
	}
}

func TestIntegration_Health_BasicChecks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			ctx := setupIntegrationTest(t, driver)
			defer teardownIntegrationTest(t, ctx)

			resp, body := ctx.makeRequest(t, http.MethodGet, "/health", nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, string(body), "healthy")

			resp, body = ctx.makeRequest(t, http.MethodGet, "/ready", nil)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, string(body), "ready")
		})
	}
}

func TestIntegration_Vault_CompleteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			ctx := setupIntegrationTest(t, driver)
			defer teardownIntegrationTest(t, ctx)

			// Save
			resp, body := ctx.makeRequest(t, http.MethodPut, "/v1/vaults/personal", map[string]any{
				"password": "old-password",
				"payload":  samplePayload(),
			})
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

			var saved dto.VaultResponse
			require.NoError(t, json.Unmarshal(body, &saved))
			assert.Equal(t, "personal", saved.Name)

			stored := testutil.GetTestVaultContent(t, ctx.db, driver, "personal")
			_, err := cryptoDomain.ParseVaultV1([]byte(stored))
			require.NoError(t, err, "stored content should be a v1 envelope")

			// Overwrite keeps the identity
			resp, body = ctx.makeRequest(t, http.MethodPut, "/v1/vaults/personal", map[string]any{
				"password": "old-password",
				"payload":  samplePayload(),
			})
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
			var overwritten dto.VaultResponse
			require.NoError(t, json.Unmarshal(body, &overwritten))
			assert.Equal(t, saved.ID, overwritten.ID)

			// List
			resp, body = ctx.makeRequest(t, http.MethodGet, "/v1/vaults?limit=10", nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			var list dto.ListVaultsResponse
			require.NoError(t, json.Unmarshal(body, &list))
			require.Len(t, list.Data, 1)
			assert.Equal(t, "personal", list.Data[0].Name)

			// Open
			resp, body = ctx.makeRequest(t, http.MethodPost, "/v1/vaults/personal/open",
				map[string]any{"password": "old-password"})
			require.Equal(t, http.StatusOK, resp.StatusCode)
			var opened dto.DecryptResponse
			require.NoError(t, json.Unmarshal(body, &opened))
			assert.True(t, opened.OK)
			assert.Equal(t, cryptoDomain.FormatV1, opened.Format)
			assert.False(t, opened.Migrated)
			require.NotNil(t, opened.Payload)
			assert.Len(t, opened.Payload.Values, 1)

			// Change password
			resp, body = ctx.makeRequest(t, http.MethodPost, "/v1/vaults/personal/password",
				map[string]any{"old_password": "old-password", "new_password": "new-password"})
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

			resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/vaults/personal/open",
				map[string]any{"password": "old-password"})
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/vaults/personal/open",
				map[string]any{"password": "new-password"})
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			// Delete
			resp, _ = ctx.makeRequest(t, http.MethodDelete, "/v1/vaults/personal", nil)
			assert.Equal(t, http.StatusNoContent, resp.StatusCode)

			resp, _ = ctx.makeRequest(t, http.MethodPost, "/v1/vaults/personal/open",
				map[string]any{"password": "new-password"})
			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		})
	}
}

func TestIntegration_Vault_LegacyMigration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	for _, driver := range drivers {
		t.Run(driver, func(t *testing.T) {
			ctx := setupIntegrationTest(t, driver)
			defer teardownIntegrationTest(t, ctx)

			plaintext, err := json.Marshal(samplePayload())
			require.NoError(t, err)
			env, err := cryptoTesting.SealLegacy("test", plaintext, sha256.New, 12)
			require.NoError(t, err)
			legacy, err := json.Marshal(env)
			require.NoError(t, err)

			testutil.CreateTestVault(t, ctx.db, driver, "imported", string(legacy))

			resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/vaults/imported/open",
				map[string]any{"password": "test"})
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

			var opened dto.DecryptResponse
			require.NoError(t, json.Unmarshal(body, &opened))
			assert.True(t, opened.OK)
			assert.Equal(t, cryptoDomain.FormatLegacy, opened.Format)
			assert.True(t, opened.Migrated)
			assert.Empty(t, opened.MigratedContent)

			// The write-back replaced the legacy row with a v1 envelope.
			stored := testutil.GetTestVaultContent(t, ctx.db, driver, "imported")
			_, err = cryptoDomain.ParseVaultV1([]byte(stored))
			require.NoError(t, err)

			resp, body = ctx.makeRequest(t, http.MethodPost, "/v1/vaults/imported/open",
				map[string]any{"password": "test"})
			require.Equal(t, http.StatusOK, resp.StatusCode)
			require.NoError(t, json.Unmarshal(body, &opened))
			assert.Equal(t, cryptoDomain.FormatV1, opened.Format)
			assert.False(t, opened.Migrated)
		})
	}
}

func TestIntegration_Content_Endpoints(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := setupIntegrationTest(t, "postgres")
	defer teardownIntegrationTest(t, ctx)

	resp, body := ctx.makeRequest(t, http.MethodPost, "/v1/vault/encrypt", map[string]any{
		"password": "pw",
		"payload":  samplePayload(),
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var encrypted dto.EncryptResponse
	require.NoError(t, json.Unmarshal(body, &encrypted))

	resp, body = ctx.makeRequest(t, http.MethodPost, "/v1/vault/inspect", map[string]any{
		"content": encrypted.Content,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var info dto.InspectResponse
	require.NoError(t, json.Unmarshal(body, &info))
	assert.Equal(t, cryptoDomain.FormatV1, info.Format)
	require.NotNil(t, info.KDF)
	assert.Equal(t, cryptoTesting.FastOpsLimit, info.KDF.OpsLimit)

	resp, body = ctx.makeRequest(t, http.MethodPost, "/v1/vault/decrypt", map[string]any{
		"password": "pw",
		"content":  encrypted.Content,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var decrypted dto.DecryptResponse
	require.NoError(t, json.Unmarshal(body, &decrypted))
	assert.True(t, decrypted.OK)
}
