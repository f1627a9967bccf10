package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/vendora/internal/database"
	"github.com/example/vendora/internal/services"
)

func newHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// newAdminTestApp mounts the admin settings routes without the auth stack so
// the decode behavior can be exercised directly.
func newAdminTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db := newHandlerTestDB(t)
	handler := NewAdminHandler(db, services.NewOrderService(db))

	app := fiber.New()
	app.Get("/settings", handler.GetSettings)
	app.Put("/settings", handler.UpdateSettings)
	return app
}

func settingsRequest(method, body string) *http.Request {
	req := httptest.NewRequest(method, "/settings", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAdminSettings_FirstReadCreatesDefaults(t *testing.T) {
	app := newAdminTestApp(t)

	resp, err := app.Test(settingsRequest(http.MethodGet, ""))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			StoreName       string `json:"store_name"`
			MaintenanceMode bool   `json:"maintenance_mode"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, "Vendora", envelope.Data.StoreName)
	assert.False(t, envelope.Data.MaintenanceMode)
}

func TestAdminSettings_PartialUpdate(t *testing.T) {
	app := newAdminTestApp(t)

	resp, err := app.Test(settingsRequest(http.MethodPut,
		`{"support_email":"help@vendora.example","maintenance_mode":true}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(settingsRequest(http.MethodGet, ""))
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope struct {
		Data struct {
			StoreName       string `json:"store_name"`
			SupportEmail    string `json:"support_email"`
			MaintenanceMode bool   `json:"maintenance_mode"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "help@vendora.example", envelope.Data.SupportEmail)
	assert.True(t, envelope.Data.MaintenanceMode)
	assert.Equal(t, "Vendora", envelope.Data.StoreName)
}

func TestAdminSettings_UnknownFieldRejected(t *testing.T) {
	app := newAdminTestApp(t)

	resp, err := app.Test(settingsRequest(http.MethodPut,
		`{"store_name":"Shop","surprise_field":true}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The rejected payload must not have been partially applied.
	resp, err = app.Test(settingsRequest(http.MethodGet, ""))
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope struct {
		Data struct {
			StoreName string `json:"store_name"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "Vendora", envelope.Data.StoreName)
}

func TestAdminSettings_EmptyStoreNameRejected(t *testing.T) {
	app := newAdminTestApp(t)

	resp, err := app.Test(settingsRequest(http.MethodPut, `{"store_name":""}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
