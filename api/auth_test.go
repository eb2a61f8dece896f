package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fintrack/config"
	"fintrack/database"
	"fintrack/middleware"
	"fintrack/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	oldDB := database.DB
	database.DB = gormDB
	return mock, func() {
		database.DB = oldDB
		sqlDB.Close()
	}
}

type sentMail struct {
	to, name, link string
}

type fakeMailer struct {
	verifications []sentMail
	resets        []sentMail
	err           error
}

func (m *fakeMailer) SendVerificationEmail(to, name, link string) error {
	if m.err != nil {
		return m.err
	}
	m.verifications = append(m.verifications, sentMail{to, name, link})
	return nil
}

func (m *fakeMailer) SendPasswordResetEmail(to, name, link string) error {
	if m.err != nil {
		return m.err
	}
	m.resets = append(m.resets, sentMail{to, name, link})
	return nil
}

func testAuthConfig() *config.Config {
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
		Auth: config.AuthConfig{
			VerificationTTL: 24 * time.Hour,
			ResetTTL:        time.Hour,
			FrontendURL:     "http://app.test",
		},
	}
	middleware.InitJWT(cfg)
	return cfg
}

func newTestAuthRouter(h *AuthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
	router.POST("/verify-email", h.VerifyEmail)
	router.POST("/resend-verification", h.ResendVerification)
	router.POST("/forgot-password", h.ForgotPassword)
	router.POST("/reset-password", h.ResetPassword)
	return router
}

func postJSON(router http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

var userColumns = []string{"id", "name", "email", "password", "is_email_verified", "pref_currency", "pref_language"}

func userRow(t *testing.T, password string, verified bool) *sqlmock.Rows {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return sqlmock.NewRows(userColumns).
		AddRow(1, "Ann", "ann@example.com", string(hash), verified, "USD", "en")
}

func TestAuthHandler_Register(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows([]string{}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `email_verifications`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mailer := &fakeMailer{}
	h := &AuthHandler{cfg: testAuthConfig(), mailer: mailer}
	w := postJSON(newTestAuthRouter(h), "/register",
		`{"name":"Ann","email":" Ann@Example.com ","password":"password123"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["emailSent"])
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "ann@example.com", user["email"])
	assert.Equal(t, false, user["isEmailVerified"])
	assert.NotContains(t, user, "password")

	require.Len(t, mailer.verifications, 1)
	assert.Equal(t, "ann@example.com", mailer.verifications[0].to)
	assert.True(t, strings.HasPrefix(mailer.verifications[0].link, "http://app.test/verify-email?token="))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_RegisterMailFailureStillCreates(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{}))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `users`").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `email_verifications`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	h := &AuthHandler{cfg: testAuthConfig(), mailer: &fakeMailer{err: errors.New("smtp down")}}
	w := postJSON(newTestAuthRouter(h), "/register",
		`{"name":"Bob","email":"bob@example.com","password":"password123"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, false, data["emailSent"])
}

func TestAuthHandler_RegisterDuplicateEmail(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("ann@example.com").
		WillReturnRows(userRow(t, "whatever", true))

	h := &AuthHandler{cfg: testAuthConfig(), mailer: &fakeMailer{}}
	w := postJSON(newTestAuthRouter(h), "/register",
		`{"name":"Ann","email":"ann@example.com","password":"password123"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "该邮箱已被注册", decodeResponse(t, w)["message"])
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	h := &AuthHandler{cfg: testAuthConfig(), mailer: &fakeMailer{}}
	w := postJSON(newTestAuthRouter(h), "/register", `{"name":"Ann","email":"not-an-email","password":"123"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	errs, ok := resp["errors"].([]interface{})
	require.True(t, ok)
	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.(map[string]interface{})["field"].(string)] = true
	}
	assert.True(t, fields["email"])
	assert.True(t, fields["password"])
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name       string
		rows       func(t *testing.T) *sqlmock.Rows
		password   string
		wantStatus int
	}{
		{
			name:       "成功",
			rows:       func(t *testing.T) *sqlmock.Rows { return userRow(t, "password123", true) },
			password:   "password123",
			wantStatus: http.StatusOK,
		},
		{
			name:       "密码错误",
			rows:       func(t *testing.T) *sqlmock.Rows { return userRow(t, "password123", true) },
			password:   "wrong",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "用户不存在",
			rows:       func(t *testing.T) *sqlmock.Rows { return sqlmock.NewRows([]string{}) },
			password:   "password123",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "邮箱未验证",
			rows:       func(t *testing.T) *sqlmock.Rows { return userRow(t, "password123", false) },
			password:   "password123",
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, cleanup := setupMockDB(t)
			defer cleanup()

			mock.ExpectQuery("SELECT .* FROM `users`").
				WithArgs("ann@example.com").
				WillReturnRows(tt.rows(t))

			h := &AuthHandler{cfg: testAuthConfig(), mailer: &fakeMailer{}}
			w := postJSON(newTestAuthRouter(h), "/login",
				`{"email":"ann@example.com","password":"`+tt.password+`"}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			switch tt.wantStatus {
			case http.StatusOK:
				data := resp["data"].(map[string]interface{})
				claims, err := middleware.ParseToken(data["token"].(string))
				require.NoError(t, err)
				assert.Equal(t, uint(1), claims.UserID)
				assert.Equal(t, "ann@example.com", claims.Email)
			case http.StatusUnauthorized:
				assert.Equal(t, msgInvalidCredentials, resp["message"])
			case http.StatusForbidden:
				data := resp["data"].(map[string]interface{})
				assert.Equal(t, true, data["emailVerificationRequired"])
				assert.Equal(t, "ann@example.com", data["email"])
			}
		})
	}
}

func TestDummyPasswordHash(t *testing.T) {
	hash := dummyPasswordHash()
	cost, err := bcrypt.Cost(hash)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
	assert.ErrorIs(t, bcrypt.CompareHashAndPassword(hash, []byte("password123")), bcrypt.ErrMismatchedHashAndPassword)
	assert.Equal(t, hash, dummyPasswordHash())
}

func TestAuthHandler_VerifyEmail(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `email_verifications`").
		WithArgs("tok").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "email", "token", "expires_at", "used"}).
			AddRow(7, 1, "ann@example.com", "tok", time.Now().Add(time.Hour), false))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `email_verifications`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `users`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(1, "Ann", "ann@example.com", "x", true, "USD", "en"))

	h := &AuthHandler{cfg: testAuthConfig(), mailer: &fakeMailer{}}
	w := postJSON(newTestAuthRouter(h), "/verify-email", `{"token":"tok"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	assert.Equal(t, true, data["user"].(map[string]interface{})["isEmailVerified"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_VerifyEmailRejectsExpiredOrUsed(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		used      bool
	}{
		{"已过期", time.Now().Add(-time.Minute), false},
		{"已使用", time.Now().Add(time.Hour), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, cleanup := setupMockDB(t)
			defer cleanup()

			mock.ExpectQuery("SELECT .* FROM `email_verifications`").
				WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token", "expires_at", "used"}).
					AddRow(7, 1, "tok", tt.expiresAt, tt.used))

			h := &AuthHandler{cfg: testAuthConfig(), mailer: &fakeMailer{}}
			w := postJSON(newTestAuthRouter(h), "/verify-email", `{"token":"tok"}`)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, msgInvalidVerifyToken, decodeResponse(t, w)["message"])
		})
	}
}

func TestAuthHandler_ResendVerification(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(userRow(t, "password123", false))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `email_verifications`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `email_verifications`").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	mailer := &fakeMailer{}
	h := &AuthHandler{cfg: testAuthConfig(), mailer: mailer}
	w := postJSON(newTestAuthRouter(h), "/resend-verification", `{"email":"ann@example.com"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, msgVerificationResent, decodeResponse(t, w)["message"])
	assert.Len(t, mailer.verifications, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_ForgotPasswordUnknownEmail(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{}))

	mailer := &fakeMailer{}
	h := &AuthHandler{cfg: testAuthConfig(), mailer: mailer}
	w := postJSON(newTestAuthRouter(h), "/forgot-password", `{"email":"nobody@example.com"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, msgResetRequested, decodeResponse(t, w)["message"])
	assert.Empty(t, mailer.resets)
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WithArgs("ann@example.com").
		WillReturnRows(userRow(t, "password123", true))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `password_resets`").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `password_resets`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mailer := &fakeMailer{}
	h := &AuthHandler{cfg: testAuthConfig(), mailer: mailer}
	w := postJSON(newTestAuthRouter(h), "/forgot-password", `{"email":"ann@example.com"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, msgResetRequested, decodeResponse(t, w)["message"])
	require.Len(t, mailer.resets, 1)
	link := mailer.resets[0].link
	require.True(t, strings.HasPrefix(link, "http://app.test/reset-password?token="))
	assert.Len(t, strings.TrimPrefix(link, "http://app.test/reset-password?token="), 64)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `password_resets`").
		WithArgs(models.HashResetToken("plain-token")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token_hash", "expires_at", "used"}).
			AddRow(3, 1, models.HashResetToken("plain-token"), time.Now().Add(30*time.Minute), false))
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `users`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `password_resets`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	h := &AuthHandler{cfg: testAuthConfig(), mailer: &fakeMailer{}}
	w := postJSON(newTestAuthRouter(h), "/reset-password", `{"token":"plain-token","password":"newpassword"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_ResetPasswordInvalidToken(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `password_resets`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token_hash", "expires_at", "used"}).
			AddRow(3, 1, "h", time.Now().Add(30*time.Minute), true))

	h := &AuthHandler{cfg: testAuthConfig(), mailer: &fakeMailer{}}
	w := postJSON(newTestAuthRouter(h), "/reset-password", `{"token":"plain-token","password":"newpassword"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, msgInvalidResetToken, decodeResponse(t, w)["message"])
}

func TestAuthHandler_VerifyAndLogout(t *testing.T) {
	mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(1, "Ann", "ann@example.com", "x", true, "EUR", "en"))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(setUserIDMiddleware(1))
	h := &AuthHandler{cfg: testAuthConfig(), mailer: &fakeMailer{}}
	router.GET("/verify", h.Verify)
	router.POST("/logout", h.Logout)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/verify", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	user := decodeResponse(t, w)["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, "EUR", user["preferences"].(map[string]interface{})["currency"])

	w = postJSON(router, "/logout", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
