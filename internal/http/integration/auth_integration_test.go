package integration__test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/cataloghub/cataloghub/internal/auth"
	"github.com/cataloghub/cataloghub/internal/config"
	apphttp "github.com/cataloghub/cataloghub/internal/http"
	"github.com/cataloghub/cataloghub/internal/repo/mongodb"
	"github.com/cataloghub/cataloghub/internal/security"
	"github.com/cataloghub/cataloghub/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const testJWTSecret = "test-secret-key" // deterministic test secret

func testConfig() config.Config {
	return config.Config{
		Env:       "test",
		Port:      0, // not used in tests
		JWTSecret: testJWTSecret,
		JWTTTL:    time.Hour,
	}
}

// setupTestRouter builds the real router over live Mongo repositories. The
// suite is gated on TEST_MONGO_URI so unit runs stay green without a
// database.
func setupTestRouter(t *testing.T) (*gin.Engine, *mongo.Database) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	_ = godotenv.Load()

	uri := os.Getenv("TEST_MONGO_URI")

	if uri == "" {
		t.Skip("TEST_MONGO_URI not set; skipping live Mongo integration tests")
	}

	ctx := context.Background()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))

	if err != nil {
		t.Fatalf("failed to create mongo client: %v", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		t.Fatalf("failed to ping mongo at %s: %v", uri, err)
	}

	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})

	database := client.Database("cataloghub_test")

	// Basic logger that discards outputs during tests

	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	cfg := testConfig()

	hasher := security.NewHasher(4) // min cost keeps the suite fast
	jwt := auth.NewManager(cfg.JWTSecret, cfg.JWTTTL)

	usersRepo := mongodb.NewUsersRepo(database, nil)
	productsRepo := mongodb.NewProductsRepo(database, nil)

	router := apphttp.NewRouter(apphttp.Deps{
		Cfg:      cfg,
		Log:      logger,
		Client:   client,
		Auth:     service.NewAuthService(usersRepo, hasher, jwt),
		Catalog:  service.NewProductService(productsRepo),
		Verifier: jwt,
	})

	return router, database
}

// reset db function after every test

func resetDB(t *testing.T, database *mongo.Database) {
	t.Helper()

	for _, coll := range []string{"users", "products"} {
		if err := database.Collection(coll).Drop(context.Background()); err != nil {
			t.Fatalf("failed to drop collection %s: %v", coll, err)
		}
	}
}

// helpers

func doRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))

	if method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func mustReadJSON[T any](t *testing.T, w *httptest.ResponseRecorder, out *T) {
	t.Helper()
	err := json.Unmarshal(w.Body.Bytes(), out)
	if err != nil {
		t.Fatalf("failed to unmarshal json: %v, body=%s", err, w.Body.String())
	}
}

type authResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func TestAuthIntegration_Register_Duplicate_Login(t *testing.T) {
	router, database := setupTestRouter(t)
	resetDB(t, database)

	defer resetDB(t, database)

	// register

	w := doRequest(router, http.MethodPost, "/api/auth/register", `{"email":"a@x.com","password":"pw1pw1"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("register got status %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
	}

	var registered authResponse
	mustReadJSON(t, w, &registered)

	if registered.Token == "" {
		t.Fatalf("register should return a token")
	}
	if registered.Email != "a@x.com" || registered.Role != "USER" {
		t.Fatalf("register response: %+v", registered)
	}

	// registering the same email again fails

	w = doRequest(router, http.MethodPost, "/api/auth/register", `{"email":"a@x.com","password":"pw2pw2"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register got status %d, want %d, body=%s", w.Code, http.StatusBadRequest, w.Body.String())
	}

	var dup messageResponse
	mustReadJSON(t, w, &dup)

	if dup.Message != "Email already exists" {
		t.Fatalf("duplicate register message: got %q", dup.Message)
	}

	// login with the right password

	w = doRequest(router, http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"pw1pw1"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("login got status %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
	}

	var loggedIn authResponse
	mustReadJSON(t, w, &loggedIn)

	// the token must carry the email as its subject

	jwt := auth.NewManager(testJWTSecret, time.Hour)

	subject, err := jwt.ExtractEmail(loggedIn.Token)
	if err != nil {
		t.Fatalf("login token does not parse: %v", err)
	}
	if subject != "a@x.com" {
		t.Fatalf("token subject: got %q want %q", subject, "a@x.com")
	}

	// wrong password and unknown email both come back 401

	for _, body := range []string{
		`{"email":"a@x.com","password":"wrong1"}`,
		`{"email":"nobody@x.com","password":"pw1pw1"}`,
	} {
		w = doRequest(router, http.MethodPost, "/api/auth/login", body)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("bad login got status %d, want %d, body=%s", w.Code, http.StatusUnauthorized, w.Body.String())
		}

		var failed messageResponse
		mustReadJSON(t, w, &failed)

		if failed.Message != "Invalid credentials" {
			t.Fatalf("bad login message: got %q", failed.Message)
		}
	}
}
