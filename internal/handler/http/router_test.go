package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hrms-app/hrms-backend-go/internal/config"
	"github.com/hrms-app/hrms-backend-go/internal/domain/auth"
	"github.com/hrms-app/hrms-backend-go/internal/domain/certificate"
	"github.com/hrms-app/hrms-backend-go/internal/domain/department"
	"github.com/hrms-app/hrms-backend-go/internal/domain/financial"
	"github.com/hrms-app/hrms-backend-go/internal/domain/job"
	"github.com/hrms-app/hrms-backend-go/internal/domain/leave"
	"github.com/hrms-app/hrms-backend-go/internal/domain/user"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/jwt"
	"github.com/hrms-app/hrms-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminID    = "0190a1b2-0000-7000-8000-000000000001"
	employeeID = "0190a1b2-0000-7000-8000-000000000002"
	otherID    = "0190a1b2-0000-7000-8000-000000000003"
	appID      = "0190a1b2-0000-7000-8000-0000000000a1"
)

// Fakes embed the service interface; only the methods a test sets are safe to call.

type fakeAuthService struct {
	auth.AuthService
	login func(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error)
}

func (f *fakeAuthService) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	return f.login(ctx, req)
}

type fakeUserService struct {
	user.UserService
	get func(ctx context.Context, id string) (user.UserResponse, error)
}

func (f *fakeUserService) Get(ctx context.Context, id string) (user.UserResponse, error) {
	return f.get(ctx, id)
}

type fakeDepartmentService struct {
	department.DepartmentService
	list func(ctx context.Context) ([]department.DepartmentResponse, error)
}

func (f *fakeDepartmentService) List(ctx context.Context) ([]department.DepartmentResponse, error) {
	return f.list(ctx)
}

type fakeJobService struct{ job.JobService }

type fakeFinancialService struct{ financial.FinancialService }

type fakeCertificateService struct{ certificate.CertificateService }

type fakeApplicationService struct {
	leave.ApplicationService
	create       func(ctx context.Context, actor leave.Actor, req leave.CreateApplicationRequest) (leave.ApplicationResponse, error)
	updateStatus func(ctx context.Context, actor leave.Actor, id string, req leave.UpdateApplicationRequest) (leave.UpdateResult, error)
	list         func(ctx context.Context, filter leave.ApplicationFilter) (leave.ListApplicationResponse, error)
}

func (f *fakeApplicationService) Create(ctx context.Context, actor leave.Actor, req leave.CreateApplicationRequest) (leave.ApplicationResponse, error) {
	return f.create(ctx, actor, req)
}

func (f *fakeApplicationService) UpdateStatus(ctx context.Context, actor leave.Actor, id string, req leave.UpdateApplicationRequest) (leave.UpdateResult, error) {
	return f.updateStatus(ctx, actor, id, req)
}

func (f *fakeApplicationService) List(ctx context.Context, filter leave.ApplicationFilter) (leave.ListApplicationResponse, error) {
	return f.list(ctx, filter)
}

type fakeBalanceService struct {
	leave.BalanceService
	getOrCreate func(ctx context.Context, userID string) (leave.BalanceResponse, error)
	resetAll    func(ctx context.Context, req leave.ResetBalancesRequest) (leave.ResetBalancesResponse, error)
}

func (f *fakeBalanceService) GetOrCreate(ctx context.Context, userID string) (leave.BalanceResponse, error) {
	return f.getOrCreate(ctx, userID)
}

func (f *fakeBalanceService) ResetAll(ctx context.Context, req leave.ResetBalancesRequest) (leave.ResetBalancesResponse, error) {
	return f.resetAll(ctx, req)
}

type testEnv struct {
	router       *chi.Mux
	jwtService   jwt.Service
	auth         *fakeAuthService
	users        *fakeUserService
	departments  *fakeDepartmentService
	applications *fakeApplicationService
	balances     *fakeBalanceService
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	jwtService, err := jwt.NewJWTService("router-test-secret", "1h")
	require.NoError(t, err)

	env := &testEnv{
		jwtService:   jwtService,
		auth:         &fakeAuthService{},
		users:        &fakeUserService{},
		departments:  &fakeDepartmentService{},
		applications: &fakeApplicationService{},
		balances:     &fakeBalanceService{},
	}

	env.router = NewRouter(
		config.AppConfig{Env: "test", AllowedOrigins: []string{"http://localhost:3000"}},
		jwtService,
		NewAuthHandler(env.auth),
		NewUserHandler(env.users),
		NewDepartmentHandler(env.departments),
		NewJobHandler(&fakeJobService{}),
		NewFinancialHandler(&fakeFinancialService{}),
		NewCertificateHandler(&fakeCertificateService{}),
		NewLeaveHandler(env.applications, env.balances),
	)
	return env
}

func (e *testEnv) token(t *testing.T, userID string, role user.Role) string {
	t.Helper()
	token, _, err := e.jwtService.GenerateAccessToken(userID, userID+"@example.com", role)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, target, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.auth.login = func(_ context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
		if req.Password != "secret123" {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{
			AccessToken: "signed-token",
			ExpiresAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
			User:        user.UserResponse{ID: adminID, Email: req.Email},
		}, nil
	}

	rec, body := env.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Success)

	var token auth.TokenResponse
	require.NoError(t, json.Unmarshal(body.Data, &token))
	assert.Equal(t, "signed-token", token.AccessToken)
	assert.Equal(t, adminID, token.User.ID)

	rec, body = env.do(t, http.MethodPost, "/api/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
}

func TestLogin_MalformedBody(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodPost, "/api/login", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", body.Error.Code)
}

func TestAuthRequired(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(t, http.MethodGet, "/api/applications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/api/applications", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)
	env.users.get = func(_ context.Context, id string) (user.UserResponse, error) {
		return user.UserResponse{ID: id, Role: string(user.RoleEmployee)}, nil
	}

	rec, body := env.do(t, http.MethodGet, "/api/users/me", env.token(t, employeeID, user.RoleEmployee), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me user.UserResponse
	require.NoError(t, json.Unmarshal(body.Data, &me))
	assert.Equal(t, employeeID, me.ID)
}

func TestUsers_EmployeeCannotList(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, http.MethodGet, "/api/users", env.token(t, employeeID, user.RoleEmployee), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", body.Error.Code)
}

func TestDepartments_CacheControl(t *testing.T) {
	env := newTestEnv(t)
	env.departments.list = func(context.Context) ([]department.DepartmentResponse, error) {
		return []department.DepartmentResponse{{ID: "d1", Name: "Engineering"}}, nil
	}

	rec, _ := env.do(t, http.MethodGet, "/api/departments", env.token(t, employeeID, user.RoleEmployee), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "private, max-age=300", rec.Header().Get("Cache-Control"))
}

func TestCreateApplication_ActsAsCaller(t *testing.T) {
	env := newTestEnv(t)

	var gotActor leave.Actor
	env.applications.create = func(_ context.Context, actor leave.Actor, req leave.CreateApplicationRequest) (leave.ApplicationResponse, error) {
		gotActor = actor
		return leave.ApplicationResponse{
			ID:                  appID,
			UserID:              actor.UserID,
			Type:                req.Type,
			Status:              string(leave.StatusPending),
			NumberOfDays:        3,
			DeductedFromBalance: true,
		}, nil
	}

	rec, body := env.do(t, http.MethodPost, "/api/applications", env.token(t, employeeID, user.RoleEmployee), map[string]string{
		"type":      "Annual Leave",
		"startDate": "2024-06-10",
		"endDate":   "2024-06-12",
		"reason":    "Holiday",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Application created successfully", body.Message)
	assert.Equal(t, employeeID, gotActor.UserID)
	assert.Equal(t, user.RoleEmployee, gotActor.Role)

	var app leave.ApplicationResponse
	require.NoError(t, json.Unmarshal(body.Data, &app))
	assert.Equal(t, appID, app.ID)
	assert.Equal(t, 3, app.NumberOfDays)
	assert.True(t, app.DeductedFromBalance)
}

func TestCreateApplication_InsufficientBalance(t *testing.T) {
	env := newTestEnv(t)
	env.applications.create = func(context.Context, leave.Actor, leave.CreateApplicationRequest) (leave.ApplicationResponse, error) {
		return leave.ApplicationResponse{}, &leave.InsufficientBalanceError{Available: 2, Requested: 3}
	}

	rec, body := env.do(t, http.MethodPost, "/api/applications", env.token(t, employeeID, user.RoleEmployee), map[string]string{
		"type":      "Annual Leave",
		"startDate": "2024-06-10",
		"endDate":   "2024-06-12",
		"reason":    "Holiday",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "INSUFFICIENT_BALANCE", body.Error.Code)
	assert.Equal(t, "2", body.Error.Details["available"])
	assert.Equal(t, "3", body.Error.Details["requested"])
}

func TestCreateApplication_ValidationError(t *testing.T) {
	env := newTestEnv(t)
	env.applications.create = func(context.Context, leave.Actor, leave.CreateApplicationRequest) (leave.ApplicationResponse, error) {
		var errs validator.ValidationErrors
		errs.Add("type", "type is required")
		return leave.ApplicationResponse{}, errs.Err()
	}

	rec, body := env.do(t, http.MethodPost, "/api/applications", env.token(t, employeeID, user.RoleEmployee), map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "type is required", body.Error.Details["type"])
}

func TestUpdateApplication_EmployeeForbidden(t *testing.T) {
	env := newTestEnv(t)

	rec, _ := env.do(t, http.MethodPut, "/api/applications/"+appID, env.token(t, employeeID, user.RoleEmployee), map[string]string{
		"status": "Approved",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateApplication_NotUpdated(t *testing.T) {
	env := newTestEnv(t)
	env.applications.updateStatus = func(context.Context, leave.Actor, string, leave.UpdateApplicationRequest) (leave.UpdateResult, error) {
		return leave.UpdateResult{Updated: false, Restoration: leave.RestorationNotApplicable}, nil
	}

	rec, body := env.do(t, http.MethodPut, "/api/applications/"+appID, env.token(t, adminID, user.RoleAdmin), map[string]string{})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Application was not updated", body.Message)
}

func TestUpdateApplication_RejectionReportsRestoration(t *testing.T) {
	env := newTestEnv(t)

	var gotID string
	env.applications.updateStatus = func(_ context.Context, _ leave.Actor, id string, req leave.UpdateApplicationRequest) (leave.UpdateResult, error) {
		gotID = id
		return leave.UpdateResult{
			Updated:     true,
			Restoration: leave.RestorationRestored,
			Application: &leave.ApplicationResponse{ID: id, Status: *req.Status},
		}, nil
	}

	rec, body := env.do(t, http.MethodPut, "/api/applications/"+appID, env.token(t, adminID, user.RoleAdmin), map[string]string{
		"status": "Rejected",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, appID, gotID)

	var data updateApplicationResponse
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.Equal(t, leave.RestorationRestored, data.BalanceRestoration)
	require.NotNil(t, data.Application)
	assert.Equal(t, "Rejected", data.Application.Status)
}

func TestUpdateApplication_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.applications.updateStatus = func(context.Context, leave.Actor, string, leave.UpdateApplicationRequest) (leave.UpdateResult, error) {
		return leave.UpdateResult{}, leave.ErrApplicationNotFound
	}

	rec, _ := env.do(t, http.MethodPut, "/api/applications/"+appID, env.token(t, adminID, user.RoleAdmin), map[string]string{
		"status": "Approved",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListApplications_QueryFilter(t *testing.T) {
	env := newTestEnv(t)

	var got leave.ApplicationFilter
	env.applications.list = func(_ context.Context, filter leave.ApplicationFilter) (leave.ListApplicationResponse, error) {
		got = filter
		return leave.ListApplicationResponse{Page: filter.Page, Limit: filter.Limit}, nil
	}

	target := "/api/applications?userId=" + employeeID + "&status=Pending&type=Annual%20Leave&startDate=2024-01-01&page=2&limit=5&sort=start_date:DESC"
	rec, _ := env.do(t, http.MethodGet, target, env.token(t, adminID, user.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, got.UserID)
	assert.Equal(t, employeeID, *got.UserID)
	require.NotNil(t, got.Status)
	assert.Equal(t, "Pending", *got.Status)
	require.NotNil(t, got.Type)
	assert.Equal(t, "Annual Leave", *got.Type)
	require.NotNil(t, got.StartDate)
	assert.Nil(t, got.EndDate)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 5, got.Limit)
	assert.Equal(t, "start_date", got.SortBy)
	assert.Equal(t, "desc", got.SortOrder)
}

func TestUserBalance_SelfOrPermission(t *testing.T) {
	env := newTestEnv(t)
	env.balances.getOrCreate = func(_ context.Context, userID string) (leave.BalanceResponse, error) {
		return leave.BalanceResponse{UserID: userID, AnnualLeaveTotal: 20, AnnualLeaveRemaining: 20, SickLeaveDays: 10, Year: 2024}, nil
	}
	employeeToken := env.token(t, employeeID, user.RoleEmployee)

	rec, body := env.do(t, http.MethodGet, "/api/applications/user/"+employeeID+"/balance", employeeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var balance leave.BalanceResponse
	require.NoError(t, json.Unmarshal(body.Data, &balance))
	assert.Equal(t, employeeID, balance.UserID)
	assert.Equal(t, 20, balance.AnnualLeaveRemaining)

	rec, _ = env.do(t, http.MethodGet, "/api/applications/user/"+otherID+"/balance", employeeToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = env.do(t, http.MethodGet, "/api/applications/user/"+otherID+"/balance", env.token(t, adminID, user.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestResetBalances(t *testing.T) {
	env := newTestEnv(t)

	var got leave.ResetBalancesRequest
	env.balances.resetAll = func(_ context.Context, req leave.ResetBalancesRequest) (leave.ResetBalancesResponse, error) {
		got = req
		return leave.ResetBalancesResponse{Year: 2025, Reset: 3}, nil
	}

	rec, body := env.do(t, http.MethodPost, "/api/leaveBalance/reset", env.token(t, adminID, user.RoleAdmin), map[string]int{
		"annualLeaveTotal": 25,
		"year":             2025,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.AnnualLeaveTotal)
	assert.Equal(t, 25, *got.AnnualLeaveTotal)
	assert.Nil(t, got.SickLeaveDays)

	var result leave.ResetBalancesResponse
	require.NoError(t, json.Unmarshal(body.Data, &result))
	assert.Equal(t, 3, result.Reset)

	rec, _ = env.do(t, http.MethodPost, "/api/leaveBalance/reset", env.token(t, adminID, user.RoleManager), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "leave_balance_deductions_total")
}

func TestResetBalances_EmptyBodyUsesDefaults(t *testing.T) {
	env := newTestEnv(t)

	called := false
	env.balances.resetAll = func(_ context.Context, req leave.ResetBalancesRequest) (leave.ResetBalancesResponse, error) {
		called = true
		assert.Nil(t, req.AnnualLeaveTotal)
		assert.Nil(t, req.Year)
		return leave.ResetBalancesResponse{Year: 2024, Reset: 1}, nil
	}

	rec, _ := env.do(t, http.MethodPost, "/api/leaveBalance/reset", env.token(t, adminID, user.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}
