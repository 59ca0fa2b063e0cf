//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"gestion-turnos/internal/domain/user"
	"gestion-turnos/internal/handler/api"
	reqdto "gestion-turnos/internal/handler/dto/request"
	resdto "gestion-turnos/internal/handler/dto/response"
	commandsmock "gestion-turnos/internal/mock/commands"
	queriesmock "gestion-turnos/internal/mock/queries"
	"gestion-turnos/internal/pkg/clock"
	"gestion-turnos/internal/pkg/config"
	"gestion-turnos/internal/pkg/cookie"
	"gestion-turnos/internal/pkg/jwt"
	"gestion-turnos/internal/pkg/testutil"
	"gestion-turnos/internal/usecase/commands"
	"gestion-turnos/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAuthCommands
	mockQueries  *queriesmock.MockUserQueries
	handler      *api.AuthHandler
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockUserQueries(s.mockCtrl)
	jwtService := jwt.NewService("test-secret", time.Hour, clock.NewFixedClock(monday))
	s.handler = api.NewAuthHandler(s.mockCommands, s.mockQueries, jwtService, config.NewTestConfig())

	s.router.POST("/auth/login", s.handler.Login)
	s.router.POST("/auth/register", s.handler.Register)
	s.router.POST("/auth/logout", fakeAuth, s.handler.Logout)
	s.router.GET("/auth/me", fakeAuth, s.handler.Me)
	s.router.POST("/employees", fakeAuth, s.handler.CreateEmployee)
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

type testCaseAuth struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func sampleUser(role user.Role) *user.User {
	email, _ := user.NewEmail("ana@example.com")
	profile := user.Profile{FirstName: "Ana", LastName: "Paz", Phone: "+54 11 5555-5555"}
	return user.ReconstructUser(uuid.New(), email, "hash", role, profile, true, monday, monday)
}

func validRegisterRequest() reqdto.RegisterRequest {
	return reqdto.RegisterRequest{
		Email:     "ana@example.com",
		Password:  "supersecret",
		FirstName: "Ana",
		LastName:  "Paz",
	}
}

// ================================================================================
// TestLogin
// ================================================================================

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"
	reqBody := reqdto.LoginRequest{Email: "ana@example.com", Password: "supersecret"}
	returnUser := sampleUser(user.RoleClient)

	s.Run("success: returns token and sets the cookie", func() {
		s.mockCommands.EXPECT().Login(gomock.Any(), reqBody.Email, reqBody.Password).
			Return(&commands.LoginResult{User: returnUser, AccessToken: "test-jwt-token"}, nil).Times(1)

		rec := testutil.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.LoginResponse
		testutil.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("test-jwt-token", response.AccessToken)
		s.Equal("ana@example.com", response.User.Email)
		s.Equal("CLIENT", response.User.Role)

		c := testutil.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(c)
		s.Equal("test-jwt-token", c.Value)
		s.True(c.HttpOnly)
		s.Equal(3600, c.MaxAge)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseAuth{
			{name: "email boundary invalid", mutate: testutil.Field("email", "invalid-email"), expectCode: http.StatusBadRequest},
			{name: "password boundary invalid (7 chars)", mutate: testutil.Field("password", strings.Repeat("a", 7)), expectCode: http.StatusBadRequest},
			{name: "missing field: email", mutate: testutil.Field("email", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: password", mutate: testutil.Field("password", nil), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := testutil.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				testutil.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request format")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{"invalid credentials", commands.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
			{"user inactive", commands.ErrUserInactive, http.StatusForbidden, "Account is inactive"},
			{"internal server error", errors.New("database error"), http.StatusInternalServerError, "Internal server error"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Login(gomock.Any(), reqBody.Email, reqBody.Password).
					Return(nil, tc.commandsError).Times(1)

				rec := testutil.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				testutil.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestRegister / TestCreateEmployee
// ================================================================================

func (s *AuthHandlerTestSuite) TestRegister() {
	url := "/auth/register"
	reqBody := validRegisterRequest()

	s.Run("success: 201 with the new client", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), reqBody.ToInput()).
			Return(sampleUser(user.RoleClient), nil).Times(1)

		rec := testutil.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.UserResponse
		testutil.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("CLIENT", response.Role)
		s.Equal("Ana", response.FirstName)
	})

	s.Run("error: missing names", func() {
		for _, key := range []string{"firstName", "lastName"} {
			body := testutil.DtoMap(s.T(), reqBody, testutil.Field(key, nil))
			rec := testutil.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
			testutil.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
		}
	})

	s.Run("error: email taken", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrEmailTaken).Times(1)

		rec := testutil.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		testutil.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Email already registered")
	})

	s.Run("error: weak password from the domain", func() {
		s.mockCommands.EXPECT().Register(gomock.Any(), gomock.Any()).
			Return(nil, user.ErrPasswordTooWeak).Times(1)

		rec := testutil.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		testutil.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "at least 8 characters")
	})
}

func (s *AuthHandlerTestSuite) TestCreateEmployee() {
	url := "/employees"
	reqBody := validRegisterRequest()

	s.Run("success", func() {
		s.mockCommands.EXPECT().CreateEmployee(gomock.Any(), adminActor, reqBody.ToInput()).
			Return(sampleUser(user.RoleEmployee), nil).Times(1)

		rec := testutil.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "admin")

		var response resdto.UserResponse
		testutil.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("EMPLOYEE", response.Role)
	})

	s.Run("error: non-admin", func() {
		s.mockCommands.EXPECT().CreateEmployee(gomock.Any(), employeeActor, gomock.Any()).
			Return(nil, commands.ErrPermissionDenied).Times(1)

		rec := testutil.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "employee")
		testutil.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})
}

// ================================================================================
// TestLogout / TestMe
// ================================================================================

func (s *AuthHandlerTestSuite) TestLogout() {
	s.Run("success: returns 204 and clears the cookie", func() {
		rec := testutil.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "client")
		s.Equal(http.StatusNoContent, rec.Code)

		c := testutil.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(c)
		s.Empty(c.Value)
	})
}

func (s *AuthHandlerTestSuite) TestMe() {
	url := "/auth/me"

	s.Run("success: returns current user info", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), clientActor.ID).
			Return(sampleUser(user.RoleClient), nil).Times(1)

		rec := testutil.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "client")

		var response map[string]any
		testutil.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("ana@example.com", response["email"])
	})

	s.Run("error: 401 without token", func() {
		rec := testutil.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		testutil.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: user not found", func() {
		s.mockQueries.EXPECT().Get(gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrUserNotFound).Times(1)

		rec := testutil.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "client")
		testutil.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "User not found")
	})
}
