package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"kitchensaver/internal/auth"
	"kitchensaver/internal/config"
	"kitchensaver/internal/handler"
	"kitchensaver/internal/model"
)

// Register wires routes and middleware. Register, login and file
// serving are public; everything else sits behind the authorization
// gate, with role middleware layered per route.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	userHandler *handler.UserHandler,
	jobHandler *handler.JobHandler,
	fileHandler *handler.FileHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAuthorization, "Cache-Control", echo.HeaderContentType},
		ExposeHeaders:    []string{echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/user/register", userHandler.Register)
	api.POST("/user/login", userHandler.Login)
	api.GET("/files/:filename", fileHandler.Serve)

	gate := auth.Middleware(jwtService)
	adminOnly := auth.RequireRoles(model.RoleAdmin)
	anyRole := auth.RequireRoles(model.RoleAdmin, model.RoleCabinetMaker, model.RoleInstaller)

	// Secured user routes
	user := api.Group("/user", gate)
	user.POST("/createEmployee", userHandler.CreateEmployee, adminOnly)
	user.DELETE("/delete/:userId", userHandler.Delete, adminOnly)
	user.GET("/getAllEmployees", userHandler.GetAllEmployees, adminOnly)
	user.PATCH("/updateEmployee", userHandler.UpdateEmployee, adminOnly)
	user.PATCH("/updateProfile", userHandler.UpdateProfile)
	user.GET("/getSelf", userHandler.GetSelf)

	// Job routes
	jobs := api.Group("/jobs", gate)
	jobs.POST("", jobHandler.Create, adminOnly)
	jobs.PUT("/:jobId", jobHandler.Update, adminOnly)
	jobs.DELETE("/:jobId", jobHandler.Delete, adminOnly)
	jobs.GET("", jobHandler.List, anyRole)
	jobs.PATCH("/:jobId/status", jobHandler.UpdateStatus, anyRole)
	jobs.POST("/:jobId/uploadImage", jobHandler.UploadImage, anyRole)
	jobs.GET("/filter", jobHandler.Filter, anyRole)

	// File upload
	api.POST("/upload", fileHandler.Upload, gate, anyRole)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
