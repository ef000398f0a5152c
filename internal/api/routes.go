package api

import (
	"net/http"
	"time"

	"tamrino/trainer-app/internal/service"

	"github.com/gin-gonic/gin"
)

// Handlers bundles every handler SetupRoutes mounts.
type Handlers struct {
	Auth       *AuthHandler
	Trainer    *TrainerHandler
	Student    *StudentHandler
	Catalog    *CatalogHandler
	Program    *ProgramHandler
	Support    *SupportHandler
	Preference *PreferenceHandler
	Media      *MediaHandler
}

// NewHandlers wires the handlers from their services.
func NewHandlers(
	authService service.AuthService,
	tenantService service.TenantService,
	studentService service.StudentService,
	catalogService service.CatalogService,
	programService service.ProgramService,
	supportService service.SupportService,
	preferenceService service.PreferenceService,
	mediaService service.MediaService,
	cookieName string,
	sessionTTL, rememberTTL time.Duration,
) *Handlers {
	return &Handlers{
		Auth:       NewAuthHandler(authService, cookieName, sessionTTL, rememberTTL),
		Trainer:    NewTrainerHandler(tenantService),
		Student:    NewStudentHandler(studentService),
		Catalog:    NewCatalogHandler(catalogService),
		Program:    NewProgramHandler(programService, studentService),
		Support:    NewSupportHandler(supportService, studentService),
		Preference: NewPreferenceHandler(preferenceService),
		Media:      NewMediaHandler(mediaService),
	}
}

// SetupRoutes mounts the whole API surface under /api. Every route runs
// SessionAuth; the Require* middlewares gate by role.
func SetupRoutes(router *gin.Engine, h *Handlers, authService service.AuthService, cookieName string) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	api := router.Group("/api")
	api.Use(SessionAuth(authService, cookieName))

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/trainer/login", h.Auth.TrainerLogin)
		authGroup.POST("/student/login", h.Auth.StudentLogin)
		authGroup.POST("/logout", h.Auth.Logout)
		authGroup.GET("/status", h.Auth.Status)
	}

	// --- Trainer panel ---
	trainer := api.Group("")
	trainer.Use(RequireTrainer())
	{
		trainer.GET("/trainer/profile", h.Trainer.GetProfile)
		trainer.PUT("/trainer/profile", h.Trainer.UpdateProfile)

		students := trainer.Group("/students")
		{
			students.GET("", h.Student.GetStudents)
			students.POST("", h.Student.CreateStudent)
			students.GET("/:id", h.Student.GetStudentByID)
			students.PUT("/:id", h.Student.UpdateStudent)
			students.DELETE("/:id", h.Student.DeleteStudent)
			students.GET("/:id/history", h.Student.GetStudentHistory)

			// Exercise programs, scoped to the student for tenancy.
			students.GET("/:id/programs", h.Program.GetPrograms)
			students.POST("/:id/programs", h.Program.AssignExercise)
			students.POST("/:id/programs/bulk", h.Program.ReplacePrograms)
			students.PUT("/:id/programs/:programId/complete", h.Program.SetProgramCompleted)
			students.DELETE("/:id/programs/:programId", h.Program.DeleteProgram)

			students.GET("/:id/meal-plans", h.Program.GetMealPlans)
			students.POST("/:id/meal-plans", h.Program.AssignMeal)
			students.POST("/:id/meal-plans/bulk", h.Program.ReplaceMealPlans)
			students.PUT("/:id/meal-plans/:planId/complete", h.Program.SetMealPlanCompleted)
			students.DELETE("/:id/meal-plans/:planId", h.Program.DeleteMealPlan)

			students.GET("/:id/supplements", h.Program.GetStudentSupplements)
			students.POST("/:id/supplements", h.Program.AssignSupplement)
			students.POST("/:id/supplements/bulk", h.Program.ReplaceSupplements)
			students.PUT("/:id/supplements/:supplementId/complete", h.Program.SetSupplementCompleted)
			students.DELETE("/:id/supplements/:supplementId", h.Program.DeleteStudentSupplement)

			students.POST("/:id/messages", h.Support.SendTrainerMessage)
		}

		trainer.DELETE("/history", h.Student.PurgeHistory)
		trainer.DELETE("/support", h.Support.ClearSupport)

		exerciseTypes := trainer.Group("/exercise-types")
		{
			exerciseTypes.GET("", h.Catalog.GetExerciseTypes)
			exerciseTypes.POST("", h.Catalog.CreateExerciseType)
			exerciseTypes.PUT("/:id", h.Catalog.UpdateExerciseType)
			exerciseTypes.DELETE("/:id", h.Catalog.DeleteExerciseType)
		}

		exerciseCategories := trainer.Group("/exercise-categories")
		{
			exerciseCategories.GET("", h.Catalog.GetExerciseCategories)
			exerciseCategories.POST("", h.Catalog.CreateExerciseCategory)
			exerciseCategories.PUT("/:id", h.Catalog.UpdateExerciseCategory)
			exerciseCategories.DELETE("/:id", h.Catalog.DeleteExerciseCategory)
		}

		exercises := trainer.Group("/exercises")
		{
			exercises.GET("", h.Catalog.GetExercises)
			exercises.POST("", h.Catalog.CreateExercise)
			exercises.PUT("/:id", h.Catalog.UpdateExercise)
			exercises.DELETE("/:id", h.Catalog.DeleteExercise)
			exercises.POST("/:id/media", h.Media.Upload)
			exercises.GET("/:id/media", h.Media.List)
		}

		mealCategories := trainer.Group("/meal-categories")
		{
			mealCategories.GET("", h.Catalog.GetMealCategories)
			mealCategories.POST("", h.Catalog.CreateMealCategory)
			mealCategories.PUT("/:id", h.Catalog.UpdateMealCategory)
			mealCategories.DELETE("/:id", h.Catalog.DeleteMealCategory)
		}

		meals := trainer.Group("/meals")
		{
			meals.GET("", h.Catalog.GetMeals)
			meals.POST("", h.Catalog.CreateMeal)
			meals.PUT("/:id", h.Catalog.UpdateMeal)
			meals.DELETE("/:id", h.Catalog.DeleteMeal)
		}

		supplementCategories := trainer.Group("/supplement-categories")
		{
			supplementCategories.GET("", h.Catalog.GetSupplementCategories)
			supplementCategories.POST("", h.Catalog.CreateSupplementCategory)
			supplementCategories.PUT("/:id", h.Catalog.UpdateSupplementCategory)
			supplementCategories.DELETE("/:id", h.Catalog.DeleteSupplementCategory)
		}

		supplements := trainer.Group("/supplements")
		{
			supplements.GET("", h.Catalog.GetSupplements)
			supplements.POST("", h.Catalog.CreateSupplement)
			supplements.PUT("/:id", h.Catalog.UpdateSupplement)
			supplements.DELETE("/:id", h.Catalog.DeleteSupplement)
		}

		trainer.PUT("/tickets/:id", h.Support.UpdateTicket)
		trainer.DELETE("/tickets/:id", h.Support.DeleteTicket)
	}

	// --- Student panel ---
	student := api.Group("/me")
	student.Use(RequireStudent())
	{
		student.GET("/programs", h.Program.GetMyPrograms)
		student.GET("/meal-plans", h.Program.GetMyMealPlans)
		student.GET("/supplements", h.Program.GetMySupplements)
		student.POST("/tickets", h.Support.CreateTicket)
		student.POST("/messages", h.Support.SendStudentMessage)
	}

	// --- Shared, any authenticated caller ---
	shared := api.Group("")
	shared.Use(RequireAuthenticated())
	{
		shared.GET("/tickets", h.Support.GetTickets)
		shared.GET("/tickets/:id", h.Support.GetTicket)
		shared.GET("/tickets/:id/responses", h.Support.GetResponses)
		shared.POST("/tickets/:id/responses", h.Support.AddResponse)

		shared.GET("/messages", h.Support.GetMessages)
		shared.PUT("/messages/:id/read", h.Support.MarkMessageRead)

		shared.GET("/preferences", h.Preference.List)
		shared.GET("/preferences/:key", h.Preference.Get)
		shared.POST("/preferences", h.Preference.Set)
		shared.DELETE("/preferences/:key", h.Preference.Remove)
		shared.POST("/preferences/reset", h.Preference.Reset)
	}
}
