// file: routes/router.go
package routes

import (
	"github.com/gin-gonic/gin"

	"CFOCup/controllers"
	"CFOCup/middlewares"
	"CFOCup/models"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	apiV1 := r.Group("/api/v1")
	{
		// --- 公开接口 ---
		apiV1.GET("/health", controllers.HealthCheck)

		usersPublic := apiV1.Group("/users")
		{
			usersPublic.POST("/register", controllers.Register)
			usersPublic.POST("/login", controllers.Login)
		}

		// --- 参赛者接口 ---
		competitionRoutes := apiV1.Group("/competitions")
		competitionRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			competitionRoutes.GET("", controllers.ListCompetitions)
			competitionRoutes.GET("/:id/status", controllers.GetCompetitionStatus)
			competitionRoutes.GET("/:id/tasks", controllers.ListCompetitionTasks)
			competitionRoutes.GET("/:id/leaderboard", controllers.GetLeaderboard)
		}

		taskRoutes := apiV1.Group("/tasks")
		taskRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			taskRoutes.GET("/:id/status", controllers.GetTaskStatus)
			taskRoutes.POST("/:id/submit", controllers.SubmitTaskFile)
			taskRoutes.GET("/:id/my-submission", controllers.GetMySubmission)
		}

		submissionRoutes := apiV1.Group("/submissions")
		submissionRoutes.Use(middlewares.JWTAuthMiddleware())
		{
			submissionRoutes.POST("/:id/appeal", controllers.CreateAppeal)
		}

		// --- 评委接口（分配关系由评分服务再校验） ---
		judgeRoutes := apiV1.Group("/judge")
		judgeRoutes.Use(middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleJudge, models.RoleAdmin))
		{
			judgeRoutes.GET("/competitions", controllers.ListJudgeCompetitions)
			judgeRoutes.GET("/competitions/:id/submissions", controllers.ListJudgeSubmissions)
			judgeRoutes.GET("/competitions/:id/criteria", controllers.ListJudgeCriteria)
			judgeRoutes.GET("/submissions/:id/my-scores", controllers.GetMyScores)
			judgeRoutes.POST("/submissions/:id/score", controllers.SubmitScore)
			judgeRoutes.POST("/submissions/:id/finalize", controllers.FinalizeScore)
		}

		// --- 管理员接口 ---
		adminRoutes := apiV1.Group("/admin")
		adminRoutes.Use(middlewares.JWTAuthMiddleware(), middlewares.RoleAuthMiddleware(models.RoleAdmin))
		{
			adminRoutes.POST("/competitions", controllers.UpsertCompetition)
			adminRoutes.PUT("/competitions/:id", controllers.UpsertCompetition)
			adminRoutes.PATCH("/competitions/:id/set-level", controllers.SetLevel)
			adminRoutes.POST("/competitions/:id/lock-submissions", controllers.LockSubmissions(true))
			adminRoutes.POST("/competitions/:id/unlock-submissions", controllers.LockSubmissions(false))
			adminRoutes.POST("/competitions/:id/publish-results", controllers.PublishResults)
			adminRoutes.GET("/competitions/:id/export-results", controllers.ExportResults)

			adminRoutes.POST("/tasks", controllers.CreateTask)
			adminRoutes.PATCH("/tasks/:id", controllers.UpdateTask)
			adminRoutes.GET("/tasks/:id/integrity-report", controllers.GetIntegrityReport)

			adminRoutes.GET("/competitions/:id/submissions", controllers.AdminListSubmissions)
			adminRoutes.POST("/submissions/:id/lock", controllers.AdminLockSubmission)

			adminRoutes.POST("/competitions/:id/judges", controllers.AssignJudge)
			adminRoutes.GET("/competitions/:id/judges", controllers.ListJudges)
			adminRoutes.DELETE("/competitions/:id/judges/:judge_id", controllers.RemoveJudge)

			adminRoutes.GET("/scoring-criteria", controllers.ListCriteria)
			adminRoutes.POST("/scoring-criteria", controllers.CreateCriterion)
			adminRoutes.PATCH("/scoring-criteria/:id", controllers.UpdateCriterion)

			adminRoutes.GET("/competitions/:id/appeals", controllers.ListAppeals)
			adminRoutes.POST("/appeals/:id/review", controllers.ReviewAppeal)

			adminRoutes.GET("/audit-log", controllers.GetAuditLog)
		}
	}

	return r
}
