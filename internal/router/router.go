package router

import (
	"github.com/Expenses-tracker-app/backend/internal/config"
	"github.com/Expenses-tracker-app/backend/internal/handler"
	"github.com/Expenses-tracker-app/backend/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine with all API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// 跨站前端要带 cookie，必须允许 credentials
	if len(cfg.CORS.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	auth := middleware.AuthMiddleware(cfg.JWT.Secret)

	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	userHandler := handler.NewUserHandler(db, cfg.Security.BcryptCost)
	expenseHandler := handler.NewExpenseHandler(db)
	incomeHandler := handler.NewIncomeHandler(db)
	tagHandler := handler.NewTagHandler(db)
	exportHandler := handler.NewExportHandler(db)

	r.GET("/healthcheck", handler.Healthcheck)
	r.GET("/checkLogin", auth, authHandler.CheckLogin)

	user := r.Group("/user")
	user.POST("/create", authHandler.Register)
	user.POST("/login", authHandler.Login)
	user.POST("/logout", auth, authHandler.Logout)
	user.GET("/", auth, userHandler.GetMe)
	user.PUT("/update", auth, userHandler.Update)
	user.DELETE("/delete", auth, userHandler.Delete)

	expense := r.Group("/expense", auth)
	expense.POST("/create", expenseHandler.Create)
	expense.GET("/", expenseHandler.List)
	expense.PUT("/update/:id", expenseHandler.Update)
	expense.DELETE("/delete/:id", expenseHandler.Delete)
	expense.GET("/export/csv", exportHandler.ExportCSV)
	expense.GET("/export/xlsx", exportHandler.ExportXLSX)

	income := r.Group("/income", auth)
	income.POST("/create", incomeHandler.Create)
	income.GET("/", incomeHandler.List)
	income.PUT("/update/:id", incomeHandler.Update)
	income.DELETE("/delete/:id", incomeHandler.Delete)

	// 标签查询公开，写操作需要登录
	tag := r.Group("/tag")
	tag.GET("/", tagHandler.List)
	tag.GET("/:id", tagHandler.Get)
	tag.POST("/create", auth, tagHandler.Create)
	tag.PUT("/update/:id", auth, tagHandler.Update)
	tag.DELETE("/delete/:id", auth, tagHandler.Delete)

	return r
}
