package transport

import (
	"github.com/labstack/echo/v4"
	"github.com/moneybook/moneybook.go/controllers"
	"github.com/moneybook/moneybook.go/lib/service"
)

func RegisterEndpoints(svc *service.MoneybookService, e *echo.Echo, secured *echo.Group, securedWithStrictRateLimit *echo.Group, strictRateLimitMiddleware echo.MiddlewareFunc, adminMw echo.MiddlewareFunc, logMw echo.MiddlewareFunc) {
	if svc.Config.AllowUserCreation {
		e.POST("/users", controllers.NewCreateUserController(svc).CreateUser, strictRateLimitMiddleware, adminMw, logMw)
	}
	e.POST("/auth", controllers.NewAuthController(svc).Auth, strictRateLimitMiddleware, logMw)

	//require admin token for the admin surface
	if svc.Config.AdminToken != "" {
		adminCategoryCtrl := controllers.NewAdminCategoryController(svc)
		e.PUT("/admin/users", controllers.NewUpdateUserController(svc).UpdateUser, strictRateLimitMiddleware, adminMw)
		e.POST("/admin/categories", adminCategoryCtrl.CreateCategory, adminMw, logMw)
		e.PUT("/admin/categories/:id", adminCategoryCtrl.UpdateCategory, adminMw, logMw)
		e.DELETE("/admin/categories/:id", adminCategoryCtrl.DeleteCategory, adminMw, logMw)
	}

	accountCtrl := controllers.NewAccountController(svc)
	secured.GET("/accounts", accountCtrl.ListAccounts)
	secured.POST("/accounts", accountCtrl.CreateAccount)
	secured.GET("/accounts/:id", accountCtrl.GetAccount)
	secured.PUT("/accounts/:id", accountCtrl.UpdateAccount)
	secured.DELETE("/accounts/:id", accountCtrl.DeleteAccount)

	transactionCtrl := controllers.NewTransactionController(svc)
	secured.GET("/transactions", transactionCtrl.ListTransactions)
	secured.POST("/transactions", transactionCtrl.CreateTransaction)
	secured.GET("/transactions/:id", transactionCtrl.GetTransaction)
	secured.PUT("/transactions/:id", transactionCtrl.UpdateTransaction)
	secured.DELETE("/transactions/:id", transactionCtrl.DeleteTransaction)

	categoryCtrl := controllers.NewCategoryController(svc)
	secured.GET("/categories", categoryCtrl.ListCategories, CreateCacheClient().Middleware())
	secured.POST("/categories", categoryCtrl.CreateCategory)
	secured.PUT("/categories/:id", categoryCtrl.UpdateCategory)
	secured.DELETE("/categories/:id", categoryCtrl.DeleteCategory)

	attachmentCtrl := controllers.NewAttachmentController(svc)
	// uploads are the most expensive writes, keep them on the strict limiter
	securedWithStrictRateLimit.POST("/transactions/:id/attachment", attachmentCtrl.UploadAttachment)
	secured.GET("/attachments/:id", attachmentCtrl.GetAttachment)
	secured.DELETE("/attachments/:id", attachmentCtrl.DeleteAttachment)

	secured.GET("/dashboard", controllers.NewDashboardController(svc).Dashboard)
}
