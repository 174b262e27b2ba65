package api

import (
	"github.com/gin-gonic/gin"

	"hostelhub/internal/api/controllers"
	"hostelhub/pkg/logger"
	"hostelhub/pkg/middleware"
	"hostelhub/pkg/utils"
)

type Controllers struct {
	Account        *controllers.AccountController
	Placement      *controllers.PlacementController
	AdminPlacement *controllers.AdminPlacementController
	Hostel         *controllers.HostelController
	Subscription   *controllers.SubscriptionController
	Notification   *controllers.NotificationController
	Dashboard      *controllers.DashboardController
}

type RouterDeps struct {
	Controllers    Controllers
	JWT            *utils.JWTManager
	Authorizer     *middleware.Authorizer
	Logger         logger.Interface
	AllowedOrigins []string
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(deps.Logger.Named("http")))
	r.Use(middleware.CORS(deps.AllowedOrigins))

	RegisterRoutes(r, deps)
	return r
}

func RegisterRoutes(r *gin.Engine, deps RouterDeps) {
	ctl := deps.Controllers

	r.GET("/healthz", func(c *gin.Context) {
		utils.RespondSuccess(c, gin.H{"ok": true}, "")
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", ctl.Account.Register)
	auth.POST("/login", ctl.Account.Login)

	api.GET("/plans", ctl.Placement.ListActivePlans)

	public := api.Group("/hostels", middleware.OptionalJWTMiddleware(deps.JWT))
	public.GET("/featured", ctl.Hostel.ListFeatured)
	public.GET("/:id", ctl.Hostel.GetHostel)
	public.POST("/:id/contact", ctl.Hostel.RevealContact)
	public.GET("/:id/featured-status", ctl.Hostel.FeaturedStatus)

	guarded := []gin.HandlerFunc{middleware.JWTAuthMiddleware(deps.JWT), deps.Authorizer.Authorize()}

	me := api.Group("/me", guarded...)
	me.GET("/profile", ctl.Account.Profile)
	me.GET("/notifications", ctl.Notification.List)
	me.PATCH("/notifications/:id/read", ctl.Notification.MarkRead)

	owner := api.Group("/owner", guarded...)
	owner.POST("/hostels", ctl.Hostel.CreateHostel)
	owner.GET("/hostels", ctl.Hostel.ListMine)
	owner.GET("/hostels/:id/subscription", ctl.Subscription.GetMine)
	owner.GET("/hostels/:id/placement-history", ctl.Placement.MyHostelHistory)
	owner.POST("/placements", ctl.Placement.Submit)
	owner.GET("/placements", ctl.Placement.ListMine)
	owner.GET("/placements/:id", ctl.Placement.GetMine)

	admin := api.Group("/admin", guarded...)
	admin.GET("/dashboard", ctl.Dashboard.GetDashboard)

	admin.GET("/placements", ctl.AdminPlacement.ListRequests)
	admin.POST("/placements/sweep", ctl.AdminPlacement.Sweep)
	admin.GET("/placements/:id", ctl.AdminPlacement.GetRequest)
	admin.POST("/placements/:id/review", ctl.AdminPlacement.Review)

	admin.GET("/plans", ctl.AdminPlacement.ListPlans)
	admin.POST("/plans", ctl.AdminPlacement.CreatePlan)
	admin.PUT("/plans/:id", ctl.AdminPlacement.UpdatePlan)
	admin.PATCH("/plans/:id/active", ctl.AdminPlacement.SetPlanActive)
	admin.DELETE("/plans/:id", ctl.AdminPlacement.DeletePlan)

	admin.GET("/hostels/:id/placement-history", ctl.AdminPlacement.HostelHistory)
	admin.PATCH("/hostels/:id/verify", ctl.Hostel.Verify)
	admin.GET("/hostels/:id/subscription", ctl.Subscription.Get)
	admin.POST("/hostels/:id/subscription/activate", ctl.Subscription.Activate)
	admin.POST("/hostels/:id/subscription/cancel", ctl.Subscription.Cancel)
	admin.POST("/subscriptions/expire", ctl.Subscription.ExpireStale)
}
