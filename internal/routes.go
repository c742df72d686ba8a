package internal

import (
	"goaltracker/internal/controllers"
	"goaltracker/internal/providers"
	"net/http"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/state", http.HandlerFunc(apiController.GetState))
	routers.Get("/history", http.HandlerFunc(apiController.GetHistory))
	routers.Post("/goals", http.HandlerFunc(apiController.AddGoal))
	routers.Post("/check", http.HandlerFunc(apiController.CheckGoals))
	routers.Post("/reset", http.HandlerFunc(apiController.Reset))
	routers.Post("/export", http.HandlerFunc(apiController.ExportHistory))
	routers.Get("/export", http.HandlerFunc(apiController.DownloadHistory))
	return routers
}
