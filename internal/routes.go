package internal

import (
	"net/http"
	"scad/internal/controllers"
	"scad/internal/providers"
	"scad/internal/structures"
)

func InitRoutes(events *controllers.EventsController, query *controllers.QueryController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/events/message", http.HandlerFunc(events.ReceiveMessage))
	routers.Post("/events/role", http.HandlerFunc(events.ReceiveRoleChange))
	routers.Post("/events/join", http.HandlerFunc(events.ReceiveJoin))
	routers.Post("/sync/roster", http.HandlerFunc(events.SyncRoster))

	routers.Get("/leaderboard", http.HandlerFunc(query.GetLeaderboard))
	routers.Get("/stats", http.HandlerFunc(query.GetStats))
	routers.Get("/user", http.HandlerFunc(query.GetUserStats))
	routers.Get("/topart", http.HandlerFunc(query.GetTopArt))
	routers.Get("/roles", http.HandlerFunc(query.GetRoles))
	return routers
}
