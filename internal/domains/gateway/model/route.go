package model

import (
	"hotel/shared/constant"
	"strings"
)

// Route sends every path under Prefix to Upstream.
type Route struct {
	Prefix   string
	Upstream string
}

// Routes is the gateway route table, most specific prefixes first. Match
// returns the first entry that fits.
var Routes = []Route{
	{Prefix: "/api/auth/register", Upstream: constant.ServiceAuth},
	{Prefix: "/api/auth", Upstream: constant.ServiceAuth},
	{Prefix: "/api/protected", Upstream: constant.ServiceAuth},
	{Prefix: "/api/upload-image", Upstream: constant.ServiceRoom},
	{Prefix: "/api/rooms", Upstream: constant.ServiceRoom},
	{Prefix: "/uploads", Upstream: constant.ServiceRoom},
	{Prefix: "/api/bookings", Upstream: constant.ServiceBooking},
}

// Matches reports whether path is the prefix itself or lies below it.
// "/api/rooms" matches "/api/rooms/1" but not "/api/roomsx".
func (r Route) Matches(path string) bool {
	return path == r.Prefix || strings.HasPrefix(path, r.Prefix+"/")
}

// Match finds the route for path in table order.
func Match(routes []Route, path string) (Route, bool) {
	for _, route := range routes {
		if route.Matches(path) {
			return route, true
		}
	}

	return Route{}, false
}
