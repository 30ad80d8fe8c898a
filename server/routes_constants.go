package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex = "/"

	// Auth Routes - Sign in, role choice & sign out
	RouteLogin      = "/login"
	RouteAuthCode   = "/auth/code"
	RouteCallback   = "/callback"
	RouteAuthRole   = "/auth/role"
	RouteAuthLogout = "/auth/logout"

	// Dashboards
	RouteInstructor = "/instructor"
	RouteStudent    = "/student"

	// Operational Routes
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
)
