package web

import "net/http"

// registerRoutes wires every handler onto the mux. Access control lives in
// the guard's path table, not here.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", handleHome)

	// Public
	mux.HandleFunc("/signup", handleSignup)
	mux.HandleFunc("/login", handleLogin)
	mux.HandleFunc("/logout", handleLogout)

	// Member area
	mux.HandleFunc("/dashboard", handleDashboard)
	mux.HandleFunc("/roles/register", handleRolesRegister)
	mux.HandleFunc("/gyms", handleGyms)
	mux.HandleFunc("/gyms/join", handleJoinGym)
	mux.HandleFunc("/profile", handleProfile)
	mux.HandleFunc("/profile/password", handleChangePassword)

	// Trainer area
	mux.HandleFunc("/trainer", handleTrainerArea)

	// Gym manager area
	mux.HandleFunc("/manage", handleManage)
	mux.HandleFunc("/manage/notices", handleCreateNotice)
	mux.HandleFunc("/manage/notices/publish", handlePublishNotice)

	// JSON API mirrors of the main views
	mux.HandleFunc("/api/dashboard", handleDashboard)
	mux.HandleFunc("/api/roles", handleRolesRegister)
	mux.HandleFunc("/api/gyms", handleGyms)
	mux.HandleFunc("/api/perf", handlePerf)
}
