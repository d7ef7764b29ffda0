package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"sportiva/internal/adapters/http/middleware"
	"sportiva/internal/application/listutil"
	"sportiva/internal/application/orchestrators"
	"sportiva/internal/application/projections"
	"sportiva/internal/domain/account"
	"sportiva/internal/domain/gym"
	"sportiva/internal/domain/trainer"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

const templatesDir = "internal/adapters/http/templates"

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

func isFormRequest(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	sess, loggedIn := middleware.GetSessionFromContext(r.Context())

	funcMap := template.FuncMap{
		"isLoggedIn":   func() bool { return loggedIn },
		"currentEmail": func() string { return sess.Email },
		"activeRole":   func() string { return sess.ActiveRole },
		"heldRoles":    func() []string { return sess.Roles },
		"csrfToken":    func() string { return csrf.Token(r) },
		"roleLabel":    roleLabel,
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

func roleLabel(role string) string {
	switch role {
	case account.RoleMember:
		return "Member"
	case account.RoleTrainer:
		return "Trainer"
	case account.RoleGymManager:
		return "Gym Manager"
	}
	return role
}

func handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		renderTemplate(w, r, "signup.html", map[string]any{})
		return
	}

	if r.Method == "POST" {
		input := orchestrators.CreateAccountInput{}
		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.Email = r.FormValue("Email")
			input.Password = r.FormValue("Password")
			input.FirstName = r.FormValue("FirstName")
			input.LastName = r.FormValue("LastName")
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
		}

		deps := orchestrators.CreateAccountDeps{
			AccountStore: stores.AccountStore,
			AuditStore:   stores.AuditStore,
		}
		id, err := orchestrators.ExecuteCreateAccount(r.Context(), input, deps)
		if err != nil {
			if isHTMLRequest(r) {
				renderTemplate(w, r, "signup.html", map[string]any{"Error": err.Error()})
				return
			}
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		if isHTMLRequest(r) {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		if _, ok := middleware.GetSessionFromContext(r.Context()); ok {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{
			"Next": r.URL.Query().Get("next"),
		})
		return
	}

	if r.Method == "POST" {
		input := orchestrators.LoginInput{}
		next := ""
		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.Email = r.FormValue("Email")
			input.Password = r.FormValue("Password")
			next = r.FormValue("Next")
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
		}

		deps := orchestrators.LoginDeps{
			AccountStore: stores.AccountStore,
			AuditStore:   stores.AuditStore,
		}
		result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
		if err != nil {
			if isHTMLRequest(r) {
				renderTemplate(w, r, "login.html", map[string]any{"Error": err.Error(), "Next": next})
				return
			}
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}

		token, err := sessions.Create(result.AccountID, result.Email, result.Roles, result.DefaultRole)
		if err != nil {
			internalError(w, err)
			return
		}
		middleware.SetSessionCookie(w, token)

		if isHTMLRequest(r) {
			target := "/dashboard"
			if next != "" && strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
				target = next
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"roles":        result.Roles,
			"default_role": result.DefaultRole,
		})
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if token := middleware.SessionToken(r); token != "" {
		sessions.Delete(token)
	}
	middleware.ClearSessionCookie(w)
	if isHTMLRequest(r) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDashboard renders the dashboard for the session's active role.
// A role query parameter switches the active role for this session only.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	if requested := r.URL.Query().Get("role"); requested != "" && requested != sess.ActiveRole {
		if sess.HoldsRole(requested) {
			sess.ActiveRole = requested
			if token := middleware.SessionToken(r); token != "" {
				sessions.Update(token, sess)
			}
		}
		// The projection falls back to the default role for anything stale.
	}

	result, err := projections.QueryGetDashboard(r.Context(), projections.GetDashboardQuery{
		AccountID:  sess.AccountID,
		ActiveRole: sess.ActiveRole,
	}, dashboardDeps())
	if err != nil {
		if errors.Is(err, projections.ErrAccountNotFound) {
			middleware.ClearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		internalError(w, err)
		return
	}

	// Keep the session in line with what was actually rendered.
	if result.Role != sess.ActiveRole {
		sess.ActiveRole = result.Role
		sess.Roles = result.Roles
		if token := middleware.SessionToken(r); token != "" {
			sessions.Update(token, sess)
		}
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "dashboard.html", map[string]any{
			"Result": result,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"role":        result.Role,
		"roles":       result.Roles,
		"acquirable":  result.Acquirable,
		"joined_gyms": result.JoinedGyms,
		"notices":     result.Notices,
		"has_profile": result.HasProfile,
		"owned_gyms":  result.OwnedGyms,
	})
}

// handleRolesRegister serves the role selector and runs the registration.
// On success the HTML response is a confirmation page that meta-refreshes
// to the dashboard after two seconds.
func handleRolesRegister(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	if r.Method == "GET" {
		roles, err := projections.QueryGetRoles(r.Context(), sess.AccountID, projections.GetRolesDeps{
			AccountStore: stores.AccountStore,
		})
		if err != nil {
			internalError(w, err)
			return
		}

		if isHTMLRequest(r) {
			renderTemplate(w, r, "roles_register.html", map[string]any{
				"Acquirable":  roles.Acquirable,
				"NoRolesLeft": len(roles.Acquirable) == 0,
				"Specialties": trainer.Specialties,
				"Cities":      gym.Cities,
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"roles":      roles.Roles,
			"acquirable": roles.Acquirable,
		})
		return
	}

	if r.Method == "POST" {
		input := orchestrators.RegisterRoleInput{AccountID: sess.AccountID}
		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.Role = r.FormValue("Role")
			input.Specialty = r.FormValue("Specialty")
			input.GymName = r.FormValue("GymName")
			input.GymCity = r.FormValue("GymCity")
			// Experience years is only a trainer field; reject non-numeric
			// input instead of coercing it to zero.
			if input.Role == account.RoleTrainer {
				years, err := strconv.Atoi(strings.TrimSpace(r.FormValue("ExperienceYears")))
				if err != nil {
					renderRolesError(w, r, sess.AccountID, "years of experience must be a whole number")
					return
				}
				input.ExperienceYears = years
			}
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			input.AccountID = sess.AccountID
		}

		result, err := orchestrators.ExecuteRegisterRole(r.Context(), input, registerRoleDeps())
		if err != nil {
			status := http.StatusBadRequest
			var wf *orchestrators.WriteFailedError
			if errors.As(err, &wf) {
				status = http.StatusInternalServerError
			}
			if isHTMLRequest(r) {
				renderRolesError(w, r, sess.AccountID, err.Error())
				return
			}
			writeJSON(w, status, map[string]string{"error": err.Error()})
			return
		}

		// Refresh the session so the new role is usable immediately.
		sess.Roles = result.Roles
		sess.ActiveRole = input.Role
		if token := middleware.SessionToken(r); token != "" {
			sessions.Update(token, sess)
		}

		if isHTMLRequest(r) {
			renderTemplate(w, r, "role_confirm.html", map[string]any{
				"Role":         roleLabel(input.Role),
				"RedirectTo":   "/dashboard",
				"DelaySeconds": 2,
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"roles":       result.Roles,
			"active_role": input.Role,
		})
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// rolesFormData builds the selector state for the registration form from the
// account's current acquirable roles, so a held role never appears as an
// option.
func rolesFormData(ctx context.Context, accountID string) map[string]any {
	acquirable := []string{}
	roles, err := projections.QueryGetRoles(ctx, accountID, projections.GetRolesDeps{
		AccountStore: stores.AccountStore,
	})
	if err == nil {
		acquirable = roles.Acquirable
	}
	return map[string]any{
		"Acquirable":  acquirable,
		"NoRolesLeft": len(acquirable) == 0,
		"Specialties": trainer.Specialties,
		"Cities":      gym.Cities,
	}
}

// renderRolesError surfaces a registration failure on the selector page for
// HTML clients and as a 400 for API clients.
func renderRolesError(w http.ResponseWriter, r *http.Request, accountID, message string) {
	if !isHTMLRequest(r) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": message})
		return
	}
	data := rolesFormData(r.Context(), accountID)
	data["Error"] = message
	renderTemplate(w, r, "roles_register.html", data)
}

func handleGyms(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	params := listutil.ParseParams(r.URL.Query(), []string{"city"})
	result, err := projections.QueryBrowseGyms(r.Context(), projections.BrowseGymsQuery{
		AccountID: sess.AccountID,
		Params:    params,
	}, projections.BrowseGymsDeps{
		GymStore:        stores.GymStore,
		MembershipStore: stores.MembershipStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "gyms.html", map[string]any{
			"Gyms":     result.Gyms,
			"PageInfo": result.PageInfo,
			"City":     result.City,
			"Cities":   result.Cities,
			"Search":   params.Search,
		})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func handleJoinGym(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	gymID := ""
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		gymID = r.FormValue("GymID")
	} else {
		var body struct {
			GymID string `json:"gym_id"`
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		gymID = body.GymID
	}

	err := orchestrators.ExecuteJoinGym(r.Context(), orchestrators.JoinGymInput{
		AccountID: sess.AccountID,
		GymID:     gymID,
	}, orchestrators.JoinGymDeps{
		GymStore:        stores.GymStore,
		MembershipStore: stores.MembershipStore,
	})
	if err != nil {
		if errors.Is(err, gym.ErrAlreadyJoined) {
			if isHTMLRequest(r) {
				http.Redirect(w, r, "/gyms", http.StatusSeeOther)
				return
			}
			writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
			return
		}
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/gyms", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func handleProfile(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.GetSessionFromContext(r.Context())

	if r.Method == "GET" {
		acct, err := stores.AccountStore.GetByID(r.Context(), sess.AccountID)
		if err != nil {
			internalError(w, err)
			return
		}
		if isHTMLRequest(r) {
			renderTemplate(w, r, "profile.html", map[string]any{
				"Account": acct,
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"email":      acct.Email,
			"first_name": acct.FirstName,
			"last_name":  acct.LastName,
			"roles":      acct.Roles(),
		})
		return
	}

	if r.Method == "POST" {
		input := orchestrators.UpdateProfileInput{AccountID: sess.AccountID}
		if isFormRequest(r) {
			if err := r.ParseForm(); err != nil {
				http.Error(w, "Invalid form submission", http.StatusBadRequest)
				return
			}
			input.FirstName = r.FormValue("FirstName")
			input.LastName = r.FormValue("LastName")
		} else {
			if err := strictDecode(r, &input); err != nil {
				http.Error(w, "Invalid request", http.StatusBadRequest)
				return
			}
			input.AccountID = sess.AccountID
		}

		err := orchestrators.ExecuteUpdateProfile(r.Context(), input, orchestrators.UpdateProfileDeps{
			AccountStore: stores.AccountStore,
		})
		if err != nil {
			if isHTMLRequest(r) {
				renderTemplate(w, r, "profile.html", map[string]any{"Error": err.Error()})
				return
			}
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		if isHTMLRequest(r) {
			http.Redirect(w, r, "/profile", http.StatusSeeOther)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

func handleChangePassword(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	input := orchestrators.ChangePasswordInput{AccountID: sess.AccountID}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.CurrentPassword = r.FormValue("CurrentPassword")
		input.NewPassword = r.FormValue("NewPassword")
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input.AccountID = sess.AccountID
	}

	err := orchestrators.ExecuteChangePassword(r.Context(), input, orchestrators.ChangePasswordDeps{
		AccountStore: stores.AccountStore,
		AuditStore:   stores.AuditStore,
	})
	if err != nil {
		if errors.Is(err, account.ErrWrongPassword) || errors.Is(err, account.ErrPasswordTooShort) {
			if isHTMLRequest(r) {
				renderTemplate(w, r, "profile.html", map[string]any{"Error": err.Error()})
				return
			}
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleTrainerArea shows the trainer's own profile page.
func handleTrainerArea(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	result, err := projections.QueryGetDashboard(r.Context(), projections.GetDashboardQuery{
		AccountID:  sess.AccountID,
		ActiveRole: account.RoleTrainer,
	}, dashboardDeps())
	if err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "trainer.html", map[string]any{
			"HasProfile": result.HasProfile,
			"Profile":    result.TrainerProfile,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"has_profile": result.HasProfile,
		"profile":     result.TrainerProfile,
	})
}

// handleManage shows the manager's gyms with their notices.
func handleManage(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	owned, err := stores.GymStore.ListByOwner(r.Context(), sess.AccountID)
	if err != nil {
		internalError(w, err)
		return
	}

	type managedGym struct {
		Gym         gym.Gym
		MemberCount int
		Notices     []noticeView
	}
	views := make([]managedGym, 0, len(owned))
	for _, g := range owned {
		count, err := stores.MembershipStore.CountForGym(r.Context(), g.ID)
		if err != nil {
			internalError(w, err)
			return
		}
		notices, err := stores.NoticeStore.ListForGym(r.Context(), g.ID)
		if err != nil {
			internalError(w, err)
			return
		}
		nv := make([]noticeView, 0, len(notices))
		for _, n := range notices {
			nv = append(nv, noticeView{
				ID: n.ID, Title: n.Title, Content: n.Content, Status: n.Status,
			})
		}
		views = append(views, managedGym{Gym: g, MemberCount: count, Notices: nv})
	}

	if isHTMLRequest(r) {
		renderTemplate(w, r, "manage.html", map[string]any{
			"Gyms": views,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"gyms": views})
}

type noticeView struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
}

func handleCreateNotice(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	input := orchestrators.CreateNoticeInput{AuthorID: sess.AccountID}
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		input.GymID = r.FormValue("GymID")
		input.Title = r.FormValue("Title")
		input.Content = r.FormValue("Content")
		input.PublishNow = r.FormValue("PublishNow") == "on"
	} else {
		if err := strictDecode(r, &input); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		input.AuthorID = sess.AccountID
	}

	id, err := orchestrators.ExecuteCreateNotice(r.Context(), input, noticeDeps())
	if err != nil {
		if errors.Is(err, orchestrators.ErrNotGymOwner) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		if isHTMLRequest(r) {
			http.Redirect(w, r, "/manage?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/manage", http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func handlePublishNotice(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, _ := middleware.GetSessionFromContext(r.Context())

	noticeID := ""
	if isFormRequest(r) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}
		noticeID = r.FormValue("NoticeID")
	} else {
		var body struct {
			NoticeID string `json:"notice_id"`
		}
		if err := strictDecode(r, &body); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		noticeID = body.NoticeID
	}

	if err := orchestrators.ExecutePublishNotice(r.Context(), noticeID, sess.AccountID, noticeDeps()); err != nil {
		if errors.Is(err, orchestrators.ErrNotGymOwner) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/manage", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePerf exposes the in-process performance snapshot.
func handlePerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if perfCollector == nil {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	since := timeNow().Add(-15 * time.Minute)
	if v := r.URL.Query().Get("minutes"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			since = timeNow().Add(-time.Duration(n) * time.Minute)
		}
	}
	writeJSON(w, http.StatusOK, perfCollector.Snapshot(since, 10))
}

func dashboardDeps() projections.GetDashboardDeps {
	return projections.GetDashboardDeps{
		AccountStore:    stores.AccountStore,
		TrainerStore:    stores.TrainerStore,
		GymStore:        stores.GymStore,
		MembershipStore: stores.MembershipStore,
		NoticeStore:     stores.NoticeStore,
	}
}

func registerRoleDeps() orchestrators.RegisterRoleDeps {
	return orchestrators.RegisterRoleDeps{
		AccountStore: stores.AccountStore,
		TrainerStore: stores.TrainerStore,
		GymStore:     stores.GymStore,
		OutboxStore:  stores.OutboxStore,
		AuditStore:   stores.AuditStore,
	}
}

func noticeDeps() orchestrators.NoticeDeps {
	return orchestrators.NoticeDeps{
		GymStore:    stores.GymStore,
		NoticeStore: stores.NoticeStore,
	}
}
