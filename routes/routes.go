package routes

import (
	"log"
	"net/http"

	"tuneboard/auth"
	"tuneboard/handlers"
	"tuneboard/repository"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace * with your domain in production
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withMethodOverride lets HTML forms issue PUT and DELETE through a
// _method query parameter on a POST.
func withMethodOverride(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if m := r.URL.Query().Get("_method"); m == http.MethodPut || m == http.MethodDelete {
				r.Method = m
			}
		}
		next(w, r)
	}
}

// withSession attaches the persisted session before any gate or handler.
func withSession(sm *auth.SessionManager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sm.Attach(w, r)
		if err != nil {
			log.Printf("attaching session: %v", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		next(w, handlers.WithSession(r, session))
	}
}

// requireAuth passes only authenticated sessions; everything else is
// redirected to the login page with no error body.
func requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := handlers.SessionFrom(r)
		if session == nil || !session.IsAuth {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next(w, r)
	}
}

// requireAdmin checks the session flag and then re-reads the stored user
// record, so revoking the role cuts off live sessions immediately.
func requireAdmin(users repository.UserRepository, sm *auth.SessionManager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := handlers.SessionFrom(r)
		if session == nil || !session.IsAuthAdmin {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		user, err := users.GetUserByName(session.Name)
		if err != nil {
			log.Printf("re-checking admin role for %q: %v", session.Name, err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if user == nil || !user.IsAdmin {
			session.IsAuthAdmin = false
			if err := sm.Save(session); err != nil {
				log.Printf("downgrading session for %q: %v", session.Name, err)
			}
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		next(w, r)
	}
}

func SetupRoutes(
	userHandler *handlers.UserHandler,
	postHandler *handlers.PostHandler,
	adminHandler *handlers.AdminHandler,
	musicHandler *handlers.MusicHandler,
	langHandler *handlers.LangHandler,
	sessions *auth.SessionManager,
	users repository.UserRepository,
	renderer *handlers.Renderer,
	uploadDir string,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Every dynamic route runs the same outer chain: CORS, panic
	// recovery, form method override, session attachment.
	chain := func(h http.HandlerFunc) http.Handler {
		return withCORS(http.HandlerFunc(handlers.RecoverWrapper(withMethodOverride(withSession(sessions, h)))))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return requireAdmin(users, sessions, h)
	}

	mux.Handle("/login", chain(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			userHandler.ShowLogin(w, r)
		case http.MethodPost:
			userHandler.Login(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	mux.Handle("/signup", chain(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			userHandler.ShowSignup(w, r)
		case http.MethodPost:
			userHandler.Signup(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	mux.Handle("/logout", chain(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		userHandler.Logout(w, r)
	}))

	// "/" matches everything the other patterns miss; anything that is
	// not exactly the home page renders the 404 page.
	mux.Handle("/", chain(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			renderer.ErrorPage(w, r, http.StatusNotFound, "Page Not Found")
			return
		}
		requireAuth(postHandler.Home)(w, r)
	}))

	mux.Handle("/newpost", chain(requireAuth(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			postHandler.ShowNewPost(w, r)
		case http.MethodPost:
			postHandler.CreatePost(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})))

	mux.Handle("/editPost/", chain(requireAuth(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/editPost/"):]
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			postHandler.ShowEditPost(w, r, id)
		case http.MethodPut:
			postHandler.UpdatePost(w, r, id)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})))

	mux.Handle("/deletePost/", chain(requireAuth(func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/deletePost/"):]
		if id == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		postHandler.DeletePost(w, r, id)
	})))

	mux.Handle("/admin", chain(admin(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		adminHandler.AdminHome(w, r)
	})))

	mux.Handle("/admin/new", chain(admin(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			adminHandler.ShowNewUser(w, r)
		case http.MethodPost:
			adminHandler.CreateUser(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})))

	mux.Handle("/admin/edit/", chain(admin(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path[len("/admin/edit/"):]
		if name == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			adminHandler.ShowEditUser(w, r, name)
		case http.MethodPost:
			adminHandler.EditUser(w, r, name)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})))

	mux.Handle("/admin/delete/", chain(admin(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path[len("/admin/delete/"):]
		if name == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		adminHandler.DeleteUser(w, r, name)
	})))

	mux.Handle("/admin/report", chain(admin(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		adminHandler.UsersReport(w, r)
	})))

	mux.Handle("/music", chain(requireAuth(musicHandler.MusicPage)))
	mux.Handle("/music-search", chain(requireAuth(musicHandler.MusicSearch)))
	mux.Handle("/artist", chain(requireAuth(musicHandler.ArtistPage)))
	mux.Handle("/artist-result", chain(requireAuth(musicHandler.ArtistResult)))

	mux.Handle("/change-lang/", chain(func(w http.ResponseWriter, r *http.Request) {
		lang := r.URL.Path[len("/change-lang/"):]
		if lang == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		langHandler.ChangeLang(w, r, lang)
	}))

	mux.Handle("/uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("./static"))))

	return mux
}
