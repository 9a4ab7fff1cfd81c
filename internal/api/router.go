package api

import "net/http"

// Config carries the dependencies the router wires into handlers.
type Config struct {
	Items     ItemStore
	Users     UserStore
	Secret    string
	UploadDir string
}

// NewRouter creates the API router with all endpoints registered. The whole
// tree is wrapped in the CORS middleware, which also answers OPTIONS
// preflight requests for every path.
func NewRouter(cfg Config) http.Handler {
	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{Store: cfg.Items}
	usersHandler := &UsersHandler{Store: cfg.Users}
	authHandler := &AuthHandler{Users: cfg.Users, Secret: cfg.Secret}
	profileHandler := &ProfileHandler{Users: cfg.Users, UploadDir: cfg.UploadDir}

	session := SessionMiddleware(cfg.Secret)

	// Items.
	mux.HandleFunc("GET /items", itemsHandler.List)
	mux.HandleFunc("POST /items", itemsHandler.Create)
	mux.HandleFunc("GET /items/{id}", itemsHandler.Get)
	mux.HandleFunc("PATCH /items/{id}", itemsHandler.Update)
	mux.HandleFunc("PUT /items/{id}", itemsHandler.Update)
	mux.HandleFunc("DELETE /items/{id}", itemsHandler.Delete)

	// Users.
	mux.HandleFunc("GET /users", usersHandler.List)
	mux.HandleFunc("POST /users", usersHandler.Create)
	mux.HandleFunc("GET /users/{id}", usersHandler.Get)
	mux.HandleFunc("PATCH /users/{id}", usersHandler.Patch)
	mux.HandleFunc("PUT /users/{id}", usersHandler.Put)
	mux.HandleFunc("DELETE /users/{id}", usersHandler.Delete)

	// Sessions.
	mux.HandleFunc("POST /users/login", authHandler.Login)
	mux.HandleFunc("POST /users/logout", authHandler.Logout)

	// Profile (session-protected).
	mux.Handle("GET /users/profile", session(http.HandlerFunc(profileHandler.Get)))
	mux.Handle("PUT /users/profile", session(http.HandlerFunc(profileHandler.Update)))
	mux.Handle("POST /users/profile/image", session(http.HandlerFunc(profileHandler.UploadImage)))

	// Uploaded profile images.
	mux.Handle("GET /profile-images/", http.StripPrefix("/profile-images/",
		http.FileServer(http.Dir(cfg.UploadDir))))

	return CORSMiddleware(mux)
}
