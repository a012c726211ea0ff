package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const signupPage = "signup.html"

// NewRouter wires the API routes and serves everything else from publicDir,
// which is also where disk uploads land.
func NewRouter(logger *logrus.Logger, publicDir string, users *UserHandler, requirements *RequirementHandler) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(publicDir, signupPage))
	}).Methods("GET", "HEAD")

	router.HandleFunc("/submit", users.Signup).Methods("POST")
	router.HandleFunc("/login", users.Login).Methods("POST")

	router.HandleFunc("/api/post-requirement", requirements.CreateRequirement).Methods("POST")
	router.HandleFunc("/api/requirements", requirements.GetRequirements).Methods("GET")

	router.PathPrefix("/").Handler(http.FileServer(noListingFS{http.Dir(publicDir)})).Methods("GET", "HEAD")

	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{"*"}),
		gorillahandlers.AllowedMethods([]string{"GET", "HEAD", "POST", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type"}),
	)

	return loggingMiddleware(logger)(cors(router))
}

// noListingFS serves files and index pages but never a generated directory
// listing, so /uploads/ can't be used to enumerate other users' images.
type noListingFS struct {
	fs http.FileSystem
}

func (n noListingFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !info.IsDir() {
		return f, nil
	}

	index, err := n.fs.Open(path.Join(name, "index.html"))
	if err != nil {
		f.Close()
		return nil, os.ErrNotExist
	}
	index.Close()

	return f, nil
}
