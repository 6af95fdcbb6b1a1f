package media

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"socialwall/internal/common"
	"socialwall/internal/config"
	"socialwall/internal/dbmongo"
)

// HTTPServer accepts uploads into GridFS and streams stored files back.
type HTTPServer struct {
	storage *dbmongo.MediaStorage
	limits  config.MediaConfig
	baseURL string
}

func NewHTTPServer(mongoClient *dbmongo.MongoClient, cfg *config.Config) *HTTPServer {
	baseURL := fmt.Sprintf("http://%s:%s", cfg.Server.Host, cfg.Server.MediaPort)
	return &HTTPServer{
		storage: dbmongo.NewMediaStorage(mongoClient),
		limits:  cfg.Media,
		baseURL: baseURL,
	}
}

func (s *HTTPServer) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/media", s.upload).Methods("POST")
	router.HandleFunc("/media/{fileId}", s.serveFile).Methods("GET")
	router.HandleFunc("/health", s.health).Methods("GET")
	return router
}

func (s *HTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router().ServeHTTP(w, r)
}

type uploadResponse struct {
	ID   string `json:"id"`
	URL  string `json:"url"`
	Kind string `json:"kind"`
	Size int64  `json:"size"`
}

// upload stores a multipart file in GridFS. Size limits are enforced per
// kind before the GridFS write so oversized files never reach storage.
func (s *HTTPServer) upload(w http.ResponseWriter, r *http.Request) {
	// hard cap at the video limit plus some form overhead
	r.Body = http.MaxBytesReader(w, r.Body, s.limits.MaxVideoBytes+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if hint := r.Header.Get("X-Media-Mime"); hint != "" {
		mimeType = hint
	}
	if mimeType == "" {
		mimeType = mimeFromExtension(header.Filename)
	}

	kind := common.DetectMediaKind(mimeType)
	limit := s.limits.MaxImageBytes
	if kind == common.MediaKindVideo {
		limit = s.limits.MaxVideoBytes
	}
	if header.Size > limit {
		http.Error(w,
			fmt.Sprintf("%s uploads are limited to %dMB", kind, limit>>20),
			http.StatusRequestEntityTooLarge)
		return
	}

	uploader := common.IdentityFromContext(r.Context())
	stored, err := s.storage.UploadFile(r.Context(), header.Filename, mimeType, uploader, file)
	if err != nil {
		log.Printf("upload failed: %v", err)
		http.Error(w, "upload failed", http.StatusInternalServerError)
		return
	}

	resp := uploadResponse{
		ID:   stored.ID,
		URL:  s.baseURL + "/media/" + stored.ID,
		Kind: stored.Kind.String(),
		Size: stored.Size,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func (s *HTTPServer) serveFile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	fileId := vars["fileId"]

	fileReader, mediaFile, err := s.storage.DownloadFile(r.Context(), fileId)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	contentType := mimeFromExtension(mediaFile.Filename)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", mediaFile.Size))

	if _, err := io.Copy(w, fileReader); err != nil {
		log.Printf("Error streaming file: %v", err)
	}
}

func mimeFromExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	default:
		return "application/octet-stream"
	}
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
