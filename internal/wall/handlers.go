package wall

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"socialwall/internal/common"
	"socialwall/internal/dbmysql"
)

type Handler struct {
	service Usecase
}

func NewHandler(service Usecase) *Handler {
	return &Handler{service: service}
}

// Register mounts the wall API routes on the router.
func (h *Handler) Register(router *mux.Router) {
	router.HandleFunc("/api/posts", h.listPosts).Methods("GET")
	router.HandleFunc("/api/posts/newer", h.listNewer).Methods("GET")
	router.HandleFunc("/api/posts", h.createPost).Methods("POST")
	router.HandleFunc("/api/posts/{id}/like", h.like).Methods("POST")
	router.HandleFunc("/api/posts/{id}/thumb", h.thumb).Methods("POST")
	router.HandleFunc("/api/leaderboard", h.leaderboard).Methods("GET")
	router.HandleFunc("/health", h.health).Methods("GET")
}

func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	before, _ := strconv.ParseInt(r.URL.Query().Get("before"), 10, 64)

	posts, err := h.service.ListPosts(r.Context(), before, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch posts")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *Handler) listNewer(w http.ResponseWriter, r *http.Request) {
	after, err := strconv.ParseInt(r.URL.Query().Get("after"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "after cursor is required")
		return
	}

	posts, err := h.service.ListNewer(r.Context(), after)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch posts")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

type createPostRequest struct {
	ID        string  `json:"id"`
	Content   string  `json:"content"`
	FileURL   *string `json:"file_url,omitempty"`
	MediaType *string `json:"media_type,omitempty"`
	Timestamp int64   `json:"timestamp"`
	Tag       string  `json:"tag"`
	Type      string  `json:"type"`
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post := &dbmysql.Post{
		ID:        req.ID,
		Content:   req.Content,
		FileURL:   req.FileURL,
		MediaType: req.MediaType,
		Timestamp: req.Timestamp,
		Tag:       req.Tag,
		Type:      req.Type,
		UserID:    common.IdentityFromContext(r.Context()),
	}

	if err := h.service.CreatePost(r.Context(), post); err != nil {
		if common.IsValidationError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("create post failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create post on server")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "id": post.ID})
}

func (h *Handler) like(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, ReactionLike)
}

func (h *Handler) thumb(w http.ResponseWriter, r *http.Request) {
	h.react(w, r, ReactionThumbsUp)
}

func (h *Handler) react(w http.ResponseWriter, r *http.Request, kind ReactionKind) {
	id := mux.Vars(r)["id"]
	if err := h.service.React(r.Context(), id, kind); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update reaction")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) leaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := h.service.GetLeaderboard(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch leaderboard")
		return
	}
	writeJSON(w, http.StatusOK, board)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
