package controllers

import (
	"net/http"

	"commentsapi/app/services"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type createPostRequest struct {
	Text string `json:"text" validate:"required"`
}

var createPostMessages = map[string]string{
	"text": "Text is required",
}

type PostController struct {
	postService *services.PostService
	log         logrus.FieldLogger
}

func NewPostController(postService *services.PostService, log logrus.FieldLogger) *PostController {
	return &PostController{postService: postService, log: log}
}

// Create handles POST /api/posts
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req createPostRequest
	if err := decodeBody(r, &req); err != nil {
		req = createPostRequest{}
	}
	if errs := validateBody(req, createPostMessages); len(errs) > 0 {
		sendValidationErrors(w, errs)
		return
	}

	post, err := pc.postService.CreatePost(r.Context(), user, req.Text)
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}

// Show handles GET /api/posts/{id}
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	post, err := pc.postService.GetPost(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, post)
}
