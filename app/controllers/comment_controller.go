package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"commentsapi/app/services"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type createCommentRequest struct {
	Text string `json:"text" validate:"required"`
	Post string `json:"post" validate:"required"`
}

var createCommentMessages = map[string]string{
	"text": "Comment text is required",
	"post": "Post ID is required",
}

type updateCommentRequest struct {
	Text json.RawMessage `json:"text"`
}

// text returns the requested text. Numbers and booleans are taken as their
// literal text and a missing or null value as "". Objects and arrays are
// rejected.
func (req updateCommentRequest) text() (string, bool) {
	raw := bytes.TrimSpace(req.Text)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", true
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	case '{', '[':
		return "", false
	default:
		return string(raw), true
	}
}

type CommentController struct {
	commentService *services.CommentService
	log            logrus.FieldLogger
}

func NewCommentController(commentService *services.CommentService, log logrus.FieldLogger) *CommentController {
	return &CommentController{commentService: commentService, log: log}
}

// Create handles POST /api/comments
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req createCommentRequest
	if err := decodeBody(r, &req); err != nil {
		// Whatever could not be read counts as missing.
		req = createCommentRequest{}
	}
	if errs := validateBody(req, createCommentMessages); len(errs) > 0 {
		sendValidationErrors(w, errs)
		return
	}

	comment, err := cc.commentService.CreateComment(r.Context(), user, req.Text, req.Post)
	if err != nil {
		sendError(w, r, cc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, comment)
}

// Show handles GET /api/comments/{id}
func (cc *CommentController) Show(w http.ResponseWriter, r *http.Request) {
	comment, err := cc.commentService.GetComment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		sendError(w, r, cc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, comment)
}

// Update handles PUT /api/comments/{id}. Only the author may change the text.
func (cc *CommentController) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req updateCommentRequest
	if err := decodeBody(r, &req); err != nil {
		sendValidationErrors(w, []FieldError{{Msg: "Invalid JSON body", Location: "body"}})
		return
	}
	text, ok := req.text()
	if !ok {
		// Existence and ownership are still reported before the bad value.
		existing, err := cc.commentService.GetComment(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			sendError(w, r, cc.log, err)
			return
		}
		if !existing.IsAuthor(user) {
			sendError(w, r, cc.log, services.ErrUnauthorized)
			return
		}
		sendValidationErrors(w, []FieldError{{
			Msg:      "Comment text must be a string",
			Param:    "text",
			Location: "body",
			Value:    req.Text,
		}})
		return
	}

	comment, err := cc.commentService.UpdateComment(r.Context(), user, mux.Vars(r)["id"], text)
	if err != nil {
		sendError(w, r, cc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, comment)
}
