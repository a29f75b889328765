package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"commentsapi/app/middleware"
	"commentsapi/app/models"
	"commentsapi/app/services"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// FieldError is one entry of a 400 response's "errors" array.
type FieldError struct {
	Msg      string      `json:"msg"`
	Param    string      `json:"param"`
	Location string      `json:"location"`
	Value    interface{} `json:"value"`
}

type validationResponse struct {
	Errors []FieldError `json:"errors"`
}

type msgResponse struct {
	Msg string `json:"msg"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeBody reads a JSON body into dst. An empty body leaves dst zeroed.
func decodeBody(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// validateBody checks req against its validate tags. messages maps a JSON
// field name to the message reported when that field fails.
func validateBody(req interface{}, messages map[string]string) []FieldError {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Msg: err.Error(), Location: "body"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := messages[fe.Field()]
		if !ok {
			msg = "Invalid value"
		}
		out = append(out, FieldError{
			Msg:      msg,
			Param:    fe.Field(),
			Location: "body",
			Value:    fe.Value(),
		})
	}
	return out
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendMsg(w http.ResponseWriter, status int, msg string) {
	sendJSON(w, status, msgResponse{Msg: msg})
}

func sendValidationErrors(w http.ResponseWriter, errs []FieldError) {
	sendJSON(w, http.StatusBadRequest, validationResponse{Errors: errs})
}

// currentUser returns the caller set by the auth gate. Routes are always
// mounted behind the gate; a missing user is answered as unauthenticated.
func currentUser(w http.ResponseWriter, r *http.Request) (user models.User, ok bool) {
	user, ok = middleware.UserFromContext(r.Context())
	if !ok {
		sendMsg(w, http.StatusUnauthorized, middleware.MsgNoToken)
	}
	return user, ok
}

// sendError maps service error kinds to responses. Unknown errors are
// logged and answered with an opaque 500.
func sendError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		sendValidationErrors(w, []FieldError{{Msg: err.Error(), Location: "body"}})
	case errors.Is(err, services.ErrPostNotFound):
		sendMsg(w, http.StatusNotFound, "Post not found")
	case errors.Is(err, services.ErrCommentNotFound):
		sendMsg(w, http.StatusNotFound, "Comment not found")
	case errors.Is(err, services.ErrUnauthorized):
		sendMsg(w, http.StatusUnauthorized, "User not authorized")
	default:
		log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"request_id": middleware.RequestIDFromContext(r.Context()),
		}).WithError(err).Error("request failed")
		http.Error(w, "Server error", http.StatusInternalServerError)
	}
}
