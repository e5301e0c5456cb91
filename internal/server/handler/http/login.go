package http

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"

	"go.uber.org/zap"

	"github.com/pavelzar/mailpost/internal/service"
	"github.com/pavelzar/mailpost/internal/signing"
)

// CredentialValidator defines the credential check required by the login
// handler.
type CredentialValidator interface {
	ValidateCredentials(ctx context.Context, username, password string) (string, error)
}

// LoginHandler handles the login page and login submissions. A failed
// login redirects back to the form with an HMAC-tagged error message in
// the query string; the form only renders the message if the tag
// verifies.
type LoginHandler struct {
	// AuthService performs the credential check.
	AuthService CredentialValidator
	// Secret keys the HMAC over redirect messages.
	Secret []byte
	// Log records unexpected failures.
	Log *zap.Logger
}

const loginPage = `<!DOCTYPE html>
<html lang="en">
  <head>
    <meta http-equiv="content-type" content="text/html; charset=utf-8">
    <title>Login</title>
  </head>
  <body>
    %s<form method="post">
      <label>Username
        <input type="text" placeholder="Enter Username" name="username">
      </label>
      <label>Password
        <input type="password" placeholder="Enter Password" name="password">
      </label>
      <button type="submit">Login</button>
    </form>
  </body>
</html>`

// Form handles GET requests for the login page.
// Query parameters "error" and "tag" carry a signed message from a failed
// login; a missing or non-verifying tag renders no message at all rather
// than an error page.
func (h *LoginHandler) Form(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	errorHTML := ""
	if raw := query.Get("error"); raw != "" {
		message, err := signing.Verify(raw, query.Get("tag"), h.Secret)
		if err == nil {
			errorHTML = fmt.Sprintf("<p><i>%s</i></p>\n    ", html.EscapeString(message))
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, loginPage, errorHTML)
}

// Submit handles POST requests from the login form.
// A successful login redirects home. Bad credentials redirect back to the
// form with a signed generic message; which of username or password was
// wrong is never revealed.
func (h *LoginHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}
	username := r.PostForm.Get("username")
	pass := r.PostForm.Get("password")

	_, err := h.AuthService.ValidateCredentials(r.Context(), username, pass)
	switch {
	case err == nil:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, service.ErrInvalidCredentials):
		h.redirectWithError(w, r, "Authentication failed")
	default:
		h.Log.Error("login credential validation failed", zap.Error(err))
		h.redirectWithError(w, r, "Something went wrong")
	}
}

func (h *LoginHandler) redirectWithError(w http.ResponseWriter, r *http.Request, message string) {
	encoded, tag := signing.Sign(message, h.Secret)
	http.Redirect(w, r, fmt.Sprintf("/login?error=%s&tag=%s", encoded, tag), http.StatusSeeOther)
}
