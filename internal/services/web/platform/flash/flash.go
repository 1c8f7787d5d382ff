// Package flash carries one-time notices across a redirect.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/octofit/tracker/internal/services/web/platform/requestmeta"
)

// CookieName is the cookie holding the pending notice.
const CookieName = "octofit_flash"

// Kind classifies flash notice presentation.
type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindError   Kind = "error"
)

// Notice is one pending message. Key is a localization key; Message is raw
// text from the remote API and is shown as-is when Key is empty.
type Notice struct {
	Kind    Kind   `json:"kind"`
	Key     string `json:"key,omitempty"`
	Message string `json:"message,omitempty"`
}

// Success creates a success notice for a localization key.
func Success(key string) Notice {
	return Notice{Kind: KindSuccess, Key: key}
}

// Failure creates an error notice carrying a remote message.
func Failure(message string) Notice {
	return Notice{Kind: KindError, Message: message}
}

// Writer stores and clears notices with cookie flags resolved by Policy.
type Writer struct {
	Policy requestmeta.SchemePolicy
}

// Write stores notice for the next page render. Invalid notices are dropped.
func (fw Writer) Write(w http.ResponseWriter, r *http.Request, notice Notice) {
	normalized, ok := normalize(notice)
	if !ok {
		return
	}
	payload, err := json.Marshal(normalized)
	if err != nil {
		return
	}
	http.SetCookie(w, fw.cookie(r, base64.RawURLEncoding.EncodeToString(payload), 0))
}

// ReadAndClear returns the pending notice and expires its cookie. A cookie
// that fails to decode is still cleared.
func (fw Writer) ReadAndClear(w http.ResponseWriter, r *http.Request) (Notice, bool) {
	if r == nil {
		return Notice{}, false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return Notice{}, false
	}
	http.SetCookie(w, fw.cookie(r, "", -1))
	return decode(cookie.Value)
}

func (fw Writer) cookie(r *http.Request, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   fw.Policy.IsHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
}

func decode(raw string) (Notice, bool) {
	decoded, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(raw))
	if err != nil || len(decoded) == 0 {
		return Notice{}, false
	}
	var notice Notice
	if err := json.Unmarshal(decoded, &notice); err != nil {
		return Notice{}, false
	}
	return normalize(notice)
}

func normalize(notice Notice) (Notice, bool) {
	notice.Key = strings.TrimSpace(notice.Key)
	notice.Message = strings.TrimSpace(notice.Message)
	if notice.Key == "" && notice.Message == "" {
		return Notice{}, false
	}
	notice.Kind = Kind(strings.ToLower(strings.TrimSpace(string(notice.Kind))))
	switch notice.Kind {
	case KindSuccess, KindInfo, KindError:
		return notice, true
	default:
		return Notice{}, false
	}
}
