package publicauth

import (
	"log"
	"net/http"
	"strings"

	apperrors "github.com/octofit/tracker/internal/services/web/platform/errors"
	"github.com/octofit/tracker/internal/services/web/platform/flash"
	"github.com/octofit/tracker/internal/services/web/platform/httpx"
	webi18n "github.com/octofit/tracker/internal/services/web/platform/i18n"
	"github.com/octofit/tracker/internal/services/web/platform/modulehandler"
	"github.com/octofit/tracker/internal/services/web/resource"
	"github.com/octofit/tracker/internal/services/web/routepath"
	webtemplates "github.com/octofit/tracker/internal/services/web/templates"
)

const nextParam = "next"

type handlers struct {
	modulehandler.Base
	service service
	cookie  SessionCookie
}

func newHandlers(s service, cookie SessionCookie, base modulehandler.Base) handlers {
	return handlers{Base: base, service: s, cookie: cookie}
}

func landingPath() string {
	return routepath.AppResource(resource.Activities)
}

func (h handlers) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	h.handleAuthPage(w, r, false)
}

func (h handlers) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	h.handleAuthPage(w, r, true)
}

func (h handlers) handleAuthPage(w http.ResponseWriter, r *http.Request, register bool) {
	next := r.URL.Query().Get(nextParam)
	if h.signedIn(r) {
		httpx.WriteRedirect(w, r, routepath.SafeNext(next, landingPath()))
		return
	}
	h.renderAuthPage(w, r, register, authForm{next: next}, "", http.StatusOK)
}

func (h handlers) signedIn(r *http.Request) bool {
	resolve := h.Dependencies().ResolveSignedIn
	return resolve != nil && resolve(r)
}

func (h handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	h.handleSignIn(w, r, false)
}

func (h handlers) handleRegister(w http.ResponseWriter, r *http.Request) {
	h.handleSignIn(w, r, true)
}

type authForm struct {
	username string
	email    string
	next     string
}

func (h handlers) handleSignIn(w http.ResponseWriter, r *http.Request, register bool) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, r, apperrors.E(apperrors.KindInvalidInput, "parse form: "+err.Error()))
		return
	}
	form := authForm{
		username: strings.TrimSpace(r.PostForm.Get("username")),
		email:    strings.TrimSpace(r.PostForm.Get("email")),
		next:     r.PostForm.Get(nextParam),
	}
	session, err := h.service.signIn(httpx.RequestContext(r), Credentials{
		Username: form.username,
		Email:    form.email,
		Password: r.PostForm.Get("password"),
	}, register)
	if err != nil {
		log.Printf("web sign-in failed register=%t username=%s err=%v", register, form.username, err)
		h.renderAuthPage(w, r, register, form, h.failureMessage(r, register, err), httpx.FormFailureStatus(r))
		return
	}
	if h.cookie == nil {
		h.WriteError(w, r, apperrors.E(apperrors.KindUnavailable, "session cookie is not configured"))
		return
	}
	if err := h.cookie.Write(w, r, session.ID, session.ExpiresAt); err != nil {
		h.WriteError(w, r, err)
		return
	}
	notice := flash.Success("auth.welcome")
	if register {
		notice = flash.Success("auth.registered")
	}
	h.RedirectWithNotice(w, r, routepath.SafeNext(form.next, landingPath()), notice)
}

func (h handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if h.cookie != nil {
		if sessionID, ok := h.cookie.Read(r); ok {
			if err := h.service.signOut(httpx.RequestContext(r), sessionID); err != nil {
				log.Printf("web sign-out failed err=%v", err)
			}
		}
		h.cookie.Clear(w, r)
	}
	h.RedirectWithNotice(w, r, routepath.Login, flash.Notice{Kind: flash.KindInfo, Key: "auth.logged_out"})
}

// failureMessage localizes typed failures and shows API rejections verbatim.
func (h handlers) failureMessage(r *http.Request, register bool, err error) string {
	loc := h.Localizer(r)
	if key := apperrors.LocalizationKey(err); key != "" {
		return webtemplates.T(loc, key)
	}
	text := webi18n.Auth(h.Dependencies().Language(r), register)
	return text.Failed(resource.Message(err))
}

func (h handlers) renderAuthPage(w http.ResponseWriter, r *http.Request, register bool, form authForm, failure string, statusCode int) {
	text := webi18n.Auth(h.Dependencies().Language(r), register)
	next := routepath.SafeNext(form.next, "")
	action, toggle := routepath.Login, routepath.Register
	if register {
		action, toggle = routepath.Register, routepath.Login
	}
	h.WritePage(w, r, text.Title, statusCode, webtemplates.AuthPage(webtemplates.AuthView{
		Heading:       text.Heading,
		Action:        action,
		Register:      register,
		Username:      form.username,
		Email:         form.email,
		Next:          next,
		Error:         failure,
		ToggleURL:     routepath.WithNext(toggle, next),
		ToggleLabel:   text.ToggleLabel,
		UsernameLabel: text.Username,
		EmailLabel:    text.Email,
		PasswordLabel: text.Password,
		SubmitLabel:   text.Submit,
	}))
}
