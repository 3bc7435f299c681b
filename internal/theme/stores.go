package theme

import (
	"fmt"
	"net/http"

	"github.com/quasilyte/gdata/v2"
)

// CookieName is the key the flag is saved under
const CookieName = "theme"

const cookieMaxAge = 365 * 24 * 60 * 60

// CookieStore keeps the flag in a browser cookie for one request/response pair
type CookieStore struct {
	Request *http.Request
	Writer  http.ResponseWriter
}

func (s CookieStore) Load() (Theme, bool, error) {
	c, err := s.Request.Cookie(CookieName)
	if err != nil {
		return "", false, nil
	}
	t, ok := Parse(c.Value)
	return t, ok, nil
}

func (s CookieStore) Save(t Theme) error {
	http.SetCookie(s.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    string(t),
		Path:     "/",
		MaxAge:   cookieMaxAge,
		HttpOnly: false, // the page script reads it to avoid a flash of the wrong theme
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// HintHeader is the client hint carrying the system colour scheme
const HintHeader = "Sec-CH-Prefers-Color-Scheme"

// SystemPreference reads the colour scheme client hint, defaulting to dark
func SystemPreference(r *http.Request) Theme {
	if t, ok := Parse(r.Header.Get(HintHeader)); ok {
		return t
	}
	return Dark
}

// RequestHint asks the browser to send the colour scheme hint. Critical-CH makes it
// retry the first navigation with the hint attached.
func RequestHint(h http.Header) {
	h.Set("Accept-CH", HintHeader)
	h.Set("Critical-CH", HintHeader)
	h.Add("Vary", HintHeader)
}

const (
	gdataObject   = "preferences"
	gdataProperty = "theme"
)

// GdataStore keeps the flag in the per-user app data directory.
// A nil manager degrades to not persisting.
type GdataStore struct {
	Manager *gdata.Manager
}

// OpenGdataStore opens the app data store for appName
func OpenGdataStore(appName string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return &GdataStore{}, fmt.Errorf("failed to open app data for %s: %w", appName, err)
	}
	return &GdataStore{Manager: m}, nil
}

func (s *GdataStore) Load() (Theme, bool, error) {
	if s.Manager == nil || !s.Manager.ObjectPropExists(gdataObject, gdataProperty) {
		return "", false, nil
	}
	data, err := s.Manager.LoadObjectProp(gdataObject, gdataProperty)
	if err != nil {
		return "", false, err
	}
	t, ok := Parse(string(data))
	return t, ok, nil
}

func (s *GdataStore) Save(t Theme) error {
	if s.Manager == nil {
		return nil
	}
	return s.Manager.SaveObjectProp(gdataObject, gdataProperty, []byte(t))
}
